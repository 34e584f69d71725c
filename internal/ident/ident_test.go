package ident_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/ident"
)

func seg(kind ident.DefPathItemKind, name string, dis uint32) ident.DisambiguatedItem {
	return ident.DisambiguatedItem{Data: ident.DefPathItem{Kind: kind, Name: name}, Disambiguator: dis}
}

func TestDefIDEqual(t *testing.T) {
	a := ident.DefID{Krate: "k", Path: []ident.DisambiguatedItem{seg(ident.TypeNs, "m", 0), seg(ident.ValueNs, "f", 0)}}
	b := ident.DefID{Krate: "k", Path: []ident.DisambiguatedItem{seg(ident.TypeNs, "m", 0), seg(ident.ValueNs, "f", 0)}}
	c := ident.DefID{Krate: "k", Path: []ident.DisambiguatedItem{seg(ident.TypeNs, "m", 0), seg(ident.ValueNs, "f", 1)}}
	d := ident.DefID{Krate: "other", Path: b.Path}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "disambiguator is part of identity")
	assert.False(t, a.Equal(d), "crate is part of identity")
	assert.False(t, a.Equal(ident.DefID{Krate: "k"}))
}

func TestQualifiedPathDropsMarkers(t *testing.T) {
	id := ident.DefID{Krate: "k", Path: []ident.DisambiguatedItem{
		seg(ident.TypeNs, "m", 0),
		seg(ident.Impl, "", 0),
		seg(ident.ValueNs, "f", 0),
		seg(ident.ClosureExpr, "", 0),
	}}
	assert.Equal(t, ident.Path{"k", "m", "f"}, id.QualifiedPath())
	assert.Equal(t, "k::m::{Impl}::f::{ClosureExpr}", id.String())

	_, ok := id.LastName()
	assert.False(t, ok)
}

func TestParentAndLastName(t *testing.T) {
	id := ident.DefID{Krate: "k", Path: []ident.DisambiguatedItem{seg(ident.TypeNs, "P", 0), seg(ident.ValueNs, "x", 0)}}
	name, ok := id.LastName()
	require.True(t, ok)
	assert.Equal(t, "x", name)

	parent, ok := id.Parent()
	require.True(t, ok)
	assert.Equal(t, "k::P", parent.String())

	_, ok = ident.DefID{Krate: "k"}.Parent()
	assert.False(t, ok)
}

func TestNameNFC(t *testing.T) {
	// "é" как e + combining acute
	decomposed := "cafe\u0301"
	assert.Equal(t, "caf\u00e9", ident.Name(decomposed))
	assert.Equal(t, "plain", ident.Name("plain"))
}
