package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkSpan(file string, l1, c1, l2, c2 uint32) Span {
	return Span{Lo: Loc{Line: l1, Col: c1}, Hi: Loc{Line: l2, Col: c2}, Filename: LocalFile(file)}
}

func TestSpanSetKeepsInsertionOrder(t *testing.T) {
	set := NewSpanSet()
	a := mkSpan("a.rs", 1, 0, 1, 4)
	b := mkSpan("a.rs", 2, 0, 2, 1)
	c := mkSpan("b.rs", 1, 0, 1, 4)

	require.True(t, set.Insert(b))
	require.True(t, set.Insert(a))
	require.False(t, set.Insert(b), "duplicate must be rejected")
	require.True(t, set.Insert(c))

	assert.Equal(t, []Span{b, a, c}, set.Spans())
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Has(a))
	assert.False(t, set.Has(mkSpan("a.rs", 9, 0, 9, 1)))
}

func TestSpanCoverAndContains(t *testing.T) {
	outer := mkSpan("a.rs", 1, 0, 3, 2)
	inner := mkSpan("a.rs", 2, 4, 2, 8)
	other := mkSpan("b.rs", 2, 4, 2, 8)

	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
	assert.False(t, outer.Contains(other))

	assert.Equal(t, mkSpan("a.rs", 1, 0, 3, 2), inner.Cover(outer))
	assert.Equal(t, inner, inner.Cover(other))
}

func TestSpanValid(t *testing.T) {
	assert.True(t, mkSpan("a.rs", 1, 2, 1, 2).Valid())
	assert.True(t, mkSpan("a.rs", 1, 2, 1, 2).Empty())
	assert.False(t, mkSpan("a.rs", 2, 0, 1, 9).Valid())
}

func TestFileNameLocalPath(t *testing.T) {
	path, ok := LocalFile("src/lib.rs").LocalPath()
	require.True(t, ok)
	assert.Equal(t, "src/lib.rs", path)

	remapped := FileName{Kind: FileNameReal, Real: RealFileName{Remapped: true, LocalPath: "x.rs", VirtualName: "/rustc/x.rs"}}
	_, ok = remapped.LocalPath()
	assert.False(t, ok)
	assert.Equal(t, "/rustc/x.rs", remapped.String())

	_, ok = FileName{Kind: FileNameAnon, Hash: 7}.LocalPath()
	assert.False(t, ok)
}
