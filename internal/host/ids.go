// Package host models the typed program representation exported by the host
// compiler: declaration trees, typed bodies, types and the query surface
// (Program) the translator reads them through.
//
// Nothing here is portable. Identifiers are opaque handles, spans are indices
// into the host's span table, and every lookup goes through Program.
package host

import (
	"fmt"
	"math/big"
)

// DefID is an opaque host definition handle.
type DefID struct {
	Krate uint32 `msgpack:"krate"`
	Index uint32 `msgpack:"index"`
}

func (id DefID) String() string { return fmt.Sprintf("DefId(%d:%d)", id.Krate, id.Index) }

// HirID identifies a syntax node inside its owner.
type HirID struct {
	Owner DefID  `msgpack:"owner"`
	Local uint32 `msgpack:"local"`
}

// LocalVarID names a local variable inside a typed body.
type LocalVarID HirID

type (
	// ExprID indexes Body.Exprs.
	ExprID uint32
	// StmtID indexes Body.Stmts.
	StmtID uint32
	// BlockID indexes Body.Blocks.
	BlockID uint32
	// ArmID indexes Body.Arms.
	ArmID uint32
	// ExpnID indexes the expansion table; zero is the root context.
	ExpnID uint32
	// Span is an index into the host span table; zero is the dummy span.
	Span uint32
)

const (
	// RootExpn is the expansion context of code not produced by a macro.
	RootExpn ExpnID = 0
	// DummySpan carries no location.
	DummySpan Span = 0
)

// Uint128 is an unsigned 128-bit value as the host stores scalars and integer literals.
type Uint128 struct {
	Hi uint64 `msgpack:"hi"`
	Lo uint64 `msgpack:"lo"`
}

// Uint128From widens v.
func Uint128From(v uint64) Uint128 { return Uint128{Lo: v} }

// Big returns the value as a big integer.
func (u Uint128) Big() *big.Int {
	hi := new(big.Int).SetUint64(u.Hi)
	hi.Lsh(hi, 64)
	return hi.Or(hi, new(big.Int).SetUint64(u.Lo))
}

func (u Uint128) String() string { return u.Big().String() }

// Mutability of a binding, reference or pointer.
type Mutability uint8

const (
	Not Mutability = iota
	Mut
)

// DefKind is the coarse kind of a definition.
type DefKind uint8

const (
	DefMod DefKind = iota
	DefStruct
	DefUnion
	DefEnum
	DefVariant
	DefTrait
	DefTyAlias
	DefForeignTy
	DefTraitAlias
	DefAssocTy
	DefTyParam
	DefFn
	DefConst
	DefConstParam
	DefStatic
	DefCtor
	DefAssocFn
	DefAssocConst
	DefMacro
	DefExternCrate
	DefUse
	DefForeignMod
	DefAnonConst
	DefInlineConst
	DefOpaqueTy
	DefImplTraitPlaceholder
	DefField
	DefLifetimeParam
	DefGlobalAsm
	DefImpl
	DefClosure
	DefGenerator
)

// DefPathDataKind mirrors the namespace of a host def-path segment.
type DefPathDataKind uint8

const (
	PathCrateRoot DefPathDataKind = iota
	PathImpl
	PathForeignMod
	PathUse
	PathGlobalAsm
	PathTypeNs
	PathValueNs
	PathMacroNs
	PathLifetimeNs
	PathClosureExpr
	PathCtor
	PathAnonConst
	PathImplTrait
	PathImplTraitAssocTy
)

// DefPathData is one host def-path segment.
type DefPathData struct {
	Kind          DefPathDataKind `msgpack:"kind"`
	Name          string          `msgpack:"name,omitempty"`
	Disambiguator uint32          `msgpack:"disambiguator"`
}

// DefPath is the crate-relative path of a definition.
type DefPath struct {
	Krate string        `msgpack:"krate"`
	Data  []DefPathData `msgpack:"data"`
}
