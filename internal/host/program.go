package host

import (
	"errors"

	"portast/internal/source"
)

var (
	// ErrUnknownDef is returned by lookups for a definition the host does not know.
	ErrUnknownDef = errors.New("unknown definition")
	// ErrNoBody is returned when a definition has no typed body.
	ErrNoBody = errors.New("definition has no body")
	// ErrNotEvaluable is returned when a constant cannot be folded.
	ErrNotEvaluable = errors.New("constant is not evaluable")
	// ErrUnknownSpan is returned for spans outside the span table.
	ErrUnknownSpan = errors.New("unknown span")
	// ErrSchema is returned when a snapshot was written with another schema.
	ErrSchema = errors.New("unsupported snapshot schema")
)

// SpanLoc is a resolved span: file plus line/column range.
type SpanLoc struct {
	File source.FileName
	Lo   source.Loc
	Hi   source.Loc
}

// MacroCall pairs the span of a macro invocation with the span of its
// argument token tree.
type MacroCall struct {
	CallSite Span `msgpack:"call_site"`
	Args     Span `msgpack:"args"`
}

// Program is the query surface of a compiled crate.
//
// Implementations are read-only for the translator; one translation run
// queries one Program from a single goroutine.
type Program interface {
	// CrateName is the name of the local crate.
	CrateName() string
	// RootItems lists the top-level items of the crate in source order.
	RootItems() []DefID

	DefPath(id DefID) (DefPath, error)
	DefKind(id DefID) (DefKind, error)
	Item(id DefID) (*Item, error)
	Body(id DefID) (*Body, error)
	AdtDef(id DefID) (*AdtDef, error)
	// FnSig is the generic (uninstantiated) signature of a function.
	FnSig(id DefID) (*FnSig, error)
	// ImplTraitRef returns the implemented trait of a trait impl.
	ImplTraitRef(id DefID) (*TraitRef, bool)
	// Predicates are the predicates defined on id.
	Predicates(id DefID) []Predicate
	// ItemBounds are the bounds of an associated or opaque type.
	ItemBounds(id DefID) []Predicate

	LookupSpan(sp Span) (SpanLoc, error)
	// MacroBacktrace lists the expansions sp went through, innermost first.
	MacroBacktrace(sp Span) []ExpnData
	// MacroCalls lists every bang macro invocation of the crate.
	MacroCalls() []MacroCall

	// ScopeHirID maps a region scope of owner to the syntax node it covers.
	ScopeHirID(owner DefID, scope RegionScope) (HirID, bool)
	Attrs(id HirID) []Attribute

	// EvalConstant folds c to a value or a type-level constant.
	EvalConstant(c ConstantKind) (ConstantKind, error)
}
