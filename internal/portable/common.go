// Package portable defines the stable, serializable tree the exporter emits.
//
// Every expression and pattern is a decorated node: type, span, kind,
// kind-specific payload, the originating syntax node and its attributes.
// Identifiers are ident.DefID values and spans are source.Span values, so
// nothing here refers back to the host.
package portable

import (
	"portast/internal/ident"
	"portast/internal/source"
)

func enumName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return "Unknown"
}

// HirID identifies the syntax node a decorated node came from.
type HirID struct {
	Owner ident.DefID `json:"owner" msgpack:"owner"`
	Local uint32      `json:"local" msgpack:"local"`
}

// LocalIdent is a local variable: its declared name plus the binding node.
type LocalIdent struct {
	Name string `json:"name" msgpack:"name"`
	ID   HirID  `json:"id" msgpack:"id"`
}

type Mutability uint8

const (
	Not Mutability = iota
	Mut
)

var mutabilityNames = []string{"Not", "Mut"}

func (m Mutability) String() string               { return enumName(mutabilityNames, int(m)) }
func (m Mutability) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

type RegionKind uint8

const (
	ReEarlyBound RegionKind = iota
	ReLateBound
	ReFree
	ReStatic
	ReVar
	RePlaceholder
	ReErased
	ReError
)

var regionKindNames = []string{"EarlyBound", "LateBound", "Free", "Static", "Var", "Placeholder", "Erased", "Error"}

func (k RegionKind) String() string               { return enumName(regionKindNames, int(k)) }
func (k RegionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Region is a lifetime.
type Region struct {
	Kind  RegionKind `json:"kind" msgpack:"kind"`
	Index uint32     `json:"index,omitempty" msgpack:"index,omitempty"`
	Name  string     `json:"name,omitempty" msgpack:"name,omitempty"`
}

type GenericArgKind uint8

const (
	ArgLifetime GenericArgKind = iota
	ArgType
	ArgConst
)

var genericArgKindNames = []string{"Lifetime", "Type", "Const"}

func (k GenericArgKind) String() string               { return enumName(genericArgKindNames, int(k)) }
func (k GenericArgKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// GenericArg is a lifetime, a type or a constant expression.
type GenericArg struct {
	Kind     GenericArgKind `json:"kind" msgpack:"kind"`
	Lifetime *Region        `json:"lifetime,omitempty" msgpack:"lifetime,omitempty"`
	Type     *Ty            `json:"type,omitempty" msgpack:"type,omitempty"`
	Const    *Expr          `json:"const,omitempty" msgpack:"const,omitempty"`
}

type ScopeData uint8

const (
	ScopeNode ScopeData = iota
	ScopeCallSite
	ScopeArguments
	ScopeDestruction
	ScopeIfThen
	ScopeRemainder
)

var scopeDataNames = []string{"Node", "CallSite", "Arguments", "Destruction", "IfThen", "Remainder"}

func (d ScopeData) String() string               { return enumName(scopeDataNames, int(d)) }
func (d ScopeData) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Scope is a lexical region, used as a break/continue label.
type Scope struct {
	ID             uint32    `json:"id" msgpack:"id"`
	Data           ScopeData `json:"data" msgpack:"data"`
	FirstStatement uint32    `json:"first_statement,omitempty" msgpack:"first_statement,omitempty"`
}

type AttrKind uint8

const (
	AttrNormal AttrKind = iota
	AttrDocComment
)

var attrKindNames = []string{"Normal", "DocComment"}

func (k AttrKind) String() string               { return enumName(attrKindNames, int(k)) }
func (k AttrKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type AttrStyle uint8

const (
	AttrOuter AttrStyle = iota
	AttrInner
)

var attrStyleNames = []string{"Outer", "Inner"}

func (s AttrStyle) String() string               { return enumName(attrStyleNames, int(s)) }
func (s AttrStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// AttrItem is the body of a normal attribute.
type AttrItem struct {
	Path   string `json:"path" msgpack:"path"`
	Args   string `json:"args" msgpack:"args"`
	Tokens string `json:"tokens,omitempty" msgpack:"tokens,omitempty"`
}

type CommentKind uint8

const (
	CommentLine CommentKind = iota
	CommentBlock
)

var commentKindNames = []string{"Line", "Block"}

func (k CommentKind) String() string               { return enumName(commentKindNames, int(k)) }
func (k CommentKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// DocComment is the body of a doc-comment attribute.
type DocComment struct {
	Kind   CommentKind `json:"kind" msgpack:"kind"`
	Symbol string      `json:"symbol" msgpack:"symbol"`
}

// Attribute is an attribute attached to an item, statement or expression.
type Attribute struct {
	Kind   AttrKind    `json:"kind" msgpack:"kind"`
	Normal *AttrItem   `json:"normal,omitempty" msgpack:"normal,omitempty"`
	Doc    *DocComment `json:"doc,omitempty" msgpack:"doc,omitempty"`
	ID     uint32      `json:"id" msgpack:"id"`
	Style  AttrStyle   `json:"style" msgpack:"style"`
	Span   source.Span `json:"span" msgpack:"span"`
}

// MacroInvocation is a folded macro call: the macro, the raw text of its
// argument and the call site.
type MacroInvocation struct {
	MacroIdent ident.DefID `json:"macro_ident" msgpack:"macro_ident"`
	Argument   string      `json:"argument" msgpack:"argument"`
	Span       source.Span `json:"span" msgpack:"span"`
}

// VariantInformation is the normalized description of a construction or
// destructuring site of an algebraic type.
type VariantInformation struct {
	TypeNamespace   ident.DefID `json:"type_namespace" msgpack:"type_namespace"`
	Typ             ident.DefID `json:"typ" msgpack:"typ"`
	Variant         ident.DefID `json:"variant" msgpack:"variant"`
	VariantIndex    uint32      `json:"variant_index" msgpack:"variant_index"`
	TypIsRecord     bool        `json:"typ_is_record" msgpack:"typ_is_record"`
	VariantIsRecord bool        `json:"variant_is_record" msgpack:"variant_is_record"`
	TypIsStruct     bool        `json:"typ_is_struct" msgpack:"typ_is_struct"`
}

type ExpnKind uint8

const (
	ExpnRoot ExpnKind = iota
	ExpnMacro
	ExpnAstPass
	ExpnDesugaring
	ExpnInlined
)

var expnKindNames = []string{"Root", "Macro", "AstPass", "Desugaring", "Inlined"}

func (k ExpnKind) String() string               { return enumName(expnKindNames, int(k)) }
func (k ExpnKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type MacroKind uint8

const (
	MacroBang MacroKind = iota
	MacroAttr
	MacroDerive
)

var macroKindNames = []string{"Bang", "Attr", "Derive"}

func (k MacroKind) String() string               { return enumName(macroKindNames, int(k)) }
func (k MacroKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ExpnData is one step of a macro backtrace.
type ExpnData struct {
	Kind                ExpnKind     `json:"kind" msgpack:"kind"`
	MacroKind           MacroKind    `json:"macro_kind" msgpack:"macro_kind"`
	Name                string       `json:"name,omitempty" msgpack:"name,omitempty"`
	MacroDefID          *ident.DefID `json:"macro_def_id,omitempty" msgpack:"macro_def_id,omitempty"`
	CallSite            source.Span  `json:"call_site" msgpack:"call_site"`
	DefSite             source.Span  `json:"def_site" msgpack:"def_site"`
	Edition             string       `json:"edition" msgpack:"edition"`
	ParentModule        *ident.DefID `json:"parent_module,omitempty" msgpack:"parent_module,omitempty"`
	AllowInternalUnsafe bool         `json:"allow_internal_unsafe" msgpack:"allow_internal_unsafe"`
	LocalInnerMacros    bool         `json:"local_inner_macros" msgpack:"local_inner_macros"`
	CollapseDebuginfo   bool         `json:"collapse_debuginfo" msgpack:"collapse_debuginfo"`
}

// UserType is a user-written type annotation, kept as text.
type UserType struct {
	Text string `json:"text" msgpack:"text"`
}
