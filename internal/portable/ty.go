package portable

import "portast/internal/ident"

// TyKind enumerates portable type shapes.
type TyKind uint8

const (
	TyBool TyKind = iota
	TyChar
	TyInt
	TyUint
	TyFloat
	TyArrow
	TyNamed
	TyForeign
	TyStr
	TyArray
	TySlice
	TyRawPtr
	TyRef
	TyDynamic
	TyGenerator
	TyNever
	TyTuple
	TyAlias
	TyParam
	TyBound
	TyPlaceholder
	TyInfer
	TyError
	TyTodo
)

var tyKindNames = []string{
	"Bool", "Char", "Int", "Uint", "Float", "Arrow", "NamedType", "Foreign", "Str",
	"Array", "Slice", "RawPtr", "Ref", "Dynamic", "Generator", "Never", "Tuple",
	"Alias", "Param", "Bound", "Placeholder", "Infer", "Error", "Todo",
}

// String returns a human-readable name for the type kind.
func (k TyKind) String() string { return enumName(tyKindNames, int(k)) }

// MarshalText renders the kind by name.
func (k TyKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Ty is a portable type.
type Ty struct {
	Kind TyKind `json:"kind" msgpack:"kind"`
	Data TyData `json:"data,omitempty" msgpack:"data,omitempty"`
}

// TyData is the kind-specific payload of a Ty.
type TyData interface {
	tyData()
}

type IntTy uint8

const (
	Isize IntTy = iota
	I8
	I16
	I32
	I64
	I128
)

var intTyNames = []string{"Isize", "I8", "I16", "I32", "I64", "I128"}

func (t IntTy) String() string               { return enumName(intTyNames, int(t)) }
func (t IntTy) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Bits is the width of t; isize is taken as 64 bits.
func (t IntTy) Bits() uint {
	return [...]uint{64, 8, 16, 32, 64, 128}[t]
}

type UintTy uint8

const (
	Usize UintTy = iota
	U8
	U16
	U32
	U64
	U128
)

var uintTyNames = []string{"Usize", "U8", "U16", "U32", "U64", "U128"}

func (t UintTy) String() string               { return enumName(uintTyNames, int(t)) }
func (t UintTy) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Bits is the width of t; usize is taken as 64 bits.
func (t UintTy) Bits() uint {
	return [...]uint{64, 8, 16, 32, 64, 128}[t]
}

type FloatTy uint8

const (
	F32 FloatTy = iota
	F64
)

var floatTyNames = []string{"F32", "F64"}

func (t FloatTy) String() string               { return enumName(floatTyNames, int(t)) }
func (t FloatTy) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// IntData holds data for TyInt.
type IntData struct {
	Int IntTy `json:"int" msgpack:"int"`
}

func (IntData) tyData() {}

// UintData holds data for TyUint.
type UintData struct {
	Uint UintTy `json:"uint" msgpack:"uint"`
}

func (UintData) tyData() {}

// FloatData holds data for TyFloat.
type FloatData struct {
	Float FloatTy `json:"float" msgpack:"float"`
}

func (FloatData) tyData() {}

// ArrowData holds data for TyArrow: function pointers, function items and
// closures all lower to a plain arrow.
type ArrowData struct {
	Params []Ty `json:"params" msgpack:"params"`
	Ret    Ty   `json:"ret" msgpack:"ret"`
}

func (ArrowData) tyData() {}

// NamedData holds data for TyNamed and TyForeign.
type NamedData struct {
	DefID       ident.DefID  `json:"def_id" msgpack:"def_id"`
	GenericArgs []GenericArg `json:"generic_args,omitempty" msgpack:"generic_args,omitempty"`
}

func (NamedData) tyData() {}

// ArrayData holds data for TyArray.
type ArrayData struct {
	Elem Ty    `json:"elem" msgpack:"elem"`
	Len  *Expr `json:"len" msgpack:"len"`
}

func (ArrayData) tyData() {}

// ElemData holds data for TySlice and TyRawPtr.
type ElemData struct {
	Elem  Ty         `json:"elem" msgpack:"elem"`
	Mutbl Mutability `json:"mutbl" msgpack:"mutbl"`
}

func (ElemData) tyData() {}

// RefData holds data for TyRef.
type RefData struct {
	Region Region     `json:"region" msgpack:"region"`
	Elem   Ty         `json:"elem" msgpack:"elem"`
	Mutbl  Mutability `json:"mutbl" msgpack:"mutbl"`
}

func (RefData) tyData() {}

// TraitRef is a trait applied to arguments; GenericArgs[0] is Self.
type TraitRef struct {
	DefID       ident.DefID  `json:"def_id" msgpack:"def_id"`
	GenericArgs []GenericArg `json:"generic_args" msgpack:"generic_args"`
}

// DynamicData holds data for TyDynamic.
type DynamicData struct {
	Traits []TraitRef `json:"traits" msgpack:"traits"`
	Region Region     `json:"region" msgpack:"region"`
}

func (DynamicData) tyData() {}

// GeneratorData holds data for TyGenerator.
type GeneratorData struct {
	DefID       ident.DefID  `json:"def_id" msgpack:"def_id"`
	GenericArgs []GenericArg `json:"generic_args" msgpack:"generic_args"`
	Movable     bool         `json:"movable" msgpack:"movable"`
}

func (GeneratorData) tyData() {}

// TupleData holds data for TyTuple.
type TupleData struct {
	Elems []Ty `json:"elems" msgpack:"elems"`
}

func (TupleData) tyData() {}

type AliasKind uint8

const (
	AliasProjection AliasKind = iota
	AliasInherent
	AliasOpaque
	AliasWeak
)

var aliasKindNames = []string{"Projection", "Inherent", "Opaque", "Weak"}

func (k AliasKind) String() string               { return enumName(aliasKindNames, int(k)) }
func (k AliasKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// AliasTy is a projection or opaque alias.
type AliasTy struct {
	DefID       ident.DefID  `json:"def_id" msgpack:"def_id"`
	GenericArgs []GenericArg `json:"generic_args" msgpack:"generic_args"`
}

// AliasData holds data for TyAlias.
type AliasData struct {
	Kind  AliasKind `json:"kind" msgpack:"kind"`
	Alias AliasTy   `json:"alias" msgpack:"alias"`
}

func (AliasData) tyData() {}

// ParamData holds data for TyParam.
type ParamData struct {
	Index uint32 `json:"index" msgpack:"index"`
	Name  string `json:"name" msgpack:"name"`
}

func (ParamData) tyData() {}

// BoundData holds data for TyBound and TyPlaceholder.
type BoundData struct {
	Index uint32 `json:"index" msgpack:"index"`
	Var   uint32 `json:"var" msgpack:"var"`
	Name  string `json:"name,omitempty" msgpack:"name,omitempty"`
}

func (BoundData) tyData() {}

// TextData holds data for TyInfer and TyTodo: a debug rendering.
type TextData struct {
	Text string `json:"text" msgpack:"text"`
}

func (TextData) tyData() {}

// UnitTy is the empty tuple, the type of the default return.
func UnitTy() Ty {
	return Ty{Kind: TyTuple, Data: TupleData{Elems: []Ty{}}}
}
