package host

// TyKind enumerates host type shapes.
type TyKind uint8

const (
	TyBool TyKind = iota
	TyChar
	TyInt
	TyUint
	TyFloat
	TyAdt
	TyForeign
	TyStr
	TyArray
	TySlice
	TyRawPtr
	TyRef
	TyFnDef
	TyFnPtr
	TyDynamic
	TyClosure
	TyGenerator
	TyGeneratorWitness
	TyNever
	TyTuple
	TyAlias
	TyParam
	TyBound
	TyPlaceholder
	TyInfer
	TyError
)

// Ty is a host type. Payload-free kinds leave Data nil.
type Ty struct {
	Kind TyKind
	Data TyData
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

type UintTy uint8

const (
	Usize UintTy = iota
	U8
	U16
	U32
	U64
	U128
)

type FloatTy uint8

const (
	F32 FloatTy = iota
	F64
)

// IntData holds data for TyInt.
type IntData struct {
	Int IntTy `msgpack:"int"`
}

func (IntData) tyData() {}

// UintData holds data for TyUint.
type UintData struct {
	Uint UintTy `msgpack:"uint"`
}

func (UintData) tyData() {}

// FloatData holds data for TyFloat.
type FloatData struct {
	Float FloatTy `msgpack:"float"`
}

func (FloatData) tyData() {}

// AdtData holds data for TyAdt.
type AdtData struct {
	Def  DefID        `msgpack:"def"`
	Args []GenericArg `msgpack:"args"`
}

func (AdtData) tyData() {}

// ForeignData holds data for TyForeign.
type ForeignData struct {
	Def DefID `msgpack:"def"`
}

func (ForeignData) tyData() {}

// ArrayData holds data for TyArray.
type ArrayData struct {
	Elem Ty    `msgpack:"elem"`
	Len  Const `msgpack:"len"`
}

func (ArrayData) tyData() {}

// SliceData holds data for TySlice.
type SliceData struct {
	Elem Ty `msgpack:"elem"`
}

func (SliceData) tyData() {}

// RawPtrData holds data for TyRawPtr.
type RawPtrData struct {
	Elem  Ty         `msgpack:"elem"`
	Mutbl Mutability `msgpack:"mutbl"`
}

func (RawPtrData) tyData() {}

// RefData holds data for TyRef.
type RefData struct {
	Region Region     `msgpack:"region"`
	Elem   Ty         `msgpack:"elem"`
	Mutbl  Mutability `msgpack:"mutbl"`
}

func (RefData) tyData() {}

// FnDefData holds data for TyFnDef. The signature comes from Program.FnSig.
type FnDefData struct {
	Def  DefID        `msgpack:"def"`
	Args []GenericArg `msgpack:"args"`
}

func (FnDefData) tyData() {}

// FnPtrData holds data for TyFnPtr.
type FnPtrData struct {
	Sig FnSig `msgpack:"sig"`
}

func (FnPtrData) tyData() {}

// DynamicData holds data for TyDynamic.
type DynamicData struct {
	Traits []TraitRef `msgpack:"traits"`
	Region Region     `msgpack:"region"`
}

func (DynamicData) tyData() {}

// ClosureData holds data for TyClosure.
type ClosureData struct {
	Def  DefID        `msgpack:"def"`
	Args []GenericArg `msgpack:"args"`
	Sig  FnSig        `msgpack:"sig"`
}

func (ClosureData) tyData() {}

// GeneratorData holds data for TyGenerator.
type GeneratorData struct {
	Def     DefID        `msgpack:"def"`
	Args    []GenericArg `msgpack:"args"`
	Movable bool         `msgpack:"movable"`
}

func (GeneratorData) tyData() {}

// TupleData holds data for TyTuple.
type TupleData struct {
	Elems []Ty `msgpack:"elems"`
}

func (TupleData) tyData() {}

type AliasKind uint8

const (
	AliasProjection AliasKind = iota
	AliasInherent
	AliasOpaque
	AliasWeak
)

// AliasData holds data for TyAlias.
type AliasData struct {
	Kind AliasKind    `msgpack:"kind"`
	Def  DefID        `msgpack:"def"`
	Args []GenericArg `msgpack:"args"`
}

func (AliasData) tyData() {}

// ParamData holds data for TyParam.
type ParamData struct {
	Index uint32 `msgpack:"index"`
	Name  string `msgpack:"name"`
}

func (ParamData) tyData() {}

// BoundData holds data for TyBound.
type BoundData struct {
	Debruijn uint32 `msgpack:"debruijn"`
	Var      uint32 `msgpack:"var"`
	Name     string `msgpack:"name,omitempty"`
}

func (BoundData) tyData() {}

// PlaceholderData holds data for TyPlaceholder.
type PlaceholderData struct {
	Universe uint32 `msgpack:"universe"`
	Var      uint32 `msgpack:"var"`
}

func (PlaceholderData) tyData() {}

// InferData holds data for TyInfer and TyGeneratorWitness.
type InferData struct {
	Text string `msgpack:"text"`
}

func (InferData) tyData() {}

// FnSig is a resolved function signature.
type FnSig struct {
	Inputs    []Ty   `msgpack:"inputs"`
	Output    Ty     `msgpack:"output"`
	CVariadic bool   `msgpack:"c_variadic"`
	Unsafe    bool   `msgpack:"unsafe"`
	Abi       string `msgpack:"abi"`
}

// TraitRef is a trait applied to generic arguments; Args[0] is Self.
type TraitRef struct {
	Def  DefID        `msgpack:"def"`
	Args []GenericArg `msgpack:"args"`
}

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

// Region is a lifetime.
type Region struct {
	Kind  RegionKind `msgpack:"kind"`
	Index uint32     `msgpack:"index"`
	Name  string     `msgpack:"name,omitempty"`
}

type GenericArgKind uint8

const (
	ArgLifetime GenericArgKind = iota
	ArgType
	ArgConst
)

// GenericArg is one of a lifetime, a type or a const. Only the field named by
// Kind is set.
type GenericArg struct {
	Kind     GenericArgKind `msgpack:"kind"`
	Lifetime Region         `msgpack:"lifetime"`
	Type     *Ty            `msgpack:"type,omitempty"`
	Const    *Const         `msgpack:"const,omitempty"`
}

type ConstKind uint8

const (
	ConstKindParam ConstKind = iota
	ConstKindInfer
	ConstKindBound
	ConstKindPlaceholder
	ConstKindUnevaluated
	ConstKindValue
	ConstKindError
	ConstKindExpr
)

// ParamConst is a const generic parameter.
type ParamConst struct {
	Index uint32 `msgpack:"index"`
	Name  string `msgpack:"name"`
}

// UnevaluatedConst refers to a constant item or anonymous const not yet folded.
type UnevaluatedConst struct {
	Def  DefID        `msgpack:"def"`
	Args []GenericArg `msgpack:"args"`
}

// Scalar is the raw bit pattern of a primitive value; Size is in bytes.
type Scalar struct {
	Data Uint128 `msgpack:"data"`
	Size uint8   `msgpack:"size"`
}

// Const is a type-level constant.
type Const struct {
	Ty          Ty                `msgpack:"ty"`
	Kind        ConstKind         `msgpack:"kind"`
	Param       ParamConst        `msgpack:"param"`
	Value       *Scalar           `msgpack:"value,omitempty"`
	Unevaluated *UnevaluatedConst `msgpack:"unevaluated,omitempty"`
	Text        string            `msgpack:"text,omitempty"`
}

type ConstantKindKind uint8

const (
	ConstantTy ConstantKindKind = iota
	ConstantUnevaluated
	ConstantVal
)

type ConstValueKind uint8

const (
	ValScalarInt ConstValueKind = iota
	ValScalarPtr
	ValZeroSized
	ValSlice
	ValByRef
)

// ConstValue is an evaluated value.
type ConstValue struct {
	Kind   ConstValueKind `msgpack:"kind"`
	Scalar Scalar         `msgpack:"scalar"`
	Bytes  []byte         `msgpack:"bytes,omitempty"`
}

// ConstantKind is a constant as it appears in patterns: a type-level constant,
// an unevaluated reference or an evaluated value, each with its type.
type ConstantKind struct {
	Kind        ConstantKindKind  `msgpack:"kind"`
	Ty          Ty                `msgpack:"ty"`
	Const       *Const            `msgpack:"const,omitempty"`
	Unevaluated *UnevaluatedConst `msgpack:"unevaluated,omitempty"`
	Value       *ConstValue       `msgpack:"value,omitempty"`
}

type AdtKind uint8

const (
	AdtStruct AdtKind = iota
	AdtUnion
	AdtEnum
)

// FieldDef is a field of a variant. Positional fields are named "0", "1", ...
type FieldDef struct {
	Def  DefID  `msgpack:"def"`
	Name string `msgpack:"name"`
}

// VariantDef is one constructor of an algebraic type.
type VariantDef struct {
	Def    DefID      `msgpack:"def"`
	Ctor   *DefID     `msgpack:"ctor,omitempty"`
	Name   string     `msgpack:"name"`
	Fields []FieldDef `msgpack:"fields"`
}

// AdtDef describes an algebraic type.
type AdtDef struct {
	Def      DefID        `msgpack:"def"`
	Kind     AdtKind      `msgpack:"kind"`
	Variants []VariantDef `msgpack:"variants"`
}

// VariantWithDef returns the index of the variant whose Def or Ctor is id.
func (a *AdtDef) VariantWithDef(id DefID) (int, bool) {
	for i, v := range a.Variants {
		if v.Def == id || (v.Ctor != nil && *v.Ctor == id) {
			return i, true
		}
	}
	return 0, false
}
