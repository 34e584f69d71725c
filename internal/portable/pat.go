package portable

import (
	"portast/internal/ident"
	"portast/internal/source"
)

// PatKind enumerates portable pattern kinds. Leaf patterns on tuple types
// become Tuple; on algebraic types they become Variant.
type PatKind uint8

const (
	PatWild PatKind = iota
	PatAscribeUserType
	PatBinding
	PatVariant
	PatTuple
	PatDeref
	PatConstant
	PatRange
	PatSlice
	PatArray
	PatOr
	PatTodo
)

var patKindNames = []string{
	"Wild", "AscribeUserType", "Binding", "Variant", "Tuple", "Deref",
	"Constant", "Range", "Slice", "Array", "Or", "Todo",
}

func (k PatKind) String() string               { return enumName(patKindNames, int(k)) }
func (k PatKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Pat is a decorated pattern.
type Pat struct {
	Ty         Ty          `json:"ty" msgpack:"ty"`
	Span       source.Span `json:"span" msgpack:"span"`
	Kind       PatKind     `json:"kind" msgpack:"kind"`
	Data       PatData     `json:"contents,omitempty" msgpack:"contents,omitempty"`
	HirID      *HirID      `json:"hir_id,omitempty" msgpack:"hir_id,omitempty"`
	Attributes []Attribute `json:"attributes" msgpack:"attributes"`
}

// PatData is the kind-specific payload of a Pat.
type PatData interface {
	patData()
}

// AscribeData holds data for PatAscribeUserType.
type AscribeData struct {
	UserTy     UserType `json:"ascription" msgpack:"ascription"`
	Subpattern Pat      `json:"subpattern" msgpack:"subpattern"`
}

func (AscribeData) patData() {}

type BindingMode uint8

const (
	ByValue BindingMode = iota
	ByRef
)

var bindingModeNames = []string{"ByValue", "ByRef"}

func (m BindingMode) String() string               { return enumName(bindingModeNames, int(m)) }
func (m BindingMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// BindingData holds data for PatBinding.
type BindingData struct {
	Mutbl      Mutability  `json:"mutability" msgpack:"mutability"`
	Mode       BindingMode `json:"mode" msgpack:"mode"`
	RefMutbl   Mutability  `json:"ref_mutability,omitempty" msgpack:"ref_mutability,omitempty"`
	Var        LocalIdent  `json:"var" msgpack:"var"`
	Ty         Ty          `json:"ty" msgpack:"ty"`
	Subpattern *Pat        `json:"subpattern,omitempty" msgpack:"subpattern,omitempty"`
	IsPrimary  bool        `json:"is_primary" msgpack:"is_primary"`
}

func (BindingData) patData() {}

// FieldPat is a subpattern matched against a named field.
type FieldPat struct {
	Field   ident.DefID `json:"field" msgpack:"field"`
	Pattern Pat         `json:"pattern" msgpack:"pattern"`
}

// VariantPatData holds data for PatVariant.
type VariantPatData struct {
	Info        VariantInformation `json:"info" msgpack:"info"`
	GenericArgs []GenericArg       `json:"substs" msgpack:"substs"`
	Subpatterns []FieldPat         `json:"subpatterns" msgpack:"subpatterns"`
}

func (VariantPatData) patData() {}

// TuplePatData holds data for PatTuple.
type TuplePatData struct {
	Subpatterns []Pat `json:"subpatterns" msgpack:"subpatterns"`
}

func (TuplePatData) patData() {}

// DerefPatData holds data for PatDeref.
type DerefPatData struct {
	Subpattern Pat `json:"subpattern" msgpack:"subpattern"`
}

func (DerefPatData) patData() {}

// ConstantPatData holds data for PatConstant.
type ConstantPatData struct {
	Value *Expr `json:"value" msgpack:"value"`
}

func (ConstantPatData) patData() {}

// RangePatData holds data for PatRange.
type RangePatData struct {
	Lo       *Expr `json:"lo" msgpack:"lo"`
	Hi       *Expr `json:"hi" msgpack:"hi"`
	Included bool  `json:"end_included" msgpack:"end_included"`
}

func (RangePatData) patData() {}

// SlicePatData holds data for PatSlice and PatArray.
type SlicePatData struct {
	Prefix []Pat `json:"prefix" msgpack:"prefix"`
	Slice  *Pat  `json:"slice,omitempty" msgpack:"slice,omitempty"`
	Suffix []Pat `json:"suffix" msgpack:"suffix"`
}

func (SlicePatData) patData() {}

// OrPatData holds data for PatOr.
type OrPatData struct {
	Pats []Pat `json:"pats" msgpack:"pats"`
}

func (OrPatData) patData() {}
