package portable

import (
	"portast/internal/ident"
	"portast/internal/source"
)

// ItemKind enumerates top-level declaration kinds.
type ItemKind uint8

const (
	ItemExternCrate ItemKind = iota
	ItemUse
	ItemStatic
	ItemConst
	ItemFn
	ItemMacro
	ItemMod
	ItemForeignMod
	ItemGlobalAsm
	ItemTyAlias
	ItemOpaqueTy
	ItemEnum
	ItemStruct
	ItemUnion
	ItemTrait
	ItemTraitAlias
	ItemImpl
	ItemMacroInvocation
)

var itemKindNames = []string{
	"ExternCrate", "Use", "Static", "Const", "Fn", "Macro", "Mod", "ForeignMod",
	"GlobalAsm", "TyAlias", "OpaqueTy", "Enum", "Struct", "Union", "Trait",
	"TraitAlias", "Impl", "MacroInvokation",
}

func (k ItemKind) String() string               { return enumName(itemKindNames, int(k)) }
func (k ItemKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Item is a top-level declaration. DefID is set only when the owner's path
// ends with the item's own name; folded macro invocations never carry one.
type Item struct {
	DefID         *ident.DefID `json:"def_id,omitempty" msgpack:"def_id,omitempty"`
	OwnerID       ident.DefID  `json:"owner_id" msgpack:"owner_id"`
	Span          source.Span  `json:"span" msgpack:"span"`
	VisSpan       source.Span  `json:"vis_span" msgpack:"vis_span"`
	Kind          ItemKind     `json:"kind" msgpack:"kind"`
	Data          ItemData     `json:"contents,omitempty" msgpack:"contents,omitempty"`
	Attributes    []Attribute  `json:"attributes" msgpack:"attributes"`
	ExpnBacktrace []ExpnData   `json:"expn_backtrace" msgpack:"expn_backtrace"`
}

// ItemData is the kind-specific payload of an Item.
type ItemData interface {
	itemData()
}

func (MacroInvocationData) itemData() {}

// ExternCrateData holds data for ItemExternCrate.
type ExternCrateData struct {
	Name     string  `json:"name" msgpack:"name"`
	OrigName *string `json:"orig_name,omitempty" msgpack:"orig_name,omitempty"`
}

func (ExternCrateData) itemData() {}

type UseKind uint8

const (
	UseSingle UseKind = iota
	UseGlob
	UseListStem
)

var useKindNames = []string{"Single", "Glob", "ListStem"}

func (k UseKind) String() string               { return enumName(useKindNames, int(k)) }
func (k UseKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Res is what a path segment resolves to. DefID is nil for primitives,
// locals and errors.
type Res struct {
	Kind  string       `json:"kind" msgpack:"kind"`
	DefID *ident.DefID `json:"def_id,omitempty" msgpack:"def_id,omitempty"`
}

// PathSegment is one segment of a use path.
type PathSegment struct {
	Ident string      `json:"ident" msgpack:"ident"`
	Res   Res         `json:"res" msgpack:"res"`
	Span  source.Span `json:"span" msgpack:"span"`
}

// UsePath is an import path. Rename is set when the item name differs from
// the last segment.
type UsePath struct {
	Span     source.Span   `json:"span" msgpack:"span"`
	Res      []Res         `json:"res" msgpack:"res"`
	Segments []PathSegment `json:"segments" msgpack:"segments"`
	Rename   *string       `json:"rename,omitempty" msgpack:"rename,omitempty"`
}

// UseData holds data for ItemUse.
type UseData struct {
	Path UsePath `json:"path" msgpack:"path"`
	Kind UseKind `json:"kind" msgpack:"kind"`
}

func (UseData) itemData() {}

// StaticData holds data for ItemStatic.
type StaticData struct {
	Name  string     `json:"name" msgpack:"name"`
	Ty    Ty         `json:"ty" msgpack:"ty"`
	Mutbl Mutability `json:"mutability" msgpack:"mutability"`
	Body  *Expr      `json:"body" msgpack:"body"`
}

func (StaticData) itemData() {}

// ConstData holds data for ItemConst.
type ConstData struct {
	Name string `json:"name" msgpack:"name"`
	Ty   Ty     `json:"ty" msgpack:"ty"`
	Body *Expr  `json:"body" msgpack:"body"`
}

func (ConstData) itemData() {}

// FnHeader carries the qualifiers of a function signature.
type FnHeader struct {
	Unsafe bool   `json:"unsafe" msgpack:"unsafe"`
	Const  bool   `json:"const" msgpack:"const"`
	Async  bool   `json:"async" msgpack:"async"`
	Abi    string `json:"abi" msgpack:"abi"`
}

// Param is a lowered function or closure parameter.
type Param struct {
	Pat        *Pat         `json:"pat,omitempty" msgpack:"pat,omitempty"`
	Ty         Ty           `json:"ty" msgpack:"ty"`
	TySpan     *source.Span `json:"ty_span,omitempty" msgpack:"ty_span,omitempty"`
	SelfKind   *string      `json:"self_kind,omitempty" msgpack:"self_kind,omitempty"`
	HirID      *HirID       `json:"hir_id,omitempty" msgpack:"hir_id,omitempty"`
	Attributes []Attribute  `json:"attributes" msgpack:"attributes"`
}

// FnDef is a function with a body: a free function, a provided trait method
// or an impl method.
type FnDef struct {
	Header   FnHeader    `json:"header" msgpack:"header"`
	Params   []Param     `json:"params" msgpack:"params"`
	Ret      Ty          `json:"ret" msgpack:"ret"`
	Body     *Expr       `json:"body" msgpack:"body"`
	SigSpan  source.Span `json:"sig_span" msgpack:"sig_span"`
	Generics Generics    `json:"generics" msgpack:"generics"`
}

// FnData holds data for ItemFn.
type FnData struct {
	Name string `json:"name" msgpack:"name"`
	Def  FnDef  `json:"def" msgpack:"def"`
}

func (FnData) itemData() {}

// FnDecl is a body-less signature.
type FnDecl struct {
	Header    FnHeader `json:"header" msgpack:"header"`
	Inputs    []Ty     `json:"inputs" msgpack:"inputs"`
	Output    Ty       `json:"output" msgpack:"output"`
	CVariadic bool     `json:"c_variadic" msgpack:"c_variadic"`
}

// MacroDefData holds data for ItemMacro.
type MacroDefData struct {
	Name       string    `json:"name" msgpack:"name"`
	Body       string    `json:"body" msgpack:"body"`
	MacroRules bool      `json:"macro_rules" msgpack:"macro_rules"`
	Kind       MacroKind `json:"kind" msgpack:"kind"`
}

func (MacroDefData) itemData() {}

// ModData holds data for ItemMod.
type ModData struct {
	Name  string      `json:"name" msgpack:"name"`
	Inner source.Span `json:"inner" msgpack:"inner"`
	Items []Item      `json:"items" msgpack:"items"`
}

func (ModData) itemData() {}

type ForeignItemKind uint8

const (
	ForeignFn ForeignItemKind = iota
	ForeignStatic
	ForeignType
)

var foreignItemKindNames = []string{"Fn", "Static", "Type"}

func (k ForeignItemKind) String() string               { return enumName(foreignItemKindNames, int(k)) }
func (k ForeignItemKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ForeignItem is a declaration inside an extern block.
type ForeignItem struct {
	OwnerID    ident.DefID     `json:"owner_id" msgpack:"owner_id"`
	Name       string          `json:"name" msgpack:"name"`
	Kind       ForeignItemKind `json:"kind" msgpack:"kind"`
	Decl       *FnDecl         `json:"decl,omitempty" msgpack:"decl,omitempty"`
	ParamNames []string        `json:"param_names,omitempty" msgpack:"param_names,omitempty"`
	Generics   Generics        `json:"generics" msgpack:"generics"`
	Ty         *Ty             `json:"ty,omitempty" msgpack:"ty,omitempty"`
	Mutbl      Mutability      `json:"mutability" msgpack:"mutability"`
	Span       source.Span     `json:"span" msgpack:"span"`
	VisSpan    source.Span     `json:"vis_span" msgpack:"vis_span"`
}

// ForeignModData holds data for ItemForeignMod.
type ForeignModData struct {
	Abi   string        `json:"abi" msgpack:"abi"`
	Items []ForeignItem `json:"items" msgpack:"items"`
}

func (ForeignModData) itemData() {}

// GlobalAsmData holds data for ItemGlobalAsm.
type GlobalAsmData struct {
	Text string `json:"text" msgpack:"text"`
}

func (GlobalAsmData) itemData() {}

// TyAliasData holds data for ItemTyAlias.
type TyAliasData struct {
	Name     string   `json:"name" msgpack:"name"`
	Ty       Ty       `json:"ty" msgpack:"ty"`
	Generics Generics `json:"generics" msgpack:"generics"`
}

func (TyAliasData) itemData() {}

type OpaqueOrigin uint8

const (
	OriginFnReturn OpaqueOrigin = iota
	OriginAsyncFn
	OriginTyAlias
)

var opaqueOriginNames = []string{"FnReturn", "AsyncFn", "TyAlias"}

func (o OpaqueOrigin) String() string               { return enumName(opaqueOriginNames, int(o)) }
func (o OpaqueOrigin) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// OpaqueTyData holds data for ItemOpaqueTy.
type OpaqueTyData struct {
	Generics Generics      `json:"generics" msgpack:"generics"`
	Bounds   GenericBounds `json:"bounds" msgpack:"bounds"`
	Origin   OpaqueOrigin  `json:"origin" msgpack:"origin"`
	InTrait  bool          `json:"in_trait" msgpack:"in_trait"`
}

func (OpaqueTyData) itemData() {}

type VariantDataKind uint8

const (
	VariantStruct VariantDataKind = iota
	VariantTuple
	VariantUnit
)

var variantDataKindNames = []string{"Struct", "Tuple", "Unit"}

func (k VariantDataKind) String() string               { return enumName(variantDataKindNames, int(k)) }
func (k VariantDataKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// FieldDef is a declared field. Tuple fields have no name.
type FieldDef struct {
	HirID      HirID       `json:"hir_id" msgpack:"hir_id"`
	DefID      ident.DefID `json:"def_id" msgpack:"def_id"`
	Name       *string     `json:"name,omitempty" msgpack:"name,omitempty"`
	Ty         Ty          `json:"ty" msgpack:"ty"`
	Span       source.Span `json:"span" msgpack:"span"`
	Attributes []Attribute `json:"attributes" msgpack:"attributes"`
}

// VariantData is the shape of a struct or enum variant.
type VariantData struct {
	Kind   VariantDataKind `json:"kind" msgpack:"kind"`
	Fields []FieldDef      `json:"fields" msgpack:"fields"`
	Ctor   *ident.DefID    `json:"ctor,omitempty" msgpack:"ctor,omitempty"`
}

// Variant is an enum variant.
type Variant struct {
	Name       string       `json:"name" msgpack:"name"`
	DefID      ident.DefID  `json:"def_id" msgpack:"def_id"`
	HirID      HirID        `json:"hir_id" msgpack:"hir_id"`
	Data       VariantData  `json:"data" msgpack:"data"`
	Disr       *ident.DefID `json:"disr_expr,omitempty" msgpack:"disr_expr,omitempty"`
	Span       source.Span  `json:"span" msgpack:"span"`
	Attributes []Attribute  `json:"attributes" msgpack:"attributes"`
}

// EnumData holds data for ItemEnum.
type EnumData struct {
	Name     string    `json:"name" msgpack:"name"`
	Variants []Variant `json:"variants" msgpack:"variants"`
	Generics Generics  `json:"generics" msgpack:"generics"`
}

func (EnumData) itemData() {}

// StructData holds data for ItemStruct and ItemUnion.
type StructData struct {
	Name     string      `json:"name" msgpack:"name"`
	Data     VariantData `json:"data" msgpack:"data"`
	Generics Generics    `json:"generics" msgpack:"generics"`
}

func (StructData) itemData() {}

type TraitItemKind uint8

const (
	TraitItemConst TraitItemKind = iota
	TraitItemRequiredFn
	TraitItemProvidedFn
	TraitItemType
)

var traitItemKindNames = []string{"Const", "RequiredFn", "ProvidedFn", "Type"}

func (k TraitItemKind) String() string               { return enumName(traitItemKindNames, int(k)) }
func (k TraitItemKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// TraitItem is an associated item declared by a trait. Const defaults and
// provided methods carry a lowered body.
type TraitItem struct {
	OwnerID    ident.DefID    `json:"owner_id" msgpack:"owner_id"`
	Name       string         `json:"name" msgpack:"name"`
	Kind       TraitItemKind  `json:"kind" msgpack:"kind"`
	Generics   Generics       `json:"generics" msgpack:"generics"`
	Ty         *Ty            `json:"ty,omitempty" msgpack:"ty,omitempty"`
	Default    *Expr          `json:"default,omitempty" msgpack:"default,omitempty"`
	Decl       *FnDecl        `json:"decl,omitempty" msgpack:"decl,omitempty"`
	ParamNames []string       `json:"param_names,omitempty" msgpack:"param_names,omitempty"`
	Fn         *FnDef         `json:"fn,omitempty" msgpack:"fn,omitempty"`
	Bounds     *GenericBounds `json:"bounds,omitempty" msgpack:"bounds,omitempty"`
	Span       source.Span    `json:"span" msgpack:"span"`
	Attributes []Attribute    `json:"attributes" msgpack:"attributes"`
}

// TraitData holds data for ItemTrait.
type TraitData struct {
	Name     string        `json:"name" msgpack:"name"`
	IsAuto   bool          `json:"is_auto" msgpack:"is_auto"`
	Unsafe   bool          `json:"unsafe" msgpack:"unsafe"`
	Generics Generics      `json:"generics" msgpack:"generics"`
	Bounds   GenericBounds `json:"bounds" msgpack:"bounds"`
	Items    []TraitItem   `json:"items" msgpack:"items"`
}

func (TraitData) itemData() {}

// TraitAliasData holds data for ItemTraitAlias.
type TraitAliasData struct {
	Name     string        `json:"name" msgpack:"name"`
	Generics Generics      `json:"generics" msgpack:"generics"`
	Bounds   GenericBounds `json:"bounds" msgpack:"bounds"`
}

func (TraitAliasData) itemData() {}

type ImplItemKind uint8

const (
	ImplItemConst ImplItemKind = iota
	ImplItemFn
	ImplItemType
)

var implItemKindNames = []string{"Const", "Fn", "Type"}

func (k ImplItemKind) String() string               { return enumName(implItemKindNames, int(k)) }
func (k ImplItemKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ImplItem is an associated item of an impl block.
type ImplItem struct {
	OwnerID    ident.DefID  `json:"owner_id" msgpack:"owner_id"`
	Name       string       `json:"name" msgpack:"name"`
	Kind       ImplItemKind `json:"kind" msgpack:"kind"`
	Generics   Generics     `json:"generics" msgpack:"generics"`
	Ty         *Ty          `json:"ty,omitempty" msgpack:"ty,omitempty"`
	Body       *Expr        `json:"body,omitempty" msgpack:"body,omitempty"`
	Fn         *FnDef       `json:"fn,omitempty" msgpack:"fn,omitempty"`
	Span       source.Span  `json:"span" msgpack:"span"`
	VisSpan    source.Span  `json:"vis_span" msgpack:"vis_span"`
	Attributes []Attribute  `json:"attributes" msgpack:"attributes"`
}

// ImplData holds data for ItemImpl. OfTrait is nil for inherent impls.
type ImplData struct {
	Unsafe   bool       `json:"unsafe" msgpack:"unsafe"`
	Negative bool       `json:"negative" msgpack:"negative"`
	Default  bool       `json:"default" msgpack:"default"`
	Const    bool       `json:"const" msgpack:"const"`
	Generics Generics   `json:"generics" msgpack:"generics"`
	OfTrait  *TraitRef  `json:"of_trait,omitempty" msgpack:"of_trait,omitempty"`
	SelfTy   Ty         `json:"self_ty" msgpack:"self_ty"`
	Items    []ImplItem `json:"items" msgpack:"items"`
}

func (ImplData) itemData() {}
