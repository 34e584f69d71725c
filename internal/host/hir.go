package host

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
)

// Item is a declaration-tree item.
type Item struct {
	Owner   DefID
	Name    string
	Span    Span
	VisSpan Span
	Kind    ItemKind
	Data    ItemData
}

// ItemData is the kind-specific payload of an Item.
type ItemData interface {
	itemData()
}

// ExternCrateData holds data for ItemExternCrate.
type ExternCrateData struct {
	OrigName *string `msgpack:"orig_name,omitempty"`
}

func (ExternCrateData) itemData() {}

type UseKind uint8

const (
	UseSingle UseKind = iota
	UseGlob
	UseListStem
)

// Res is what a path segment resolved to.
type Res struct {
	Kind string `msgpack:"kind"`
	Def  *DefID `msgpack:"def,omitempty"`
}

// PathSegment is one segment of a written path.
type PathSegment struct {
	Name string `msgpack:"name"`
	Res  Res    `msgpack:"res"`
	Span Span   `msgpack:"span"`
}

// UsePath is the path of a use item and what it resolved to.
type UsePath struct {
	Span     Span          `msgpack:"span"`
	Res      []Res         `msgpack:"res"`
	Segments []PathSegment `msgpack:"segments"`
}

// UseData holds data for ItemUse.
type UseData struct {
	Path UsePath `msgpack:"path"`
	Kind UseKind `msgpack:"kind"`
}

func (UseData) itemData() {}

// StaticData holds data for ItemStatic. Body names the owner of the initializer.
type StaticData struct {
	Ty    Ty         `msgpack:"ty"`
	Mutbl Mutability `msgpack:"mutbl"`
	Body  DefID      `msgpack:"body"`
}

func (StaticData) itemData() {}

// ConstData holds data for ItemConst.
type ConstData struct {
	Ty   Ty    `msgpack:"ty"`
	Body DefID `msgpack:"body"`
}

func (ConstData) itemData() {}

// FnHeader is the qualifier set of a function.
type FnHeader struct {
	Unsafe bool   `msgpack:"unsafe"`
	Const  bool   `msgpack:"const"`
	Async  bool   `msgpack:"async"`
	Abi    string `msgpack:"abi"`
}

// FnDecl is the declared signature. A nil Output is the default return type.
type FnDecl struct {
	Inputs       []Ty              `msgpack:"inputs"`
	Output       *Ty               `msgpack:"output,omitempty"`
	OutputSpan   Span              `msgpack:"output_span"`
	CVariadic    bool              `msgpack:"c_variadic"`
	ImplicitSelf *ImplicitSelfKind `msgpack:"implicit_self,omitempty"`
}

// FnSigDecl is a declared signature with its header.
type FnSigDecl struct {
	Header FnHeader `msgpack:"header"`
	Decl   FnDecl   `msgpack:"decl"`
	Span   Span     `msgpack:"span"`
}

// FnData holds data for ItemFn.
type FnData struct {
	Sig      FnSigDecl `msgpack:"sig"`
	Generics Generics  `msgpack:"generics"`
	Body     DefID     `msgpack:"body"`
}

func (FnData) itemData() {}

type MacroKind uint8

const (
	MacroBang MacroKind = iota
	MacroAttr
	MacroDerive
)

// MacroData holds data for ItemMacro.
type MacroData struct {
	Body       string    `msgpack:"body"`
	MacroRules bool      `msgpack:"macro_rules"`
	Kind       MacroKind `msgpack:"kind"`
}

func (MacroData) itemData() {}

// ModData holds data for ItemMod.
type ModData struct {
	Inner Span    `msgpack:"inner"`
	Items []DefID `msgpack:"items"`
}

func (ModData) itemData() {}

type ForeignItemKind uint8

const (
	ForeignFn ForeignItemKind = iota
	ForeignStatic
	ForeignType
)

// ForeignItem is a declaration inside an extern block.
type ForeignItem struct {
	Owner      DefID           `msgpack:"owner"`
	Name       string          `msgpack:"name"`
	Kind       ForeignItemKind `msgpack:"kind"`
	Decl       FnDecl          `msgpack:"decl"`
	ParamNames []string        `msgpack:"param_names"`
	Generics   Generics        `msgpack:"generics"`
	Ty         *Ty             `msgpack:"ty,omitempty"`
	Mutbl      Mutability      `msgpack:"mutbl"`
	Span       Span            `msgpack:"span"`
	VisSpan    Span            `msgpack:"vis_span"`
}

// ForeignModData holds data for ItemForeignMod.
type ForeignModData struct {
	Abi   string        `msgpack:"abi"`
	Items []ForeignItem `msgpack:"items"`
}

func (ForeignModData) itemData() {}

// GlobalAsmData holds data for ItemGlobalAsm.
type GlobalAsmData struct {
	Text string `msgpack:"text"`
}

func (GlobalAsmData) itemData() {}

// TyAliasData holds data for ItemTyAlias.
type TyAliasData struct {
	Ty       Ty       `msgpack:"ty"`
	Generics Generics `msgpack:"generics"`
}

func (TyAliasData) itemData() {}

type OpaqueOrigin uint8

const (
	OriginFnReturn OpaqueOrigin = iota
	OriginAsyncFn
	OriginTyAlias
)

// OpaqueTyData holds data for ItemOpaqueTy.
type OpaqueTyData struct {
	Generics Generics       `msgpack:"generics"`
	Bounds   []GenericBound `msgpack:"bounds"`
	Origin   OpaqueOrigin   `msgpack:"origin"`
	InTrait  bool           `msgpack:"in_trait"`
}

func (OpaqueTyData) itemData() {}

type VariantDataKind uint8

const (
	VariantStruct VariantDataKind = iota
	VariantTuple
	VariantUnit
)

// HirFieldDef is a declared field.
type HirFieldDef struct {
	Span  Span        `msgpack:"span"`
	Name  string      `msgpack:"name"`
	Def   DefID       `msgpack:"def"`
	Ty    Ty          `msgpack:"ty"`
	HirID HirID       `msgpack:"hir_id"`
	Attrs []Attribute `msgpack:"attrs"`
}

// VariantData is the field layout of a struct, union or variant.
type VariantData struct {
	Kind   VariantDataKind `msgpack:"kind"`
	Fields []HirFieldDef   `msgpack:"fields"`
	Ctor   *DefID          `msgpack:"ctor,omitempty"`
}

// HirVariant is a declared enum variant.
type HirVariant struct {
	Name  string      `msgpack:"name"`
	Def   DefID       `msgpack:"def"`
	HirID HirID       `msgpack:"hir_id"`
	Data  VariantData `msgpack:"data"`
	Disr  *DefID      `msgpack:"disr,omitempty"`
	Span  Span        `msgpack:"span"`
	Attrs []Attribute `msgpack:"attrs"`
}

// EnumData holds data for ItemEnum.
type EnumData struct {
	Variants []HirVariant `msgpack:"variants"`
	Generics Generics     `msgpack:"generics"`
}

func (EnumData) itemData() {}

// StructData holds data for ItemStruct and ItemUnion.
type StructData struct {
	Data     VariantData `msgpack:"data"`
	Generics Generics    `msgpack:"generics"`
}

func (StructData) itemData() {}

type TraitItemKind uint8

const (
	TraitItemConst TraitItemKind = iota
	TraitItemRequiredFn
	TraitItemProvidedFn
	TraitItemType
)

// TraitItem is a member of a trait. Body is set for provided fns and consts
// with a default.
type TraitItem struct {
	Owner      DefID          `msgpack:"owner"`
	Name       string         `msgpack:"name"`
	Kind       TraitItemKind  `msgpack:"kind"`
	Generics   Generics       `msgpack:"generics"`
	Ty         *Ty            `msgpack:"ty,omitempty"`
	Sig        FnSigDecl      `msgpack:"sig"`
	ParamNames []string       `msgpack:"param_names"`
	Body       *DefID         `msgpack:"body,omitempty"`
	Bounds     []GenericBound `msgpack:"bounds"`
	Span       Span           `msgpack:"span"`
	HirID      HirID          `msgpack:"hir_id"`
}

// TraitData holds data for ItemTrait.
type TraitData struct {
	IsAuto   bool           `msgpack:"is_auto"`
	Unsafe   bool           `msgpack:"unsafe"`
	Generics Generics       `msgpack:"generics"`
	Bounds   []GenericBound `msgpack:"bounds"`
	Items    []TraitItem    `msgpack:"items"`
}

func (TraitData) itemData() {}

// TraitAliasData holds data for ItemTraitAlias.
type TraitAliasData struct {
	Generics Generics       `msgpack:"generics"`
	Bounds   []GenericBound `msgpack:"bounds"`
}

func (TraitAliasData) itemData() {}

type ImplItemKind uint8

const (
	ImplItemConst ImplItemKind = iota
	ImplItemFn
	ImplItemType
)

// ImplItem is a member of an impl block.
type ImplItem struct {
	Owner    DefID        `msgpack:"owner"`
	Name     string       `msgpack:"name"`
	Kind     ImplItemKind `msgpack:"kind"`
	Generics Generics     `msgpack:"generics"`
	Ty       *Ty          `msgpack:"ty,omitempty"`
	Sig      FnSigDecl    `msgpack:"sig"`
	Body     *DefID       `msgpack:"body,omitempty"`
	Span     Span         `msgpack:"span"`
	VisSpan  Span         `msgpack:"vis_span"`
	HirID    HirID        `msgpack:"hir_id"`
}

// ImplData holds data for ItemImpl. Whether it implements a trait comes from
// Program.ImplTraitRef.
type ImplData struct {
	Unsafe   bool       `msgpack:"unsafe"`
	Negative bool       `msgpack:"negative"`
	Default  bool       `msgpack:"default"`
	Const    bool       `msgpack:"const"`
	Generics Generics   `msgpack:"generics"`
	SelfTy   Ty         `msgpack:"self_ty"`
	Items    []ImplItem `msgpack:"items"`
}

func (ImplData) itemData() {}

type GenericParamKind uint8

const (
	ParamLifetime GenericParamKind = iota
	ParamType
	ParamConstKind
)

// GenericParam is a declared generic parameter.
type GenericParam struct {
	HirID     HirID            `msgpack:"hir_id"`
	Def       DefID            `msgpack:"def"`
	Name      string           `msgpack:"name"`
	Span      Span             `msgpack:"span"`
	Kind      GenericParamKind `msgpack:"kind"`
	Default   *Ty              `msgpack:"default,omitempty"`
	Synthetic bool             `msgpack:"synthetic"`
	ConstTy   *Ty              `msgpack:"const_ty,omitempty"`
	ConstDef  *DefID           `msgpack:"const_default,omitempty"`
}

type GenericBoundKind uint8

const (
	BoundTrait GenericBoundKind = iota
	BoundOutlives
)

// GenericBound is a trait bound or an outlives bound as written.
type GenericBound struct {
	Kind     GenericBoundKind `msgpack:"kind"`
	Trait    TraitRef         `msgpack:"trait"`
	Maybe    bool             `msgpack:"maybe"`
	Lifetime Region           `msgpack:"lifetime"`
	Span     Span             `msgpack:"span"`
}

type WherePredicateKind uint8

const (
	WhereBound WherePredicateKind = iota
	WhereRegion
	WhereEq
)

// WherePredicate is a written where-clause entry.
type WherePredicate struct {
	Kind         WherePredicateKind `msgpack:"kind"`
	Span         Span               `msgpack:"span"`
	BoundedTy    *Ty                `msgpack:"bounded_ty,omitempty"`
	BoundParams  []GenericParam     `msgpack:"bound_params"`
	Bounds       []GenericBound     `msgpack:"bounds"`
	Lifetime     Region             `msgpack:"lifetime"`
	Lhs          *Ty                `msgpack:"lhs,omitempty"`
	Rhs          *Ty                `msgpack:"rhs,omitempty"`
	FromGenerics bool               `msgpack:"from_generics"`
}

// Generics is a declared generic parameter list plus its where clause.
type Generics struct {
	Params          []GenericParam   `msgpack:"params"`
	Predicates      []WherePredicate `msgpack:"predicates"`
	HasWhereClause  bool             `msgpack:"has_where_clause"`
	WhereClauseSpan Span             `msgpack:"where_clause_span"`
	Span            Span             `msgpack:"span"`
}

type PredicateKind uint8

const (
	PredTrait PredicateKind = iota
	PredRegionOutlives
	PredTypeOutlives
	PredProjection
	PredWellFormed
	PredObjectSafe
	PredClosureKind
	PredSubtype
	PredCoerce
	PredConstEvaluatable
	PredConstEquate
	PredTypeWellFormedFromEnv
	PredAmbiguous
)

// Predicate is a resolved clause. BoundVars is non-zero when the predicate
// binds late-bound variables.
type Predicate struct {
	Kind       PredicateKind `msgpack:"kind"`
	BoundVars  uint32        `msgpack:"bound_vars"`
	Trait      TraitRef      `msgpack:"trait"`
	Negative   bool          `msgpack:"negative"`
	Ty         *Ty           `msgpack:"ty,omitempty"`
	Region     Region        `msgpack:"region"`
	Region2    Region        `msgpack:"region2"`
	Projection *AliasData    `msgpack:"projection,omitempty"`
	Term       *Ty           `msgpack:"term,omitempty"`
	Text       string        `msgpack:"text,omitempty"`
}

type AttrKind uint8

const (
	AttrNormal AttrKind = iota
	AttrDocComment
)

type AttrStyle uint8

const (
	AttrOuter AttrStyle = iota
	AttrInner
)

// Attribute is an attribute as the host keeps it.
type Attribute struct {
	Kind    AttrKind  `msgpack:"kind"`
	Path    string    `msgpack:"path,omitempty"`
	Args    string    `msgpack:"args,omitempty"`
	Tokens  string    `msgpack:"tokens,omitempty"`
	DocLine bool      `msgpack:"doc_line,omitempty"`
	Doc     string    `msgpack:"doc,omitempty"`
	ID      uint32    `msgpack:"id"`
	Style   AttrStyle `msgpack:"style"`
	Span    Span      `msgpack:"span"`
}

type ExpnKind uint8

const (
	ExpnRoot ExpnKind = iota
	ExpnMacro
	ExpnAstPass
	ExpnDesugaring
	ExpnInlined
)

// ExpnData describes one macro expansion step.
type ExpnData struct {
	Kind                ExpnKind  `msgpack:"kind"`
	MacroKind           MacroKind `msgpack:"macro_kind"`
	Name                string    `msgpack:"name"`
	MacroDef            *DefID    `msgpack:"macro_def,omitempty"`
	CallSite            Span      `msgpack:"call_site"`
	DefSite             Span      `msgpack:"def_site"`
	Parent              ExpnID    `msgpack:"parent"`
	Edition             string    `msgpack:"edition"`
	ParentModule        *DefID    `msgpack:"parent_module,omitempty"`
	AllowInternalUnsafe bool      `msgpack:"allow_internal_unsafe"`
	LocalInnerMacros    bool      `msgpack:"local_inner_macros"`
	CollapseDebuginfo   bool      `msgpack:"collapse_debuginfo"`
}
