package host

// Body is a typed body. Expressions, statements, blocks and arms live in
// arenas and refer to each other by index.
type Body struct {
	Owner  DefID   `msgpack:"owner"`
	Params []Param `msgpack:"params"`
	Exprs  []Expr  `msgpack:"exprs"`
	Stmts  []Stmt  `msgpack:"stmts"`
	Blocks []Block `msgpack:"blocks"`
	Arms   []Arm   `msgpack:"arms"`
	Value  ExprID  `msgpack:"value"`
}

// Expr returns the expression at id.
func (b *Body) Expr(id ExprID) *Expr { return &b.Exprs[id] }

// Stmt returns the statement at id.
func (b *Body) Stmt(id StmtID) *Stmt { return &b.Stmts[id] }

// Block returns the block at id.
func (b *Body) Block(id BlockID) *Block { return &b.Blocks[id] }

// Arm returns the arm at id.
func (b *Body) Arm(id ArmID) *Arm { return &b.Arms[id] }

type ImplicitSelfKind uint8

const (
	SelfImm ImplicitSelfKind = iota
	SelfMut
	SelfImmRef
	SelfMutRef
	SelfNone
)

// Param is a body parameter.
type Param struct {
	Pat      *Pat              `msgpack:"pat,omitempty"`
	Ty       Ty                `msgpack:"ty"`
	TySpan   *Span             `msgpack:"ty_span,omitempty"`
	SelfKind *ImplicitSelfKind `msgpack:"self_kind,omitempty"`
	HirID    *HirID            `msgpack:"hir_id,omitempty"`
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

// RegionScope is a lexical region of the owner.
type RegionScope struct {
	ID             uint32    `msgpack:"id"`
	Data           ScopeData `msgpack:"data"`
	FirstStatement uint32    `msgpack:"first_statement,omitempty"`
}

// LintLevel is Inherited when Explicit is nil.
type LintLevel struct {
	Explicit *HirID `msgpack:"explicit,omitempty"`
}

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtLet
)

// Stmt is an expression statement or a let. Let-only fields are zero for
// expression statements.
type Stmt struct {
	Kind           StmtKind    `msgpack:"kind"`
	Scope          RegionScope `msgpack:"scope"`
	Expr           ExprID      `msgpack:"expr"`
	RemainderScope RegionScope `msgpack:"remainder_scope"`
	InitScope      RegionScope `msgpack:"init_scope"`
	Pattern        *Pat        `msgpack:"pattern,omitempty"`
	Initializer    *ExprID     `msgpack:"initializer,omitempty"`
	Else           *BlockID    `msgpack:"else,omitempty"`
	LintLevel      LintLevel   `msgpack:"lint_level"`
	Span           Span        `msgpack:"span"`
}

type BlockSafety uint8

const (
	Safe BlockSafety = iota
	BuiltinUnsafe
	ExplicitUnsafe
)

// Block is a sequence of statements with an optional trailing expression.
type Block struct {
	TargetedByBreak  bool         `msgpack:"targeted_by_break"`
	Region           RegionScope  `msgpack:"region"`
	DestructionScope *RegionScope `msgpack:"destruction_scope,omitempty"`
	Span             Span         `msgpack:"span"`
	Stmts            []StmtID     `msgpack:"stmts"`
	Expr             *ExprID      `msgpack:"expr,omitempty"`
	SafetyMode       BlockSafety  `msgpack:"safety_mode"`
	UnsafeBlockHirID *HirID       `msgpack:"unsafe_hir_id,omitempty"`
}

type GuardKind uint8

const (
	GuardIf GuardKind = iota
	GuardIfLet
)

// Guard is an arm guard.
type Guard struct {
	Kind GuardKind `msgpack:"kind"`
	Expr ExprID    `msgpack:"expr"`
	Pat  *Pat      `msgpack:"pat,omitempty"`
}

// Arm is a match arm.
type Arm struct {
	Pattern   Pat         `msgpack:"pattern"`
	Guard     *Guard      `msgpack:"guard,omitempty"`
	Body      ExprID      `msgpack:"body"`
	LintLevel LintLevel   `msgpack:"lint_level"`
	Scope     RegionScope `msgpack:"scope"`
	Span      Span        `msgpack:"span"`
}

// UserType is an annotation the user wrote, kept as rendered text.
type UserType struct {
	Text string `msgpack:"text"`
}

type ExprKind uint8

const (
	ExprScope ExprKind = iota
	ExprBox
	ExprIf
	ExprCall
	ExprDeref
	ExprBinary
	ExprLogicalOp
	ExprUnary
	ExprCast
	ExprUse
	ExprNeverToAny
	ExprPointer
	ExprLoop
	ExprLet
	ExprMatch
	ExprBlock
	ExprAssign
	ExprAssignOp
	ExprField
	ExprIndex
	ExprVarRef
	ExprUpvarRef
	ExprBorrow
	ExprAddressOf
	ExprBreak
	ExprContinue
	ExprReturn
	ExprConstBlock
	ExprRepeat
	ExprArray
	ExprTuple
	ExprAdt
	ExprPlaceTypeAscription
	ExprValueTypeAscription
	ExprClosure
	ExprLiteral
	ExprNonHirLiteral
	ExprZstLiteral
	ExprNamedConst
	ExprConstParam
	ExprStaticRef
	ExprInlineAsm
	ExprOffsetOf
	ExprThreadLocalRef
	ExprYield
)

// Expr is a typed body expression.
type Expr struct {
	Kind ExprKind
	Ty   Ty
	Span Span
	Data ExprData
}

// ExprData is the kind-specific payload of an Expr.
type ExprData interface {
	exprData()
}

// ScopeExprData holds data for ExprScope.
type ScopeExprData struct {
	Region    RegionScope `msgpack:"region"`
	LintLevel LintLevel   `msgpack:"lint_level"`
	Value     ExprID      `msgpack:"value"`
}

func (ScopeExprData) exprData() {}

// ValueData holds data for kinds that wrap one operand: Box, Deref, Cast,
// Use, NeverToAny, Loop, Yield, Unary (with Op), Pointer (with Cast).
type ValueData struct {
	Value ExprID      `msgpack:"value"`
	Op    UnOp        `msgpack:"op,omitempty"`
	Cast  PointerCast `msgpack:"cast,omitempty"`
}

func (ValueData) exprData() {}

// IfData holds data for ExprIf.
type IfData struct {
	IfThenScope RegionScope `msgpack:"if_then_scope"`
	Cond        ExprID      `msgpack:"cond"`
	Then        ExprID      `msgpack:"then"`
	Else        *ExprID     `msgpack:"else,omitempty"`
}

func (IfData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	FunTy       Ty       `msgpack:"fun_ty"`
	Fun         ExprID   `msgpack:"fun"`
	Args        []ExprID `msgpack:"args"`
	FromHirCall bool     `msgpack:"from_hir_call"`
	FnSpan      Span     `msgpack:"fn_span"`
}

func (CallData) exprData() {}

type BinOp uint8

const (
	BinAdd BinOp = iota
	BinAddUnchecked
	BinSub
	BinSubUnchecked
	BinMul
	BinMulUnchecked
	BinDiv
	BinRem
	BinBitXor
	BinBitAnd
	BinBitOr
	BinShl
	BinShlUnchecked
	BinShr
	BinShrUnchecked
	BinEq
	BinLt
	BinLe
	BinNe
	BinGe
	BinGt
	BinOffset
)

type LogicalOp uint8

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

type UnOp uint8

const (
	UnNot UnOp = iota
	UnNeg
)

type PointerCast uint8

const (
	CastReifyFnPointer PointerCast = iota
	CastUnsafeFnPointer
	CastClosureFnPointer
	CastMutToConstPointer
	CastArrayToPointer
	CastUnsize
)

// BinaryData holds data for ExprBinary, ExprLogicalOp, ExprAssign,
// ExprAssignOp and ExprIndex (Lhs indexed by Rhs).
type BinaryData struct {
	Op      BinOp     `msgpack:"op"`
	Logical LogicalOp `msgpack:"logical"`
	Lhs     ExprID    `msgpack:"lhs"`
	Rhs     ExprID    `msgpack:"rhs"`
}

func (BinaryData) exprData() {}

// LetData holds data for ExprLet.
type LetData struct {
	Expr ExprID `msgpack:"expr"`
	Pat  Pat    `msgpack:"pat"`
}

func (LetData) exprData() {}

// MatchData holds data for ExprMatch.
type MatchData struct {
	Scrutinee ExprID  `msgpack:"scrutinee"`
	Arms      []ArmID `msgpack:"arms"`
}

func (MatchData) exprData() {}

// BlockData holds data for ExprBlock.
type BlockData struct {
	Block BlockID `msgpack:"block"`
}

func (BlockData) exprData() {}

// FieldData holds data for ExprField. Name is the field index inside the variant.
type FieldData struct {
	Lhs          ExprID `msgpack:"lhs"`
	VariantIndex uint32 `msgpack:"variant_index"`
	Name         uint32 `msgpack:"name"`
}

func (FieldData) exprData() {}

// VarRefData holds data for ExprVarRef.
type VarRefData struct {
	ID LocalVarID `msgpack:"id"`
}

func (VarRefData) exprData() {}

// UpvarRefData holds data for ExprUpvarRef.
type UpvarRefData struct {
	ClosureDef DefID      `msgpack:"closure_def"`
	VarHirID   LocalVarID `msgpack:"var_hir_id"`
}

func (UpvarRefData) exprData() {}

type BorrowKind uint8

const (
	BorrowShared BorrowKind = iota
	BorrowShallow
	BorrowUnique
	BorrowMut
	BorrowMutTwoPhase
)

// BorrowData holds data for ExprBorrow and ExprAddressOf.
type BorrowData struct {
	Kind  BorrowKind `msgpack:"kind"`
	Mutbl Mutability `msgpack:"mutbl"`
	Arg   ExprID     `msgpack:"arg"`
}

func (BorrowData) exprData() {}

// JumpData holds data for ExprBreak, ExprContinue and ExprReturn.
type JumpData struct {
	Label RegionScope `msgpack:"label"`
	Value *ExprID     `msgpack:"value,omitempty"`
}

func (JumpData) exprData() {}

// ConstBlockData holds data for ExprConstBlock.
type ConstBlockData struct {
	Def  DefID        `msgpack:"def"`
	Args []GenericArg `msgpack:"args"`
}

func (ConstBlockData) exprData() {}

// RepeatData holds data for ExprRepeat.
type RepeatData struct {
	Value ExprID `msgpack:"value"`
	Count Const  `msgpack:"count"`
}

func (RepeatData) exprData() {}

// FieldsData holds data for ExprArray and ExprTuple.
type FieldsData struct {
	Fields []ExprID `msgpack:"fields"`
}

func (FieldsData) exprData() {}

// FieldExpr is one field initializer of an ADT expression.
type FieldExpr struct {
	Name uint32 `msgpack:"name"`
	Expr ExprID `msgpack:"expr"`
}

// FruInfo is the functional-record-update base.
type FruInfo struct {
	Base       ExprID `msgpack:"base"`
	FieldTypes []Ty   `msgpack:"field_types"`
}

// AdtExprData holds data for ExprAdt.
type AdtExprData struct {
	Adt          DefID        `msgpack:"adt"`
	VariantIndex uint32       `msgpack:"variant_index"`
	Args         []GenericArg `msgpack:"args"`
	UserTy       *UserType    `msgpack:"user_ty,omitempty"`
	Fields       []FieldExpr  `msgpack:"fields"`
	Base         *FruInfo     `msgpack:"base,omitempty"`
}

func (AdtExprData) exprData() {}

// AscriptionData holds data for the type-ascription kinds.
type AscriptionData struct {
	Source ExprID    `msgpack:"source"`
	UserTy *UserType `msgpack:"user_ty,omitempty"`
}

func (AscriptionData) exprData() {}

// ClosureExprData holds data for ExprClosure.
type ClosureExprData struct {
	Closure    DefID        `msgpack:"closure"`
	Args       []GenericArg `msgpack:"args"`
	Upvars     []ExprID     `msgpack:"upvars"`
	Movability *bool        `msgpack:"movable,omitempty"`
}

func (ClosureExprData) exprData() {}

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Lit Lit  `msgpack:"lit"`
	Neg bool `msgpack:"neg"`
}

func (LiteralData) exprData() {}

// NonHirLiteralData holds data for ExprNonHirLiteral.
type NonHirLiteralData struct {
	Lit    Scalar    `msgpack:"lit"`
	UserTy *UserType `msgpack:"user_ty,omitempty"`
}

func (NonHirLiteralData) exprData() {}

// ZstLiteralData holds data for ExprZstLiteral.
type ZstLiteralData struct {
	UserTy *UserType `msgpack:"user_ty,omitempty"`
}

func (ZstLiteralData) exprData() {}

// NamedConstData holds data for ExprNamedConst.
type NamedConstData struct {
	Def    DefID        `msgpack:"def"`
	Args   []GenericArg `msgpack:"args"`
	UserTy *UserType    `msgpack:"user_ty,omitempty"`
}

func (NamedConstData) exprData() {}

// ConstParamData holds data for ExprConstParam.
type ConstParamData struct {
	Param ParamConst `msgpack:"param"`
	Def   DefID      `msgpack:"def"`
}

func (ConstParamData) exprData() {}

// StaticRefData holds data for ExprStaticRef.
type StaticRefData struct {
	AllocID uint64 `msgpack:"alloc_id"`
	Ty      Ty     `msgpack:"ty"`
	Def     DefID  `msgpack:"def"`
}

func (StaticRefData) exprData() {}

// OpaqueData holds data for shapes the translator does not model; Text is
// the host's debug rendering.
type OpaqueData struct {
	Text string `msgpack:"text"`
}

func (OpaqueData) exprData() {}

type LitKindKind uint8

const (
	LitStr LitKindKind = iota
	LitByteStr
	LitByte
	LitChar
	LitInt
	LitFloat
	LitBool
	LitErr
)

type LitIntKind uint8

const (
	IntSigned LitIntKind = iota
	IntUnsigned
	IntUnsuffixed
)

// Lit is a source literal. Str and Float carry Symbol, ByteStr and Byte carry
// Bytes, Int carries Int and IntType.
type Lit struct {
	Kind    LitKindKind `msgpack:"kind"`
	Symbol  string      `msgpack:"symbol,omitempty"`
	Raw     *uint8      `msgpack:"raw,omitempty"`
	Bytes   []byte      `msgpack:"bytes,omitempty"`
	Char    rune        `msgpack:"char,omitempty"`
	Int     Uint128     `msgpack:"int"`
	IntKind LitIntKind  `msgpack:"int_kind"`
	IntTy   IntTy       `msgpack:"int_ty"`
	UintTy  UintTy      `msgpack:"uint_ty"`
	FloatTy *FloatTy    `msgpack:"float_ty,omitempty"`
	Bool    bool        `msgpack:"bool,omitempty"`
	Span    Span        `msgpack:"span"`
}

type PatKind uint8

const (
	PatWild PatKind = iota
	PatAscribeUserType
	PatBinding
	PatVariant
	PatLeaf
	PatDeref
	PatConstant
	PatRange
	PatSlice
	PatArray
	PatOr
)

// Pat is a typed pattern. Patterns form a tree rather than an arena.
type Pat struct {
	Kind PatKind
	Ty   Ty
	Span Span
	Data PatData
}

// PatData is the kind-specific payload of a Pat.
type PatData interface {
	patData()
}

// AscribeData holds data for PatAscribeUserType.
type AscribeData struct {
	UserTy     UserType `msgpack:"user_ty"`
	Subpattern Pat      `msgpack:"subpattern"`
}

func (AscribeData) patData() {}

type BindingMode uint8

const (
	ByValue BindingMode = iota
	ByRef
)

// BindingData holds data for PatBinding.
type BindingData struct {
	Mutbl      Mutability  `msgpack:"mutbl"`
	Name       string      `msgpack:"name"`
	Mode       BindingMode `msgpack:"mode"`
	RefMutbl   Mutability  `msgpack:"ref_mutbl"`
	Var        LocalVarID  `msgpack:"var"`
	Ty         Ty          `msgpack:"ty"`
	Subpattern *Pat        `msgpack:"subpattern,omitempty"`
	IsPrimary  bool        `msgpack:"is_primary"`
}

func (BindingData) patData() {}

// FieldPat is a subpattern bound to a field index.
type FieldPat struct {
	Field   uint32 `msgpack:"field"`
	Pattern Pat    `msgpack:"pattern"`
}

// VariantPatData holds data for PatVariant and PatLeaf. Leaf patterns leave
// Adt and VariantIndex zero.
type VariantPatData struct {
	Adt          DefID        `msgpack:"adt"`
	Args         []GenericArg `msgpack:"args"`
	VariantIndex uint32       `msgpack:"variant_index"`
	Subpatterns  []FieldPat   `msgpack:"subpatterns"`
}

func (VariantPatData) patData() {}

// DerefPatData holds data for PatDeref.
type DerefPatData struct {
	Subpattern Pat `msgpack:"subpattern"`
}

func (DerefPatData) patData() {}

// ConstantPatData holds data for PatConstant.
type ConstantPatData struct {
	Value ConstantKind `msgpack:"value"`
}

func (ConstantPatData) patData() {}

// RangePatData holds data for PatRange.
type RangePatData struct {
	Lo       ConstantKind `msgpack:"lo"`
	Hi       ConstantKind `msgpack:"hi"`
	Included bool         `msgpack:"included"`
}

func (RangePatData) patData() {}

// SlicePatData holds data for PatSlice and PatArray.
type SlicePatData struct {
	Prefix []Pat `msgpack:"prefix"`
	Slice  *Pat  `msgpack:"slice,omitempty"`
	Suffix []Pat `msgpack:"suffix"`
}

func (SlicePatData) patData() {}

// OrPatData holds data for PatOr.
type OrPatData struct {
	Pats []Pat `msgpack:"pats"`
}

func (OrPatData) patData() {}
