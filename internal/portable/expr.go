package portable

import (
	"portast/internal/ident"
	"portast/internal/source"
)

// ExprKind enumerates portable expression kinds. Scope markers do not exist
// here; field access is split into Field (named, by field identifier) and
// TupleField (positional on tuples).
type ExprKind uint8

const (
	ExprBox ExprKind = iota
	ExprMacroInvocation
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
	ExprMatch
	ExprLet
	ExprBlock
	ExprAssign
	ExprAssignOp
	ExprField
	ExprTupleField
	ExprIndex
	ExprVarRef
	ExprConstRef
	ExprGlobalName
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
	ExprZstLiteral
	ExprNamedConst
	ExprConstParam
	ExprStaticRef
	ExprYield
	ExprTodo
)

var exprKindNames = []string{
	"Box", "MacroInvokation", "If", "Call", "Deref", "Binary", "LogicalOp", "Unary",
	"Cast", "Use", "NeverToAny", "Pointer", "Loop", "Match", "Let", "Block", "Assign",
	"AssignOp", "Field", "TupleField", "Index", "VarRef", "ConstRef", "GlobalName",
	"UpvarRef", "Borrow", "AddressOf", "Break", "Continue", "Return", "ConstBlock",
	"Repeat", "Array", "Tuple", "Adt", "PlaceTypeAscription", "ValueTypeAscription",
	"Closure", "Literal", "ZstLiteral", "NamedConst", "ConstParam", "StaticRef",
	"Yield", "Todo",
}

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string { return enumName(exprKindNames, int(k)) }

// MarshalText renders the kind by name.
func (k ExprKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Expr is a decorated expression.
type Expr struct {
	Ty         Ty          `json:"ty" msgpack:"ty"`
	Span       source.Span `json:"span" msgpack:"span"`
	Kind       ExprKind    `json:"kind" msgpack:"kind"`
	Data       ExprData    `json:"contents,omitempty" msgpack:"contents,omitempty"`
	HirID      *HirID      `json:"hir_id,omitempty" msgpack:"hir_id,omitempty"`
	Attributes []Attribute `json:"attributes" msgpack:"attributes"`
}

// ExprData is the kind-specific payload of an Expr.
type ExprData interface {
	exprData()
}

// TodoData holds the debug rendering of an unmodeled shape.
type TodoData struct {
	Text string `json:"text" msgpack:"text"`
}

func (TodoData) exprData() {}
func (TodoData) patData()  {}

// MacroInvocationData holds data for ExprMacroInvocation.
type MacroInvocationData struct {
	Invocation MacroInvocation `json:"invocation" msgpack:"invocation"`
}

func (MacroInvocationData) exprData() {}

// ValueData holds data for single-operand kinds: Box, Deref, Cast, Use,
// NeverToAny, Loop, Yield.
type ValueData struct {
	Value *Expr `json:"value" msgpack:"value"`
}

func (ValueData) exprData() {}

// IfData holds data for ExprIf.
type IfData struct {
	IfThenScope Scope `json:"if_then_scope" msgpack:"if_then_scope"`
	Cond        *Expr `json:"cond" msgpack:"cond"`
	Then        *Expr `json:"then" msgpack:"then"`
	Else        *Expr `json:"else_opt,omitempty" msgpack:"else_opt,omitempty"`
}

func (IfData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Ty          Ty          `json:"ty" msgpack:"ty"`
	Fun         *Expr       `json:"fun" msgpack:"fun"`
	Args        []*Expr     `json:"args" msgpack:"args"`
	FromHirCall bool        `json:"from_hir_call" msgpack:"from_hir_call"`
	FnSpan      source.Span `json:"fn_span" msgpack:"fn_span"`
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

var binOpNames = []string{
	"Add", "AddUnchecked", "Sub", "SubUnchecked", "Mul", "MulUnchecked", "Div", "Rem",
	"BitXor", "BitAnd", "BitOr", "Shl", "ShlUnchecked", "Shr", "ShrUnchecked",
	"Eq", "Lt", "Le", "Ne", "Ge", "Gt", "Offset",
}

func (op BinOp) String() string               { return enumName(binOpNames, int(op)) }
func (op BinOp) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// BinaryData holds data for ExprBinary, ExprAssign, ExprAssignOp and ExprIndex.
type BinaryData struct {
	Op  BinOp `json:"op" msgpack:"op"`
	Lhs *Expr `json:"lhs" msgpack:"lhs"`
	Rhs *Expr `json:"rhs" msgpack:"rhs"`
}

func (BinaryData) exprData() {}

type LogicalOp uint8

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

var logicalOpNames = []string{"And", "Or"}

func (op LogicalOp) String() string               { return enumName(logicalOpNames, int(op)) }
func (op LogicalOp) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// LogicalData holds data for ExprLogicalOp.
type LogicalData struct {
	Op  LogicalOp `json:"op" msgpack:"op"`
	Lhs *Expr     `json:"lhs" msgpack:"lhs"`
	Rhs *Expr     `json:"rhs" msgpack:"rhs"`
}

func (LogicalData) exprData() {}

type UnOp uint8

const (
	UnNot UnOp = iota
	UnNeg
)

var unOpNames = []string{"Not", "Neg"}

func (op UnOp) String() string               { return enumName(unOpNames, int(op)) }
func (op UnOp) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op  UnOp  `json:"op" msgpack:"op"`
	Arg *Expr `json:"arg" msgpack:"arg"`
}

func (UnaryData) exprData() {}

type PointerCast uint8

const (
	CastReifyFnPointer PointerCast = iota
	CastUnsafeFnPointer
	CastClosureFnPointer
	CastMutToConstPointer
	CastArrayToPointer
	CastUnsize
)

var pointerCastNames = []string{
	"ReifyFnPointer", "UnsafeFnPointer", "ClosureFnPointer", "MutToConstPointer", "ArrayToPointer", "Unsize",
}

func (c PointerCast) String() string               { return enumName(pointerCastNames, int(c)) }
func (c PointerCast) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// PointerData holds data for ExprPointer.
type PointerData struct {
	Cast   PointerCast `json:"cast" msgpack:"cast"`
	Source *Expr       `json:"source" msgpack:"source"`
}

func (PointerData) exprData() {}

// MatchData holds data for ExprMatch.
type MatchData struct {
	Scrutinee *Expr `json:"scrutinee" msgpack:"scrutinee"`
	Arms      []Arm `json:"arms" msgpack:"arms"`
}

func (MatchData) exprData() {}

// Guard is a match-arm guard: a boolean expression, or a let with a pattern.
type Guard struct {
	Expr *Expr `json:"expr" msgpack:"expr"`
	Pat  *Pat  `json:"pat,omitempty" msgpack:"pat,omitempty"`
}

// Arm is a match arm.
type Arm struct {
	Pattern    Pat         `json:"pattern" msgpack:"pattern"`
	Guard      *Guard      `json:"guard,omitempty" msgpack:"guard,omitempty"`
	Body       *Expr       `json:"body" msgpack:"body"`
	Scope      Scope       `json:"scope" msgpack:"scope"`
	Span       source.Span `json:"span" msgpack:"span"`
	Attributes []Attribute `json:"attributes" msgpack:"attributes"`
}

// LetExprData holds data for ExprLet.
type LetExprData struct {
	Expr *Expr `json:"expr" msgpack:"expr"`
	Pat  Pat   `json:"pat" msgpack:"pat"`
}

func (LetExprData) exprData() {}

type BlockSafety uint8

const (
	Safe BlockSafety = iota
	BuiltinUnsafe
	ExplicitUnsafe
)

var blockSafetyNames = []string{"Safe", "BuiltinUnsafe", "ExplicitUnsafe"}

func (s BlockSafety) String() string               { return enumName(blockSafetyNames, int(s)) }
func (s BlockSafety) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Block is a statement list with an optional trailing expression.
type Block struct {
	Stmts           []Stmt      `json:"stmts" msgpack:"stmts"`
	Expr            *Expr       `json:"expr,omitempty" msgpack:"expr,omitempty"`
	SafetyMode      BlockSafety `json:"safety_mode" msgpack:"safety_mode"`
	TargetedByBreak bool        `json:"targeted_by_break" msgpack:"targeted_by_break"`
	Region          Scope       `json:"region" msgpack:"region"`
	Span            source.Span `json:"span" msgpack:"span"`
}

// BlockData holds data for ExprBlock.
type BlockData struct {
	Block Block `json:"block" msgpack:"block"`
}

func (BlockData) exprData() {}

// FieldData holds data for ExprField. Field names the field definition itself.
type FieldData struct {
	Field ident.DefID `json:"field" msgpack:"field"`
	Lhs   *Expr       `json:"lhs" msgpack:"lhs"`
}

func (FieldData) exprData() {}

// TupleFieldData holds data for ExprTupleField.
type TupleFieldData struct {
	Field uint32 `json:"field" msgpack:"field"`
	Lhs   *Expr  `json:"lhs" msgpack:"lhs"`
}

func (TupleFieldData) exprData() {}

// VarRefData holds data for ExprVarRef.
type VarRefData struct {
	ID LocalIdent `json:"id" msgpack:"id"`
}

func (VarRefData) exprData() {}

// ConstRefData holds data for ExprConstRef.
type ConstRefData struct {
	Index uint32 `json:"index" msgpack:"index"`
	Name  string `json:"name" msgpack:"name"`
}

func (ConstRefData) exprData() {}

// GlobalNameData holds data for ExprGlobalName.
type GlobalNameData struct {
	ID ident.DefID `json:"id" msgpack:"id"`
}

func (GlobalNameData) exprData() {}

// UpvarRefData holds data for ExprUpvarRef.
type UpvarRefData struct {
	ClosureDefID ident.DefID `json:"closure_def_id" msgpack:"closure_def_id"`
	VarHirID     LocalIdent  `json:"var_hir_id" msgpack:"var_hir_id"`
}

func (UpvarRefData) exprData() {}

type BorrowKind uint8

const (
	BorrowShared BorrowKind = iota
	BorrowShallow
	BorrowUnique
	BorrowMut
)

var borrowKindNames = []string{"Shared", "Shallow", "Unique", "Mut"}

func (k BorrowKind) String() string               { return enumName(borrowKindNames, int(k)) }
func (k BorrowKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// BorrowData holds data for ExprBorrow.
type BorrowData struct {
	Kind          BorrowKind `json:"kind" msgpack:"kind"`
	AllowTwoPhase bool       `json:"allow_two_phase_borrow,omitempty" msgpack:"allow_two_phase_borrow,omitempty"`
	Arg           *Expr      `json:"arg" msgpack:"arg"`
}

func (BorrowData) exprData() {}

// AddressOfData holds data for ExprAddressOf.
type AddressOfData struct {
	Mutbl Mutability `json:"mutability" msgpack:"mutability"`
	Arg   *Expr      `json:"arg" msgpack:"arg"`
}

func (AddressOfData) exprData() {}

// JumpData holds data for ExprBreak, ExprContinue and ExprReturn. Return has
// no label.
type JumpData struct {
	Label *Scope `json:"label,omitempty" msgpack:"label,omitempty"`
	Value *Expr  `json:"value,omitempty" msgpack:"value,omitempty"`
}

func (JumpData) exprData() {}

// ConstBlockData holds data for ExprConstBlock.
type ConstBlockData struct {
	DefID ident.DefID  `json:"did" msgpack:"did"`
	Args  []GenericArg `json:"substs" msgpack:"substs"`
}

func (ConstBlockData) exprData() {}

// RepeatData holds data for ExprRepeat.
type RepeatData struct {
	Value *Expr `json:"value" msgpack:"value"`
	Count *Expr `json:"count" msgpack:"count"`
}

func (RepeatData) exprData() {}

// FieldsData holds data for ExprArray and ExprTuple.
type FieldsData struct {
	Fields []*Expr `json:"fields" msgpack:"fields"`
}

func (FieldsData) exprData() {}

// FieldExpr is a field initializer, resolved to the field definition.
type FieldExpr struct {
	Field ident.DefID `json:"field" msgpack:"field"`
	Value *Expr       `json:"value" msgpack:"value"`
}

// FruInfo is the base of a functional record update.
type FruInfo struct {
	Base       *Expr `json:"base" msgpack:"base"`
	FieldTypes []Ty  `json:"field_types" msgpack:"field_types"`
}

// AdtExprData holds data for ExprAdt.
type AdtExprData struct {
	Info   VariantInformation `json:"info" msgpack:"info"`
	UserTy *UserType          `json:"user_ty,omitempty" msgpack:"user_ty,omitempty"`
	Fields []FieldExpr        `json:"fields" msgpack:"fields"`
	Base   *FruInfo           `json:"base,omitempty" msgpack:"base,omitempty"`
}

func (AdtExprData) exprData() {}

// AscriptionData holds data for the type-ascription kinds.
type AscriptionData struct {
	Source *Expr     `json:"source" msgpack:"source"`
	UserTy *UserType `json:"user_ty,omitempty" msgpack:"user_ty,omitempty"`
}

func (AscriptionData) exprData() {}

// ClosureData holds data for ExprClosure.
type ClosureData struct {
	Params  []Param `json:"params" msgpack:"params"`
	Body    *Expr   `json:"body" msgpack:"body"`
	Upvars  []*Expr `json:"upvars" msgpack:"upvars"`
	Movable *bool   `json:"movability,omitempty" msgpack:"movability,omitempty"`
}

func (ClosureData) exprData() {}

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Lit Lit  `json:"lit" msgpack:"lit"`
	Neg bool `json:"neg" msgpack:"neg"`
}

func (LiteralData) exprData() {}

// ZstLiteralData holds data for ExprZstLiteral.
type ZstLiteralData struct {
	UserTy *UserType `json:"user_ty,omitempty" msgpack:"user_ty,omitempty"`
}

func (ZstLiteralData) exprData() {}

// NamedConstData holds data for ExprNamedConst.
type NamedConstData struct {
	DefID  ident.DefID  `json:"def_id" msgpack:"def_id"`
	Args   []GenericArg `json:"substs" msgpack:"substs"`
	UserTy *UserType    `json:"user_ty,omitempty" msgpack:"user_ty,omitempty"`
}

func (NamedConstData) exprData() {}

// ConstParamData holds data for ExprConstParam.
type ConstParamData struct {
	Param ConstRefData `json:"param" msgpack:"param"`
	DefID ident.DefID  `json:"def_id" msgpack:"def_id"`
}

func (ConstParamData) exprData() {}

// StaticRefData holds data for ExprStaticRef.
type StaticRefData struct {
	AllocID uint64      `json:"alloc_id" msgpack:"alloc_id"`
	Ty      Ty          `json:"ty" msgpack:"ty"`
	DefID   ident.DefID `json:"def_id" msgpack:"def_id"`
}

func (StaticRefData) exprData() {}

type LitKind uint8

const (
	LitStr LitKind = iota
	LitByteStr
	LitByte
	LitChar
	LitInt
	LitFloat
	LitBool
	LitErr
)

var litKindNames = []string{"Str", "ByteStr", "Byte", "Char", "Int", "Float", "Bool", "Err"}

func (k LitKind) String() string               { return enumName(litKindNames, int(k)) }
func (k LitKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

type LitIntKind uint8

const (
	IntSigned LitIntKind = iota
	IntUnsigned
	IntUnsuffixed
)

var litIntKindNames = []string{"Signed", "Unsigned", "Unsuffixed"}

func (k LitIntKind) String() string               { return enumName(litIntKindNames, int(k)) }
func (k LitIntKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// LitIntType is the suffix of an integer literal.
type LitIntType struct {
	Kind LitIntKind `json:"kind" msgpack:"kind"`
	Int  *IntTy     `json:"int,omitempty" msgpack:"int,omitempty"`
	Uint *UintTy    `json:"uint,omitempty" msgpack:"uint,omitempty"`
}

// Lit is a literal value. Int holds the decimal magnitude; the sign lives on
// the enclosing literal expression. Float holds the decimal text.
type Lit struct {
	Kind    LitKind     `json:"kind" msgpack:"kind"`
	Str     string      `json:"str,omitempty" msgpack:"str,omitempty"`
	Raw     *uint8      `json:"raw,omitempty" msgpack:"raw,omitempty"`
	Bytes   []byte      `json:"bytes,omitempty" msgpack:"bytes,omitempty"`
	Char    string      `json:"char,omitempty" msgpack:"char,omitempty"`
	Int     string      `json:"int,omitempty" msgpack:"int,omitempty"`
	IntType *LitIntType `json:"int_type,omitempty" msgpack:"int_type,omitempty"`
	Float   string      `json:"float,omitempty" msgpack:"float,omitempty"`
	FloatTy *FloatTy    `json:"float_ty,omitempty" msgpack:"float_ty,omitempty"`
	Bool    bool        `json:"bool,omitempty" msgpack:"bool,omitempty"`
	Span    source.Span `json:"span" msgpack:"span"`
}

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtLet
	StmtMacroInvocation
)

var stmtKindNames = []string{"Expr", "Let", "MacroInvokation"}

func (k StmtKind) String() string               { return enumName(stmtKindNames, int(k)) }
func (k StmtKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Stmt is a block statement. Expr statements set Expr; let statements set
// Pattern, Initializer and Else; folded invocations set Invocation.
type Stmt struct {
	Kind        StmtKind         `json:"kind" msgpack:"kind"`
	Scope       Scope            `json:"scope" msgpack:"scope"`
	Expr        *Expr            `json:"expr,omitempty" msgpack:"expr,omitempty"`
	Pattern     *Pat             `json:"pattern,omitempty" msgpack:"pattern,omitempty"`
	Initializer *Expr            `json:"initializer,omitempty" msgpack:"initializer,omitempty"`
	Else        *Block           `json:"else_block,omitempty" msgpack:"else_block,omitempty"`
	Invocation  *MacroInvocation `json:"invocation,omitempty" msgpack:"invocation,omitempty"`
	Span        source.Span      `json:"span" msgpack:"span"`
	Attributes  []Attribute      `json:"attributes" msgpack:"attributes"`
}
