package lower

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"

	"fortio.org/safecast"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/portable"
)

// lowerConst lowers a type-level constant. Constants carry no span of their
// own and are placed at the node being lowered.
func (l *lowerer) lowerConst(c host.Const) (*portable.Expr, error) {
	switch c.Kind {
	case host.ConstKindValue:
		if c.Value == nil {
			return l.todoExpr(c.Ty, "Value(<missing>)")
		}
		return l.scalarExpr(*c.Value, c.Ty)

	case host.ConstKindParam:
		ty, err := l.lowerTy(c.Ty)
		if err != nil {
			return nil, err
		}
		return &portable.Expr{
			Ty:         ty,
			Span:       l.at,
			Kind:       portable.ExprConstRef,
			Data:       portable.ConstRefData{Index: c.Param.Index, Name: c.Param.Name},
			Attributes: []portable.Attribute{},
		}, nil

	case host.ConstKindUnevaluated:
		return l.lowerConstantKind(host.ConstantKind{
			Kind:        host.ConstantTy,
			Ty:          c.Ty,
			Const:       &c,
			Unevaluated: c.Unevaluated,
		})
	}
	return l.todoExpr(c.Ty, constText(c))
}

// lowerConstantKind evaluates a pattern constant and lowers the result. A
// constant the host cannot fold becomes a Todo node with a warning.
func (l *lowerer) lowerConstantKind(ck host.ConstantKind) (*portable.Expr, error) {
	ev, err := l.prog.EvalConstant(ck)
	if err != nil {
		l.warn(diag.ExpConstNotEvaluated, fmt.Sprintf("constant %s was not evaluated: %v", constantText(ck), err))
		return l.todoExpr(ck.Ty, constantText(ck))
	}
	return l.evaluated(ev)
}

// evaluated lowers an already folded constant. Nothing is evaluated again.
func (l *lowerer) evaluated(ck host.ConstantKind) (*portable.Expr, error) {
	switch ck.Kind {
	case host.ConstantVal:
		if ck.Value == nil {
			break
		}
		return l.constValue(*ck.Value, ck.Ty)
	case host.ConstantTy:
		if ck.Const == nil || ck.Const.Kind == host.ConstKindUnevaluated {
			break
		}
		e, err := l.lowerConst(*ck.Const)
		if err != nil {
			return nil, err
		}
		// &CONST is represented by the constant itself
		if e.Kind == portable.ExprBorrow {
			if b, ok := e.Data.(portable.BorrowData); ok {
				e = b.Arg
			}
		}
		return e, nil
	}
	return l.todoExpr(ck.Ty, constantText(ck))
}

func (l *lowerer) constValue(v host.ConstValue, ty host.Ty) (*portable.Expr, error) {
	switch v.Kind {
	case host.ValScalarInt:
		return l.scalarExpr(v.Scalar, ty)
	case host.ValZeroSized:
		pty, err := l.lowerTy(ty)
		if err != nil {
			return nil, err
		}
		return &portable.Expr{
			Ty:         pty,
			Span:       l.at,
			Kind:       portable.ExprZstLiteral,
			Data:       portable.ZstLiteralData{},
			Attributes: []portable.Attribute{},
		}, nil
	case host.ValSlice:
		lit, ok := sliceLit(v.Bytes, ty)
		if !ok {
			break
		}
		lit.Span = l.at
		return l.litExpr(ty, lit, false)
	}
	return l.todoExpr(ty, fmt.Sprintf("ConstValue(%s)", constValueNames[min(int(v.Kind), len(constValueNames)-1)]))
}

var constValueNames = [...]string{"ScalarInt", "ScalarPtr", "ZeroSized", "Slice", "ByRef", "?"}

// sliceLit recognizes &str and &[u8] slice constants.
func sliceLit(b []byte, ty host.Ty) (portable.Lit, bool) {
	if ty.Kind != host.TyRef {
		return portable.Lit{}, false
	}
	ref, ok := ty.Data.(host.RefData)
	if !ok {
		return portable.Lit{}, false
	}
	switch ref.Elem.Kind {
	case host.TyStr:
		if !utf8.Valid(b) {
			return portable.Lit{}, false
		}
		return portable.Lit{Kind: portable.LitStr, Str: string(b)}, true
	case host.TySlice:
		if e, ok := ref.Elem.Data.(host.SliceData); ok && e.Elem.Kind == host.TyUint {
			if u, ok := e.Elem.Data.(host.UintData); ok && u.Uint == host.U8 {
				return portable.Lit{Kind: portable.LitByteStr, Bytes: append([]byte{}, b...)}, true
			}
		}
	}
	return portable.Lit{}, false
}

func (l *lowerer) scalarExpr(s host.Scalar, ty host.Ty) (*portable.Expr, error) {
	lit, neg, err := l.scalarLit(s, ty)
	if err != nil {
		return nil, err
	}
	return l.litExpr(ty, lit, neg)
}

func (l *lowerer) litExpr(ty host.Ty, lit portable.Lit, neg bool) (*portable.Expr, error) {
	pty, err := l.lowerTy(ty)
	if err != nil {
		return nil, err
	}
	return &portable.Expr{
		Ty:         pty,
		Span:       l.at,
		Kind:       portable.ExprLiteral,
		Data:       portable.LiteralData{Lit: lit, Neg: neg},
		Attributes: []portable.Attribute{},
	}, nil
}

func (l *lowerer) todoExpr(ty host.Ty, text string) (*portable.Expr, error) {
	pty, err := l.lowerTy(ty)
	if err != nil {
		return nil, err
	}
	return &portable.Expr{
		Ty:         pty,
		Span:       l.at,
		Kind:       portable.ExprTodo,
		Data:       portable.TodoData{Text: text},
		Attributes: []portable.Attribute{},
	}, nil
}

// scalarLit reads the bits of s as a value of the primitive type ty. Signed
// integers are sign-extended; the magnitude goes to the literal and the sign
// is returned separately.
func (l *lowerer) scalarLit(s host.Scalar, ty host.Ty) (portable.Lit, bool, error) {
	lit := portable.Lit{Span: l.at}
	switch ty.Kind {
	case host.TyBool:
		lit.Kind = portable.LitBool
		lit.Bool = s.Data.Lo != 0
		return lit, false, nil

	case host.TyChar:
		r, err := safecast.Conv[int32](s.Data.Lo)
		if err != nil || s.Data.Hi != 0 || !utf8.ValidRune(r) {
			return lit, false, l.fatalf(diag.ExpFatalScalarType, "scalar %s is not a char", s.Data)
		}
		lit.Kind = portable.LitChar
		lit.Char = string(r)
		return lit, false, nil

	case host.TyInt:
		d, err := payload[host.IntData](l, ty.Data, "int type")
		if err != nil {
			return lit, false, err
		}
		it, err := mapEnum(l, intTys[:], d.Int, "int type")
		if err != nil {
			return lit, false, err
		}
		bits := it.Bits()
		v := truncate(s.Data.Big(), bits)
		if v.Bit(int(bits)-1) == 1 {
			v.Sub(v, new(big.Int).Lsh(big.NewInt(1), bits))
		}
		neg := v.Sign() < 0
		lit.Kind = portable.LitInt
		lit.Int = v.Abs(v).String()
		lit.IntType = &portable.LitIntType{Kind: portable.IntSigned, Int: &it}
		return lit, neg, nil

	case host.TyUint:
		d, err := payload[host.UintData](l, ty.Data, "uint type")
		if err != nil {
			return lit, false, err
		}
		ut, err := mapEnum(l, uintTys[:], d.Uint, "uint type")
		if err != nil {
			return lit, false, err
		}
		lit.Kind = portable.LitInt
		lit.Int = truncate(s.Data.Big(), ut.Bits()).String()
		lit.IntType = &portable.LitIntType{Kind: portable.IntUnsigned, Uint: &ut}
		return lit, false, nil

	case host.TyFloat:
		d, err := payload[host.FloatData](l, ty.Data, "float type")
		if err != nil {
			return lit, false, err
		}
		ft, err := mapEnum(l, floatTys[:], d.Float, "float type")
		if err != nil {
			return lit, false, err
		}
		lit.Kind = portable.LitFloat
		lit.FloatTy = &ft
		if ft == portable.F32 {
			b, err := safecast.Conv[uint32](s.Data.Lo)
			if err != nil {
				return lit, false, l.fatalf(diag.ExpFatalScalarType, "scalar %s is not an f32", s.Data)
			}
			lit.Float = strconv.FormatFloat(float64(math.Float32frombits(b)), 'g', -1, 32)
		} else {
			lit.Float = strconv.FormatFloat(math.Float64frombits(s.Data.Lo), 'g', -1, 64)
		}
		return lit, false, nil
	}
	return lit, false, l.fatalf(diag.ExpFatalScalarType, "scalar of non-primitive type (kind %d)", ty.Kind)
}

func truncate(v *big.Int, bits uint) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), bits)
	mask.Sub(mask, big.NewInt(1))
	return v.And(v, mask)
}

var litIntKinds = [...]portable.LitIntKind{
	host.IntSigned:     portable.IntSigned,
	host.IntUnsigned:   portable.IntUnsigned,
	host.IntUnsuffixed: portable.IntUnsuffixed,
}

// lit translates a source literal.
func (l *lowerer) lit(lit host.Lit) (portable.Lit, error) {
	sp, err := l.span(lit.Span)
	if err != nil {
		return portable.Lit{}, err
	}
	out := portable.Lit{Span: sp}
	switch lit.Kind {
	case host.LitStr:
		out.Kind = portable.LitStr
		out.Str = lit.Symbol
		out.Raw = lit.Raw
	case host.LitByteStr:
		out.Kind = portable.LitByteStr
		out.Bytes = lit.Bytes
	case host.LitByte:
		out.Kind = portable.LitByte
		out.Bytes = lit.Bytes
	case host.LitChar:
		out.Kind = portable.LitChar
		out.Char = string(lit.Char)
	case host.LitInt:
		kind, err := mapEnum(l, litIntKinds[:], lit.IntKind, "int literal kind")
		if err != nil {
			return portable.Lit{}, err
		}
		out.Kind = portable.LitInt
		out.Int = lit.Int.String()
		out.IntType = &portable.LitIntType{Kind: kind}
		switch kind {
		case portable.IntSigned:
			it, err := mapEnum(l, intTys[:], lit.IntTy, "int type")
			if err != nil {
				return portable.Lit{}, err
			}
			out.IntType.Int = &it
		case portable.IntUnsigned:
			ut, err := mapEnum(l, uintTys[:], lit.UintTy, "uint type")
			if err != nil {
				return portable.Lit{}, err
			}
			out.IntType.Uint = &ut
		}
	case host.LitFloat:
		out.Kind = portable.LitFloat
		out.Float = lit.Symbol
		if lit.FloatTy != nil {
			ft, err := mapEnum(l, floatTys[:], *lit.FloatTy, "float type")
			if err != nil {
				return portable.Lit{}, err
			}
			out.FloatTy = &ft
		}
	case host.LitBool:
		out.Kind = portable.LitBool
		out.Bool = lit.Bool
	case host.LitErr:
		out.Kind = portable.LitErr
	default:
		return portable.Lit{}, l.fatalf(diag.ExpFatalUnexpectedNode, "literal kind %d", lit.Kind)
	}
	return out, nil
}

// constText renders a constant the translator does not model. The rendering
// only uses values, never addresses, so output stays stable across runs.
func constText(c host.Const) string {
	switch c.Kind {
	case host.ConstKindUnevaluated:
		if c.Unevaluated != nil {
			return "Unevaluated(" + c.Unevaluated.Def.String() + ")"
		}
	case host.ConstKindValue:
		if c.Value != nil {
			return "Value(" + c.Value.Data.String() + ")"
		}
	}
	name := [...]string{"Param", "Infer", "Bound", "Placeholder", "Unevaluated", "Value", "Error", "Expr", "?"}[min(int(c.Kind), 8)]
	if c.Text != "" {
		return name + "(" + c.Text + ")"
	}
	return name
}

func constantText(ck host.ConstantKind) string {
	switch ck.Kind {
	case host.ConstantTy:
		if ck.Const != nil {
			return constText(*ck.Const)
		}
	case host.ConstantUnevaluated:
		if ck.Unevaluated != nil {
			return "Unevaluated(" + ck.Unevaluated.Def.String() + ")"
		}
	case host.ConstantVal:
		if ck.Value != nil {
			return "Val(" + constValueNames[min(int(ck.Value.Kind), len(constValueNames)-1)] + ")"
		}
	}
	return "Constant"
}
