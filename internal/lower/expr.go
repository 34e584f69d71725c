package lower

import (
	"fmt"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/portable"
)

var (
	binOps = [...]portable.BinOp{
		host.BinAdd:          portable.BinAdd,
		host.BinAddUnchecked: portable.BinAddUnchecked,
		host.BinSub:          portable.BinSub,
		host.BinSubUnchecked: portable.BinSubUnchecked,
		host.BinMul:          portable.BinMul,
		host.BinMulUnchecked: portable.BinMulUnchecked,
		host.BinDiv:          portable.BinDiv,
		host.BinRem:          portable.BinRem,
		host.BinBitXor:       portable.BinBitXor,
		host.BinBitAnd:       portable.BinBitAnd,
		host.BinBitOr:        portable.BinBitOr,
		host.BinShl:          portable.BinShl,
		host.BinShlUnchecked: portable.BinShlUnchecked,
		host.BinShr:          portable.BinShr,
		host.BinShrUnchecked: portable.BinShrUnchecked,
		host.BinEq:           portable.BinEq,
		host.BinLt:           portable.BinLt,
		host.BinLe:           portable.BinLe,
		host.BinNe:           portable.BinNe,
		host.BinGe:           portable.BinGe,
		host.BinGt:           portable.BinGt,
		host.BinOffset:       portable.BinOffset,
	}
	logicalOps   = [...]portable.LogicalOp{host.LogicalAnd: portable.LogicalAnd, host.LogicalOr: portable.LogicalOr}
	unOps        = [...]portable.UnOp{host.UnNot: portable.UnNot, host.UnNeg: portable.UnNeg}
	pointerCasts = [...]portable.PointerCast{
		host.CastReifyFnPointer:    portable.CastReifyFnPointer,
		host.CastUnsafeFnPointer:   portable.CastUnsafeFnPointer,
		host.CastClosureFnPointer:  portable.CastClosureFnPointer,
		host.CastMutToConstPointer: portable.CastMutToConstPointer,
		host.CastArrayToPointer:    portable.CastArrayToPointer,
		host.CastUnsize:            portable.CastUnsize,
	}
	// single-operand kinds
	valueKinds = map[host.ExprKind]portable.ExprKind{
		host.ExprBox:        portable.ExprBox,
		host.ExprDeref:      portable.ExprDeref,
		host.ExprCast:       portable.ExprCast,
		host.ExprUse:        portable.ExprUse,
		host.ExprNeverToAny: portable.ExprNeverToAny,
		host.ExprLoop:       portable.ExprLoop,
		host.ExprYield:      portable.ExprYield,
	}
	opaqueKinds = map[host.ExprKind]string{
		host.ExprInlineAsm:      "InlineAsm",
		host.ExprOffsetOf:       "OffsetOf",
		host.ExprThreadLocalRef: "ThreadLocalRef",
	}
)

// unroll strips scope wrappers off id. The returned region is that of the
// outermost wrapper, if there was one.
func (l *lowerer) unroll(id host.ExprID) (*host.Expr, *host.RegionScope, error) {
	e := l.body.Expr(id)
	var region *host.RegionScope
	for e.Kind == host.ExprScope {
		d, err := payload[host.ScopeExprData](l, e.Data, "scope")
		if err != nil {
			return nil, nil, err
		}
		if region == nil {
			r := d.Region
			region = &r
		}
		e = l.body.Expr(d.Value)
	}
	return e, region, nil
}

// decorate resolves everything of a node but its contents: the syntax node
// and attributes come from the outermost scope, type and span from the
// unrolled expression.
func (l *lowerer) decorate(id host.ExprID) (*host.Expr, *portable.Expr, error) {
	e, region, err := l.unroll(id)
	if err != nil {
		return nil, nil, err
	}
	out := &portable.Expr{Attributes: []portable.Attribute{}}
	if region != nil {
		out.HirID, out.Attributes, err = l.attrsFromScope(*region)
		if err != nil {
			return nil, nil, err
		}
	}
	if out.Span, err = l.enter(e.Span); err != nil {
		return nil, nil, err
	}
	if out.Ty, err = l.lowerTy(e.Ty); err != nil {
		return nil, nil, err
	}
	return e, out, nil
}

func (l *lowerer) lowerExpr(id host.ExprID) (*portable.Expr, error) {
	prev := l.at
	defer func() { l.at = prev }()

	e, out, err := l.decorate(id)
	if err != nil {
		return nil, err
	}
	inv, err := l.macroInvocation(e.Span)
	switch {
	case isUnreadable(err):
		l.warn(diag.ExpMacroArgUnreadable, err.Error())
		out.Kind = portable.ExprTodo
		out.Data = portable.TodoData{Text: "MacroInvocation"}
		return out, nil
	case err != nil:
		return nil, err
	case inv != nil:
		out.Kind = portable.ExprMacroInvocation
		out.Data = portable.MacroInvocationData{Invocation: *inv}
		return out, nil
	}
	out.Kind, out.Data, err = l.exprContents(e)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *lowerer) lowerExprPtr(id *host.ExprID) (*portable.Expr, error) {
	if id == nil {
		return nil, nil
	}
	return l.lowerExpr(*id)
}

func (l *lowerer) lowerExprs(ids []host.ExprID) ([]*portable.Expr, error) {
	out := make([]*portable.Expr, 0, len(ids))
	for _, id := range ids {
		e, err := l.lowerExpr(id)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func userType(u *host.UserType) *portable.UserType {
	if u == nil {
		return nil
	}
	return &portable.UserType{Text: u.Text}
}

func (l *lowerer) exprContents(e *host.Expr) (portable.ExprKind, portable.ExprData, error) {
	if kind, ok := valueKinds[e.Kind]; ok {
		d, err := payload[host.ValueData](l, e.Data, kind.String())
		if err != nil {
			return 0, nil, err
		}
		v, err := l.lowerExpr(d.Value)
		if err != nil {
			return 0, nil, err
		}
		return kind, portable.ValueData{Value: v}, nil
	}
	if name, ok := opaqueKinds[e.Kind]; ok {
		text := name
		if d, ok := e.Data.(host.OpaqueData); ok && d.Text != "" {
			text += "(" + d.Text + ")"
		}
		return portable.ExprTodo, portable.TodoData{Text: text}, nil
	}

	switch e.Kind {
	case host.ExprScope:
		return 0, nil, l.fatalf(diag.ExpFatalScope, "scope wrapper after unrolling")

	case host.ExprUnary:
		d, err := payload[host.ValueData](l, e.Data, "unary")
		if err != nil {
			return 0, nil, err
		}
		op, err := mapEnum(l, unOps[:], d.Op, "unary operator")
		if err != nil {
			return 0, nil, err
		}
		arg, err := l.lowerExpr(d.Value)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprUnary, portable.UnaryData{Op: op, Arg: arg}, nil

	case host.ExprPointer:
		d, err := payload[host.ValueData](l, e.Data, "pointer cast")
		if err != nil {
			return 0, nil, err
		}
		c, err := mapEnum(l, pointerCasts[:], d.Cast, "pointer cast")
		if err != nil {
			return 0, nil, err
		}
		src, err := l.lowerExpr(d.Value)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprPointer, portable.PointerData{Cast: c, Source: src}, nil

	case host.ExprIf:
		d, err := payload[host.IfData](l, e.Data, "if")
		if err != nil {
			return 0, nil, err
		}
		scope, err := l.scope(d.IfThenScope)
		if err != nil {
			return 0, nil, err
		}
		cond, err := l.lowerExpr(d.Cond)
		if err != nil {
			return 0, nil, err
		}
		then, err := l.lowerExpr(d.Then)
		if err != nil {
			return 0, nil, err
		}
		els, err := l.lowerExprPtr(d.Else)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprIf, portable.IfData{IfThenScope: scope, Cond: cond, Then: then, Else: els}, nil

	case host.ExprCall:
		d, err := payload[host.CallData](l, e.Data, "call")
		if err != nil {
			return 0, nil, err
		}
		return l.call(d)

	case host.ExprBinary, host.ExprAssignOp:
		d, err := payload[host.BinaryData](l, e.Data, "binary")
		if err != nil {
			return 0, nil, err
		}
		op, err := mapEnum(l, binOps[:], d.Op, "binary operator")
		if err != nil {
			return 0, nil, err
		}
		lhs, rhs, err := l.operands(d)
		if err != nil {
			return 0, nil, err
		}
		kind := portable.ExprBinary
		if e.Kind == host.ExprAssignOp {
			kind = portable.ExprAssignOp
		}
		return kind, portable.BinaryData{Op: op, Lhs: lhs, Rhs: rhs}, nil

	case host.ExprAssign, host.ExprIndex:
		d, err := payload[host.BinaryData](l, e.Data, "assignment")
		if err != nil {
			return 0, nil, err
		}
		lhs, rhs, err := l.operands(d)
		if err != nil {
			return 0, nil, err
		}
		kind := portable.ExprAssign
		if e.Kind == host.ExprIndex {
			kind = portable.ExprIndex
		}
		return kind, portable.BinaryData{Lhs: lhs, Rhs: rhs}, nil

	case host.ExprLogicalOp:
		d, err := payload[host.BinaryData](l, e.Data, "logical operator")
		if err != nil {
			return 0, nil, err
		}
		op, err := mapEnum(l, logicalOps[:], d.Logical, "logical operator")
		if err != nil {
			return 0, nil, err
		}
		lhs, rhs, err := l.operands(d)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprLogicalOp, portable.LogicalData{Op: op, Lhs: lhs, Rhs: rhs}, nil

	case host.ExprLet:
		d, err := payload[host.LetData](l, e.Data, "let")
		if err != nil {
			return 0, nil, err
		}
		pat, err := l.lowerPat(d.Pat)
		if err != nil {
			return 0, nil, err
		}
		x, err := l.lowerExpr(d.Expr)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprLet, portable.LetExprData{Expr: x, Pat: pat}, nil

	case host.ExprMatch:
		d, err := payload[host.MatchData](l, e.Data, "match")
		if err != nil {
			return 0, nil, err
		}
		scrut, err := l.lowerExpr(d.Scrutinee)
		if err != nil {
			return 0, nil, err
		}
		arms := make([]portable.Arm, 0, len(d.Arms))
		for _, id := range d.Arms {
			a, err := l.arm(id)
			if err != nil {
				return 0, nil, err
			}
			arms = append(arms, a)
		}
		return portable.ExprMatch, portable.MatchData{Scrutinee: scrut, Arms: arms}, nil

	case host.ExprBlock:
		d, err := payload[host.BlockData](l, e.Data, "block")
		if err != nil {
			return 0, nil, err
		}
		return l.blockExpr(d.Block)

	case host.ExprField:
		d, err := payload[host.FieldData](l, e.Data, "field")
		if err != nil {
			return 0, nil, err
		}
		return l.field(d)

	case host.ExprVarRef:
		d, err := payload[host.VarRefData](l, e.Data, "variable")
		if err != nil {
			return 0, nil, err
		}
		v, err := l.localIdent(d.ID)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprVarRef, portable.VarRefData{ID: v}, nil

	case host.ExprUpvarRef:
		d, err := payload[host.UpvarRefData](l, e.Data, "captured variable")
		if err != nil {
			return 0, nil, err
		}
		closure, err := l.defID(d.ClosureDef)
		if err != nil {
			return 0, nil, err
		}
		v, err := l.localIdent(d.VarHirID)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprUpvarRef, portable.UpvarRefData{ClosureDefID: closure, VarHirID: v}, nil

	case host.ExprBorrow:
		d, err := payload[host.BorrowData](l, e.Data, "borrow")
		if err != nil {
			return 0, nil, err
		}
		arg, err := l.lowerExpr(d.Arg)
		if err != nil {
			return 0, nil, err
		}
		out := portable.BorrowData{Arg: arg}
		switch d.Kind {
		case host.BorrowShared:
			out.Kind = portable.BorrowShared
		case host.BorrowShallow:
			out.Kind = portable.BorrowShallow
		case host.BorrowUnique:
			out.Kind = portable.BorrowUnique
		case host.BorrowMut:
			out.Kind = portable.BorrowMut
		case host.BorrowMutTwoPhase:
			out.Kind = portable.BorrowMut
			out.AllowTwoPhase = true
		default:
			return 0, nil, l.fatalf(diag.ExpFatalUnexpectedNode, "borrow kind %d", d.Kind)
		}
		return portable.ExprBorrow, out, nil

	case host.ExprAddressOf:
		d, err := payload[host.BorrowData](l, e.Data, "address-of")
		if err != nil {
			return 0, nil, err
		}
		m, err := l.mutability(d.Mutbl)
		if err != nil {
			return 0, nil, err
		}
		arg, err := l.lowerExpr(d.Arg)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprAddressOf, portable.AddressOfData{Mutbl: m, Arg: arg}, nil

	case host.ExprBreak, host.ExprContinue, host.ExprReturn:
		d, err := payload[host.JumpData](l, e.Data, "jump")
		if err != nil {
			return 0, nil, err
		}
		var out portable.JumpData
		if e.Kind != host.ExprReturn {
			label, err := l.scope(d.Label)
			if err != nil {
				return 0, nil, err
			}
			out.Label = &label
		}
		if out.Value, err = l.lowerExprPtr(d.Value); err != nil {
			return 0, nil, err
		}
		kind := map[host.ExprKind]portable.ExprKind{
			host.ExprBreak:    portable.ExprBreak,
			host.ExprContinue: portable.ExprContinue,
			host.ExprReturn:   portable.ExprReturn,
		}[e.Kind]
		return kind, out, nil

	case host.ExprConstBlock:
		d, err := payload[host.ConstBlockData](l, e.Data, "const block")
		if err != nil {
			return 0, nil, err
		}
		def, err := l.defID(d.Def)
		if err != nil {
			return 0, nil, err
		}
		args, err := l.genericArgs(d.Args)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprConstBlock, portable.ConstBlockData{DefID: def, Args: args}, nil

	case host.ExprRepeat:
		d, err := payload[host.RepeatData](l, e.Data, "repeat")
		if err != nil {
			return 0, nil, err
		}
		v, err := l.lowerExpr(d.Value)
		if err != nil {
			return 0, nil, err
		}
		n, err := l.lowerConst(d.Count)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprRepeat, portable.RepeatData{Value: v, Count: n}, nil

	case host.ExprArray, host.ExprTuple:
		d, err := payload[host.FieldsData](l, e.Data, "aggregate")
		if err != nil {
			return 0, nil, err
		}
		fields, err := l.lowerExprs(d.Fields)
		if err != nil {
			return 0, nil, err
		}
		kind := portable.ExprArray
		if e.Kind == host.ExprTuple {
			kind = portable.ExprTuple
		}
		return kind, portable.FieldsData{Fields: fields}, nil

	case host.ExprAdt:
		d, err := payload[host.AdtExprData](l, e.Data, "adt")
		if err != nil {
			return 0, nil, err
		}
		return l.adtExpr(d)

	case host.ExprPlaceTypeAscription, host.ExprValueTypeAscription:
		d, err := payload[host.AscriptionData](l, e.Data, "type ascription")
		if err != nil {
			return 0, nil, err
		}
		src, err := l.lowerExpr(d.Source)
		if err != nil {
			return 0, nil, err
		}
		kind := portable.ExprPlaceTypeAscription
		if e.Kind == host.ExprValueTypeAscription {
			kind = portable.ExprValueTypeAscription
		}
		return kind, portable.AscriptionData{Source: src, UserTy: userType(d.UserTy)}, nil

	case host.ExprClosure:
		d, err := payload[host.ClosureExprData](l, e.Data, "closure")
		if err != nil {
			return 0, nil, err
		}
		return l.closure(d)

	case host.ExprLiteral:
		d, err := payload[host.LiteralData](l, e.Data, "literal")
		if err != nil {
			return 0, nil, err
		}
		lit, err := l.lit(d.Lit)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprLiteral, portable.LiteralData{Lit: lit, Neg: d.Neg}, nil

	case host.ExprNonHirLiteral:
		d, err := payload[host.NonHirLiteralData](l, e.Data, "literal")
		if err != nil {
			return 0, nil, err
		}
		lit, neg, err := l.scalarLit(d.Lit, e.Ty)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprLiteral, portable.LiteralData{Lit: lit, Neg: neg}, nil

	case host.ExprZstLiteral:
		d, err := payload[host.ZstLiteralData](l, e.Data, "zero-sized literal")
		if err != nil {
			return 0, nil, err
		}
		if fd, ok := e.Ty.Data.(host.FnDefData); ok && e.Ty.Kind == host.TyFnDef {
			def, err := l.defID(fd.Def)
			if err != nil {
				return 0, nil, err
			}
			return portable.ExprGlobalName, portable.GlobalNameData{ID: def}, nil
		}
		l.unreachable("ZstLiteral", "zero-sized literal that is not a function item")
		return portable.ExprZstLiteral, portable.ZstLiteralData{UserTy: userType(d.UserTy)}, nil

	case host.ExprNamedConst:
		d, err := payload[host.NamedConstData](l, e.Data, "named constant")
		if err != nil {
			return 0, nil, err
		}
		def, err := l.defID(d.Def)
		if err != nil {
			return 0, nil, err
		}
		args, err := l.genericArgs(d.Args)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprNamedConst, portable.NamedConstData{DefID: def, Args: args, UserTy: userType(d.UserTy)}, nil

	case host.ExprConstParam:
		d, err := payload[host.ConstParamData](l, e.Data, "const parameter")
		if err != nil {
			return 0, nil, err
		}
		def, err := l.defID(d.Def)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprConstParam, portable.ConstParamData{
			Param: portable.ConstRefData{Index: d.Param.Index, Name: d.Param.Name},
			DefID: def,
		}, nil

	case host.ExprStaticRef:
		d, err := payload[host.StaticRefData](l, e.Data, "static reference")
		if err != nil {
			return 0, nil, err
		}
		ty, err := l.lowerTy(d.Ty)
		if err != nil {
			return 0, nil, err
		}
		def, err := l.defID(d.Def)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprStaticRef, portable.StaticRefData{AllocID: d.AllocID, Ty: ty, DefID: def}, nil
	}
	return 0, nil, l.fatalf(diag.ExpFatalUnexpectedNode, "expression kind %d", e.Kind)
}

func (l *lowerer) operands(d host.BinaryData) (*portable.Expr, *portable.Expr, error) {
	lhs, err := l.lowerExpr(d.Lhs)
	if err != nil {
		return nil, nil, err
	}
	rhs, err := l.lowerExpr(d.Rhs)
	if err != nil {
		return nil, nil, err
	}
	return lhs, rhs, nil
}

// call lowers a call. Only two callee shapes exist: a variable of function
// pointer type, or a zero-sized function item which becomes a global name.
func (l *lowerer) call(d host.CallData) (portable.ExprKind, portable.ExprData, error) {
	funTy, err := l.lowerTy(d.FunTy)
	if err != nil {
		return 0, nil, err
	}
	fun, err := l.callee(d)
	if err != nil {
		return 0, nil, err
	}
	args, err := l.lowerExprs(d.Args)
	if err != nil {
		return 0, nil, err
	}
	fnSpan, err := l.span(d.FnSpan)
	if err != nil {
		return 0, nil, err
	}
	return portable.ExprCall, portable.CallData{
		Ty:          funTy,
		Fun:         fun,
		Args:        args,
		FromHirCall: d.FromHirCall,
		FnSpan:      fnSpan,
	}, nil
}

func (l *lowerer) callee(d host.CallData) (*portable.Expr, error) {
	inner, _, err := l.unroll(d.Fun)
	if err != nil {
		return nil, err
	}
	switch {
	case inner.Kind == host.ExprVarRef && d.FunTy.Kind == host.TyFnPtr:
		return l.lowerExpr(d.Fun)

	case inner.Kind == host.ExprZstLiteral && d.FunTy.Kind == host.TyFnDef:
		fd, err := payload[host.FnDefData](l, d.FunTy.Data, "callee type")
		if err != nil {
			return nil, err
		}
		prev := l.at
		defer func() { l.at = prev }()
		_, out, err := l.decorate(d.Fun)
		if err != nil {
			return nil, err
		}
		def, err := l.defID(fd.Def)
		if err != nil {
			return nil, err
		}
		out.Kind = portable.ExprGlobalName
		out.Data = portable.GlobalNameData{ID: def}
		return out, nil
	}
	return nil, l.fatalf(diag.ExpFatalCallShape, "callee of kind %d with function type of kind %d", inner.Kind, d.FunTy.Kind)
}

// field splits field access by the type of the receiver: named fields of an
// algebraic type, or positions of a tuple.
func (l *lowerer) field(d host.FieldData) (portable.ExprKind, portable.ExprData, error) {
	recv, _, err := l.unroll(d.Lhs)
	if err != nil {
		return 0, nil, err
	}
	switch recv.Ty.Kind {
	case host.TyAdt:
		ad, err := payload[host.AdtData](l, recv.Ty.Data, "receiver type")
		if err != nil {
			return 0, nil, err
		}
		adt, err := l.adtDef(ad.Def)
		if err != nil {
			return 0, nil, err
		}
		if d.VariantIndex != 0 {
			l.unreachable("Field", fmt.Sprintf("field access through variant %d", d.VariantIndex))
		}
		v, err := l.variantAt(adt, d.VariantIndex)
		if err != nil {
			return 0, nil, err
		}
		field, err := l.fieldDefID(v, d.Name)
		if err != nil {
			return 0, nil, err
		}
		lhs, err := l.lowerExpr(d.Lhs)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprField, portable.FieldData{Field: field, Lhs: lhs}, nil

	case host.TyTuple:
		lhs, err := l.lowerExpr(d.Lhs)
		if err != nil {
			return 0, nil, err
		}
		return portable.ExprTupleField, portable.TupleFieldData{Field: d.Name, Lhs: lhs}, nil
	}
	return 0, nil, l.fatalf(diag.ExpFatalFieldAccess, "field %d of a type of kind %d", d.Name, recv.Ty.Kind)
}

func (l *lowerer) adtExpr(d host.AdtExprData) (portable.ExprKind, portable.ExprData, error) {
	info, err := l.variantInformation(d.Adt, d.VariantIndex)
	if err != nil {
		return 0, nil, err
	}
	adt, err := l.adtDef(d.Adt)
	if err != nil {
		return 0, nil, err
	}
	v, err := l.variantAt(adt, d.VariantIndex)
	if err != nil {
		return 0, nil, err
	}
	fields := make([]portable.FieldExpr, 0, len(d.Fields))
	for _, f := range d.Fields {
		def, err := l.fieldDefID(v, f.Name)
		if err != nil {
			return 0, nil, err
		}
		val, err := l.lowerExpr(f.Expr)
		if err != nil {
			return 0, nil, err
		}
		fields = append(fields, portable.FieldExpr{Field: def, Value: val})
	}
	out := portable.AdtExprData{Info: info, UserTy: userType(d.UserTy), Fields: fields}
	if d.Base != nil {
		base, err := l.lowerExpr(d.Base.Base)
		if err != nil {
			return 0, nil, err
		}
		tys, err := l.lowerTys(d.Base.FieldTypes)
		if err != nil {
			return 0, nil, err
		}
		out.Base = &portable.FruInfo{Base: base, FieldTypes: tys}
	}
	return portable.ExprAdt, out, nil
}

// closure lowers the closure body in place. The closure becomes the owner
// while its body is lowered; local names are shared with the enclosing body
// so captured variables resolve.
func (l *lowerer) closure(d host.ClosureExprData) (portable.ExprKind, portable.ExprData, error) {
	upvars, err := l.lowerExprs(d.Upvars)
	if err != nil {
		return 0, nil, err
	}
	body, err := l.prog.Body(d.Closure)
	if err != nil {
		return 0, nil, l.hostErr("body of closure "+d.Closure.String(), err)
	}

	var (
		params []portable.Param
		value  *portable.Expr
	)
	err = l.withOwner(d.Closure, func() error {
		outer := l.body
		l.body = body
		defer func() { l.body = outer }()

		var err error
		if params, err = l.params(body.Params); err != nil {
			return err
		}
		value, err = l.lowerExpr(body.Value)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	return portable.ExprClosure, portable.ClosureData{Params: params, Body: value, Upvars: upvars, Movable: d.Movability}, nil
}
