package lower

import (
	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/portable"
)

var safetyModes = [...]portable.BlockSafety{
	host.Safe:           portable.Safe,
	host.BuiltinUnsafe:  portable.BuiltinUnsafe,
	host.ExplicitUnsafe: portable.ExplicitUnsafe,
}

// blockExpr lowers a block expression. A safe block that is only a wrapper
// around its trailing expression, and is no break target, is replaced by
// the contents of that expression. The tail's HirID and attributes are
// dropped; its span stays in the exported set.
func (l *lowerer) blockExpr(id host.BlockID) (portable.ExprKind, portable.ExprData, error) {
	b := l.body.Block(id)
	if len(b.Stmts) == 0 && b.Expr != nil && b.SafetyMode == host.Safe && !b.TargetedByBreak {
		inner, err := l.lowerExpr(*b.Expr)
		if err != nil {
			return 0, nil, err
		}
		return inner.Kind, inner.Data, nil
	}
	blk, err := l.block(id)
	if err != nil {
		return 0, nil, err
	}
	return portable.ExprBlock, portable.BlockData{Block: blk}, nil
}

func (l *lowerer) block(id host.BlockID) (portable.Block, error) {
	b := l.body.Block(id)
	sp, err := l.span(b.Span)
	if err != nil {
		return portable.Block{}, err
	}
	region, err := l.scope(b.Region)
	if err != nil {
		return portable.Block{}, err
	}
	safety, err := mapEnum(l, safetyModes[:], b.SafetyMode, "block safety")
	if err != nil {
		return portable.Block{}, err
	}
	stmts, err := l.stmts(b.Stmts)
	if err != nil {
		return portable.Block{}, err
	}
	expr, err := l.lowerExprPtr(b.Expr)
	if err != nil {
		return portable.Block{}, err
	}
	return portable.Block{
		Stmts:           stmts,
		Expr:            expr,
		SafetyMode:      safety,
		TargetedByBreak: b.TargetedByBreak,
		Region:          region,
		Span:            sp,
	}, nil
}

// stmts lowers a statement list. Consecutive statements expanded from one
// allowlisted macro call collapse into a single invocation statement.
func (l *lowerer) stmts(ids []host.StmtID) ([]portable.Stmt, error) {
	runs := foldByCallSite(l.x, ids, func(id host.StmtID) (host.Span, bool) {
		return l.body.Stmt(id).Span, true
	})
	out := make([]portable.Stmt, 0, len(runs))
	for _, r := range runs {
		if r.call != nil {
			st, err := l.invocationStmt(r)
			switch {
			case err == nil:
				out = append(out, st)
				continue
			case !isUnreadable(err):
				return nil, err
			}
			// argument text is gone: keep the expanded statements
			l.warn(diag.ExpMacroArgUnreadable, err.Error())
		}
		for _, id := range r.elems {
			st, err := l.stmt(id)
			if err != nil {
				return nil, err
			}
			out = append(out, st)
		}
	}
	return out, nil
}

func (l *lowerer) invocationStmt(r run[host.StmtID]) (portable.Stmt, error) {
	first := l.body.Stmt(r.elems[0])
	scope := first.Scope
	if first.Kind == host.StmtLet {
		scope = first.RemainderScope
	}
	ps, err := l.scope(scope)
	if err != nil {
		return portable.Stmt{}, err
	}
	inv, err := l.invocation(r.call)
	if err != nil {
		return portable.Stmt{}, err
	}
	for _, id := range r.elems {
		if s := l.body.Stmt(id); s.Kind == host.StmtLet && s.Pattern != nil {
			l.bindNames(*s.Pattern)
		}
	}
	return portable.Stmt{
		Kind:       portable.StmtMacroInvocation,
		Scope:      ps,
		Invocation: &inv,
		Span:       inv.Span,
		Attributes: []portable.Attribute{},
	}, nil
}

func (l *lowerer) stmt(id host.StmtID) (portable.Stmt, error) {
	prev := l.at
	defer func() { l.at = prev }()

	s := l.body.Stmt(id)
	sp, err := l.enter(s.Span)
	if err != nil {
		return portable.Stmt{}, err
	}
	switch s.Kind {
	case host.StmtExpr:
		scope, err := l.scope(s.Scope)
		if err != nil {
			return portable.Stmt{}, err
		}
		e, err := l.lowerExpr(s.Expr)
		if err != nil {
			return portable.Stmt{}, err
		}
		return portable.Stmt{Kind: portable.StmtExpr, Scope: scope, Expr: e, Span: sp, Attributes: []portable.Attribute{}}, nil

	case host.StmtLet:
		if s.Pattern == nil {
			return portable.Stmt{}, l.fatalf(diag.ExpFatalUnexpectedNode, "let without a pattern")
		}
		scope, err := l.scope(s.RemainderScope)
		if err != nil {
			return portable.Stmt{}, err
		}
		_, attrs, err := l.attrsFromScope(s.InitScope)
		if err != nil {
			return portable.Stmt{}, err
		}
		out := portable.Stmt{Kind: portable.StmtLet, Scope: scope, Span: sp, Attributes: attrs}
		if out.Initializer, err = l.lowerExprPtr(s.Initializer); err != nil {
			return portable.Stmt{}, err
		}
		if s.Else != nil {
			blk, err := l.block(*s.Else)
			if err != nil {
				return portable.Stmt{}, err
			}
			out.Else = &blk
		}
		pat, err := l.lowerPat(*s.Pattern)
		if err != nil {
			return portable.Stmt{}, err
		}
		out.Pattern = &pat
		return out, nil
	}
	return portable.Stmt{}, l.fatalf(diag.ExpFatalUnexpectedNode, "statement kind %d", s.Kind)
}

func (l *lowerer) arm(id host.ArmID) (portable.Arm, error) {
	a := l.body.Arm(id)
	sp, err := l.span(a.Span)
	if err != nil {
		return portable.Arm{}, err
	}
	scope, err := l.scope(a.Scope)
	if err != nil {
		return portable.Arm{}, err
	}
	_, attrs, err := l.attrsFromScope(a.Scope)
	if err != nil {
		return portable.Arm{}, err
	}
	pat, err := l.lowerPat(a.Pattern)
	if err != nil {
		return portable.Arm{}, err
	}
	out := portable.Arm{Pattern: pat, Scope: scope, Span: sp, Attributes: attrs}
	if a.Guard != nil {
		g := &portable.Guard{}
		if a.Guard.Kind == host.GuardIfLet {
			if g.Pat, err = l.lowerPatPtr(a.Guard.Pat); err != nil {
				return portable.Arm{}, err
			}
		}
		if g.Expr, err = l.lowerExpr(a.Guard.Expr); err != nil {
			return portable.Arm{}, err
		}
		out.Guard = g
	}
	if out.Body, err = l.lowerExpr(a.Body); err != nil {
		return portable.Arm{}, err
	}
	return out, nil
}
