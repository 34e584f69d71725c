package lower

import (
	"fmt"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/portable"
)

var (
	paramKinds = [...]portable.GenericParamKind{
		host.ParamLifetime:  portable.ParamLifetime,
		host.ParamType:      portable.ParamType,
		host.ParamConstKind: portable.ParamConst,
	}
	whereKinds = [...]portable.WherePredicateKind{
		host.WhereBound:  portable.WhereBound,
		host.WhereRegion: portable.WhereRegion,
		host.WhereEq:     portable.WhereEq,
	}
	predicateKinds = [...]portable.PredicateKind{
		host.PredTrait:                 portable.PredTrait,
		host.PredRegionOutlives:        portable.PredRegionOutlives,
		host.PredTypeOutlives:          portable.PredTypeOutlives,
		host.PredProjection:            portable.PredProjection,
		host.PredWellFormed:            portable.PredWellFormed,
		host.PredObjectSafe:            portable.PredObjectSafe,
		host.PredClosureKind:           portable.PredClosureKind,
		host.PredSubtype:               portable.PredSubtype,
		host.PredCoerce:                portable.PredCoerce,
		host.PredConstEvaluatable:      portable.PredConstEvaluatable,
		host.PredConstEquate:           portable.PredConstEquate,
		host.PredTypeWellFormedFromEnv: portable.PredTypeWellFormedFromEnv,
		host.PredAmbiguous:             portable.PredAmbiguous,
	}
)

// generics lowers the declared generics of owner and attaches the bounds the
// host computed for it.
func (l *lowerer) generics(g host.Generics, owner host.DefID) (portable.Generics, error) {
	var (
		out portable.Generics
		err error
	)
	if out.Params, err = l.genericParams(g.Params); err != nil {
		return portable.Generics{}, err
	}
	out.Predicates = make([]portable.WherePredicate, 0, len(g.Predicates))
	for _, p := range g.Predicates {
		wp, err := l.wherePredicate(p)
		if err != nil {
			return portable.Generics{}, err
		}
		out.Predicates = append(out.Predicates, wp)
	}
	out.HasWhereClause = g.HasWhereClause
	if out.WhereClauseSpan, err = l.span(g.WhereClauseSpan); err != nil {
		return portable.Generics{}, err
	}
	if out.Span, err = l.span(g.Span); err != nil {
		return portable.Generics{}, err
	}
	if out.Bounds, err = l.genericBounds(owner); err != nil {
		return portable.Generics{}, err
	}
	return out, nil
}

func (l *lowerer) genericParams(ps []host.GenericParam) ([]portable.GenericParam, error) {
	out := make([]portable.GenericParam, 0, len(ps))
	for _, p := range ps {
		gp, err := l.genericParam(p)
		if err != nil {
			return nil, err
		}
		out = append(out, gp)
	}
	return out, nil
}

func (l *lowerer) genericParam(p host.GenericParam) (portable.GenericParam, error) {
	var (
		out = portable.GenericParam{Name: p.Name, Synthetic: p.Synthetic}
		err error
	)
	if out.HirID, err = l.hirID(p.HirID); err != nil {
		return out, err
	}
	if out.DefID, err = l.defID(p.Def); err != nil {
		return out, err
	}
	if out.Span, err = l.span(p.Span); err != nil {
		return out, err
	}
	if out.Kind, err = mapEnum(l, paramKinds[:], p.Kind, "generic parameter kind"); err != nil {
		return out, err
	}
	if out.Default, err = l.lowerTyPtr(p.Default); err != nil {
		return out, err
	}
	if out.ConstTy, err = l.lowerTyPtr(p.ConstTy); err != nil {
		return out, err
	}
	if out.ConstDef, err = l.defIDPtr(p.ConstDef); err != nil {
		return out, err
	}
	if out.Attributes, err = l.attrsOf(p.HirID); err != nil {
		return out, err
	}
	return out, nil
}

func (l *lowerer) genericBound(b host.GenericBound) (portable.GenericBound, error) {
	sp, err := l.span(b.Span)
	if err != nil {
		return portable.GenericBound{}, err
	}
	switch b.Kind {
	case host.BoundTrait:
		tr, err := l.traitRef(b.Trait)
		if err != nil {
			return portable.GenericBound{}, err
		}
		return portable.GenericBound{Kind: portable.BoundTrait, Trait: &tr, Maybe: b.Maybe, Span: sp}, nil
	case host.BoundOutlives:
		r, err := l.regionPtr(b.Lifetime)
		if err != nil {
			return portable.GenericBound{}, err
		}
		return portable.GenericBound{Kind: portable.BoundOutlives, Lifetime: r, Span: sp}, nil
	}
	return portable.GenericBound{}, l.fatalf(diag.ExpFatalUnexpectedNode, "generic bound kind %d", b.Kind)
}

func (l *lowerer) genericBoundList(bs []host.GenericBound) ([]portable.GenericBound, error) {
	out := make([]portable.GenericBound, 0, len(bs))
	for _, b := range bs {
		gb, err := l.genericBound(b)
		if err != nil {
			return nil, err
		}
		out = append(out, gb)
	}
	return out, nil
}

func (l *lowerer) wherePredicate(p host.WherePredicate) (portable.WherePredicate, error) {
	var (
		out = portable.WherePredicate{FromGenerics: p.FromGenerics}
		err error
	)
	if out.Kind, err = mapEnum(l, whereKinds[:], p.Kind, "where predicate kind"); err != nil {
		return out, err
	}
	if out.Span, err = l.span(p.Span); err != nil {
		return out, err
	}
	switch out.Kind {
	case portable.WhereBound:
		if out.BoundedTy, err = l.lowerTyPtr(p.BoundedTy); err != nil {
			return out, err
		}
		if out.BoundParams, err = l.genericParams(p.BoundParams); err != nil {
			return out, err
		}
		if out.Bounds, err = l.genericBoundList(p.Bounds); err != nil {
			return out, err
		}
	case portable.WhereRegion:
		if out.Lifetime, err = l.regionPtr(p.Lifetime); err != nil {
			return out, err
		}
		if out.Bounds, err = l.genericBoundList(p.Bounds); err != nil {
			return out, err
		}
	case portable.WhereEq:
		if out.Lhs, err = l.lowerTyPtr(p.Lhs); err != nil {
			return out, err
		}
		if out.Rhs, err = l.lowerTyPtr(p.Rhs); err != nil {
			return out, err
		}
	}
	return out, nil
}

// genericBounds asks the host what must hold for def. Associated and opaque
// types are described by their item bounds, everything else by its
// predicates.
func (l *lowerer) genericBounds(def host.DefID) (portable.GenericBounds, error) {
	kind, err := l.prog.DefKind(def)
	if err != nil {
		return portable.GenericBounds{}, l.hostErr("kind of "+def.String(), err)
	}
	out := portable.GenericBounds{Kind: portable.BoundsPredicates}
	preds := l.prog.Predicates
	if kind == host.DefAssocTy || kind == host.DefOpaqueTy {
		out.Kind = portable.BoundsItem
		preds = l.prog.ItemBounds
	}
	hps := preds(def)
	out.Predicates = make([]portable.Predicate, 0, len(hps))
	for _, p := range hps {
		pp, err := l.predicate(p)
		if err != nil {
			return portable.GenericBounds{}, err
		}
		out.Predicates = append(out.Predicates, pp)
	}
	return out, nil
}

// predicate lowers one clause. Clauses that bind variables are not modeled.
func (l *lowerer) predicate(p host.Predicate) (portable.Predicate, error) {
	if p.BoundVars != 0 {
		l.warn(diag.ExpAmbiguousPredicate, fmt.Sprintf("predicate binding %d variables exported as ambiguous: %s", p.BoundVars, p.Text))
		return portable.Predicate{Kind: portable.PredAmbiguous, Text: p.Text}, nil
	}
	kind, err := mapEnum(l, predicateKinds[:], p.Kind, "predicate kind")
	if err != nil {
		return portable.Predicate{}, err
	}
	out := portable.Predicate{Kind: kind, Negative: p.Negative, Text: p.Text}
	switch kind {
	case portable.PredTrait:
		tr, err := l.traitRef(p.Trait)
		if err != nil {
			return portable.Predicate{}, err
		}
		out.Trait = &tr
	case portable.PredRegionOutlives:
		if out.Region, err = l.regionPtr(p.Region); err != nil {
			return portable.Predicate{}, err
		}
		if out.Region2, err = l.regionPtr(p.Region2); err != nil {
			return portable.Predicate{}, err
		}
	case portable.PredTypeOutlives:
		if out.Region, err = l.regionPtr(p.Region); err != nil {
			return portable.Predicate{}, err
		}
	case portable.PredProjection:
		if p.Projection != nil {
			a, err := l.aliasTy(p.Projection.Def, p.Projection.Args)
			if err != nil {
				return portable.Predicate{}, err
			}
			out.Projection = &a
		}
		if out.Term, err = l.lowerTyPtr(p.Term); err != nil {
			return portable.Predicate{}, err
		}
	}
	if out.Ty, err = l.lowerTyPtr(p.Ty); err != nil {
		return portable.Predicate{}, err
	}
	return out, nil
}
