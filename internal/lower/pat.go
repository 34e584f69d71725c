package lower

import (
	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/ident"
	"portast/internal/portable"
)

var bindingModes = [...]portable.BindingMode{host.ByValue: portable.ByValue, host.ByRef: portable.ByRef}

// lowerPat lowers a pattern. Every binding it contains is registered as a
// local of the current body before its uses are lowered.
func (l *lowerer) lowerPat(p host.Pat) (portable.Pat, error) {
	prev := l.at
	defer func() { l.at = prev }()

	sp, err := l.enter(p.Span)
	if err != nil {
		return portable.Pat{}, err
	}
	ty, err := l.lowerTy(p.Ty)
	if err != nil {
		return portable.Pat{}, err
	}
	out := portable.Pat{Ty: ty, Span: sp, Attributes: []portable.Attribute{}}
	out.Kind, out.Data, err = l.patContents(p)
	if err != nil {
		return portable.Pat{}, err
	}
	return out, nil
}

func (l *lowerer) lowerPatPtr(p *host.Pat) (*portable.Pat, error) {
	if p == nil {
		return nil, nil
	}
	out, err := l.lowerPat(*p)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *lowerer) lowerPats(ps []host.Pat) ([]portable.Pat, error) {
	out := make([]portable.Pat, 0, len(ps))
	for _, p := range ps {
		pp, err := l.lowerPat(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	return out, nil
}

func (l *lowerer) patContents(p host.Pat) (portable.PatKind, portable.PatData, error) {
	switch p.Kind {
	case host.PatWild:
		return portable.PatWild, nil, nil

	case host.PatAscribeUserType:
		d, err := payload[host.AscribeData](l, p.Data, "ascription pattern")
		if err != nil {
			return 0, nil, err
		}
		sub, err := l.lowerPat(d.Subpattern)
		if err != nil {
			return 0, nil, err
		}
		return portable.PatAscribeUserType, portable.AscribeData{UserTy: portable.UserType{Text: d.UserTy.Text}, Subpattern: sub}, nil

	case host.PatBinding:
		d, err := payload[host.BindingData](l, p.Data, "binding")
		if err != nil {
			return 0, nil, err
		}
		l.locals[d.Var] = ident.Name(d.Name)
		v, err := l.localIdent(d.Var)
		if err != nil {
			return 0, nil, err
		}
		m, err := l.mutability(d.Mutbl)
		if err != nil {
			return 0, nil, err
		}
		mode, err := mapEnum(l, bindingModes[:], d.Mode, "binding mode")
		if err != nil {
			return 0, nil, err
		}
		out := portable.BindingData{Mutbl: m, Mode: mode, Var: v, IsPrimary: d.IsPrimary}
		if mode == portable.ByRef {
			if out.RefMutbl, err = l.mutability(d.RefMutbl); err != nil {
				return 0, nil, err
			}
		}
		if out.Ty, err = l.lowerTy(d.Ty); err != nil {
			return 0, nil, err
		}
		if out.Subpattern, err = l.lowerPatPtr(d.Subpattern); err != nil {
			return 0, nil, err
		}
		return portable.PatBinding, out, nil

	case host.PatVariant:
		d, err := payload[host.VariantPatData](l, p.Data, "variant pattern")
		if err != nil {
			return 0, nil, err
		}
		return l.variantPat(d.Adt, d.VariantIndex, d.Args, d.Subpatterns)

	case host.PatLeaf:
		d, err := payload[host.VariantPatData](l, p.Data, "leaf pattern")
		if err != nil {
			return 0, nil, err
		}
		switch p.Ty.Kind {
		case host.TyAdt:
			ad, err := payload[host.AdtData](l, p.Ty.Data, "leaf pattern type")
			if err != nil {
				return 0, nil, err
			}
			return l.variantPat(ad.Def, 0, ad.Args, d.Subpatterns)
		case host.TyTuple:
			subs := make([]portable.Pat, 0, len(d.Subpatterns))
			for _, fp := range d.Subpatterns {
				sp, err := l.lowerPat(fp.Pattern)
				if err != nil {
					return 0, nil, err
				}
				subs = append(subs, sp)
			}
			return portable.PatTuple, portable.TuplePatData{Subpatterns: subs}, nil
		}
		return 0, nil, l.fatalf(diag.ExpFatalLeafPattern, "leaf pattern on a type of kind %d", p.Ty.Kind)

	case host.PatDeref:
		d, err := payload[host.DerefPatData](l, p.Data, "deref pattern")
		if err != nil {
			return 0, nil, err
		}
		sub, err := l.lowerPat(d.Subpattern)
		if err != nil {
			return 0, nil, err
		}
		return portable.PatDeref, portable.DerefPatData{Subpattern: sub}, nil

	case host.PatConstant:
		d, err := payload[host.ConstantPatData](l, p.Data, "constant pattern")
		if err != nil {
			return 0, nil, err
		}
		v, err := l.lowerConstantKind(d.Value)
		if err != nil {
			return 0, nil, err
		}
		return portable.PatConstant, portable.ConstantPatData{Value: v}, nil

	case host.PatRange:
		d, err := payload[host.RangePatData](l, p.Data, "range pattern")
		if err != nil {
			return 0, nil, err
		}
		lo, err := l.lowerConstantKind(d.Lo)
		if err != nil {
			return 0, nil, err
		}
		hi, err := l.lowerConstantKind(d.Hi)
		if err != nil {
			return 0, nil, err
		}
		return portable.PatRange, portable.RangePatData{Lo: lo, Hi: hi, Included: d.Included}, nil

	case host.PatSlice, host.PatArray:
		d, err := payload[host.SlicePatData](l, p.Data, "slice pattern")
		if err != nil {
			return 0, nil, err
		}
		var out portable.SlicePatData
		if out.Prefix, err = l.lowerPats(d.Prefix); err != nil {
			return 0, nil, err
		}
		if out.Slice, err = l.lowerPatPtr(d.Slice); err != nil {
			return 0, nil, err
		}
		if out.Suffix, err = l.lowerPats(d.Suffix); err != nil {
			return 0, nil, err
		}
		kind := portable.PatSlice
		if p.Kind == host.PatArray {
			kind = portable.PatArray
		}
		return kind, out, nil

	case host.PatOr:
		d, err := payload[host.OrPatData](l, p.Data, "or pattern")
		if err != nil {
			return 0, nil, err
		}
		pats, err := l.lowerPats(d.Pats)
		if err != nil {
			return 0, nil, err
		}
		return portable.PatOr, portable.OrPatData{Pats: pats}, nil
	}
	return 0, nil, l.fatalf(diag.ExpFatalUnexpectedNode, "pattern kind %d", p.Kind)
}

func (l *lowerer) variantPat(adt host.DefID, index uint32, args []host.GenericArg, subs []host.FieldPat) (portable.PatKind, portable.PatData, error) {
	info, err := l.variantInformation(adt, index)
	if err != nil {
		return 0, nil, err
	}
	def, err := l.adtDef(adt)
	if err != nil {
		return 0, nil, err
	}
	v, err := l.variantAt(def, index)
	if err != nil {
		return 0, nil, err
	}
	pargs, err := l.genericArgs(args)
	if err != nil {
		return 0, nil, err
	}
	out := portable.VariantPatData{Info: info, GenericArgs: pargs, Subpatterns: make([]portable.FieldPat, 0, len(subs))}
	for _, fp := range subs {
		field, err := l.fieldDefID(v, fp.Field)
		if err != nil {
			return 0, nil, err
		}
		sp, err := l.lowerPat(fp.Pattern)
		if err != nil {
			return 0, nil, err
		}
		out.Subpatterns = append(out.Subpatterns, portable.FieldPat{Field: field, Pattern: sp})
	}
	return portable.PatVariant, out, nil
}

// bindNames registers the bindings of p without lowering it. Used for
// statements folded into a macro invocation whose locals are still visible
// to later statements.
func (l *lowerer) bindNames(p host.Pat) {
	switch d := p.Data.(type) {
	case host.BindingData:
		l.locals[d.Var] = ident.Name(d.Name)
		if d.Subpattern != nil {
			l.bindNames(*d.Subpattern)
		}
	case host.AscribeData:
		l.bindNames(d.Subpattern)
	case host.VariantPatData:
		for _, fp := range d.Subpatterns {
			l.bindNames(fp.Pattern)
		}
	case host.DerefPatData:
		l.bindNames(d.Subpattern)
	case host.SlicePatData:
		for _, sp := range d.Prefix {
			l.bindNames(sp)
		}
		if d.Slice != nil {
			l.bindNames(*d.Slice)
		}
		for _, sp := range d.Suffix {
			l.bindNames(sp)
		}
	case host.OrPatData:
		for _, sp := range d.Pats {
			l.bindNames(sp)
		}
	}
}
