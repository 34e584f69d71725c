package lower

import (
	"fmt"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/portable"
)

// mapEnum maps a closed host enumeration through a table indexed by the host
// value. Values past the table are fatal.
func mapEnum[H ~uint8, P any](l *lowerer, table []P, k H, what string) (P, error) {
	if int(k) < len(table) {
		return table[k], nil
	}
	var zero P
	return zero, l.fatalf(diag.ExpFatalUnexpectedNode, "unknown %s %d", what, k)
}

// payload asserts the kind-specific data of a host node.
func payload[T any](l *lowerer, data any, what string) (T, error) {
	v, ok := data.(T)
	if !ok {
		var zero T
		return zero, l.fatalf(diag.ExpFatalUnexpectedNode, "%s: payload %T, want %T", what, data, zero)
	}
	return v, nil
}

var (
	intTys   = [...]portable.IntTy{host.Isize: portable.Isize, host.I8: portable.I8, host.I16: portable.I16, host.I32: portable.I32, host.I64: portable.I64, host.I128: portable.I128}
	uintTys  = [...]portable.UintTy{host.Usize: portable.Usize, host.U8: portable.U8, host.U16: portable.U16, host.U32: portable.U32, host.U64: portable.U64, host.U128: portable.U128}
	floatTys = [...]portable.FloatTy{host.F32: portable.F32, host.F64: portable.F64}

	mutabilities = [...]portable.Mutability{host.Not: portable.Not, host.Mut: portable.Mut}

	regionKinds = [...]portable.RegionKind{
		host.ReEarlyBound:  portable.ReEarlyBound,
		host.ReLateBound:   portable.ReLateBound,
		host.ReFree:        portable.ReFree,
		host.ReStatic:      portable.ReStatic,
		host.ReVar:         portable.ReVar,
		host.RePlaceholder: portable.RePlaceholder,
		host.ReErased:      portable.ReErased,
		host.ReError:       portable.ReError,
	}

	aliasKinds = [...]portable.AliasKind{
		host.AliasProjection: portable.AliasProjection,
		host.AliasInherent:   portable.AliasInherent,
		host.AliasOpaque:     portable.AliasOpaque,
		host.AliasWeak:       portable.AliasWeak,
	}
)

func (l *lowerer) mutability(m host.Mutability) (portable.Mutability, error) {
	return mapEnum(l, mutabilities[:], m, "mutability")
}

func (l *lowerer) region(r host.Region) (portable.Region, error) {
	kind, err := mapEnum(l, regionKinds[:], r.Kind, "region kind")
	if err != nil {
		return portable.Region{}, err
	}
	return portable.Region{Kind: kind, Index: r.Index, Name: r.Name}, nil
}

func (l *lowerer) regionPtr(r host.Region) (*portable.Region, error) {
	out, err := l.region(r)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// lowerTy translates a host type. Function items, function pointers and
// closures all become arrows.
func (l *lowerer) lowerTy(t host.Ty) (portable.Ty, error) {
	switch t.Kind {
	case host.TyBool:
		return portable.Ty{Kind: portable.TyBool}, nil
	case host.TyChar:
		return portable.Ty{Kind: portable.TyChar}, nil
	case host.TyStr:
		return portable.Ty{Kind: portable.TyStr}, nil
	case host.TyNever:
		return portable.Ty{Kind: portable.TyNever}, nil
	case host.TyError:
		return portable.Ty{Kind: portable.TyError}, nil

	case host.TyInt:
		d, err := payload[host.IntData](l, t.Data, "int type")
		if err != nil {
			return portable.Ty{}, err
		}
		it, err := mapEnum(l, intTys[:], d.Int, "int type")
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyInt, Data: portable.IntData{Int: it}}, nil

	case host.TyUint:
		d, err := payload[host.UintData](l, t.Data, "uint type")
		if err != nil {
			return portable.Ty{}, err
		}
		ut, err := mapEnum(l, uintTys[:], d.Uint, "uint type")
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyUint, Data: portable.UintData{Uint: ut}}, nil

	case host.TyFloat:
		d, err := payload[host.FloatData](l, t.Data, "float type")
		if err != nil {
			return portable.Ty{}, err
		}
		ft, err := mapEnum(l, floatTys[:], d.Float, "float type")
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyFloat, Data: portable.FloatData{Float: ft}}, nil

	case host.TyAdt:
		d, err := payload[host.AdtData](l, t.Data, "adt type")
		if err != nil {
			return portable.Ty{}, err
		}
		named, err := l.named(d.Def, d.Args)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyNamed, Data: named}, nil

	case host.TyForeign:
		d, err := payload[host.ForeignData](l, t.Data, "foreign type")
		if err != nil {
			return portable.Ty{}, err
		}
		named, err := l.named(d.Def, nil)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyForeign, Data: named}, nil

	case host.TyArray:
		d, err := payload[host.ArrayData](l, t.Data, "array type")
		if err != nil {
			return portable.Ty{}, err
		}
		elem, err := l.lowerTy(d.Elem)
		if err != nil {
			return portable.Ty{}, err
		}
		n, err := l.lowerConst(d.Len)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyArray, Data: portable.ArrayData{Elem: elem, Len: n}}, nil

	case host.TySlice:
		d, err := payload[host.SliceData](l, t.Data, "slice type")
		if err != nil {
			return portable.Ty{}, err
		}
		elem, err := l.lowerTy(d.Elem)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TySlice, Data: portable.ElemData{Elem: elem}}, nil

	case host.TyRawPtr:
		d, err := payload[host.RawPtrData](l, t.Data, "raw pointer type")
		if err != nil {
			return portable.Ty{}, err
		}
		elem, err := l.lowerTy(d.Elem)
		if err != nil {
			return portable.Ty{}, err
		}
		m, err := l.mutability(d.Mutbl)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyRawPtr, Data: portable.ElemData{Elem: elem, Mutbl: m}}, nil

	case host.TyRef:
		d, err := payload[host.RefData](l, t.Data, "reference type")
		if err != nil {
			return portable.Ty{}, err
		}
		r, err := l.region(d.Region)
		if err != nil {
			return portable.Ty{}, err
		}
		elem, err := l.lowerTy(d.Elem)
		if err != nil {
			return portable.Ty{}, err
		}
		m, err := l.mutability(d.Mutbl)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyRef, Data: portable.RefData{Region: r, Elem: elem, Mutbl: m}}, nil

	case host.TyFnDef:
		d, err := payload[host.FnDefData](l, t.Data, "function item type")
		if err != nil {
			return portable.Ty{}, err
		}
		sig, err := l.prog.FnSig(d.Def)
		if err != nil {
			return portable.Ty{}, l.hostErr("signature of "+d.Def.String(), err)
		}
		return l.arrow(*sig)

	case host.TyFnPtr:
		d, err := payload[host.FnPtrData](l, t.Data, "function pointer type")
		if err != nil {
			return portable.Ty{}, err
		}
		return l.arrow(d.Sig)

	case host.TyClosure:
		d, err := payload[host.ClosureData](l, t.Data, "closure type")
		if err != nil {
			return portable.Ty{}, err
		}
		return l.arrow(d.Sig)

	case host.TyDynamic:
		d, err := payload[host.DynamicData](l, t.Data, "dynamic type")
		if err != nil {
			return portable.Ty{}, err
		}
		traits := make([]portable.TraitRef, 0, len(d.Traits))
		for _, tr := range d.Traits {
			ptr, err := l.traitRef(tr)
			if err != nil {
				return portable.Ty{}, err
			}
			traits = append(traits, ptr)
		}
		r, err := l.region(d.Region)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyDynamic, Data: portable.DynamicData{Traits: traits, Region: r}}, nil

	case host.TyGenerator:
		d, err := payload[host.GeneratorData](l, t.Data, "generator type")
		if err != nil {
			return portable.Ty{}, err
		}
		id, err := l.defID(d.Def)
		if err != nil {
			return portable.Ty{}, err
		}
		args, err := l.genericArgs(d.Args)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyGenerator, Data: portable.GeneratorData{DefID: id, GenericArgs: args, Movable: d.Movable}}, nil

	case host.TyTuple:
		d, err := payload[host.TupleData](l, t.Data, "tuple type")
		if err != nil {
			return portable.Ty{}, err
		}
		elems, err := l.lowerTys(d.Elems)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyTuple, Data: portable.TupleData{Elems: elems}}, nil

	case host.TyAlias:
		d, err := payload[host.AliasData](l, t.Data, "alias type")
		if err != nil {
			return portable.Ty{}, err
		}
		alias, err := l.alias(d)
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyAlias, Data: alias}, nil

	case host.TyParam:
		d, err := payload[host.ParamData](l, t.Data, "type parameter")
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyParam, Data: portable.ParamData{Index: d.Index, Name: d.Name}}, nil

	case host.TyBound:
		d, err := payload[host.BoundData](l, t.Data, "bound type")
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyBound, Data: portable.BoundData{Index: d.Debruijn, Var: d.Var, Name: d.Name}}, nil

	case host.TyPlaceholder:
		d, err := payload[host.PlaceholderData](l, t.Data, "placeholder type")
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyPlaceholder, Data: portable.BoundData{Index: d.Universe, Var: d.Var}}, nil

	case host.TyInfer:
		d, err := payload[host.InferData](l, t.Data, "inference variable")
		if err != nil {
			return portable.Ty{}, err
		}
		return portable.Ty{Kind: portable.TyInfer, Data: portable.TextData{Text: d.Text}}, nil

	case host.TyGeneratorWitness:
		text := "GeneratorWitness"
		if d, ok := t.Data.(host.InferData); ok {
			text += "(" + d.Text + ")"
		}
		return todoTy(text), nil
	}
	return todoTy(fmt.Sprintf("TyKind(%d)", t.Kind)), nil
}

func todoTy(text string) portable.Ty {
	return portable.Ty{Kind: portable.TyTodo, Data: portable.TextData{Text: text}}
}

func (l *lowerer) lowerTys(ts []host.Ty) ([]portable.Ty, error) {
	out := make([]portable.Ty, 0, len(ts))
	for _, t := range ts {
		pt, err := l.lowerTy(t)
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, nil
}

func (l *lowerer) lowerTyPtr(t *host.Ty) (*portable.Ty, error) {
	if t == nil {
		return nil, nil
	}
	out, err := l.lowerTy(*t)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *lowerer) named(def host.DefID, args []host.GenericArg) (portable.NamedData, error) {
	id, err := l.defID(def)
	if err != nil {
		return portable.NamedData{}, err
	}
	pargs, err := l.genericArgs(args)
	if err != nil {
		return portable.NamedData{}, err
	}
	return portable.NamedData{DefID: id, GenericArgs: pargs}, nil
}

func (l *lowerer) arrow(sig host.FnSig) (portable.Ty, error) {
	params, err := l.lowerTys(sig.Inputs)
	if err != nil {
		return portable.Ty{}, err
	}
	ret, err := l.lowerTy(sig.Output)
	if err != nil {
		return portable.Ty{}, err
	}
	return portable.Ty{Kind: portable.TyArrow, Data: portable.ArrowData{Params: params, Ret: ret}}, nil
}

func (l *lowerer) traitRef(tr host.TraitRef) (portable.TraitRef, error) {
	id, err := l.defID(tr.Def)
	if err != nil {
		return portable.TraitRef{}, err
	}
	args, err := l.genericArgs(tr.Args)
	if err != nil {
		return portable.TraitRef{}, err
	}
	return portable.TraitRef{DefID: id, GenericArgs: args}, nil
}

func (l *lowerer) aliasTy(def host.DefID, args []host.GenericArg) (portable.AliasTy, error) {
	id, err := l.defID(def)
	if err != nil {
		return portable.AliasTy{}, err
	}
	pargs, err := l.genericArgs(args)
	if err != nil {
		return portable.AliasTy{}, err
	}
	return portable.AliasTy{DefID: id, GenericArgs: pargs}, nil
}

func (l *lowerer) alias(d host.AliasData) (portable.AliasData, error) {
	kind, err := mapEnum(l, aliasKinds[:], d.Kind, "alias kind")
	if err != nil {
		return portable.AliasData{}, err
	}
	a, err := l.aliasTy(d.Def, d.Args)
	if err != nil {
		return portable.AliasData{}, err
	}
	return portable.AliasData{Kind: kind, Alias: a}, nil
}

func (l *lowerer) genericArgs(args []host.GenericArg) ([]portable.GenericArg, error) {
	out := make([]portable.GenericArg, 0, len(args))
	for _, a := range args {
		switch a.Kind {
		case host.ArgLifetime:
			r, err := l.regionPtr(a.Lifetime)
			if err != nil {
				return nil, err
			}
			out = append(out, portable.GenericArg{Kind: portable.ArgLifetime, Lifetime: r})
		case host.ArgType:
			if a.Type == nil {
				return nil, l.fatalf(diag.ExpFatalUnexpectedNode, "type argument without a type")
			}
			t, err := l.lowerTy(*a.Type)
			if err != nil {
				return nil, err
			}
			out = append(out, portable.GenericArg{Kind: portable.ArgType, Type: &t})
		case host.ArgConst:
			if a.Const == nil {
				return nil, l.fatalf(diag.ExpFatalUnexpectedNode, "const argument without a constant")
			}
			c, err := l.lowerConst(*a.Const)
			if err != nil {
				return nil, err
			}
			out = append(out, portable.GenericArg{Kind: portable.ArgConst, Const: c})
		default:
			return nil, l.fatalf(diag.ExpFatalUnexpectedNode, "generic argument kind %d", a.Kind)
		}
	}
	return out, nil
}
