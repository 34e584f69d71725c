package lower

import (
	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/ident"
	"portast/internal/portable"
)

var (
	useKinds     = [...]portable.UseKind{host.UseSingle: portable.UseSingle, host.UseGlob: portable.UseGlob, host.UseListStem: portable.UseListStem}
	macroKinds   = [...]portable.MacroKind{host.MacroBang: portable.MacroBang, host.MacroAttr: portable.MacroAttr, host.MacroDerive: portable.MacroDerive}
	foreignKinds = [...]portable.ForeignItemKind{host.ForeignFn: portable.ForeignFn, host.ForeignStatic: portable.ForeignStatic, host.ForeignType: portable.ForeignType}
	variantKinds = [...]portable.VariantDataKind{host.VariantStruct: portable.VariantStruct, host.VariantTuple: portable.VariantTuple, host.VariantUnit: portable.VariantUnit}
	origins      = [...]portable.OpaqueOrigin{host.OriginFnReturn: portable.OriginFnReturn, host.OriginAsyncFn: portable.OriginAsyncFn, host.OriginTyAlias: portable.OriginTyAlias}

	expnKinds = [...]portable.ExpnKind{
		host.ExpnRoot:       portable.ExpnRoot,
		host.ExpnMacro:      portable.ExpnMacro,
		host.ExpnAstPass:    portable.ExpnAstPass,
		host.ExpnDesugaring: portable.ExpnDesugaring,
		host.ExpnInlined:    portable.ExpnInlined,
	}
	traitItemKinds = [...]portable.TraitItemKind{
		host.TraitItemConst:      portable.TraitItemConst,
		host.TraitItemRequiredFn: portable.TraitItemRequiredFn,
		host.TraitItemProvidedFn: portable.TraitItemProvidedFn,
		host.TraitItemType:       portable.TraitItemType,
	}
	implItemKinds = [...]portable.ImplItemKind{
		host.ImplItemConst: portable.ImplItemConst,
		host.ImplItemFn:    portable.ImplItemFn,
		host.ImplItemType:  portable.ImplItemType,
	}
	selfKinds = [...]string{
		host.SelfImm:    "Imm",
		host.SelfMut:    "Mut",
		host.SelfImmRef: "ImmRef",
		host.SelfMutRef: "MutRef",
		host.SelfNone:   "None",
	}
)

// lowerItem lowers the declaration id.
func (l *lowerer) lowerItem(id host.DefID) (portable.Item, error) {
	it, err := l.prog.Item(id)
	if err != nil {
		return portable.Item{}, l.hostErr("item "+id.String(), err)
	}
	var out portable.Item
	err = l.withOwner(it.Owner, func() error {
		var err error
		if out.Span, err = l.enter(it.Span); err != nil {
			return err
		}
		if out.VisSpan, err = l.span(it.VisSpan); err != nil {
			return err
		}
		if out.OwnerID, err = l.defID(it.Owner); err != nil {
			return err
		}
		if path := out.OwnerID.QualifiedPath(); path[len(path)-1] == ident.Name(it.Name) {
			def := out.OwnerID
			out.DefID = &def
		}
		if out.Attributes, err = l.attrsOf(ownerHirID(it.Owner)); err != nil {
			return err
		}
		if out.ExpnBacktrace, err = l.backtrace(it.Span); err != nil {
			return err
		}
		out.Kind, out.Data, err = l.itemContents(it)
		return err
	})
	if err != nil {
		return portable.Item{}, err
	}
	return out, nil
}

// backtrace lists the expansions sp went through.
func (l *lowerer) backtrace(sp host.Span) ([]portable.ExpnData, error) {
	bt := l.prog.MacroBacktrace(sp)
	out := make([]portable.ExpnData, 0, len(bt))
	for _, e := range bt {
		pe, err := l.expnData(e)
		if err != nil {
			return nil, err
		}
		out = append(out, pe)
	}
	return out, nil
}

func (l *lowerer) expnData(e host.ExpnData) (portable.ExpnData, error) {
	var (
		out = portable.ExpnData{
			Name:                e.Name,
			Edition:             e.Edition,
			AllowInternalUnsafe: e.AllowInternalUnsafe,
			LocalInnerMacros:    e.LocalInnerMacros,
			CollapseDebuginfo:   e.CollapseDebuginfo,
		}
		err error
	)
	if out.Kind, err = mapEnum(l, expnKinds[:], e.Kind, "expansion kind"); err != nil {
		return out, err
	}
	if out.MacroKind, err = mapEnum(l, macroKinds[:], e.MacroKind, "macro kind"); err != nil {
		return out, err
	}
	if out.MacroDefID, err = l.defIDPtr(e.MacroDef); err != nil {
		return out, err
	}
	if out.CallSite, err = l.span(e.CallSite); err != nil {
		return out, err
	}
	if out.DefSite, err = l.span(e.DefSite); err != nil {
		return out, err
	}
	if out.ParentModule, err = l.defIDPtr(e.ParentModule); err != nil {
		return out, err
	}
	return out, nil
}

func (l *lowerer) itemContents(it *host.Item) (portable.ItemKind, portable.ItemData, error) {
	name := ident.Name(it.Name)
	switch it.Kind {
	case host.ItemExternCrate:
		d, err := payload[host.ExternCrateData](l, it.Data, "extern crate")
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemExternCrate, portable.ExternCrateData{Name: name, OrigName: d.OrigName}, nil

	case host.ItemUse:
		d, err := payload[host.UseData](l, it.Data, "use")
		if err != nil {
			return 0, nil, err
		}
		kind, err := mapEnum(l, useKinds[:], d.Kind, "use kind")
		if err != nil {
			return 0, nil, err
		}
		path, err := l.usePath(d.Path, name, kind)
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemUse, portable.UseData{Path: path, Kind: kind}, nil

	case host.ItemStatic:
		d, err := payload[host.StaticData](l, it.Data, "static")
		if err != nil {
			return 0, nil, err
		}
		ty, err := l.lowerTy(d.Ty)
		if err != nil {
			return 0, nil, err
		}
		m, err := l.mutability(d.Mutbl)
		if err != nil {
			return 0, nil, err
		}
		body, _, err := l.inspectBody(d.Body)
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemStatic, portable.StaticData{Name: name, Ty: ty, Mutbl: m, Body: body}, nil

	case host.ItemConst:
		d, err := payload[host.ConstData](l, it.Data, "const")
		if err != nil {
			return 0, nil, err
		}
		ty, err := l.lowerTy(d.Ty)
		if err != nil {
			return 0, nil, err
		}
		body, _, err := l.inspectBody(d.Body)
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemConst, portable.ConstData{Name: name, Ty: ty, Body: body}, nil

	case host.ItemFn:
		d, err := payload[host.FnData](l, it.Data, "fn")
		if err != nil {
			return 0, nil, err
		}
		def, err := l.fnDef(d.Sig, d.Generics, d.Body, it.Owner)
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemFn, portable.FnData{Name: name, Def: def}, nil

	case host.ItemMacro:
		d, err := payload[host.MacroData](l, it.Data, "macro")
		if err != nil {
			return 0, nil, err
		}
		kind, err := mapEnum(l, macroKinds[:], d.Kind, "macro kind")
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemMacro, portable.MacroDefData{Name: name, Body: d.Body, MacroRules: d.MacroRules, Kind: kind}, nil

	case host.ItemMod:
		d, err := payload[host.ModData](l, it.Data, "mod")
		if err != nil {
			return 0, nil, err
		}
		inner, err := l.span(d.Inner)
		if err != nil {
			return 0, nil, err
		}
		// children land in this item's staging set: a failing module
		// exports none of their spans either
		items, err := l.x.exportItems(l.ctx, l.spans, d.Items)
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemMod, portable.ModData{Name: name, Inner: inner, Items: items}, nil

	case host.ItemForeignMod:
		d, err := payload[host.ForeignModData](l, it.Data, "foreign mod")
		if err != nil {
			return 0, nil, err
		}
		items := make([]portable.ForeignItem, 0, len(d.Items))
		for _, fi := range d.Items {
			var pfi portable.ForeignItem
			err := l.withOwner(fi.Owner, func() error {
				var err error
				pfi, err = l.foreignItem(fi)
				return err
			})
			if err != nil {
				return 0, nil, err
			}
			items = append(items, pfi)
		}
		return portable.ItemForeignMod, portable.ForeignModData{Abi: d.Abi, Items: items}, nil

	case host.ItemGlobalAsm:
		d, err := payload[host.GlobalAsmData](l, it.Data, "global asm")
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemGlobalAsm, portable.GlobalAsmData{Text: d.Text}, nil

	case host.ItemTyAlias:
		d, err := payload[host.TyAliasData](l, it.Data, "type alias")
		if err != nil {
			return 0, nil, err
		}
		ty, err := l.lowerTy(d.Ty)
		if err != nil {
			return 0, nil, err
		}
		g, err := l.generics(d.Generics, it.Owner)
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemTyAlias, portable.TyAliasData{Name: name, Ty: ty, Generics: g}, nil

	case host.ItemOpaqueTy:
		d, err := payload[host.OpaqueTyData](l, it.Data, "opaque type")
		if err != nil {
			return 0, nil, err
		}
		g, err := l.generics(d.Generics, it.Owner)
		if err != nil {
			return 0, nil, err
		}
		origin, err := mapEnum(l, origins[:], d.Origin, "opaque type origin")
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemOpaqueTy, portable.OpaqueTyData{Generics: g, Bounds: g.Bounds, Origin: origin, InTrait: d.InTrait}, nil

	case host.ItemEnum:
		d, err := payload[host.EnumData](l, it.Data, "enum")
		if err != nil {
			return 0, nil, err
		}
		variants := make([]portable.Variant, 0, len(d.Variants))
		for _, v := range d.Variants {
			pv, err := l.variant(v)
			if err != nil {
				return 0, nil, err
			}
			variants = append(variants, pv)
		}
		g, err := l.generics(d.Generics, it.Owner)
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemEnum, portable.EnumData{Name: name, Variants: variants, Generics: g}, nil

	case host.ItemStruct, host.ItemUnion:
		d, err := payload[host.StructData](l, it.Data, "struct")
		if err != nil {
			return 0, nil, err
		}
		vd, err := l.variantData(d.Data)
		if err != nil {
			return 0, nil, err
		}
		g, err := l.generics(d.Generics, it.Owner)
		if err != nil {
			return 0, nil, err
		}
		kind := portable.ItemStruct
		if it.Kind == host.ItemUnion {
			kind = portable.ItemUnion
		}
		return kind, portable.StructData{Name: name, Data: vd, Generics: g}, nil

	case host.ItemTrait:
		d, err := payload[host.TraitData](l, it.Data, "trait")
		if err != nil {
			return 0, nil, err
		}
		g, err := l.generics(d.Generics, it.Owner)
		if err != nil {
			return 0, nil, err
		}
		items := make([]portable.TraitItem, 0, len(d.Items))
		for _, ti := range d.Items {
			var pti portable.TraitItem
			err := l.withOwner(ti.Owner, func() error {
				var err error
				pti, err = l.traitItem(ti)
				return err
			})
			if err != nil {
				return 0, nil, err
			}
			items = append(items, pti)
		}
		return portable.ItemTrait, portable.TraitData{
			Name:     name,
			IsAuto:   d.IsAuto,
			Unsafe:   d.Unsafe,
			Generics: g,
			Bounds:   g.Bounds,
			Items:    items,
		}, nil

	case host.ItemTraitAlias:
		d, err := payload[host.TraitAliasData](l, it.Data, "trait alias")
		if err != nil {
			return 0, nil, err
		}
		g, err := l.generics(d.Generics, it.Owner)
		if err != nil {
			return 0, nil, err
		}
		return portable.ItemTraitAlias, portable.TraitAliasData{Name: name, Generics: g, Bounds: g.Bounds}, nil

	case host.ItemImpl:
		d, err := payload[host.ImplData](l, it.Data, "impl")
		if err != nil {
			return 0, nil, err
		}
		return l.impl(it.Owner, d)
	}
	return 0, nil, l.fatalf(diag.ExpFatalUnexpectedNode, "item kind %d", it.Kind)
}

func (l *lowerer) usePath(p host.UsePath, name string, kind portable.UseKind) (portable.UsePath, error) {
	sp, err := l.span(p.Span)
	if err != nil {
		return portable.UsePath{}, err
	}
	out := portable.UsePath{
		Span:     sp,
		Res:      make([]portable.Res, 0, len(p.Res)),
		Segments: make([]portable.PathSegment, 0, len(p.Segments)),
	}
	for _, r := range p.Res {
		pr, err := l.res(r)
		if err != nil {
			return portable.UsePath{}, err
		}
		out.Res = append(out.Res, pr)
	}
	for _, seg := range p.Segments {
		pr, err := l.res(seg.Res)
		if err != nil {
			return portable.UsePath{}, err
		}
		ssp, err := l.span(seg.Span)
		if err != nil {
			return portable.UsePath{}, err
		}
		out.Segments = append(out.Segments, portable.PathSegment{Ident: ident.Name(seg.Name), Res: pr, Span: ssp})
	}
	if kind == portable.UseSingle && len(out.Segments) > 0 && out.Segments[len(out.Segments)-1].Ident != name {
		out.Rename = &name
	}
	return out, nil
}

func (l *lowerer) res(r host.Res) (portable.Res, error) {
	def, err := l.defIDPtr(r.Def)
	if err != nil {
		return portable.Res{}, err
	}
	return portable.Res{Kind: r.Kind, DefID: def}, nil
}

// inspectBody lowers the typed body of def with a fresh set of local names.
func (l *lowerer) inspectBody(def host.DefID) (*portable.Expr, []portable.Param, error) {
	body, err := l.prog.Body(def)
	if err != nil {
		return nil, nil, l.hostErr("body of "+def.String(), err)
	}
	var (
		value  *portable.Expr
		params []portable.Param
	)
	err = l.withOwner(body.Owner, func() error {
		outerBody, outerLocals := l.body, l.locals
		l.body, l.locals = body, make(map[host.LocalVarID]string)
		defer func() { l.body, l.locals = outerBody, outerLocals }()

		var err error
		if params, err = l.params(body.Params); err != nil {
			return err
		}
		value, err = l.lowerExpr(body.Value)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return value, params, nil
}

func (l *lowerer) params(ps []host.Param) ([]portable.Param, error) {
	out := make([]portable.Param, 0, len(ps))
	for _, p := range ps {
		var (
			pp  = portable.Param{Attributes: []portable.Attribute{}}
			err error
		)
		if pp.Pat, err = l.lowerPatPtr(p.Pat); err != nil {
			return nil, err
		}
		if pp.Ty, err = l.lowerTy(p.Ty); err != nil {
			return nil, err
		}
		if pp.TySpan, err = l.spanPtr(p.TySpan); err != nil {
			return nil, err
		}
		if p.SelfKind != nil {
			k, err := mapEnum(l, selfKinds[:], *p.SelfKind, "self kind")
			if err != nil {
				return nil, err
			}
			pp.SelfKind = &k
		}
		if p.HirID != nil {
			if pp.HirID, err = l.hirIDPtr(p.HirID); err != nil {
				return nil, err
			}
			if pp.Attributes, err = l.attrsOf(*p.HirID); err != nil {
				return nil, err
			}
		}
		out = append(out, pp)
	}
	return out, nil
}

func fnHeader(h host.FnHeader) portable.FnHeader {
	return portable.FnHeader{Unsafe: h.Unsafe, Const: h.Const, Async: h.Async, Abi: h.Abi}
}

// fnDef lowers a function with a body: signature, generics and the typed body.
func (l *lowerer) fnDef(sig host.FnSigDecl, g host.Generics, body, owner host.DefID) (portable.FnDef, error) {
	var (
		out = portable.FnDef{Header: fnHeader(sig.Header)}
		err error
	)
	if out.SigSpan, err = l.span(sig.Span); err != nil {
		return out, err
	}
	if out.Generics, err = l.generics(g, owner); err != nil {
		return out, err
	}
	if out.Ret, err = l.ret(sig.Decl); err != nil {
		return out, err
	}
	if out.Body, out.Params, err = l.inspectBody(body); err != nil {
		return out, err
	}
	return out, nil
}

// ret is the declared return type; nothing declared means unit.
func (l *lowerer) ret(d host.FnDecl) (portable.Ty, error) {
	if d.Output == nil {
		return portable.UnitTy(), nil
	}
	return l.lowerTy(*d.Output)
}

func (l *lowerer) fnDecl(sig host.FnSigDecl) (*portable.FnDecl, error) {
	inputs, err := l.lowerTys(sig.Decl.Inputs)
	if err != nil {
		return nil, err
	}
	output, err := l.ret(sig.Decl)
	if err != nil {
		return nil, err
	}
	return &portable.FnDecl{Header: fnHeader(sig.Header), Inputs: inputs, Output: output, CVariadic: sig.Decl.CVariadic}, nil
}

func (l *lowerer) foreignItem(fi host.ForeignItem) (portable.ForeignItem, error) {
	var (
		out = portable.ForeignItem{Name: ident.Name(fi.Name)}
		err error
	)
	if out.OwnerID, err = l.defID(fi.Owner); err != nil {
		return out, err
	}
	if out.Kind, err = mapEnum(l, foreignKinds[:], fi.Kind, "foreign item kind"); err != nil {
		return out, err
	}
	if out.Span, err = l.span(fi.Span); err != nil {
		return out, err
	}
	if out.VisSpan, err = l.span(fi.VisSpan); err != nil {
		return out, err
	}
	if out.Generics, err = l.generics(fi.Generics, fi.Owner); err != nil {
		return out, err
	}
	switch out.Kind {
	case portable.ForeignFn:
		if out.Decl, err = l.fnDecl(host.FnSigDecl{Decl: fi.Decl}); err != nil {
			return out, err
		}
		out.ParamNames = fi.ParamNames
	case portable.ForeignStatic:
		if out.Ty, err = l.lowerTyPtr(fi.Ty); err != nil {
			return out, err
		}
		if out.Mutbl, err = l.mutability(fi.Mutbl); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (l *lowerer) variantData(vd host.VariantData) (portable.VariantData, error) {
	kind, err := mapEnum(l, variantKinds[:], vd.Kind, "variant data kind")
	if err != nil {
		return portable.VariantData{}, err
	}
	out := portable.VariantData{Kind: kind, Fields: make([]portable.FieldDef, 0, len(vd.Fields))}
	for _, f := range vd.Fields {
		pf := portable.FieldDef{}
		if kind == portable.VariantStruct {
			name := ident.Name(f.Name)
			pf.Name = &name
		}
		if pf.HirID, err = l.hirID(f.HirID); err != nil {
			return portable.VariantData{}, err
		}
		if pf.DefID, err = l.defID(f.Def); err != nil {
			return portable.VariantData{}, err
		}
		if pf.Ty, err = l.lowerTy(f.Ty); err != nil {
			return portable.VariantData{}, err
		}
		if pf.Span, err = l.span(f.Span); err != nil {
			return portable.VariantData{}, err
		}
		if pf.Attributes, err = l.attributes(f.Attrs); err != nil {
			return portable.VariantData{}, err
		}
		out.Fields = append(out.Fields, pf)
	}
	if out.Ctor, err = l.defIDPtr(vd.Ctor); err != nil {
		return portable.VariantData{}, err
	}
	return out, nil
}

func (l *lowerer) variant(v host.HirVariant) (portable.Variant, error) {
	var (
		out = portable.Variant{Name: ident.Name(v.Name)}
		err error
	)
	if out.DefID, err = l.defID(v.Def); err != nil {
		return out, err
	}
	if out.HirID, err = l.hirID(v.HirID); err != nil {
		return out, err
	}
	if out.Data, err = l.variantData(v.Data); err != nil {
		return out, err
	}
	if out.Disr, err = l.defIDPtr(v.Disr); err != nil {
		return out, err
	}
	if out.Span, err = l.span(v.Span); err != nil {
		return out, err
	}
	if out.Attributes, err = l.attributes(v.Attrs); err != nil {
		return out, err
	}
	return out, nil
}

func (l *lowerer) traitItem(ti host.TraitItem) (portable.TraitItem, error) {
	var (
		out = portable.TraitItem{Name: ident.Name(ti.Name)}
		err error
	)
	if out.OwnerID, err = l.defID(ti.Owner); err != nil {
		return out, err
	}
	if out.Kind, err = mapEnum(l, traitItemKinds[:], ti.Kind, "trait item kind"); err != nil {
		return out, err
	}
	if out.Span, err = l.enter(ti.Span); err != nil {
		return out, err
	}
	if out.Attributes, err = l.attrsOf(ti.HirID); err != nil {
		return out, err
	}
	if out.Generics, err = l.generics(ti.Generics, ti.Owner); err != nil {
		return out, err
	}
	switch out.Kind {
	case portable.TraitItemConst:
		if out.Ty, err = l.lowerTyPtr(ti.Ty); err != nil {
			return out, err
		}
		if ti.Body != nil {
			if out.Default, _, err = l.inspectBody(*ti.Body); err != nil {
				return out, err
			}
		}
	case portable.TraitItemRequiredFn:
		if out.Decl, err = l.fnDecl(ti.Sig); err != nil {
			return out, err
		}
		out.ParamNames = ti.ParamNames
	case portable.TraitItemProvidedFn:
		if ti.Body == nil {
			return out, l.fatalf(diag.ExpFatalUnexpectedNode, "provided method %s without a body", ti.Name)
		}
		fn, err := l.fnDef(ti.Sig, ti.Generics, *ti.Body, ti.Owner)
		if err != nil {
			return out, err
		}
		out.Fn = &fn
	case portable.TraitItemType:
		if out.Ty, err = l.lowerTyPtr(ti.Ty); err != nil {
			return out, err
		}
		bounds := out.Generics.Bounds
		out.Bounds = &bounds
	}
	return out, nil
}

func (l *lowerer) impl(owner host.DefID, d host.ImplData) (portable.ItemKind, portable.ItemData, error) {
	var (
		out = portable.ImplData{Unsafe: d.Unsafe, Negative: d.Negative, Default: d.Default, Const: d.Const}
		err error
	)
	if out.Generics, err = l.generics(d.Generics, owner); err != nil {
		return 0, nil, err
	}
	if tr, ok := l.prog.ImplTraitRef(owner); ok {
		ptr, err := l.traitRef(*tr)
		if err != nil {
			return 0, nil, err
		}
		out.OfTrait = &ptr
	}
	if out.SelfTy, err = l.lowerTy(d.SelfTy); err != nil {
		return 0, nil, err
	}
	out.Items = make([]portable.ImplItem, 0, len(d.Items))
	for _, ii := range d.Items {
		var pii portable.ImplItem
		err := l.withOwner(ii.Owner, func() error {
			var err error
			pii, err = l.implItem(ii)
			return err
		})
		if err != nil {
			return 0, nil, err
		}
		out.Items = append(out.Items, pii)
	}
	return portable.ItemImpl, out, nil
}

func (l *lowerer) implItem(ii host.ImplItem) (portable.ImplItem, error) {
	var (
		out = portable.ImplItem{Name: ident.Name(ii.Name)}
		err error
	)
	if out.OwnerID, err = l.defID(ii.Owner); err != nil {
		return out, err
	}
	if out.Kind, err = mapEnum(l, implItemKinds[:], ii.Kind, "impl item kind"); err != nil {
		return out, err
	}
	if out.Span, err = l.enter(ii.Span); err != nil {
		return out, err
	}
	if out.VisSpan, err = l.span(ii.VisSpan); err != nil {
		return out, err
	}
	if out.Attributes, err = l.attrsOf(ii.HirID); err != nil {
		return out, err
	}
	if out.Generics, err = l.generics(ii.Generics, ii.Owner); err != nil {
		return out, err
	}
	switch out.Kind {
	case portable.ImplItemConst:
		if out.Ty, err = l.lowerTyPtr(ii.Ty); err != nil {
			return out, err
		}
		if ii.Body != nil {
			if out.Body, _, err = l.inspectBody(*ii.Body); err != nil {
				return out, err
			}
		}
	case portable.ImplItemFn:
		if ii.Body == nil {
			return out, l.fatalf(diag.ExpFatalUnexpectedNode, "method %s without a body", ii.Name)
		}
		fn, err := l.fnDef(ii.Sig, ii.Generics, *ii.Body, ii.Owner)
		if err != nil {
			return out, err
		}
		out.Fn = &fn
	case portable.ImplItemType:
		if out.Ty, err = l.lowerTyPtr(ii.Ty); err != nil {
			return out, err
		}
	}
	return out, nil
}
