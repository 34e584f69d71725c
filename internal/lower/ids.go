package lower

import (
	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/ident"
	"portast/internal/portable"
	"portast/internal/source"
)

var pathItemKinds = [...]ident.DefPathItemKind{
	host.PathCrateRoot:        ident.CrateRoot,
	host.PathImpl:             ident.Impl,
	host.PathForeignMod:       ident.ForeignMod,
	host.PathUse:              ident.Use,
	host.PathGlobalAsm:        ident.GlobalAsm,
	host.PathTypeNs:           ident.TypeNs,
	host.PathValueNs:          ident.ValueNs,
	host.PathMacroNs:          ident.MacroNs,
	host.PathLifetimeNs:       ident.LifetimeNs,
	host.PathClosureExpr:      ident.ClosureExpr,
	host.PathCtor:             ident.Ctor,
	host.PathAnonConst:        ident.AnonConst,
	host.PathImplTrait:        ident.ImplTrait,
	host.PathImplTraitAssocTy: ident.ImplTraitAssocTy,
}

// translateSpan resolves a host span without recording it.
func (x *Exporter) translateSpan(sp host.Span) (source.Span, error) {
	loc, err := x.prog.LookupSpan(sp)
	if err != nil {
		return source.Span{}, err
	}
	return source.Span{Lo: loc.Lo, Hi: loc.Hi, Filename: loc.File}, nil
}

// translateDefID asks the host for the def path of id. The result is built
// fresh on every call.
func (x *Exporter) translateDefID(id host.DefID) (ident.DefID, error) {
	path, err := x.prog.DefPath(id)
	if err != nil {
		return ident.DefID{}, err
	}
	out := ident.DefID{
		Krate: ident.Name(path.Krate),
		Path:  make([]ident.DisambiguatedItem, 0, len(path.Data)),
	}
	for _, seg := range path.Data {
		if int(seg.Kind) >= len(pathItemKinds) {
			return ident.DefID{}, &FatalError{
				Code: diag.ExpFatalUnexpectedNode,
				Msg:  "unknown def path segment in " + id.String(),
			}
		}
		item := ident.DefPathItem{Kind: pathItemKinds[seg.Kind]}
		if item.Kind.Named() {
			item.Name = ident.Name(seg.Name)
		}
		out.Path = append(out.Path, ident.DisambiguatedItem{Data: item, Disambiguator: seg.Disambiguator})
	}
	return out, nil
}

// span translates sp and records it as exported.
func (l *lowerer) span(sp host.Span) (source.Span, error) {
	out, err := l.x.translateSpan(sp)
	if err != nil {
		return source.Span{}, l.hostErr("span", err)
	}
	l.spans.Insert(out)
	return out, nil
}

// spanPtr is span for optional host spans.
func (l *lowerer) spanPtr(sp *host.Span) (*source.Span, error) {
	if sp == nil {
		return nil, nil
	}
	out, err := l.span(*sp)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// enter moves the error location to sp and returns the recorded span.
func (l *lowerer) enter(sp host.Span) (source.Span, error) {
	out, err := l.span(sp)
	if err != nil {
		return source.Span{}, err
	}
	l.at = out
	return out, nil
}

func (l *lowerer) defID(id host.DefID) (ident.DefID, error) {
	out, err := l.x.translateDefID(id)
	if err != nil {
		if fe, ok := AsFatal(err); ok {
			fe.Span = l.at
			return ident.DefID{}, fe
		}
		return ident.DefID{}, l.hostErr("def path of "+id.String(), err)
	}
	return out, nil
}

func (l *lowerer) defIDPtr(id *host.DefID) (*ident.DefID, error) {
	if id == nil {
		return nil, nil
	}
	out, err := l.defID(*id)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (l *lowerer) hirID(h host.HirID) (portable.HirID, error) {
	owner, err := l.defID(h.Owner)
	if err != nil {
		return portable.HirID{}, err
	}
	return portable.HirID{Owner: owner, Local: h.Local}, nil
}

func (l *lowerer) hirIDPtr(h *host.HirID) (*portable.HirID, error) {
	if h == nil {
		return nil, nil
	}
	out, err := l.hirID(*h)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// localIdent names a local variable. The name must have been bound by a
// pattern lowered earlier in the same body.
func (l *lowerer) localIdent(v host.LocalVarID) (portable.LocalIdent, error) {
	name, ok := l.locals[v]
	if !ok {
		return portable.LocalIdent{}, l.fatalf(diag.ExpFatalUnknownLocal, "local %d of %s was never bound", v.Local, v.Owner)
	}
	id, err := l.hirID(host.HirID(v))
	if err != nil {
		return portable.LocalIdent{}, err
	}
	return portable.LocalIdent{Name: name, ID: id}, nil
}

// ownerHirID is the syntax node of a definition itself.
func ownerHirID(id host.DefID) host.HirID {
	return host.HirID{Owner: id}
}
