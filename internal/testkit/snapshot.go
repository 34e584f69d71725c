// Package testkit builds host snapshots by hand and checks invariants of the
// exported tree. It is meant for tests only.
package testkit

import (
	"fortio.org/safecast"

	"portast/internal/host"
	"portast/internal/source"
)

func index(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return v
}

// Builder assembles a host.Snapshot row by row. Every span it creates points
// into a single local file.
type Builder struct {
	Snap *host.Snapshot
	file uint32
	next uint32
}

// NewBuilder starts a snapshot of crate whose spans point at path.
func NewBuilder(crate, path string) *Builder {
	s := host.NewSnapshot(crate)
	s.Files = append(s.Files, source.LocalFile(path))
	return &Builder{Snap: s, file: index(len(s.Files) - 1), next: 1}
}

// Span adds a span of the root context.
func (b *Builder) Span(loLine, loCol, hiLine, hiCol uint32) host.Span {
	return b.SpanIn(host.RootExpn, loLine, loCol, hiLine, hiCol)
}

// SpanIn adds a span produced by expansion expn.
func (b *Builder) SpanIn(expn host.ExpnID, loLine, loCol, hiLine, hiCol uint32) host.Span {
	b.Snap.Spans = append(b.Snap.Spans, host.SpanEntry{
		File: b.file,
		Lo:   source.Loc{Line: loLine, Col: loCol},
		Hi:   source.Loc{Line: hiLine, Col: hiCol},
		Expn: expn,
	})
	return host.Span(index(len(b.Snap.Spans) - 1))
}

// Loc is the portable span the exporter produces for sp.
func (b *Builder) Loc(sp host.Span) source.Span {
	e := b.Snap.Spans[sp]
	return source.Span{Lo: e.Lo, Hi: e.Hi, Filename: b.Snap.Files[e.File]}
}

// Expn registers an expansion step.
func (b *Builder) Expn(e host.ExpnData) host.ExpnID {
	b.Snap.Expns = append(b.Snap.Expns, e)
	return host.ExpnID(index(len(b.Snap.Expns) - 1))
}

// MacroCall registers a bang macro invocation.
func (b *Builder) MacroCall(site, args host.Span) {
	b.Snap.Macros = append(b.Snap.Macros, host.MacroCall{CallSite: site, Args: args})
}

// Def adds a definition of the local crate.
func (b *Builder) Def(kind host.DefKind, path ...host.DefPathData) host.DefID {
	id := host.DefID{Index: b.next}
	b.next++
	b.Snap.Defs = append(b.Snap.Defs, host.DefEntry{
		ID:   id,
		Path: host.DefPath{Krate: b.Snap.Crate, Data: path},
		Kind: kind,
	})
	return id
}

// Value is a value-namespace path segment.
func Value(name string) host.DefPathData {
	return host.DefPathData{Kind: host.PathValueNs, Name: name}
}

// Type is a type-namespace path segment.
func Type(name string) host.DefPathData {
	return host.DefPathData{Kind: host.PathTypeNs, Name: name}
}

// Macro is a macro-namespace path segment.
func Macro(name string) host.DefPathData {
	return host.DefPathData{Kind: host.PathMacroNs, Name: name}
}

// Root adds items and lists them as top-level items of the crate.
func (b *Builder) Root(items ...host.Item) {
	for _, it := range items {
		b.Item(it)
		b.Snap.Roots = append(b.Snap.Roots, it.Owner)
	}
}

// Item adds an item that is not top-level (a module child, say).
func (b *Builder) Item(it host.Item) {
	b.Snap.Items = append(b.Snap.Items, it)
}

func (b *Builder) Body(body host.Body) {
	b.Snap.Bodies = append(b.Snap.Bodies, body)
}

func (b *Builder) Adt(adt host.AdtDef) {
	b.Snap.Adts = append(b.Snap.Adts, adt)
}

func (b *Builder) Sig(def host.DefID, sig host.FnSig) {
	b.Snap.Sigs = append(b.Snap.Sigs, host.SigEntry{Def: def, Sig: sig})
}

func (b *Builder) Predicates(def host.DefID, preds, bounds []host.Predicate) {
	b.Snap.PredicateEntries = append(b.Snap.PredicateEntries, host.PredicateEntry{Def: def, Predicates: preds, ItemBounds: bounds})
}

// Scope maps a region scope of owner to the syntax node hir.
func (b *Builder) Scope(owner host.DefID, scope host.RegionScope, hir host.HirID) {
	b.Snap.Scopes = append(b.Snap.Scopes, host.ScopeEntry{Owner: owner, Scope: scope, HirID: hir})
}

func (b *Builder) Attrs(hir host.HirID, attrs ...host.Attribute) {
	b.Snap.Attributes = append(b.Snap.Attributes, host.AttrEntry{HirID: hir, Attrs: attrs})
}

// Const records the folded value of a constant definition.
func (b *Builder) Const(def host.DefID, value host.ConstantKind) {
	b.Snap.Consts = append(b.Snap.Consts, host.ConstEntry{Def: def, Value: value})
}

// BodyBuilder fills the arenas of one typed body.
type BodyBuilder struct {
	body host.Body
}

func NewBody(owner host.DefID) *BodyBuilder {
	return &BodyBuilder{body: host.Body{Owner: owner}}
}

func (bb *BodyBuilder) Expr(kind host.ExprKind, ty host.Ty, sp host.Span, data host.ExprData) host.ExprID {
	bb.body.Exprs = append(bb.body.Exprs, host.Expr{Kind: kind, Ty: ty, Span: sp, Data: data})
	return host.ExprID(index(len(bb.body.Exprs) - 1))
}

// Scoped wraps inner in a scope marker of region, the way the host wraps
// every expression it builds.
func (bb *BodyBuilder) Scoped(region host.RegionScope, inner host.ExprID) host.ExprID {
	e := bb.body.Exprs[inner]
	return bb.Expr(host.ExprScope, e.Ty, e.Span, host.ScopeExprData{Region: region, Value: inner})
}

// VarRef references local v.
func (bb *BodyBuilder) VarRef(v host.LocalVarID, ty host.Ty, sp host.Span) host.ExprID {
	return bb.Expr(host.ExprVarRef, ty, sp, host.VarRefData{ID: v})
}

func (bb *BodyBuilder) Stmt(s host.Stmt) host.StmtID {
	bb.body.Stmts = append(bb.body.Stmts, s)
	return host.StmtID(index(len(bb.body.Stmts) - 1))
}

// Block adds a block and the expression holding it.
func (bb *BodyBuilder) Block(blk host.Block, ty host.Ty) host.ExprID {
	bb.body.Blocks = append(bb.body.Blocks, blk)
	id := host.BlockID(index(len(bb.body.Blocks) - 1))
	return bb.Expr(host.ExprBlock, ty, blk.Span, host.BlockData{Block: id})
}

func (bb *BodyBuilder) Arm(a host.Arm) host.ArmID {
	bb.body.Arms = append(bb.body.Arms, a)
	return host.ArmID(index(len(bb.body.Arms) - 1))
}

func (bb *BodyBuilder) Param(p host.Param) {
	bb.body.Params = append(bb.body.Params, p)
}

// Done sets the body value and returns the finished body.
func (bb *BodyBuilder) Done(value host.ExprID) host.Body {
	bb.body.Value = value
	return bb.body
}

// Binding is a by-value pattern binding name to v.
func Binding(v host.LocalVarID, name string, ty host.Ty, sp host.Span) host.Pat {
	return host.Pat{
		Kind: host.PatBinding,
		Ty:   ty,
		Span: sp,
		Data: host.BindingData{Name: name, Var: v, Ty: ty, IsPrimary: true},
	}
}

// Local is the variable bound at local id of owner.
func Local(owner host.DefID, id uint32) host.LocalVarID {
	return host.LocalVarID{Owner: owner, Local: id}
}
