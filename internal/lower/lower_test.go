package lower_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/ident"
	"portast/internal/lower"
	"portast/internal/options"
	"portast/internal/portable"
	"portast/internal/testkit"
)

func defID(segs ...ident.DisambiguatedItem) ident.DefID {
	return ident.DefID{Krate: "mod", Path: segs}
}

func value(name string) ident.DisambiguatedItem {
	return ident.DisambiguatedItem{Data: ident.DefPathItem{Kind: ident.ValueNs, Name: name}}
}

func typ(name string) ident.DisambiguatedItem {
	return ident.DisambiguatedItem{Data: ident.DefPathItem{Kind: ident.TypeNs, Name: name}}
}

func export(t *testing.T, s *host.Snapshot, opts *options.Options) (*portable.Crate, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	x := lower.New(s, lower.Config{Options: opts, Reporter: diag.BagReporter{Bag: bag}})
	c, err := x.ExportCrate(context.Background())
	require.NoError(t, err)
	require.NoError(t, testkit.CheckSpanInvariants(c))
	return c, bag
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// identityFn adds `fn f<T>(x: T) -> T { x }`.
func identityFn(b *testkit.Builder) host.DefID {
	f := b.Def(host.DefFn, testkit.Value("f"))
	tyT := testkit.Param(0, "T")
	x := testkit.Local(f, 2)
	bodySp := b.Span(1, 21, 1, 26)

	bb := testkit.NewBody(f)
	pat := testkit.Binding(x, "x", tyT, b.Span(1, 8, 1, 9))
	bb.Param(host.Param{Pat: &pat, Ty: tyT})
	ref := bb.Scoped(host.RegionScope{ID: 4}, bb.VarRef(x, tyT, b.Span(1, 23, 1, 24)))
	blk := bb.Block(host.Block{Span: bodySp, Expr: &ref, Region: host.RegionScope{ID: 3}}, tyT)
	b.Body(bb.Done(bb.Scoped(host.RegionScope{ID: 3}, blk)))

	b.Sig(f, host.FnSig{Inputs: []host.Ty{tyT}, Output: tyT})
	b.Root(host.Item{
		Owner: f,
		Name:  "f",
		Span:  b.Span(1, 0, 1, 26),
		Kind:  host.ItemFn,
		Data: host.FnData{
			Sig: host.FnSigDecl{Decl: host.FnDecl{Inputs: []host.Ty{tyT}, Output: &tyT}, Span: b.Span(1, 0, 1, 20)},
			Generics: host.Generics{Params: []host.GenericParam{{
				HirID: host.HirID{Owner: f, Local: 1},
				Def:   b.Def(host.DefTyParam, testkit.Value("f"), testkit.Type("T")),
				Name:  "T",
				Kind:  host.ParamType,
				Span:  b.Span(1, 5, 1, 6),
			}}},
			Body: f,
		},
	})
	return f
}

func TestIdentityFunction(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	identityFn(b)
	c, bag := export(t, b.Snap, nil)
	assert.Empty(t, codes(bag))

	require.Len(t, c.Items, 1)
	it := c.Items[0]
	assert.Equal(t, portable.ItemFn, it.Kind)
	require.NotNil(t, it.DefID)
	assert.True(t, it.DefID.Equal(defID(value("f"))))
	assert.Empty(t, it.ExpnBacktrace)

	fn, ok := it.Data.(portable.FnData)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)
	require.Len(t, fn.Def.Generics.Params, 1)
	assert.Equal(t, "T", fn.Def.Generics.Params[0].Name)
	assert.Equal(t, portable.BoundsPredicates, fn.Def.Generics.Bounds.Kind)
	assert.Equal(t, portable.TyParam, fn.Def.Ret.Kind)

	require.Len(t, fn.Def.Params, 1)
	bind, ok := fn.Def.Params[0].Pat.Data.(portable.BindingData)
	require.True(t, ok)
	assert.Equal(t, "x", bind.Var.Name)
	assert.Equal(t, uint32(2), bind.Var.ID.Local)

	// the block only wraps `x` and is absorbed
	body := fn.Def.Body
	require.NotNil(t, body)
	assert.Equal(t, portable.ExprVarRef, body.Kind)
	assert.Equal(t, uint32(21), body.Span.Lo.Col)
	ref, ok := body.Data.(portable.VarRefData)
	require.True(t, ok)
	assert.Equal(t, bind.Var, ref.ID)
	assert.Nil(t, body.HirID)
	// span of the absorbed tail stays exported
	assert.Contains(t, c.ExportedSpans, b.Loc(b.Span(1, 23, 1, 24)))
}

func TestScopeAttributes(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	f := identityFn(b)
	outer := host.HirID{Owner: f, Local: 7}
	inner := host.HirID{Owner: f, Local: 8}
	b.Scope(f, host.RegionScope{ID: 3}, outer)
	b.Scope(f, host.RegionScope{ID: 4}, inner)
	b.Attrs(outer, host.Attribute{Kind: host.AttrNormal, Path: "inline", Span: b.Span(2, 0, 2, 9)})
	b.Attrs(inner, host.Attribute{Kind: host.AttrNormal, Path: "cold", Span: b.Span(3, 0, 3, 7)})

	c, _ := export(t, b.Snap, nil)
	require.Len(t, c.Items, 1)
	body := c.Items[0].Data.(portable.FnData).Def.Body
	require.NotNil(t, body.HirID)
	assert.Equal(t, uint32(7), body.HirID.Local)
	require.Len(t, body.Attributes, 1)
	assert.Equal(t, "inline", body.Attributes[0].Normal.Path)
}

func TestAmbiguousPredicate(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	f := identityFn(b)
	b.Predicates(f, []host.Predicate{
		{Kind: host.PredTrait, BoundVars: 1, Text: "for<'a> T: Tr<'a>"},
		{Kind: host.PredTypeOutlives, Ty: &host.Ty{Kind: host.TyBool}, Region: host.Region{Kind: host.ReStatic}},
	}, nil)

	c, bag := export(t, b.Snap, nil)
	require.Len(t, c.Items, 1)
	preds := c.Items[0].Data.(portable.FnData).Def.Generics.Bounds.Predicates
	require.Len(t, preds, 2)
	assert.Equal(t, portable.PredAmbiguous, preds[0].Kind)
	assert.Equal(t, "for<'a> T: Tr<'a>", preds[0].Text)
	assert.Equal(t, portable.PredTypeOutlives, preds[1].Kind)
	require.NotNil(t, preds[1].Region)
	assert.Equal(t, portable.ReStatic, preds[1].Region.Kind)

	require.Equal(t, []diag.Code{diag.ExpAmbiguousPredicate}, codes(bag))
	assert.Equal(t, diag.SevWarning, bag.Items()[0].Severity)
}

// callFixture adds the identity function, then `fn k() -> u8 { f(1) }` and,
// when bad is set, an item whose callee has an impossible shape.
func callFixture(b *testkit.Builder, bad bool) (host.DefID, host.Span) {
	f := identityFn(b)
	u8 := testkit.Uint(host.U8)

	k := b.Def(host.DefFn, testkit.Value("k"))
	bb := testkit.NewBody(k)
	callee := bb.Scoped(host.RegionScope{ID: 1}, bb.Expr(host.ExprZstLiteral, testkit.FnDef(f), b.Span(4, 15, 4, 16), host.ZstLiteralData{}))
	arg := bb.Expr(host.ExprLiteral, u8, b.Span(4, 17, 4, 18), host.LiteralData{Lit: host.Lit{
		Kind: host.LitInt, Int: host.Uint128From(1), IntKind: host.IntUnsigned, UintTy: host.U8, Span: b.Span(4, 17, 4, 18),
	}})
	call := bb.Expr(host.ExprCall, u8, b.Span(4, 15, 4, 19), host.CallData{
		FunTy: testkit.FnDef(f), Fun: callee, Args: []host.ExprID{arg}, FromHirCall: true, FnSpan: b.Span(4, 15, 4, 19),
	})
	b.Body(bb.Done(call))

	var badSpan host.Span
	if bad {
		g := b.Def(host.DefFn, testkit.Value("g"))
		gb := testkit.NewBody(g)
		lit := gb.Expr(host.ExprLiteral, u8, b.Span(9, 15, 9, 16), host.LiteralData{Lit: host.Lit{
			Kind: host.LitInt, Int: host.Uint128From(2), IntKind: host.IntUnsigned, UintTy: host.U8, Span: b.Span(9, 15, 9, 16),
		}})
		badSpan = b.Span(9, 15, 9, 19)
		gcall := gb.Expr(host.ExprCall, u8, badSpan, host.CallData{FunTy: testkit.FnDef(f), Fun: lit, FnSpan: badSpan})
		b.Body(gb.Done(gcall))
		b.Root(host.Item{Owner: g, Name: "g", Span: b.Span(9, 0, 9, 20), Kind: host.ItemFn, Data: host.FnData{Body: g}})
	}

	out := &u8
	b.Root(host.Item{Owner: k, Name: "k", Span: b.Span(4, 0, 4, 21), Kind: host.ItemFn, Data: host.FnData{
		Sig:  host.FnSigDecl{Decl: host.FnDecl{Output: out}},
		Body: k,
	}})
	return k, badSpan
}

func TestCallOfFunctionItem(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	callFixture(b, false)
	c, bag := export(t, b.Snap, nil)
	assert.Empty(t, codes(bag))
	require.Len(t, c.Items, 2)

	body := c.Items[1].Data.(portable.FnData).Def.Body
	require.Equal(t, portable.ExprCall, body.Kind)
	call := body.Data.(portable.CallData)
	assert.Equal(t, portable.ExprGlobalName, call.Fun.Kind)
	assert.True(t, call.Fun.Data.(portable.GlobalNameData).ID.Equal(defID(value("f"))))
	assert.Equal(t, portable.TyArrow, call.Fun.Ty.Kind)
	assert.Equal(t, uint32(4), call.Fun.Span.Lo.Line)
	assert.Equal(t, uint32(15), call.Fun.Span.Lo.Col)
	require.Len(t, call.Args, 1)
	lit := call.Args[0].Data.(portable.LiteralData)
	assert.Equal(t, "1", lit.Lit.Int)
	assert.Equal(t, portable.IntUnsigned, lit.Lit.IntType.Kind)
}

func TestFailingItemIsIsolated(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	_, badSpan := callFixture(b, true)
	c, bag := export(t, b.Snap, nil)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "f", c.Items[0].Data.(portable.FnData).Name)
	assert.Equal(t, "k", c.Items[1].Data.(portable.FnData).Name)

	require.Equal(t, []diag.Code{diag.ExpItemFailed}, codes(bag))
	d := bag.Items()[0]
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Equal(t, b.Loc(badSpan), d.Primary)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, diag.ExpFatalCallShape.Title(), d.Notes[0].Msg)

	for _, sp := range c.ExportedSpans {
		assert.NotEqual(t, uint32(9), sp.Lo.Line, "span of the failed item leaked: %s", sp)
	}
}

func TestExportItemReturnsFatal(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	callFixture(b, true)
	bag := diag.NewBag(10)
	x := lower.New(b.Snap, lower.Config{Reporter: diag.BagReporter{Bag: bag}})

	_, err := x.ExportItem(context.Background(), b.Snap.Roots[1])
	require.Error(t, err)
	fe, ok := lower.AsFatal(err)
	require.True(t, ok)
	assert.Equal(t, diag.ExpFatalCallShape, fe.Code)
	assert.Zero(t, bag.Len())
	assert.Empty(t, x.ExportedSpans())
}

func TestExportIsDeterministic(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	callFixture(b, true)
	structFixture(b)
	first, _ := export(t, b.Snap, nil)
	second, _ := export(t, b.Snap, nil)
	assert.Equal(t, first, second)
}

func TestModuleChildren(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	m := b.Def(host.DefMod, testkit.Type("m"))
	child := b.Def(host.DefGlobalAsm, testkit.Type("m"), testkit.Value("asm"))
	b.Item(host.Item{Owner: child, Name: "asm", Span: b.Span(2, 4, 2, 20), Kind: host.ItemGlobalAsm, Data: host.GlobalAsmData{Text: "nop"}})
	b.Root(host.Item{Owner: m, Name: "m", Span: b.Span(1, 0, 3, 1), Kind: host.ItemMod, Data: host.ModData{
		Inner: b.Span(1, 7, 3, 1),
		Items: []host.DefID{child},
	}})

	c, _ := export(t, b.Snap, nil)
	require.Len(t, c.Items, 1)
	mod := c.Items[0].Data.(portable.ModData)
	assert.Equal(t, "m", mod.Name)
	require.Len(t, mod.Items, 1)
	assert.Equal(t, portable.ItemGlobalAsm, mod.Items[0].Kind)
	assert.True(t, mod.Items[0].DefID.Equal(defID(typ("m"), value("asm"))))
}
