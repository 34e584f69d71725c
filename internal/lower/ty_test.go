package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/portable"
	"portast/internal/testkit"
)

// paramFixture adds `struct Wrap<T>` and
//
//	fn k(w: Wrap<u8>, r: &'static bool, (x, _): (u8, bool), h: f) -> _ { x }
//
// where f is the identity function. With leafOnBool the tuple pattern is
// typed bool, which has no leaf form.
func paramFixture(b *testkit.Builder, leafOnBool bool) {
	f := identityFn(b)
	u8, boolTy := testkit.Uint(host.U8), testkit.Bool()
	wrap := b.Def(host.DefStruct, testkit.Type("Wrap"))
	tyW := testkit.Adt(wrap, testkit.TypeArg(u8))
	tyR := host.Ty{Kind: host.TyRef, Data: host.RefData{Region: host.Region{Kind: host.ReStatic}, Elem: boolTy, Mutbl: host.Not}}
	tyP := testkit.Tuple(u8, boolTy)
	tyH := testkit.FnDef(f)

	k := b.Def(host.DefFn, testkit.Value("k"))
	bb := testkit.NewBody(k)
	w, r, x, h := testkit.Local(k, 1), testkit.Local(k, 2), testkit.Local(k, 3), testkit.Local(k, 4)

	pw := testkit.Binding(w, "w", tyW, b.Span(12, 5, 12, 6))
	pr := testkit.Binding(r, "r", tyR, b.Span(12, 18, 12, 19))
	leafTy := tyP
	if leafOnBool {
		leafTy = boolTy
	}
	pp := host.Pat{Kind: host.PatLeaf, Ty: leafTy, Span: b.Span(12, 36, 12, 42), Data: host.VariantPatData{
		Subpatterns: []host.FieldPat{
			{Field: 0, Pattern: testkit.Binding(x, "x", u8, b.Span(12, 37, 12, 38))},
			{Field: 1, Pattern: host.Pat{Kind: host.PatWild, Ty: boolTy, Span: b.Span(12, 40, 12, 41)}},
		},
	}}
	ph := testkit.Binding(h, "h", tyH, b.Span(12, 56, 12, 57))
	for _, p := range []struct {
		pat host.Pat
		ty  host.Ty
	}{{pw, tyW}, {pr, tyR}, {pp, tyP}, {ph, tyH}} {
		bb.Param(host.Param{Pat: &p.pat, Ty: p.ty})
	}

	b.Body(bb.Done(bb.VarRef(x, u8, b.Span(12, 68, 12, 69))))
	b.Root(host.Item{Owner: k, Name: "k", Span: b.Span(12, 0, 12, 71), Kind: host.ItemFn, Data: host.FnData{Body: k}})
}

func fnNamed(t *testing.T, c *portable.Crate, name string) portable.FnDef {
	t.Helper()
	for _, it := range c.Items {
		if fn, ok := it.Data.(portable.FnData); ok && fn.Name == name {
			return fn.Def
		}
	}
	require.FailNow(t, "no function "+name)
	return portable.FnDef{}
}

func TestParamTypes(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	paramFixture(b, false)
	c, bag := export(t, b.Snap, nil)
	assert.Empty(t, codes(bag))

	k := fnNamed(t, c, "k")
	require.Len(t, k.Params, 4)

	w := k.Params[0].Ty
	require.Equal(t, portable.TyNamed, w.Kind)
	named := w.Data.(portable.NamedData)
	assert.True(t, named.DefID.Equal(defID(typ("Wrap"))))
	require.Len(t, named.GenericArgs, 1)
	require.Equal(t, portable.ArgType, named.GenericArgs[0].Kind)
	require.NotNil(t, named.GenericArgs[0].Type)
	assert.Equal(t, portable.TyUint, named.GenericArgs[0].Type.Kind)
	assert.Equal(t, portable.UintData{Uint: portable.U8}, named.GenericArgs[0].Type.Data)

	r := k.Params[1].Ty
	require.Equal(t, portable.TyRef, r.Kind)
	ref := r.Data.(portable.RefData)
	assert.Equal(t, portable.ReStatic, ref.Region.Kind)
	assert.Equal(t, portable.TyBool, ref.Elem.Kind)
	assert.Equal(t, portable.Not, ref.Mutbl)

	// function item types become arrows built from the signature
	h := k.Params[3].Ty
	require.Equal(t, portable.TyArrow, h.Kind)
	arrow := h.Data.(portable.ArrowData)
	require.Len(t, arrow.Params, 1)
	assert.Equal(t, portable.TyParam, arrow.Params[0].Kind)
	assert.Equal(t, portable.TyParam, arrow.Ret.Kind)
}

func TestTupleLeafPattern(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	paramFixture(b, false)
	c, _ := export(t, b.Snap, nil)

	k := fnNamed(t, c, "k")
	pat := k.Params[2].Pat
	require.NotNil(t, pat)
	require.Equal(t, portable.PatTuple, pat.Kind)
	subs := pat.Data.(portable.TuplePatData).Subpatterns
	require.Len(t, subs, 2)
	assert.Equal(t, portable.PatBinding, subs[0].Kind)
	assert.Equal(t, portable.PatWild, subs[1].Kind)
	assert.Nil(t, subs[1].Data)

	// the body refers to the binding introduced inside the tuple
	require.NotNil(t, k.Body)
	require.Equal(t, portable.ExprVarRef, k.Body.Kind)
	assert.Equal(t, subs[0].Data.(portable.BindingData).Var, k.Body.Data.(portable.VarRefData).ID)
}

func TestLeafPatternOnScalarIsFatal(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	paramFixture(b, true)
	c, bag := export(t, b.Snap, nil)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "f", c.Items[0].Data.(portable.FnData).Name)
	require.Equal(t, []diag.Code{diag.ExpItemFailed}, codes(bag))
	require.Len(t, bag.Items()[0].Notes, 1)
	assert.Equal(t, diag.ExpFatalLeafPattern.Title(), bag.Items()[0].Notes[0].Msg)
}
