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

// structFixture adds `struct S { a: u8 }` and
//
//	fn g(s: S, t: (u8,)) -> _ { (s.a, t.0, S { a: 1 }, -1i8) }
func structFixture(b *testkit.Builder) host.DefID {
	u8 := testkit.Uint(host.U8)
	s := b.Def(host.DefStruct, testkit.Type("S"))
	a := b.Def(host.DefField, testkit.Type("S"), testkit.Value("a"))
	b.Adt(host.AdtDef{Def: s, Kind: host.AdtStruct, Variants: []host.VariantDef{{
		Def:    s,
		Name:   "S",
		Fields: []host.FieldDef{{Def: a, Name: "a"}},
	}}})
	tyS := testkit.Adt(s)
	tyT := testkit.Tuple(u8)

	g := b.Def(host.DefFn, testkit.Value("g"))
	bb := testkit.NewBody(g)
	sv, tv := testkit.Local(g, 1), testkit.Local(g, 2)
	ps := testkit.Binding(sv, "s", tyS, b.Span(6, 5, 6, 6))
	pt := testkit.Binding(tv, "t", tyT, b.Span(6, 11, 6, 12))
	bb.Param(host.Param{Pat: &ps, Ty: tyS})
	bb.Param(host.Param{Pat: &pt, Ty: tyT})

	field := bb.Expr(host.ExprField, u8, b.Span(6, 30, 6, 33), host.FieldData{
		Lhs: bb.Scoped(host.RegionScope{ID: 10}, bb.VarRef(sv, tyS, b.Span(6, 30, 6, 31))),
	})
	tupleField := bb.Expr(host.ExprField, u8, b.Span(6, 35, 6, 38), host.FieldData{
		Lhs: bb.VarRef(tv, tyT, b.Span(6, 35, 6, 36)),
	})
	one := bb.Expr(host.ExprLiteral, u8, b.Span(6, 47, 6, 48), host.LiteralData{Lit: host.Lit{
		Kind: host.LitInt, Int: host.Uint128From(1), IntKind: host.IntUnsuffixed, Span: b.Span(6, 47, 6, 48),
	}})
	ctor := bb.Expr(host.ExprAdt, tyS, b.Span(6, 40, 6, 50), host.AdtExprData{
		Adt:    s,
		Fields: []host.FieldExpr{{Name: 0, Expr: one}},
	})
	minusOne := bb.Expr(host.ExprNonHirLiteral, testkit.Int(host.I8), b.Span(6, 52, 6, 56), host.NonHirLiteralData{
		Lit: host.Scalar{Data: host.Uint128From(0xFF), Size: 1},
	})
	tuple := bb.Expr(host.ExprTuple, testkit.Tuple(u8, u8, tyS, testkit.Int(host.I8)), b.Span(6, 29, 6, 57), host.FieldsData{
		Fields: []host.ExprID{field, tupleField, ctor, minusOne},
	})
	b.Body(bb.Done(tuple))
	b.Root(host.Item{Owner: g, Name: "g", Span: b.Span(6, 0, 6, 58), Kind: host.ItemFn, Data: host.FnData{Body: g}})
	return g
}

func tupleFields(t *testing.T, c *portable.Crate) []*portable.Expr {
	t.Helper()
	require.Len(t, c.Items, 1)
	body := c.Items[0].Data.(portable.FnData).Def.Body
	require.Equal(t, portable.ExprTuple, body.Kind)
	return body.Data.(portable.FieldsData).Fields
}

func TestFieldAccess(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	structFixture(b)
	c, bag := export(t, b.Snap, nil)
	assert.Empty(t, codes(bag))
	fields := tupleFields(t, c)
	require.Len(t, fields, 4)

	require.Equal(t, portable.ExprField, fields[0].Kind)
	named := fields[0].Data.(portable.FieldData)
	assert.True(t, named.Field.Equal(defID(typ("S"), value("a"))))
	assert.Equal(t, portable.ExprVarRef, named.Lhs.Kind)

	require.Equal(t, portable.ExprTupleField, fields[1].Kind)
	positional := fields[1].Data.(portable.TupleFieldData)
	assert.Equal(t, uint32(0), positional.Field)
}

func TestAdtConstruction(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	structFixture(b)
	c, _ := export(t, b.Snap, nil)
	fields := tupleFields(t, c)

	require.Equal(t, portable.ExprAdt, fields[2].Kind)
	adt := fields[2].Data.(portable.AdtExprData)
	info := adt.Info
	assert.True(t, info.TypeNamespace.Equal(defID()))
	assert.True(t, info.Typ.Equal(defID(typ("S"))))
	assert.True(t, info.Variant.Equal(defID(typ("S"))))
	assert.Equal(t, uint32(0), info.VariantIndex)
	assert.True(t, info.TypIsStruct)
	assert.True(t, info.TypIsRecord)
	assert.True(t, info.VariantIsRecord)
	require.Len(t, adt.Fields, 1)
	assert.True(t, adt.Fields[0].Field.Equal(defID(typ("S"), value("a"))))
	assert.Equal(t, portable.IntUnsuffixed, adt.Fields[0].Value.Data.(portable.LiteralData).Lit.IntType.Kind)
}

func TestNegativeScalarLiteral(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	structFixture(b)
	c, _ := export(t, b.Snap, nil)
	fields := tupleFields(t, c)

	require.Equal(t, portable.ExprLiteral, fields[3].Kind)
	lit := fields[3].Data.(portable.LiteralData)
	assert.True(t, lit.Neg)
	assert.Equal(t, "1", lit.Lit.Int)
	require.NotNil(t, lit.Lit.IntType.Int)
	assert.Equal(t, portable.I8, *lit.Lit.IntType.Int)
}

func TestFieldOfNonAggregateIsFatal(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	g := b.Def(host.DefFn, testkit.Value("g"))
	bb := testkit.NewBody(g)
	v := testkit.Local(g, 1)
	p := testkit.Binding(v, "v", testkit.Bool(), b.Span(1, 5, 1, 6))
	bb.Param(host.Param{Pat: &p, Ty: testkit.Bool()})
	access := bb.Expr(host.ExprField, testkit.Bool(), b.Span(1, 20, 1, 23), host.FieldData{
		Lhs: bb.VarRef(v, testkit.Bool(), b.Span(1, 20, 1, 21)),
	})
	b.Body(bb.Done(access))
	b.Root(host.Item{Owner: g, Name: "g", Span: b.Span(1, 0, 1, 25), Kind: host.ItemFn, Data: host.FnData{Body: g}})

	c, bag := export(t, b.Snap, nil)
	assert.Empty(t, c.Items)
	require.Equal(t, []diag.Code{diag.ExpItemFailed}, codes(bag))
	assert.Equal(t, diag.ExpFatalFieldAccess.Title(), bag.Items()[0].Notes[0].Msg)
}

func TestUnboundLocalIsFatal(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	g := b.Def(host.DefFn, testkit.Value("g"))
	bb := testkit.NewBody(g)
	ref := bb.VarRef(testkit.Local(g, 5), testkit.Bool(), b.Span(1, 10, 1, 11))
	b.Body(bb.Done(ref))
	b.Root(host.Item{Owner: g, Name: "g", Span: b.Span(1, 0, 1, 12), Kind: host.ItemFn, Data: host.FnData{Body: g}})

	c, bag := export(t, b.Snap, nil)
	assert.Empty(t, c.Items)
	require.Len(t, bag.Items(), 1)
	assert.Equal(t, diag.ExpFatalUnknownLocal.Title(), bag.Items()[0].Notes[0].Msg)
}

func TestRepeatCount(t *testing.T) {
	usize := testkit.Uint(host.Usize)
	folded := host.ConstantKind{
		Kind:  host.ConstantVal,
		Ty:    usize,
		Value: &host.ConstValue{Kind: host.ValScalarInt, Scalar: host.Scalar{Data: host.Uint128From(4), Size: 8}},
	}

	tests := []struct {
		name     string
		folded   bool
		wantKind portable.ExprKind
		wantDiag []diag.Code
	}{
		{name: "evaluated", folded: true, wantKind: portable.ExprLiteral},
		{name: "not evaluated", wantKind: portable.ExprTodo, wantDiag: []diag.Code{diag.ExpConstNotEvaluated}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testkit.NewBuilder("mod", "lib.rs")
			n := b.Def(host.DefConst, testkit.Value("N"))
			if tt.folded {
				b.Const(n, folded)
			}
			g := b.Def(host.DefFn, testkit.Value("g"))
			bb := testkit.NewBody(g)
			zero := bb.Expr(host.ExprLiteral, testkit.Bool(), b.Span(1, 12, 1, 17), host.LiteralData{Lit: host.Lit{
				Kind: host.LitBool, Span: b.Span(1, 12, 1, 17),
			}})
			rep := bb.Expr(host.ExprRepeat, testkit.Bool(), b.Span(1, 11, 1, 21), host.RepeatData{
				Value: zero,
				Count: host.Const{Kind: host.ConstKindUnevaluated, Ty: usize, Unevaluated: &host.UnevaluatedConst{Def: n}},
			})
			b.Body(bb.Done(rep))
			b.Root(host.Item{Owner: g, Name: "g", Span: b.Span(1, 0, 1, 22), Kind: host.ItemFn, Data: host.FnData{Body: g}})

			c, bag := export(t, b.Snap, nil)
			require.Len(t, c.Items, 1)
			body := c.Items[0].Data.(portable.FnData).Def.Body
			require.Equal(t, portable.ExprRepeat, body.Kind)
			count := body.Data.(portable.RepeatData).Count
			assert.Equal(t, tt.wantKind, count.Kind)
			assert.Equal(t, tt.wantDiag, codes(bag))
			if tt.folded {
				assert.Equal(t, "4", count.Data.(portable.LiteralData).Lit.Int)
			}
		})
	}
}
