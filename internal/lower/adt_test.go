package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/host"
	"portast/internal/portable"
	"portast/internal/testkit"
)

// enumFixture adds `enum E { A { a: u8 }, B(u8) }`, `struct W(u8)` and
//
//	fn m(E::A { a: x }: E, W(y): W) -> (E, E) { (E::A { a: x }, E::B(y)) }
//
// where the W pattern comes as a leaf pattern.
func enumFixture(b *testkit.Builder) {
	u8 := testkit.Uint(host.U8)
	e := b.Def(host.DefEnum, testkit.Type("E"))
	va := b.Def(host.DefVariant, testkit.Type("E"), testkit.Type("A"))
	fa := b.Def(host.DefField, testkit.Type("E"), testkit.Type("A"), testkit.Value("a"))
	vb := b.Def(host.DefVariant, testkit.Type("E"), testkit.Type("B"))
	fb := b.Def(host.DefField, testkit.Type("E"), testkit.Type("B"), testkit.Value("0"))
	b.Adt(host.AdtDef{Def: e, Kind: host.AdtEnum, Variants: []host.VariantDef{
		{Def: va, Name: "A", Fields: []host.FieldDef{{Def: fa, Name: "a"}}},
		{Def: vb, Name: "B", Fields: []host.FieldDef{{Def: fb, Name: "0"}}},
	}})
	w := b.Def(host.DefStruct, testkit.Type("W"))
	fw := b.Def(host.DefField, testkit.Type("W"), testkit.Value("0"))
	b.Adt(host.AdtDef{Def: w, Kind: host.AdtStruct, Variants: []host.VariantDef{
		{Def: w, Name: "W", Fields: []host.FieldDef{{Def: fw, Name: "0"}}},
	}})
	tyE, tyW := testkit.Adt(e), testkit.Adt(w)

	m := b.Def(host.DefFn, testkit.Value("m"))
	bb := testkit.NewBody(m)
	x, y := testkit.Local(m, 1), testkit.Local(m, 2)
	pe := host.Pat{Kind: host.PatVariant, Ty: tyE, Span: b.Span(20, 5, 20, 19), Data: host.VariantPatData{
		Adt:         e,
		Subpatterns: []host.FieldPat{{Field: 0, Pattern: testkit.Binding(x, "x", u8, b.Span(20, 16, 20, 17))}},
	}}
	pw := host.Pat{Kind: host.PatLeaf, Ty: tyW, Span: b.Span(20, 24, 20, 28), Data: host.VariantPatData{
		Subpatterns: []host.FieldPat{{Field: 0, Pattern: testkit.Binding(y, "y", u8, b.Span(20, 26, 20, 27))}},
	}}
	bb.Param(host.Param{Pat: &pe, Ty: tyE})
	bb.Param(host.Param{Pat: &pw, Ty: tyW})

	ctorA := bb.Expr(host.ExprAdt, tyE, b.Span(20, 50, 20, 62), host.AdtExprData{
		Adt:    e,
		Fields: []host.FieldExpr{{Name: 0, Expr: bb.VarRef(x, u8, b.Span(20, 59, 20, 60))}},
	})
	ctorB := bb.Expr(host.ExprAdt, tyE, b.Span(20, 64, 20, 71), host.AdtExprData{
		Adt:          e,
		VariantIndex: 1,
		Fields:       []host.FieldExpr{{Name: 0, Expr: bb.VarRef(y, u8, b.Span(20, 69, 20, 70))}},
	})
	tuple := bb.Expr(host.ExprTuple, testkit.Tuple(tyE, tyE), b.Span(20, 49, 20, 72), host.FieldsData{
		Fields: []host.ExprID{ctorA, ctorB},
	})
	b.Body(bb.Done(tuple))
	b.Root(host.Item{Owner: m, Name: "m", Span: b.Span(20, 0, 20, 74), Kind: host.ItemFn, Data: host.FnData{Body: m}})
}

func TestEnumVariantInformation(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	enumFixture(b)
	c, bag := export(t, b.Snap, nil)
	assert.Empty(t, codes(bag))
	fields := tupleFields(t, c)
	require.Len(t, fields, 2)

	a := fields[0].Data.(portable.AdtExprData).Info
	assert.True(t, a.TypeNamespace.Equal(defID()))
	assert.True(t, a.Typ.Equal(defID(typ("E"))))
	assert.True(t, a.Variant.Equal(defID(typ("E"), typ("A"))))
	assert.Equal(t, uint32(0), a.VariantIndex)
	assert.False(t, a.TypIsStruct)
	assert.False(t, a.TypIsRecord)
	assert.True(t, a.VariantIsRecord)

	bInfo := fields[1].Data.(portable.AdtExprData).Info
	assert.True(t, bInfo.Variant.Equal(defID(typ("E"), typ("B"))))
	assert.Equal(t, uint32(1), bInfo.VariantIndex)
	assert.False(t, bInfo.VariantIsRecord)
	assert.False(t, bInfo.TypIsRecord)
}

func TestVariantPattern(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	enumFixture(b)
	c, _ := export(t, b.Snap, nil)
	m := fnNamed(t, c, "m")
	require.Len(t, m.Params, 2)

	pat := m.Params[0].Pat
	require.NotNil(t, pat)
	require.Equal(t, portable.PatVariant, pat.Kind)
	data := pat.Data.(portable.VariantPatData)
	assert.True(t, data.Info.Variant.Equal(defID(typ("E"), typ("A"))))
	require.Len(t, data.Subpatterns, 1)
	assert.True(t, data.Subpatterns[0].Field.Equal(defID(typ("E"), typ("A"), value("a"))))
	assert.Equal(t, portable.PatBinding, data.Subpatterns[0].Pattern.Kind)
}

func TestLeafPatternOnStructIsVariantZero(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	enumFixture(b)
	c, _ := export(t, b.Snap, nil)
	m := fnNamed(t, c, "m")

	pat := m.Params[1].Pat
	require.NotNil(t, pat)
	require.Equal(t, portable.PatVariant, pat.Kind)
	data := pat.Data.(portable.VariantPatData)
	assert.True(t, data.Info.Typ.Equal(defID(typ("W"))))
	assert.Equal(t, uint32(0), data.Info.VariantIndex)
	assert.True(t, data.Info.TypIsStruct)
	assert.False(t, data.Info.TypIsRecord)
	require.Len(t, data.Subpatterns, 1)
	assert.True(t, data.Subpatterns[0].Field.Equal(defID(typ("W"), value("0"))))
}

func TestFieldRoundTrip(t *testing.T) {
	b := testkit.NewBuilder("mod", "lib.rs")
	enumFixture(b)
	c, _ := export(t, b.Snap, nil)
	m := fnNamed(t, c, "m")
	fields := tupleFields(t, c)

	// the field built by the constructor is the one the pattern takes apart
	built := fields[0].Data.(portable.AdtExprData).Fields
	require.Len(t, built, 1)
	taken := m.Params[0].Pat.Data.(portable.VariantPatData).Subpatterns
	require.Len(t, taken, 1)
	assert.True(t, built[0].Field.Equal(taken[0].Field))

	// and the bound value flows back into it
	require.Equal(t, portable.ExprVarRef, built[0].Value.Kind)
	assert.Equal(t, taken[0].Pattern.Data.(portable.BindingData).Var, built[0].Value.Data.(portable.VarRefData).ID)
}
