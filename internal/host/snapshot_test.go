package host_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"portast/internal/host"
	"portast/internal/source"
	"portast/internal/testkit"
)

// sample builds `struct S { a: u8 }` and `fn g(s: S) -> u8 { s.a }` expanded
// from a macro call.
func sample() *testkit.Builder {
	b := testkit.NewBuilder("k", "src/lib.rs")
	u8 := testkit.Uint(host.U8)
	s := b.Def(host.DefStruct, testkit.Type("S"))
	a := b.Def(host.DefField, testkit.Type("S"), testkit.Value("a"))
	b.Adt(host.AdtDef{Def: s, Kind: host.AdtStruct, Variants: []host.VariantDef{{
		Def: s, Name: "S", Fields: []host.FieldDef{{Def: a, Name: "a"}},
	}}})

	m := b.Def(host.DefMacro, testkit.Macro("m"))
	site := b.Span(3, 0, 3, 5)
	b.MacroCall(site, b.Span(3, 3, 3, 4))
	expn := b.Expn(host.ExpnData{Kind: host.ExpnMacro, Name: "m", MacroDef: &m, CallSite: site})

	g := b.Def(host.DefFn, testkit.Value("g"))
	bb := testkit.NewBody(g)
	v := testkit.Local(g, 1)
	p := testkit.Binding(v, "s", testkit.Adt(s), b.SpanIn(expn, 1, 5, 1, 6))
	bb.Param(host.Param{Pat: &p, Ty: testkit.Adt(s)})
	lhs := bb.VarRef(v, testkit.Adt(s), b.SpanIn(expn, 1, 19, 1, 20))
	field := bb.Expr(host.ExprField, u8, b.SpanIn(expn, 1, 19, 1, 22), host.FieldData{Lhs: lhs})
	b.Body(bb.Done(field))
	out := u8
	b.Root(host.Item{
		Owner: g,
		Name:  "g",
		Span:  b.SpanIn(expn, 1, 0, 1, 24),
		Kind:  host.ItemFn,
		Data:  host.FnData{Sig: host.FnSigDecl{Decl: host.FnDecl{Inputs: []host.Ty{testkit.Adt(s)}, Output: &out}}, Body: g},
	})
	return b
}

func TestSnapshotRoundTrip(t *testing.T) {
	want := sample().Snap
	var buf bytes.Buffer
	require.NoError(t, want.Write(&buf))

	got, err := host.ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, want.Crate, got.Crate)
	assert.Equal(t, want.Roots, got.Roots)
	assert.Equal(t, want.Defs, got.Defs)
	assert.Equal(t, want.Items, got.Items)
	assert.Equal(t, want.Bodies, got.Bodies)
	assert.Equal(t, want.Adts, got.Adts)
	assert.Equal(t, want.Files, got.Files)
	assert.Equal(t, want.Spans, got.Spans)
	assert.Equal(t, want.Expns, got.Expns)
	assert.Equal(t, want.Macros, got.Macros)
}

func TestReadSnapshotRejectsSchema(t *testing.T) {
	s := host.NewSnapshot("k")
	s.Schema = host.SnapshotSchema + 1
	var buf bytes.Buffer
	require.NoError(t, s.Write(&buf))

	_, err := host.ReadSnapshot(&buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrSchema)
}

func TestReadSnapshotRejectsStrayPayload(t *testing.T) {
	// a bool type carries no payload
	raw, err := msgpack.Marshal(map[string]any{"kind": uint8(host.TyBool), "data": map[string]any{"x": 1}})
	require.NoError(t, err)
	var ty host.Ty
	require.Error(t, msgpack.Unmarshal(raw, &ty))
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k.snap")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, sample().Snap.Write(f))
	require.NoError(t, f.Close())

	s, err := host.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, "k", s.CrateName())
	assert.Len(t, s.RootItems(), 1)

	_, err = host.LoadSnapshot(filepath.Join(t.TempDir(), "missing.snap"))
	assert.Error(t, err)
}

func TestLookups(t *testing.T) {
	s := sample().Snap
	g := s.RootItems()[0]

	kind, err := s.DefKind(g)
	require.NoError(t, err)
	assert.Equal(t, host.DefFn, kind)

	path, err := s.DefPath(g)
	require.NoError(t, err)
	assert.Equal(t, "k", path.Krate)
	require.Len(t, path.Data, 1)
	assert.Equal(t, "g", path.Data[0].Name)

	_, err = s.DefPath(host.DefID{Index: 99})
	assert.True(t, errors.Is(err, host.ErrUnknownDef))

	_, err = s.Body(host.DefID{Index: 99})
	assert.Error(t, err)

	loc, err := s.LookupSpan(host.DummySpan)
	require.NoError(t, err)
	assert.Equal(t, source.FileNameAnon, loc.File.Kind)

	_, err = s.LookupSpan(host.Span(len(s.Spans)))
	assert.True(t, errors.Is(err, host.ErrUnknownSpan))
}

func TestMacroBacktrace(t *testing.T) {
	b := sample()
	s := b.Snap
	it, err := s.Item(s.RootItems()[0])
	require.NoError(t, err)

	bt := s.MacroBacktrace(it.Span)
	require.Len(t, bt, 1)
	assert.Equal(t, "m", bt[0].Name)
	assert.Empty(t, s.MacroBacktrace(bt[0].CallSite))
}

func TestMacroBacktraceCollapsesRecursion(t *testing.T) {
	b := testkit.NewBuilder("k", "lib.rs")
	outerSite := b.Span(1, 0, 1, 10)
	outer := b.Expn(host.ExpnData{Kind: host.ExpnMacro, Name: "vec", CallSite: outerSite})
	// both call sites cover the same source, as in a macro expanding to itself
	innerSite := b.SpanIn(outer, 1, 0, 1, 10)
	inner := b.Expn(host.ExpnData{Kind: host.ExpnMacro, Name: "vec", CallSite: innerSite})
	sp := b.SpanIn(inner, 1, 0, 1, 10)

	bt := b.Snap.MacroBacktrace(sp)
	assert.Len(t, bt, 1)
}

func TestEvalConstant(t *testing.T) {
	b := testkit.NewBuilder("k", "lib.rs")
	n := b.Def(host.DefConst, testkit.Value("N"))
	usize := testkit.Uint(host.Usize)
	val := host.ConstantKind{
		Kind:  host.ConstantVal,
		Ty:    usize,
		Value: &host.ConstValue{Kind: host.ValScalarInt, Scalar: host.Scalar{Data: host.Uint128From(3), Size: 8}},
	}
	b.Const(n, val)
	s := b.Snap

	got, err := s.EvalConstant(host.ConstantKind{Kind: host.ConstantUnevaluated, Ty: usize, Unevaluated: &host.UnevaluatedConst{Def: n}})
	require.NoError(t, err)
	assert.Equal(t, val, got)

	got, err = s.EvalConstant(val)
	require.NoError(t, err)
	assert.Equal(t, val, got)

	_, err = s.EvalConstant(host.ConstantKind{Kind: host.ConstantUnevaluated, Ty: usize, Unevaluated: &host.UnevaluatedConst{Def: host.DefID{Index: 42}}})
	assert.True(t, errors.Is(err, host.ErrNotEvaluable))

	_, err = s.EvalConstant(host.ConstantKind{Kind: host.ConstantUnevaluated, Ty: usize})
	assert.True(t, errors.Is(err, host.ErrNotEvaluable))
}

func TestPredicatesRoundTrip(t *testing.T) {
	b := testkit.NewBuilder("k", "lib.rs")
	f := b.Def(host.DefFn, testkit.Value("f"))
	alias := b.Def(host.DefAssocTy, testkit.Type("Out"))
	boolTy := host.Ty{Kind: host.TyBool}
	b.Predicates(f, []host.Predicate{
		{Kind: host.PredTrait, BoundVars: 1, Text: "for<'a> T: Tr<'a>"},
		{Kind: host.PredTypeOutlives, Ty: &boolTy, Region: host.Region{Kind: host.ReStatic}},
	}, nil)
	b.Predicates(alias, nil, []host.Predicate{{Kind: host.PredTrait, Text: "Self::Out: Copy"}})

	var buf bytes.Buffer
	require.NoError(t, b.Snap.Write(&buf))
	got, err := host.ReadSnapshot(&buf)
	require.NoError(t, err)

	preds := got.Predicates(f)
	require.Len(t, preds, 2)
	assert.Equal(t, host.PredTrait, preds[0].Kind)
	assert.Equal(t, uint32(1), preds[0].BoundVars)
	assert.Equal(t, "for<'a> T: Tr<'a>", preds[0].Text)
	assert.Equal(t, host.PredTypeOutlives, preds[1].Kind)
	require.NotNil(t, preds[1].Ty)
	assert.Equal(t, host.TyBool, preds[1].Ty.Kind)
	assert.Equal(t, host.ReStatic, preds[1].Region.Kind)
	assert.Empty(t, got.ItemBounds(f))

	assert.Empty(t, got.Predicates(alias))
	bounds := got.ItemBounds(alias)
	require.Len(t, bounds, 1)
	assert.Equal(t, "Self::Out: Copy", bounds[0].Text)

	assert.Nil(t, got.Predicates(host.DefID{Index: 99}))
}
