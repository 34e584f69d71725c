package lower_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/ident"
	"portast/internal/options"
	"portast/internal/portable"
	"portast/internal/testkit"
)

const macroSource = "helper_macro!(1, 2, 3);\nfn after() {}\n"

func sourceFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte(macroSource), 0o600))
	return path
}

func helperOptions() *options.Options {
	return &options.Options{InlineMacroCalls: []options.Pattern{options.MustParsePattern("mod::helper_macro")}}
}

func macroName(name string) ident.DisambiguatedItem {
	return ident.DisambiguatedItem{Data: ident.DefPathItem{Kind: ident.MacroNs, Name: name}}
}

// helperCall registers `helper_macro!(1, 2, 3)` on line 1 and returns the
// expansion it produces and its call site.
func helperCall(b *testkit.Builder) (host.ExpnID, host.Span) {
	m := b.Def(host.DefMacro, testkit.Macro("helper_macro"))
	site := b.Span(1, 0, 1, 22)
	b.MacroCall(site, b.Span(1, 14, 1, 21))
	expn := b.Expn(host.ExpnData{Kind: host.ExpnMacro, Name: "helper_macro", MacroDef: &m, CallSite: site})
	return expn, site
}

func asmItem(b *testkit.Builder, name string, sp host.Span) host.Item {
	return host.Item{
		Owner: b.Def(host.DefGlobalAsm, testkit.Value(name)),
		Name:  name,
		Span:  sp,
		Kind:  host.ItemGlobalAsm,
		Data:  host.GlobalAsmData{Text: name},
	}
}

func itemFixture(t *testing.T) (*testkit.Builder, host.Span) {
	b := testkit.NewBuilder("mod", sourceFile(t))
	expn, site := helperCall(b)
	b.Root(
		asmItem(b, "a1", b.SpanIn(expn, 1, 0, 1, 22)),
		asmItem(b, "a2", b.SpanIn(expn, 1, 0, 1, 22)),
		asmItem(b, "after", b.Span(2, 0, 2, 13)),
	)
	return b, site
}

func TestItemsOfOneCallAreFolded(t *testing.T) {
	b, site := itemFixture(t)
	c, bag := export(t, b.Snap, helperOptions())
	assert.Empty(t, codes(bag))
	require.Len(t, c.Items, 2)

	folded := c.Items[0]
	assert.Equal(t, portable.ItemMacroInvocation, folded.Kind)
	assert.Nil(t, folded.DefID)
	assert.True(t, folded.OwnerID.Equal(defID(value("a1"))))
	assert.Equal(t, b.Loc(site), folded.Span)
	inv := folded.Data.(portable.MacroInvocationData).Invocation
	assert.Equal(t, "1, 2, 3", inv.Argument)
	assert.True(t, inv.MacroIdent.Equal(defID(macroName("helper_macro"))))

	assert.Equal(t, portable.ItemGlobalAsm, c.Items[1].Kind)
	assert.Empty(t, c.Items[1].ExpnBacktrace)
}

func TestItemsAreKeptWithoutAllowlist(t *testing.T) {
	b, site := itemFixture(t)
	c, bag := export(t, b.Snap, nil)
	assert.Empty(t, codes(bag))
	require.Len(t, c.Items, 3)
	for _, it := range c.Items {
		assert.Equal(t, portable.ItemGlobalAsm, it.Kind)
	}
	bt := c.Items[0].ExpnBacktrace
	require.Len(t, bt, 1)
	assert.Equal(t, "helper_macro", bt[0].Name)
	assert.Equal(t, b.Loc(site), bt[0].CallSite)
	require.NotNil(t, bt[0].MacroDefID)
	assert.True(t, bt[0].MacroDefID.Equal(defID(macroName("helper_macro"))))
}

func TestUnreadableArgumentKeepsItems(t *testing.T) {
	b := testkit.NewBuilder("mod", filepath.Join(t.TempDir(), "missing.rs"))
	expn, site := helperCall(b)
	b.Root(
		asmItem(b, "a1", b.SpanIn(expn, 1, 0, 1, 22)),
		asmItem(b, "a2", b.SpanIn(expn, 1, 0, 1, 22)),
		asmItem(b, "after", b.Span(2, 0, 2, 13)),
	)
	c, bag := export(t, b.Snap, helperOptions())

	require.Equal(t, []diag.Code{diag.ExpMacroArgUnreadable}, codes(bag))
	d := bag.Items()[0]
	assert.Equal(t, diag.SevWarning, d.Severity)
	assert.Equal(t, b.Loc(site), d.Primary)

	require.Len(t, c.Items, 3)
	for i, name := range []string{"a1", "a2", "after"} {
		assert.Equal(t, portable.ItemGlobalAsm, c.Items[i].Kind)
		assert.True(t, c.Items[i].OwnerID.Equal(defID(value(name))), name)
	}
}

// stmtFixture adds
//
//	fn h() -> u8 { helper_macro!(1, 2, 3); a }
//
// where the call expands to `let a = 1; let b = 2;`.
func stmtFixture(b *testkit.Builder) {
	u8 := testkit.Uint(host.U8)
	expn, _ := helperCall(b)
	h := b.Def(host.DefFn, testkit.Value("h"))
	bb := testkit.NewBody(h)

	let := func(v host.LocalVarID, name string, n uint64, scope uint32) host.StmtID {
		sp := b.SpanIn(expn, 1, 0, 1, 22)
		lit := bb.Expr(host.ExprLiteral, u8, sp, host.LiteralData{Lit: host.Lit{
			Kind: host.LitInt, Int: host.Uint128From(n), IntKind: host.IntUnsuffixed, Span: sp,
		}})
		pat := testkit.Binding(v, name, u8, sp)
		return bb.Stmt(host.Stmt{
			Kind:           host.StmtLet,
			RemainderScope: host.RegionScope{ID: scope, Data: host.ScopeRemainder},
			InitScope:      host.RegionScope{ID: scope + 1},
			Pattern:        &pat,
			Initializer:    &lit,
			Span:           sp,
		})
	}
	a := testkit.Local(h, 1)
	s1 := let(a, "a", 1, 10)
	s2 := let(testkit.Local(h, 2), "b", 2, 12)

	tail := bb.VarRef(a, u8, b.Span(2, 2, 2, 3))
	blk := bb.Block(host.Block{
		Span:   b.Span(1, 0, 2, 5),
		Stmts:  []host.StmtID{s1, s2},
		Expr:   &tail,
		Region: host.RegionScope{ID: 30},
	}, u8)
	b.Body(bb.Done(blk))
	b.Root(host.Item{Owner: h, Name: "h", Span: b.Span(1, 0, 2, 5), Kind: host.ItemFn, Data: host.FnData{Body: h}})
}

func bodyBlock(t *testing.T, c *portable.Crate) portable.Block {
	t.Helper()
	require.Len(t, c.Items, 1)
	body := c.Items[0].Data.(portable.FnData).Def.Body
	require.Equal(t, portable.ExprBlock, body.Kind)
	return body.Data.(portable.BlockData).Block
}

func TestStatementsOfOneCallAreFolded(t *testing.T) {
	b := testkit.NewBuilder("mod", sourceFile(t))
	stmtFixture(b)
	c, bag := export(t, b.Snap, helperOptions())
	assert.Empty(t, codes(bag))

	blk := bodyBlock(t, c)
	require.Len(t, blk.Stmts, 1)
	st := blk.Stmts[0]
	assert.Equal(t, portable.StmtMacroInvocation, st.Kind)
	require.NotNil(t, st.Invocation)
	assert.Equal(t, "1, 2, 3", st.Invocation.Argument)
	assert.Equal(t, uint32(10), st.Scope.ID)

	// the tail still names the local bound inside the folded call
	require.NotNil(t, blk.Expr)
	require.Equal(t, portable.ExprVarRef, blk.Expr.Kind)
	assert.Equal(t, "a", blk.Expr.Data.(portable.VarRefData).ID.Name)
}

func TestUnreadableArgumentKeepsStatements(t *testing.T) {
	b := testkit.NewBuilder("mod", filepath.Join(t.TempDir(), "missing.rs"))
	stmtFixture(b)
	c, bag := export(t, b.Snap, helperOptions())

	require.NotEmpty(t, codes(bag))
	for _, d := range bag.Items() {
		assert.Equal(t, diag.ExpMacroArgUnreadable, d.Code)
		assert.Equal(t, diag.SevWarning, d.Severity)
	}

	blk := bodyBlock(t, c)
	require.Len(t, blk.Stmts, 2)
	for _, st := range blk.Stmts {
		assert.Equal(t, portable.StmtLet, st.Kind)
		require.NotNil(t, st.Initializer)
		assert.Equal(t, portable.ExprTodo, st.Initializer.Kind)
	}
	assert.Equal(t, "a", blk.Expr.Data.(portable.VarRefData).ID.Name)
}

// exprFixture adds `fn e() -> u8 { helper_macro!(1, 2, 3) }` where the
// call expands to the literal 1.
func exprFixture(b *testkit.Builder) {
	u8 := testkit.Uint(host.U8)
	expn, _ := helperCall(b)
	e := b.Def(host.DefFn, testkit.Value("e"))
	bb := testkit.NewBody(e)
	sp := b.SpanIn(expn, 1, 0, 1, 22)
	lit := bb.Expr(host.ExprLiteral, u8, sp, host.LiteralData{Lit: host.Lit{
		Kind: host.LitInt, Int: host.Uint128From(1), IntKind: host.IntUnsuffixed, Span: sp,
	}})
	b.Body(bb.Done(lit))
	b.Root(host.Item{Owner: e, Name: "e", Span: b.Span(2, 0, 2, 13), Kind: host.ItemFn, Data: host.FnData{Body: e}})
}

func TestExpressionOfOneCallIsFolded(t *testing.T) {
	b := testkit.NewBuilder("mod", sourceFile(t))
	exprFixture(b)

	c, bag := export(t, b.Snap, helperOptions())
	assert.Empty(t, codes(bag))
	body := fnNamed(t, c, "e").Body
	require.NotNil(t, body)
	require.Equal(t, portable.ExprMacroInvocation, body.Kind)
	inv := body.Data.(portable.MacroInvocationData).Invocation
	assert.Equal(t, "1, 2, 3", inv.Argument)
	assert.True(t, inv.MacroIdent.Equal(defID(macroName("helper_macro"))))
	assert.Equal(t, portable.TyUint, body.Ty.Kind)

	c, _ = export(t, b.Snap, nil)
	body = fnNamed(t, c, "e").Body
	require.NotNil(t, body)
	assert.Equal(t, portable.ExprLiteral, body.Kind)
}
