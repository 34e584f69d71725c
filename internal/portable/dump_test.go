package portable_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"portast/internal/ident"
	"portast/internal/portable"
	"portast/internal/source"
)

func defID(names ...string) ident.DefID {
	id := ident.DefID{Krate: "mod"}
	for _, n := range names {
		id.Path = append(id.Path, ident.DisambiguatedItem{
			Data: ident.DefPathItem{Kind: ident.ValueNs, Name: n},
		})
	}
	return id
}

func identityFn() portable.Crate {
	tyT := portable.Ty{Kind: portable.TyParam, Data: portable.ParamData{Index: 0, Name: "T"}}
	x := portable.LocalIdent{Name: "x", ID: portable.HirID{Owner: defID("f"), Local: 2}}
	sp := source.Span{Lo: source.Loc{Line: 1, Col: 0}, Hi: source.Loc{Line: 1, Col: 21}, Filename: source.LocalFile("lib.rs")}
	f := defID("f")
	return portable.Crate{
		Name: "mod",
		Items: []portable.Item{{
			DefID:   &f,
			OwnerID: f,
			Span:    sp,
			Kind:    portable.ItemFn,
			Data: portable.FnData{Name: "f", Def: portable.FnDef{
				Params: []portable.Param{{
					Pat: &portable.Pat{Ty: tyT, Kind: portable.PatBinding, Data: portable.BindingData{Var: x, Ty: tyT}},
					Ty:  tyT,
				}},
				Ret: tyT,
				Body: &portable.Expr{
					Ty:   tyT,
					Kind: portable.ExprVarRef,
					Data: portable.VarRefData{ID: x},
				},
				Generics: portable.Generics{Params: []portable.GenericParam{{Name: "T", Kind: portable.ParamType}}},
			}},
		}},
		ExportedSpans: []source.Span{sp},
	}
}

func TestDumpFunction(t *testing.T) {
	c := identityFn()
	var buf bytes.Buffer
	require.NoError(t, portable.Dump(&buf, &c, portable.DumpOptions{ShowSpans: true}))
	out := buf.String()
	assert.Contains(t, out, "crate mod")
	assert.Contains(t, out, "fn f<T>(x: T) -> T x")
	assert.Contains(t, out, "@ lib.rs:1:0-1:21")
	assert.Contains(t, out, "// 1 exported spans")
}

func TestDumpMacroInvocationItem(t *testing.T) {
	owner := defID("f")
	c := portable.Crate{Name: "mod", Items: []portable.Item{{
		OwnerID: owner,
		Kind:    portable.ItemMacroInvocation,
		Data: portable.MacroInvocationData{Invocation: portable.MacroInvocation{
			MacroIdent: defID("helper_macro"),
			Argument:   "1, 2, 3",
		}},
	}}}
	var buf bytes.Buffer
	require.NoError(t, portable.Dump(&buf, &c, portable.DumpOptions{}))
	assert.Contains(t, buf.String(), "mod::helper_macro!(1, 2, 3) (no def_id)")
}

func TestKindsEncodeByName(t *testing.T) {
	c := identityFn()
	raw, err := json.Marshal(c.Items[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"Fn"`)
	assert.Contains(t, string(raw), `"kind":"VarRef"`)
	assert.Contains(t, string(raw), `"kind":"Binding"`)
	assert.NotContains(t, string(raw), `"def_id":null`)
}

func TestMsgpackEncodes(t *testing.T) {
	c := identityFn()
	raw, err := msgpack.Marshal(&c)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(raw, &generic))
	assert.Equal(t, "mod", generic["name"])
	items, ok := generic["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestEnumNamesOutOfRange(t *testing.T) {
	assert.Equal(t, "Unknown", portable.ExprKind(250).String())
	assert.Equal(t, "Todo", portable.ExprTodo.String())
	assert.Equal(t, "MacroInvokation", portable.ItemMacroInvocation.String())
	assert.Equal(t, uint(128), portable.I128.Bits())
}

func TestDumpWrappedPatterns(t *testing.T) {
	c := identityFn()
	fn := c.Items[0].Data.(portable.FnData)
	inner := *fn.Def.Params[0].Pat
	ascribed := portable.Pat{Ty: inner.Ty, Kind: portable.PatAscribeUserType, Data: portable.AscribeData{Subpattern: inner}}
	fn.Def.Params[0].Pat = &portable.Pat{Ty: inner.Ty, Kind: portable.PatDeref, Data: portable.DerefPatData{Subpattern: ascribed}}
	c.Items[0].Data = fn

	var buf bytes.Buffer
	require.NoError(t, portable.Dump(&buf, &c, portable.DumpOptions{}))
	assert.Contains(t, buf.String(), "fn f<T>(&x: T) -> T x")
}
