//nolint:errcheck // Payload assertions are checked by construction
package portable

import (
	"fmt"
	"io"
	"strings"
)

// DumpOptions configures tree dumping.
type DumpOptions struct {
	ShowSpans bool
	ShowTypes bool
}

// Printer writes a readable rendering of the portable tree.
type Printer struct {
	w      io.Writer
	indent int
	opts   DumpOptions
	err    error
}

// NewPrinter creates a printer with the given options.
func NewPrinter(w io.Writer, opts DumpOptions) *Printer {
	return &Printer{w: w, opts: opts}
}

// Dump writes the crate to w.
func Dump(w io.Writer, c *Crate, opts DumpOptions) error {
	p := NewPrinter(w, opts)
	return p.PrintCrate(c)
}

// PrintCrate prints every item of a crate followed by the exported span count.
func (p *Printer) PrintCrate(c *Crate) error {
	p.printf("crate %s\n\n", c.Name)
	for i := range c.Items {
		p.PrintItem(&c.Items[i])
		p.printf("\n")
	}
	p.printf("// %d exported spans\n", len(c.ExportedSpans))
	return p.err
}

// PrintItem prints one item.
func (p *Printer) PrintItem(it *Item) {
	p.printIndent()
	p.printAttrs(it.Attributes)
	switch it.Kind {
	case ItemMacroInvocation:
		data := it.Data.(MacroInvocationData)
		p.printf("%s!(%s)", data.Invocation.MacroIdent.QualifiedPath(), data.Invocation.Argument)
	case ItemFn:
		data := it.Data.(FnData)
		p.printFnDef("fn "+data.Name, &data.Def)
	case ItemConst:
		data := it.Data.(ConstData)
		p.printf("const %s: %s = ", data.Name, p.tyStr(data.Ty))
		p.printExpr(data.Body)
	case ItemStatic:
		data := it.Data.(StaticData)
		mut := ""
		if data.Mutbl == Mut {
			mut = "mut "
		}
		p.printf("static %s%s: %s = ", mut, data.Name, p.tyStr(data.Ty))
		p.printExpr(data.Body)
	case ItemUse:
		data := it.Data.(UseData)
		segs := make([]string, 0, len(data.Path.Segments))
		for _, s := range data.Path.Segments {
			segs = append(segs, s.Ident)
		}
		p.printf("use %s", strings.Join(segs, "::"))
		if data.Kind == UseGlob {
			p.printf("::*")
		}
		if data.Path.Rename != nil {
			p.printf(" as %s", *data.Path.Rename)
		}
	case ItemExternCrate:
		data := it.Data.(ExternCrateData)
		p.printf("extern crate %s", data.Name)
	case ItemMacro:
		data := it.Data.(MacroDefData)
		p.printf("macro %s <%s>", data.Name, data.Kind)
	case ItemMod:
		data := it.Data.(ModData)
		p.printf("mod %s {\n", data.Name)
		p.indent++
		for i := range data.Items {
			p.PrintItem(&data.Items[i])
		}
		p.indent--
		p.printIndent()
		p.printf("}")
	case ItemForeignMod:
		data := it.Data.(ForeignModData)
		p.printf("extern %q {", data.Abi)
		for _, fi := range data.Items {
			p.printf(" %s %s;", fi.Kind, fi.Name)
		}
		p.printf(" }")
	case ItemTyAlias:
		data := it.Data.(TyAliasData)
		p.printf("type %s%s = %s", data.Name, p.genericsStr(&data.Generics), p.tyStr(data.Ty))
	case ItemOpaqueTy:
		data := it.Data.(OpaqueTyData)
		p.printf("opaque <%s> (%d bounds)", data.Origin, len(data.Bounds.Predicates))
	case ItemEnum:
		data := it.Data.(EnumData)
		p.printf("enum %s%s {\n", data.Name, p.genericsStr(&data.Generics))
		p.indent++
		for _, v := range data.Variants {
			p.printIndent()
			p.printf("%s", v.Name)
			p.printFields(&v.Data)
			p.printf("\n")
		}
		p.indent--
		p.printIndent()
		p.printf("}")
	case ItemStruct, ItemUnion:
		data := it.Data.(StructData)
		kw := "struct"
		if it.Kind == ItemUnion {
			kw = "union"
		}
		p.printf("%s %s%s", kw, data.Name, p.genericsStr(&data.Generics))
		p.printFields(&data.Data)
	case ItemTrait:
		data := it.Data.(TraitData)
		p.printf("trait %s%s {\n", data.Name, p.genericsStr(&data.Generics))
		p.indent++
		for i := range data.Items {
			ti := &data.Items[i]
			p.printIndent()
			switch {
			case ti.Fn != nil:
				p.printFnDef("fn "+ti.Name, ti.Fn)
			case ti.Default != nil:
				p.printf("%s %s = ", ti.Kind, ti.Name)
				p.printExpr(ti.Default)
			default:
				p.printf("%s %s", ti.Kind, ti.Name)
			}
			p.printf("\n")
		}
		p.indent--
		p.printIndent()
		p.printf("}")
	case ItemTraitAlias:
		data := it.Data.(TraitAliasData)
		p.printf("trait %s%s = ...", data.Name, p.genericsStr(&data.Generics))
	case ItemImpl:
		data := it.Data.(ImplData)
		p.printf("impl%s ", p.genericsStr(&data.Generics))
		if data.OfTrait != nil {
			if data.Negative {
				p.printf("!")
			}
			p.printf("%s for ", data.OfTrait.DefID.QualifiedPath())
		}
		p.printf("%s {\n", p.tyStr(data.SelfTy))
		p.indent++
		for i := range data.Items {
			ii := &data.Items[i]
			p.printIndent()
			switch {
			case ii.Fn != nil:
				p.printFnDef("fn "+ii.Name, ii.Fn)
			case ii.Body != nil:
				p.printf("const %s = ", ii.Name)
				p.printExpr(ii.Body)
			case ii.Ty != nil:
				p.printf("type %s = %s", ii.Name, p.tyStr(*ii.Ty))
			}
			p.printf("\n")
		}
		p.indent--
		p.printIndent()
		p.printf("}")
	default:
		p.printf("<%s>", it.Kind)
	}
	if it.DefID == nil {
		p.printf(" (no def_id)")
	}
	p.printSpan(it.Span)
	p.printf("\n")
}

func (p *Printer) printFnDef(head string, fn *FnDef) {
	p.printf("%s%s(", head, p.genericsStr(&fn.Generics))
	for i, prm := range fn.Params {
		if i > 0 {
			p.printf(", ")
		}
		if prm.Pat != nil {
			p.printPat(prm.Pat)
		} else {
			p.printf("_")
		}
		p.printf(": %s", p.tyStr(prm.Ty))
	}
	p.printf(") -> %s ", p.tyStr(fn.Ret))
	if fn.Body == nil {
		p.printf(";")
		return
	}
	p.printExpr(fn.Body)
}

func (p *Printer) printFields(vd *VariantData) {
	switch vd.Kind {
	case VariantUnit:
		return
	case VariantTuple:
		p.printf("(")
		for i, f := range vd.Fields {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s", p.tyStr(f.Ty))
		}
		p.printf(")")
	default:
		p.printf(" {")
		for i, f := range vd.Fields {
			if i > 0 {
				p.printf(",")
			}
			name := "_"
			if f.Name != nil {
				name = *f.Name
			}
			p.printf(" %s: %s", name, p.tyStr(f.Ty))
		}
		p.printf(" }")
	}
}

func (p *Printer) genericsStr(g *Generics) string {
	if len(g.Params) == 0 {
		return ""
	}
	names := make([]string, 0, len(g.Params))
	for _, prm := range g.Params {
		if prm.Kind == ParamLifetime {
			names = append(names, "'"+strings.TrimPrefix(prm.Name, "'"))
			continue
		}
		names = append(names, prm.Name)
	}
	return "<" + strings.Join(names, ", ") + ">"
}

func (p *Printer) printAttrs(attrs []Attribute) {
	for _, a := range attrs {
		switch a.Kind {
		case AttrDocComment:
			p.printf("/// %s\n", strings.TrimSpace(a.Doc.Symbol))
		default:
			p.printf("#[%s%s]\n", a.Normal.Path, a.Normal.Args)
		}
		p.printIndent()
	}
}

func (p *Printer) printBlock(b *Block) {
	p.printf("{\n")
	p.indent++
	for i := range b.Stmts {
		st := &b.Stmts[i]
		p.printIndent()
		switch st.Kind {
		case StmtLet:
			p.printf("let ")
			p.printPat(st.Pattern)
			if st.Initializer != nil {
				p.printf(" = ")
				p.printExpr(st.Initializer)
			}
			if st.Else != nil {
				p.printf(" else ")
				p.printBlock(st.Else)
			}
		case StmtMacroInvocation:
			p.printf("%s!(%s)", st.Invocation.MacroIdent.QualifiedPath(), st.Invocation.Argument)
		default:
			p.printExpr(st.Expr)
		}
		p.printf(";\n")
	}
	if b.Expr != nil {
		p.printIndent()
		p.printExpr(b.Expr)
		p.printf("\n")
	}
	p.indent--
	p.printIndent()
	p.printf("}")
}

func (p *Printer) printExprs(es []*Expr) {
	for i, e := range es {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(e)
	}
}

func (p *Printer) printExpr(e *Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}
	showType := p.opts.ShowTypes
	switch e.Kind {
	case ExprLiteral:
		data := e.Data.(LiteralData)
		if data.Neg {
			p.printf("-")
		}
		p.printf("%s", litStr(&data.Lit))
		showType = false
	case ExprVarRef:
		p.printf("%s", e.Data.(VarRefData).ID.Name)
	case ExprUpvarRef:
		p.printf("%s", e.Data.(UpvarRefData).VarHirID.Name)
	case ExprGlobalName:
		p.printf("%s", e.Data.(GlobalNameData).ID.QualifiedPath())
	case ExprConstRef:
		p.printf("%s", e.Data.(ConstRefData).Name)
	case ExprNamedConst:
		p.printf("%s", e.Data.(NamedConstData).DefID.QualifiedPath())
	case ExprConstParam:
		p.printf("%s", e.Data.(ConstParamData).Param.Name)
	case ExprStaticRef:
		p.printf("%s", e.Data.(StaticRefData).DefID.QualifiedPath())
	case ExprZstLiteral:
		p.printf("zst")
	case ExprMacroInvocation:
		inv := e.Data.(MacroInvocationData).Invocation
		p.printf("%s!(%s)", inv.MacroIdent.QualifiedPath(), inv.Argument)
	case ExprCall:
		data := e.Data.(CallData)
		p.printExpr(data.Fun)
		p.printf("(")
		p.printExprs(data.Args)
		p.printf(")")
	case ExprBinary, ExprAssignOp:
		data := e.Data.(BinaryData)
		op := data.Op.String()
		if e.Kind == ExprAssignOp {
			op += "="
		}
		p.printf("(")
		p.printExpr(data.Lhs)
		p.printf(" %s ", op)
		p.printExpr(data.Rhs)
		p.printf(")")
	case ExprAssign:
		data := e.Data.(BinaryData)
		p.printExpr(data.Lhs)
		p.printf(" = ")
		p.printExpr(data.Rhs)
	case ExprIndex:
		data := e.Data.(BinaryData)
		p.printExpr(data.Lhs)
		p.printf("[")
		p.printExpr(data.Rhs)
		p.printf("]")
	case ExprLogicalOp:
		data := e.Data.(LogicalData)
		p.printf("(")
		p.printExpr(data.Lhs)
		p.printf(" %s ", data.Op)
		p.printExpr(data.Rhs)
		p.printf(")")
	case ExprUnary:
		data := e.Data.(UnaryData)
		p.printf("%s ", data.Op)
		p.printExpr(data.Arg)
	case ExprField:
		data := e.Data.(FieldData)
		p.printExpr(data.Lhs)
		name, _ := data.Field.LastName()
		p.printf(".%s", name)
	case ExprTupleField:
		data := e.Data.(TupleFieldData)
		p.printExpr(data.Lhs)
		p.printf(".%d", data.Field)
	case ExprBox, ExprDeref, ExprCast, ExprUse, ExprNeverToAny, ExprLoop, ExprYield:
		p.printf("%s(", strings.ToLower(e.Kind.String()))
		p.printExpr(e.Data.(ValueData).Value)
		p.printf(")")
	case ExprPointer:
		data := e.Data.(PointerData)
		p.printf("ptr<%s>(", data.Cast)
		p.printExpr(data.Source)
		p.printf(")")
	case ExprBorrow:
		data := e.Data.(BorrowData)
		p.printf("&")
		if data.Kind == BorrowMut {
			p.printf("mut ")
		}
		p.printExpr(data.Arg)
	case ExprAddressOf:
		data := e.Data.(AddressOfData)
		p.printf("&raw %s ", data.Mutbl)
		p.printExpr(data.Arg)
	case ExprIf:
		data := e.Data.(IfData)
		p.printf("if ")
		p.printExpr(data.Cond)
		p.printf(" ")
		p.printExpr(data.Then)
		if data.Else != nil {
			p.printf(" else ")
			p.printExpr(data.Else)
		}
	case ExprLet:
		data := e.Data.(LetExprData)
		p.printf("let ")
		p.printPat(&data.Pat)
		p.printf(" = ")
		p.printExpr(data.Expr)
	case ExprMatch:
		data := e.Data.(MatchData)
		p.printf("match ")
		p.printExpr(data.Scrutinee)
		p.printf(" {\n")
		p.indent++
		for i := range data.Arms {
			arm := &data.Arms[i]
			p.printIndent()
			p.printPat(&arm.Pattern)
			if arm.Guard != nil {
				p.printf(" if ")
				p.printExpr(arm.Guard.Expr)
			}
			p.printf(" => ")
			p.printExpr(arm.Body)
			p.printf(",\n")
		}
		p.indent--
		p.printIndent()
		p.printf("}")
	case ExprBlock:
		data := e.Data.(BlockData)
		p.printBlock(&data.Block)
		showType = false
	case ExprBreak, ExprContinue, ExprReturn:
		data := e.Data.(JumpData)
		p.printf("%s", strings.ToLower(e.Kind.String()))
		if data.Value != nil {
			p.printf(" ")
			p.printExpr(data.Value)
		}
	case ExprRepeat:
		data := e.Data.(RepeatData)
		p.printf("[")
		p.printExpr(data.Value)
		p.printf("; ")
		p.printExpr(data.Count)
		p.printf("]")
	case ExprArray:
		p.printf("[")
		p.printExprs(e.Data.(FieldsData).Fields)
		p.printf("]")
	case ExprTuple:
		p.printf("(")
		p.printExprs(e.Data.(FieldsData).Fields)
		p.printf(")")
	case ExprAdt:
		data := e.Data.(AdtExprData)
		p.printf("%s {", data.Info.Variant.QualifiedPath())
		for i, f := range data.Fields {
			if i > 0 {
				p.printf(",")
			}
			name, _ := f.Field.LastName()
			p.printf(" %s: ", name)
			p.printExpr(f.Value)
		}
		if data.Base != nil {
			p.printf(" ..")
			p.printExpr(data.Base.Base)
		}
		p.printf(" }")
	case ExprPlaceTypeAscription, ExprValueTypeAscription:
		p.printExpr(e.Data.(AscriptionData).Source)
	case ExprClosure:
		data := e.Data.(ClosureData)
		p.printf("|")
		for i := range data.Params {
			if i > 0 {
				p.printf(", ")
			}
			if data.Params[i].Pat != nil {
				p.printPat(data.Params[i].Pat)
			}
		}
		p.printf("| ")
		p.printExpr(data.Body)
	case ExprConstBlock:
		p.printf("const { %s }", e.Data.(ConstBlockData).DefID.QualifiedPath())
	case ExprTodo:
		p.printf("todo!(%q)", e.Data.(TodoData).Text)
	default:
		p.printf("<%s>", e.Kind)
	}
	if showType {
		p.printf(": %s", p.tyStr(e.Ty))
	}
}

func (p *Printer) printPat(pat *Pat) {
	if pat == nil {
		p.printf("_")
		return
	}
	switch pat.Kind {
	case PatWild:
		p.printf("_")
	case PatBinding:
		data := pat.Data.(BindingData)
		if data.Mode == ByRef {
			p.printf("ref ")
		}
		if data.Mutbl == Mut {
			p.printf("mut ")
		}
		p.printf("%s", data.Var.Name)
		if data.Subpattern != nil {
			p.printf(" @ ")
			p.printPat(data.Subpattern)
		}
	case PatAscribeUserType:
		sub := pat.Data.(AscribeData).Subpattern
		p.printPat(&sub)
	case PatVariant:
		data := pat.Data.(VariantPatData)
		p.printf("%s", data.Info.Variant.QualifiedPath())
		if len(data.Subpatterns) > 0 {
			p.printf(" {")
			for i := range data.Subpatterns {
				if i > 0 {
					p.printf(",")
				}
				name, _ := data.Subpatterns[i].Field.LastName()
				p.printf(" %s: ", name)
				p.printPat(&data.Subpatterns[i].Pattern)
			}
			p.printf(" }")
		}
	case PatTuple:
		p.printf("(")
		p.printPats(pat.Data.(TuplePatData).Subpatterns, ", ")
		p.printf(")")
	case PatDeref:
		p.printf("&")
		sub := pat.Data.(DerefPatData).Subpattern
		p.printPat(&sub)
	case PatConstant:
		p.printExpr(pat.Data.(ConstantPatData).Value)
	case PatRange:
		data := pat.Data.(RangePatData)
		p.printExpr(data.Lo)
		if data.Included {
			p.printf("..=")
		} else {
			p.printf("..")
		}
		p.printExpr(data.Hi)
	case PatSlice, PatArray:
		data := pat.Data.(SlicePatData)
		p.printf("[")
		p.printPats(data.Prefix, ", ")
		if data.Slice != nil {
			if len(data.Prefix) > 0 {
				p.printf(", ")
			}
			p.printPat(data.Slice)
			p.printf("..")
		}
		if len(data.Suffix) > 0 {
			p.printf(", ")
			p.printPats(data.Suffix, ", ")
		}
		p.printf("]")
	case PatOr:
		p.printPats(pat.Data.(OrPatData).Pats, " | ")
	case PatTodo:
		p.printf("todo!(%q)", pat.Data.(TodoData).Text)
	default:
		p.printf("<%s>", pat.Kind)
	}
}

func (p *Printer) printPats(pats []Pat, sep string) {
	for i := range pats {
		if i > 0 {
			p.printf("%s", sep)
		}
		p.printPat(&pats[i])
	}
}

func (p *Printer) tyStr(t Ty) string {
	switch t.Kind {
	case TyBool:
		return "bool"
	case TyChar:
		return "char"
	case TyStr:
		return "str"
	case TyNever:
		return "!"
	case TyInt:
		return strings.ToLower(t.Data.(IntData).Int.String())
	case TyUint:
		return strings.ToLower(t.Data.(UintData).Uint.String())
	case TyFloat:
		return strings.ToLower(t.Data.(FloatData).Float.String())
	case TyParam:
		return t.Data.(ParamData).Name
	case TyNamed, TyForeign:
		data := t.Data.(NamedData)
		return data.DefID.QualifiedPath().String() + p.argsStr(data.GenericArgs)
	case TyTuple:
		elems := t.Data.(TupleData).Elems
		parts := make([]string, 0, len(elems))
		for _, el := range elems {
			parts = append(parts, p.tyStr(el))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case TyRef:
		data := t.Data.(RefData)
		if data.Mutbl == Mut {
			return "&mut " + p.tyStr(data.Elem)
		}
		return "&" + p.tyStr(data.Elem)
	case TySlice:
		return "[" + p.tyStr(t.Data.(ElemData).Elem) + "]"
	case TyRawPtr:
		data := t.Data.(ElemData)
		if data.Mutbl == Mut {
			return "*mut " + p.tyStr(data.Elem)
		}
		return "*const " + p.tyStr(data.Elem)
	case TyArray:
		return "[" + p.tyStr(t.Data.(ArrayData).Elem) + "; _]"
	case TyArrow:
		data := t.Data.(ArrowData)
		parts := make([]string, 0, len(data.Params))
		for _, prm := range data.Params {
			parts = append(parts, p.tyStr(prm))
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + p.tyStr(data.Ret)
	case TyAlias:
		data := t.Data.(AliasData)
		return data.Alias.DefID.QualifiedPath().String() + p.argsStr(data.Alias.GenericArgs)
	case TyInfer, TyTodo:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Data.(TextData).Text)
	default:
		return t.Kind.String()
	}
}

func (p *Printer) argsStr(args []GenericArg) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		switch a.Kind {
		case ArgType:
			parts = append(parts, p.tyStr(*a.Type))
		case ArgLifetime:
			if a.Lifetime.Name != "" {
				parts = append(parts, a.Lifetime.Name)
			} else {
				parts = append(parts, "'_")
			}
		default:
			parts = append(parts, "const")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func litStr(l *Lit) string {
	switch l.Kind {
	case LitStr:
		return fmt.Sprintf("%q", l.Str)
	case LitByteStr:
		return fmt.Sprintf("b%q", l.Bytes)
	case LitChar:
		return "'" + l.Char + "'"
	case LitByte, LitInt:
		return l.Int
	case LitFloat:
		return l.Float
	case LitBool:
		if l.Bool {
			return "true"
		}
		return "false"
	default:
		return "<err>"
	}
}

func (p *Printer) printSpan(sp interface{ String() string }) {
	if p.opts.ShowSpans {
		p.printf(" @ %s", sp)
	}
}

func (p *Printer) printIndent() {
	for range p.indent {
		p.printf("  ")
	}
}

func (p *Printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
