package lower

import (
	"context"
	"fmt"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/portable"
	"portast/internal/source"
	"portast/internal/trace"
)

// buildRegistry maps the call site of every bang macro invocation to the span
// of its argument. Calls the host cannot locate are left out.
func (x *Exporter) buildRegistry() map[source.Span]source.Span {
	calls := x.prog.MacroCalls()
	reg := make(map[source.Span]source.Span, len(calls))
	for _, c := range calls {
		site, err := x.translateSpan(c.CallSite)
		if err != nil {
			continue
		}
		args, err := x.translateSpan(c.Args)
		if err != nil {
			continue
		}
		reg[site] = args
	}
	return reg
}

// macroCall is an allowlisted invocation found in a backtrace.
type macroCall struct {
	macro    host.DefID
	callSite host.Span
	site     source.Span
	args     source.Span
}

// findMacroCall walks the expansions of sp from the innermost out and returns
// the first one that is a registered call of an allowlisted macro.
func (x *Exporter) findMacroCall(sp host.Span) (*macroCall, bool) {
	for _, e := range x.prog.MacroBacktrace(sp) {
		if e.Kind != host.ExpnMacro || e.MacroDef == nil {
			continue
		}
		site, err := x.translateSpan(e.CallSite)
		if err != nil {
			continue
		}
		args, ok := x.registry[site]
		if !ok {
			continue
		}
		def, err := x.translateDefID(*e.MacroDef)
		if err != nil || !x.opts.MatchesMacro(def.QualifiedPath()) {
			continue
		}
		return &macroCall{macro: *e.MacroDef, callSite: e.CallSite, site: site, args: args}, true
	}
	return nil, false
}

// invocation builds the folded node for call. The argument is read back from
// the source file; failing that is an ExpMacroArgUnreadable error.
func (l *lowerer) invocation(call *macroCall) (portable.MacroInvocation, error) {
	site, err := l.span(call.callSite)
	if err != nil {
		return portable.MacroInvocation{}, err
	}
	macro, err := l.defID(call.macro)
	if err != nil {
		return portable.MacroInvocation{}, err
	}
	arg, err := l.x.files.ReadSpan(call.args)
	if err != nil {
		return portable.MacroInvocation{}, &FatalError{
			Span: site,
			Code: diag.ExpMacroArgUnreadable,
			Msg:  fmt.Sprintf("argument of %s: %v", macro, err),
		}
	}
	return portable.MacroInvocation{MacroIdent: macro, Argument: arg, Span: site}, nil
}

// macroInvocation returns the folded invocation sp was expanded from, or nil.
func (l *lowerer) macroInvocation(sp host.Span) (*portable.MacroInvocation, error) {
	call, ok := l.x.findMacroCall(sp)
	if !ok {
		return nil, nil
	}
	inv, err := l.invocation(call)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func isUnreadable(err error) bool {
	fe, ok := AsFatal(err)
	return ok && fe.Code == diag.ExpMacroArgUnreadable
}

// run is a maximal sequence of siblings. call is set when every element was
// expanded from that one allowlisted invocation.
type run[T any] struct {
	call  *macroCall
	elems []T
}

// foldByCallSite splits elems into runs. Neighbours expanded from calls with
// the same call-site span share a run; everything else is a run of its own.
func foldByCallSite[T any](x *Exporter, elems []T, spanOf func(T) (host.Span, bool)) []run[T] {
	var out []run[T]
	for _, e := range elems {
		var call *macroCall
		if sp, ok := spanOf(e); ok {
			call, _ = x.findMacroCall(sp)
		}
		if call != nil && len(out) > 0 {
			last := &out[len(out)-1]
			if last.call != nil && last.call.site == call.site {
				last.elems = append(last.elems, e)
				continue
			}
		}
		out = append(out, run[T]{call: call, elems: []T{e}})
	}
	return out
}

type itemGroup = run[host.DefID]

func (x *Exporter) groupItems(ids []host.DefID) []itemGroup {
	return foldByCallSite(x, ids, func(id host.DefID) (host.Span, bool) {
		it, err := x.prog.Item(id)
		if err != nil {
			return 0, false
		}
		return it.Span, true
	})
}

// invocationItem lowers a folded group to a single item owned by its first
// element.
func (x *Exporter) invocationItem(ctx context.Context, g itemGroup) (portable.Item, *source.SpanSet, error) {
	ctx, span := trace.Start(ctx, trace.ScopeItem, "macro_invocation")
	span.WithExtra("items", fmt.Sprint(len(g.elems)))

	l := x.newLowerer(ctx, g.elems[0])
	l.at = g.call.site
	item, err := l.invocationItem(g)
	if err != nil {
		span.End("failed")
		return portable.Item{}, nil, err
	}
	span.End(item.Kind.String())
	return item, l.spans, nil
}

func (l *lowerer) invocationItem(g itemGroup) (portable.Item, error) {
	inv, err := l.invocation(g.call)
	if err != nil {
		return portable.Item{}, err
	}
	owner, err := l.defID(g.elems[0])
	if err != nil {
		return portable.Item{}, err
	}
	vis, err := l.x.translateSpan(host.DummySpan)
	if err != nil {
		return portable.Item{}, l.hostErr("dummy span", err)
	}
	return portable.Item{
		OwnerID:       owner,
		Span:          inv.Span,
		VisSpan:       vis,
		Kind:          portable.ItemMacroInvocation,
		Data:          portable.MacroInvocationData{Invocation: inv},
		Attributes:    []portable.Attribute{},
		ExpnBacktrace: []portable.ExpnData{},
	}, nil
}
