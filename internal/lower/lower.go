// Package lower translates a typed host program into the portable tree.
//
// One Exporter serves one translation run. It owns the macro-call registry
// and the set of exported spans; every item is lowered by a fresh lowerer
// that carries the per-item state (owner, typed body, local names). A fatal
// condition aborts only the item it was raised in: the item is dropped, a
// diagnostic is reported and its siblings are still exported.
package lower

import (
	"context"
	"fmt"

	"portast/internal/diag"
	"portast/internal/host"
	"portast/internal/options"
	"portast/internal/portable"
	"portast/internal/source"
	"portast/internal/trace"
)

// Config configures an Exporter. Zero values are usable: default options,
// dropped diagnostics and a private file cache.
type Config struct {
	Options  *options.Options
	Reporter diag.Reporter
	Files    *source.FileSet
}

// Exporter lowers the items of one host program. It is not safe for
// concurrent use.
type Exporter struct {
	prog     host.Program
	opts     options.Options
	reporter diag.Reporter
	files    *source.FileSet
	spans    *source.SpanSet
	registry map[source.Span]source.Span
}

// New prepares an exporter for prog and builds its macro-call registry.
func New(prog host.Program, cfg Config) *Exporter {
	x := &Exporter{
		prog:     prog,
		opts:     options.Default(),
		reporter: cfg.Reporter,
		files:    cfg.Files,
		spans:    source.NewSpanSet(),
	}
	if cfg.Options != nil {
		x.opts = *cfg.Options
	}
	if x.reporter == nil {
		x.reporter = diag.NopReporter{}
	}
	if x.files == nil {
		x.files = source.NewFileSet()
	}
	x.registry = x.buildRegistry()
	return x
}

// ExportCrate lowers every root item of the program.
func (x *Exporter) ExportCrate(ctx context.Context) (*portable.Crate, error) {
	items, err := x.ExportItems(ctx, x.prog.RootItems())
	crate := &portable.Crate{
		Name:          x.prog.CrateName(),
		Items:         items,
		ExportedSpans: x.spans.Spans(),
	}
	return crate, err
}

// ExportItems lowers ids in order. Consecutive items produced by the same
// allowlisted macro call are folded into one invocation item. Items that
// fail are reported and skipped; the returned error is only set when ctx is
// cancelled.
func (x *Exporter) ExportItems(ctx context.Context, ids []host.DefID) ([]portable.Item, error) {
	ctx, span := trace.Start(ctx, trace.ScopeBatch, "export_items")
	items, err := x.exportItems(ctx, x.spans, ids)
	span.WithExtra("items", fmt.Sprint(len(items))).End("")
	return items, err
}

// ExportItem lowers a single item without macro folding. A fatal condition is
// returned as a *FatalError; nothing is reported.
func (x *Exporter) ExportItem(ctx context.Context, id host.DefID) (portable.Item, error) {
	item, staged, err := x.lowerItemIsolated(ctx, id)
	if err != nil {
		return portable.Item{}, err
	}
	mergeSpans(x.spans, staged)
	return item, nil
}

// ExportedSpans lists every span attached to an exported node, in first-use
// order.
func (x *Exporter) ExportedSpans() []source.Span {
	return x.spans.Spans()
}

// SpanText reads back the source text an exported span covers.
func (x *Exporter) SpanText(sp source.Span) (string, error) {
	return x.files.ReadSpan(sp)
}

func (x *Exporter) exportItems(ctx context.Context, into *source.SpanSet, ids []host.DefID) ([]portable.Item, error) {
	groups := x.groupItems(ids)
	out := make([]portable.Item, 0, len(ids))
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if g.call != nil {
			item, staged, err := x.invocationItem(ctx, g)
			switch {
			case err == nil:
				mergeSpans(into, staged)
				out = append(out, item)
				continue
			case !isUnreadable(err):
				x.reportItemFailure(g.elems[0], err)
				continue
			}
			// аргумент не прочитать: оставляем раскрытые элементы
			fe, _ := AsFatal(err)
			diag.ReportWarning(x.reporter, diag.ExpMacroArgUnreadable, fe.Span, fe.Msg).Emit()
		}
		for _, id := range g.elems {
			item, staged, err := x.lowerItemIsolated(ctx, id)
			if err != nil {
				x.reportItemFailure(id, err)
				continue
			}
			mergeSpans(into, staged)
			out = append(out, item)
		}
	}
	return out, nil
}

// lowerItemIsolated lowers one item with its own span staging set, so that
// nothing of a failed item leaks into the exported spans.
func (x *Exporter) lowerItemIsolated(ctx context.Context, id host.DefID) (portable.Item, *source.SpanSet, error) {
	ctx, span := trace.Start(ctx, trace.ScopeItem, "item")
	span.WithExtra("def", id.String())

	l := x.newLowerer(ctx, id)
	item, err := l.lowerItem(id)
	if err != nil {
		span.End("failed")
		return portable.Item{}, nil, err
	}
	span.End(item.Kind.String())
	return item, l.spans, nil
}

func (x *Exporter) reportItemFailure(id host.DefID, err error) {
	fe, ok := AsFatal(err)
	if !ok {
		fe = &FatalError{Code: diag.ExpFatalHostQuery, Msg: err.Error()}
	}
	diag.ReportError(x.reporter, diag.ExpItemFailed, fe.Span, fmt.Sprintf("item %s was not exported: %s", id, fe.Msg)).
		WithNote(fe.Span, fe.Code.Title()).
		Emit()
}

func mergeSpans(into, from *source.SpanSet) {
	if into == nil || from == nil {
		return
	}
	for _, sp := range from.Spans() {
		into.Insert(sp)
	}
}

// lowerer holds the per-item state of a lowering pass.
type lowerer struct {
	x      *Exporter
	prog   host.Program
	ctx    context.Context
	owner  host.DefID
	body   *host.Body
	locals map[host.LocalVarID]string
	spans  *source.SpanSet

	// at is the span of the innermost node being lowered; fatal errors and
	// warnings are reported there.
	at source.Span

	tracer  trace.Tracer
	traceAt trace.SpanContext
}

func (x *Exporter) newLowerer(ctx context.Context, owner host.DefID) *lowerer {
	return &lowerer{
		x:       x,
		prog:    x.prog,
		ctx:     ctx,
		owner:   owner,
		locals:  make(map[host.LocalVarID]string),
		spans:   source.NewSpanSet(),
		tracer:  trace.FromContext(ctx),
		traceAt: trace.CurrentSpan(ctx),
	}
}

// withOwner runs fn with owner as the current owner and restores it after.
func (l *lowerer) withOwner(owner host.DefID, fn func() error) error {
	prev := l.owner
	l.owner = owner
	defer func() { l.owner = prev }()
	return fn()
}

func (l *lowerer) warn(code diag.Code, msg string) {
	diag.ReportWarning(l.x.reporter, code, l.at, msg).Emit()
}

// unreachable records a shape the host is not expected to produce.
func (l *lowerer) unreachable(name, detail string) {
	trace.Point(l.tracer, trace.ScopeNode, name, detail, l.traceAt)
	l.warn(diag.ExpUnreachableShape, fmt.Sprintf("supposedly unreachable: %s: %s", name, detail))
}
