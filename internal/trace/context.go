package trace

import "context"

// SpanContext is the active span and the snapshot run it belongs to.
type SpanContext struct {
	SpanID uint64
	Run    uint64
}

// ctxState is everything trace keeps in a context: the tracer and the span
// new spans attach to.
type ctxState struct {
	tracer Tracer
	span   SpanContext
}

type ctxKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer of ctx, Nop if there is none.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx. The active span is kept.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	st := stateOf(ctx)
	st.tracer = t
	return context.WithValue(ctx, ctxKey{}, st)
}

// CurrentSpan returns the active span of ctx, zero outside any span.
func CurrentSpan(ctx context.Context) SpanContext {
	return stateOf(ctx).span
}

// WithSpanContext makes sc the active span of ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	st := stateOf(ctx)
	st.span = sc
	return context.WithValue(ctx, ctxKey{}, st)
}
