package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	globalSeq   uint64
	globalSpans uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return atomic.AddUint64(&globalSpans, 1)
}

// Span is an open span. The zero value and spans of disabled tracers are
// inert.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  SpanContext
	run     uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
	ended   bool
}

// Begin starts a span under parent and emits its begin event. The first
// batch span of a chain opens a run: it and everything below it carry its
// ID as Run, which keeps parallel snapshot exports apart in one trace.
func Begin(t Tracer, scope Scope, name string, parent SpanContext) *Span {
	if !enabled(t) || !t.Level().Admits(scope) {
		return &Span{tracer: Nop, parent: parent, run: parent.Run}
	}

	id := NextSpanID()
	run := parent.Run
	if run == 0 && scope == ScopeBatch {
		run = id
	}
	now := time.Now()
	openSpans.Add(1)

	t.Emit(&Event{
		Time:     now,
		Seq:      NextSeq(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   id,
		ParentID: parent.SpanID,
		Run:      run,
		Name:     name,
	})

	return &Span{
		tracer:  t,
		id:      id,
		parent:  parent,
		run:     run,
		scope:   scope,
		name:    name,
		started: now,
	}
}

// Start begins a span under the span active in ctx, using the tracer of
// ctx, and returns a context where the new span is active. Filtered spans
// leave the parent active.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	sp := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if sp.id == 0 {
		return ctx, sp
	}
	return WithSpanContext(ctx, sp.Context()), sp
}

// End emits the end event and returns the span's duration. Only the first
// End of a span is recorded.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 || s.ended {
		return 0
	}
	s.ended = true
	openSpans.Add(-1)

	dur := time.Since(s.started)

	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent.SpanID,
		Run:      s.run,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})

	return dur
}

// WithExtra adds a key-value pair to the end event.
// Returns the span for method chaining.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}

	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Context is the propagation record of s. For a filtered span it is the
// parent's record.
func (s *Span) Context() SpanContext {
	if s == nil {
		return SpanContext{}
	}
	if s.id == 0 {
		return s.parent
	}
	return SpanContext{SpanID: s.id, Run: s.run}
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent SpanContext) {
	if !enabled(t) || !t.Level().Admits(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent.SpanID,
		Run:      parent.Run,
		Name:     name,
		Detail:   detail,
	})
}
