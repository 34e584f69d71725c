// Package trace records what an export is doing: driver phases, snapshot
// runs, lowered items and single suspicious nodes.
//
//	portast export --trace=- --trace-level=detail crate.snapshot
//
// A Session opened from the command-line flags holds one Tracer:
// StreamTracer writes events as they happen, RingTracer keeps the last
// --trace-ring-size events and writes them when the session closes, and
// MultiTracer does both. Nop is used when tracing is off.
//
// The level decides the deepest scope recorded: phase keeps ScopeDriver and
// ScopeBatch, detail adds ScopeItem, debug adds ScopeNode.
//
// The tracer and the active span travel in the context:
//
//	ctx = trace.WithTracer(ctx, session.Tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeBatch, "snapshot")
//	defer span.End("")
//
// The first batch span opens a run. Every event below it carries the run ID,
// so the interleaved output of parallel snapshot exports can be split apart.
// With --trace-heartbeat the session also emits periodic heartbeats with the
// number of open spans.
package trace
