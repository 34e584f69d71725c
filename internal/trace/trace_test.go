package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeBatch, true},
		{LevelPhase, ScopeItem, false},
		{LevelDetail, ScopeItem, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.Admits(tt.scope), "%s/%s", tt.level, tt.scope)
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)

	sp := Begin(tr, ScopeItem, "item:mod::f", SpanContext{})
	Point(tr, ScopeNode, "unreachable", "zst literal", sp.Context())
	sp.WithExtra("kind", "Fn").WithExtra("attrs", "0").End("ok")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "→ item:mod::f")
	assert.Contains(t, lines[1], "• unreachable (zst literal)")
	assert.Contains(t, lines[2], "← item:mod::f (ok) {attrs=0, kind=Fn}")
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeBatch, "decode", SpanContext{}).End("")
	Begin(tr, ScopeItem, "item:hidden", SpanContext{}).End("")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	var ev map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, "begin", ev["kind"])
	assert.Equal(t, "batch", ev["scope"])
	assert.Equal(t, "decode", ev["name"])
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeNode, name, "", SpanContext{})
	}
	events := tr.Snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, "b", events[0].Name)
	assert.Equal(t, "c", events[1].Name)
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(8, LevelDebug)
	b := NewRingTracer(8, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, b)
	Point(m, ScopeDriver, "start", "", SpanContext{})
	assert.Len(t, a.Snapshot(), 1)
	assert.Len(t, b.Snapshot(), 1)
}

func TestContextPropagation(t *testing.T) {
	assert.Equal(t, Nop, FromContext(context.Background()))
	tr := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	assert.Same(t, tr, FromContext(ctx).(*RingTracer))

	sc := SpanContext{SpanID: 7, Run: 3}
	ctx = WithSpanContext(ctx, sc)
	assert.Same(t, tr, FromContext(ctx).(*RingTracer))
	other := NewRingTracer(4, LevelPhase)
	ctx = WithTracer(ctx, other)
	assert.Equal(t, sc, CurrentSpan(ctx))
	assert.Same(t, other, FromContext(ctx).(*RingTracer))
	assert.Equal(t, Nop, FromContext(WithTracer(ctx, nil)))
}

func TestOpenOffIsInert(t *testing.T) {
	s, err := Open(Config{Level: LevelOff, Mode: ModeRing})
	require.NoError(t, err)
	assert.Equal(t, Nop, s.Tracer)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestParseFlags(t *testing.T) {
	l, err := ParseLevel("DETAIL")
	require.NoError(t, err)
	assert.Equal(t, LevelDetail, l)
	_, err = ParseLevel("error")
	assert.Error(t, err)

	m, err := ParseMode("Both")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, m)
	assert.Equal(t, "ring", ModeRing.String())
	_, err = ParseMode("tape")
	assert.Error(t, err)

	f, err := ParseFormat("ndjson")
	require.NoError(t, err)
	assert.Equal(t, FormatNDJSON, f)
}

func TestSessionStreamsToOutput(t *testing.T) {
	var buf bytes.Buffer
	s, err := Open(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatNDJSON})
	require.NoError(t, err)
	Point(s.Tracer, ScopeBatch, "decode", "", SpanContext{Run: 1})
	require.NoError(t, s.Close())

	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.Equal(t, "decode", ev["name"])
}

func TestSessionDumpsRingOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	s, err := Open(Config{Level: LevelDebug, Mode: ModeRing, OutputPath: path, RingSize: 2})
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c"} {
		Point(s.Tracer, ScopeNode, name, "", SpanContext{})
	}
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist, "ring mode writes nothing before Close")

	require.NoError(t, s.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "• a")
	assert.Contains(t, out, "• b")
	assert.Contains(t, out, "• c")
}

func TestEndCountsOnce(t *testing.T) {
	tr := NewRingTracer(8, LevelDebug)
	before := OpenSpans()
	sp := Begin(tr, ScopeItem, "item", SpanContext{})
	assert.Equal(t, before+1, OpenSpans())
	sp.End("ok")
	assert.Zero(t, sp.End("again"))
	assert.Equal(t, before, OpenSpans())
	assert.Len(t, tr.Snapshot(), 2)

	// отфильтрованные не считаются
	filtered := Begin(NewRingTracer(1, LevelPhase), ScopeItem, "item", SpanContext{})
	assert.Equal(t, before, OpenSpans())
	filtered.End("")
	assert.Equal(t, before, OpenSpans())
}

func TestHeartbeatReportsOpenSpans(t *testing.T) {
	tr := NewRingTracer(64, LevelPhase)
	hb := StartHeartbeat(tr, time.Millisecond)
	require.NotNil(t, hb)
	require.Eventually(t, func() bool { return len(tr.Snapshot()) > 0 }, time.Second, time.Millisecond)
	hb.Stop()
	hb.Stop()

	first := tr.Snapshot()[0]
	assert.Equal(t, KindHeartbeat, first.Kind)
	assert.True(t, strings.HasPrefix(first.Detail, "#1 open="), first.Detail)

	assert.Nil(t, StartHeartbeat(Nop, time.Millisecond))
	var none *Heartbeat
	none.Stop()
}

func TestStartPropagatesRun(t *testing.T) {
	tr := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), tr)

	ctx, driver := Start(ctx, ScopeDriver, "export")
	snapCtx, snap := Start(ctx, ScopeBatch, "snapshot")
	itemCtx, item := Start(snapCtx, ScopeItem, "item")
	Point(tr, ScopeNode, "unreachable", "", CurrentSpan(itemCtx))
	item.End("")
	snap.End("")
	driver.End("")

	assert.Equal(t, SpanContext{SpanID: snap.ID(), Run: snap.ID()}, CurrentSpan(snapCtx))
	events := tr.Snapshot()
	require.Len(t, events, 7)
	assert.Zero(t, events[0].Run, "driver span is outside any run")
	for _, ev := range events[1:6] {
		assert.Equal(t, snap.ID(), ev.Run, ev.Name)
	}
	assert.Equal(t, item.ID(), events[3].ParentID)
}

func TestStartKeepsParentWhenFiltered(t *testing.T) {
	tr := NewRingTracer(16, LevelPhase)
	ctx, snap := Start(WithTracer(context.Background(), tr), ScopeBatch, "snapshot")
	itemCtx, item := Start(ctx, ScopeItem, "item")
	assert.Zero(t, item.ID())
	assert.Equal(t, snap.Context(), CurrentSpan(itemCtx))
	assert.Equal(t, snap.Context(), item.Context())
}

func TestRingDumpTo(t *testing.T) {
	tr := NewRingTracer(4, LevelDebug)
	Point(tr, ScopeBatch, "decode", "", SpanContext{Run: 3})
	path := filepath.Join(t.TempDir(), "ring.ndjson")
	require.NoError(t, tr.DumpTo(path, FormatAuto))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &ev))
	assert.Equal(t, "decode", ev["name"])
	assert.EqualValues(t, 3, ev["run"])
}
