package observ

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("decode a.snapshot")
	tm.End(idx, "3 items")
	tm.End(42, "ignored")

	report := tm.Report()
	require.Len(t, report.Phases, 1)
	assert.Equal(t, "decode a.snapshot", report.Phases[0].Name)
	assert.Equal(t, "3 items", report.Phases[0].Note)
	assert.GreaterOrEqual(t, report.TotalMS, 0.0)

	summary := tm.Summary()
	assert.True(t, strings.HasPrefix(summary, "timings:\n"))
	assert.Contains(t, summary, "// 3 items")
	assert.Contains(t, summary, "total")
}

func TestTimerConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.End(tm.Begin("export"), "")
		}()
	}
	wg.Wait()
	assert.Len(t, tm.Report().Phases, 8)
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	assert.Equal(t, -1, tm.Begin("x"))
	tm.End(0, "")
	assert.Empty(t, tm.Report().Phases)
}
