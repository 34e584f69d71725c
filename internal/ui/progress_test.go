package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/driver"
)

func newModel(paths ...string) *progressModel {
	m, ok := NewProgressModel("export", paths, nil, nil).(*progressModel)
	if !ok {
		panic("unexpected model type")
	}
	return m
}

func TestStatusFollowsPhases(t *testing.T) {
	m := newModel("a.snap", "b.snap")

	m.applyEvent(driver.PhaseEvent{Path: "a.snap", Name: "decode", Status: driver.PhaseStart})
	assert.Equal(t, statusDecoding, m.items[0].status)
	m.applyEvent(driver.PhaseEvent{Path: "a.snap", Name: "decode", Status: driver.PhaseEnd})
	assert.Equal(t, statusDecoding, m.items[0].status)
	m.applyEvent(driver.PhaseEvent{Path: "a.snap", Name: "export", Status: driver.PhaseStart})
	assert.Equal(t, statusLowering, m.items[0].status)
	m.applyEvent(driver.PhaseEvent{Path: "a.snap", Name: "snapshot", Status: driver.PhaseDone})
	assert.Equal(t, statusDone, m.items[0].status)

	m.applyEvent(driver.PhaseEvent{Path: "b.snap", Name: "snapshot", Status: driver.PhaseDone, Failed: true})
	assert.Equal(t, statusError, m.items[1].status)

	assert.Equal(t, 2, m.finished())
	assert.InDelta(t, 1.0, m.percent(), 1e-9)
}

func TestUnknownPathIsIgnored(t *testing.T) {
	m := newModel("a.snap")
	assert.Nil(t, m.applyEvent(driver.PhaseEvent{Path: "z.snap", Status: driver.PhaseDone}))
	assert.Equal(t, statusQueued, m.items[0].status)
}

func TestDuplicatePathsShareRow(t *testing.T) {
	m := newModel("a.snap", "a.snap")
	assert.Len(t, m.items, 1)
}

func TestCachedRun(t *testing.T) {
	m := newModel("a.snap", "b.snap")
	m.applyEvent(driver.PhaseEvent{Path: "a.snap", Status: driver.PhaseDone, Cached: true})
	assert.Equal(t, statusCached, m.items[0].status)
	assert.InDelta(t, 0.5, m.percent(), 1e-9)
	assert.Contains(t, m.View(), "(1/2)")
}

func TestClosedChannelQuits(t *testing.T) {
	events := make(chan driver.PhaseEvent)
	close(events)
	m := NewProgressModel("export", []string{"a.snap"}, events, nil).(*progressModel)

	msg := m.listenForEvent()()
	require.IsType(t, doneMsg{}, msg)
	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.Contains(t, m.View(), "done: export")
}

func TestCtrlCCancels(t *testing.T) {
	cancelled := false
	m := NewProgressModel("export", []string{"a.snap"}, nil, func() { cancelled = true })
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, cancelled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "日本...", truncate("日本語テキスト", 7))
	assert.LessOrEqual(t, runewidth.StringWidth(truncate("abcdefghijklmnop", 10)), 10)
}
