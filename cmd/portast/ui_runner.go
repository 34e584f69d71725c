package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"portast/internal/driver"
	"portast/internal/ui"
)

type exportOutcome struct {
	results []driver.ExportResult
	err     error
}

// runExportWithUI exports paths while a progress view runs on stderr.
func runExportWithUI(ctx context.Context, title string, paths []string, opts driver.ExportOptions) ([]driver.ExportResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.PhaseEvent, 256)
	stopped := make(chan struct{})
	outcomeCh := make(chan exportOutcome, 1)

	next := opts.Observer
	opts.Observer = func(ev driver.PhaseEvent) {
		if next != nil {
			next(ev)
		}
		select {
		case events <- ev:
		case <-stopped:
		}
	}

	go func() {
		res, err := driver.ExportSnapshots(ctx, paths, opts)
		outcomeCh <- exportOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events, cancel)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	close(stopped)
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
