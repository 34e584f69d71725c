package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that an export phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
	// PhaseDone closes a snapshot run. It is sent once per path, after
	// every phase, with Name set to "snapshot".
	PhaseDone
)

// PhaseEvent describes a timing phase boundary of one snapshot run.
type PhaseEvent struct {
	Path    string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	Failed  bool
	Cached  bool
}

// PhaseObserver receives phase events emitted during ExportSnapshots. Runs
// are parallel, so it must be safe for concurrent use.
type PhaseObserver func(PhaseEvent)
