package trace

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// openSpans counts spans begun and not yet ended across all runs.
var openSpans atomic.Int64

// OpenSpans returns the number of recorded spans still open.
func OpenSpans() int64 {
	return openSpans.Load()
}

// Heartbeat emits a driver-scope event at a fixed interval with the number
// of open spans. Beats with the same non-zero count and nothing in between
// point at a stuck item.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat starts beating into t. It returns nil when t records
// nothing or every is not positive; Stop on nil is a no-op.
func StartHeartbeat(t Tracer, every time.Duration) *Heartbeat {
	if !enabled(t) || every <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.beat(t, every)
	return h
}

func (h *Heartbeat) beat(t Tracer, every time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for n := 1; ; n++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d open=%d", n, OpenSpans()),
			})
		}
	}
}

// Stop ends the heartbeat and waits for the last beat to be written.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
