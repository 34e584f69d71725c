package trace

import (
	"io"
	"os"
	"sync"
)

// RingTracer keeps the last events in memory. Nothing is written until
// Dump, so a long export costs a fixed amount of memory however deep the
// trace level is.
type RingTracer struct {
	mu     sync.Mutex
	level  Level
	buf    []Event
	next   int // slot of the next event
	filled bool
}

// NewRingTracer keeps up to size events, 4096 when size is not positive.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = 4096
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.Admits(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = *ev
	t.buf[t.next].Seq = NextSeq()
	t.next++
	if t.next == len(t.buf) {
		t.next, t.filled = 0, true
	}
}

// Snapshot returns the kept events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.filled {
		return append([]Event(nil), t.buf[:t.next]...)
	}
	out := make([]Event, 0, len(t.buf))
	out = append(out, t.buf[t.next:]...)
	return append(out, t.buf[:t.next]...)
}

// Dump writes the kept events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

// DumpTo writes the buffered events to path, stderr for "" or "-".
// FormatAuto picks the format from the path.
func (t *RingTracer) DumpTo(path string, format Format) (err error) {
	if format == FormatAuto {
		format = formatFor(path)
	}
	w, err := openOutput(Config{OutputPath: path})
	if err != nil {
		return err
	}
	if f, ok := w.(*os.File); ok && f != os.Stderr {
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}
	return t.Dump(w, format)
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }
func (t *RingTracer) Level() Level { return t.level }
