package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Tracer records trace events. Emit is called from every export goroutine.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
}

func enabled(t Tracer) bool {
	return t != nil && t.Level() > LevelOff
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // last N kept, written on Close
	ModeBoth
)

var modeNames = map[string]StorageMode{"stream": ModeStream, "ring": ModeRing, "both": ModeBoth}

func (m StorageMode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// ParseMode converts a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	if m, ok := modeNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes a trace session.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks from OutputPath
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "" and "-" mean stderr
	RingSize   int       // default 4096
	Heartbeat  time.Duration
}

// Session is an open trace: the tracer to put into contexts plus what has
// to happen when the command ends.
type Session struct {
	Tracer Tracer

	heartbeat *Heartbeat
	dump      func() error // ring mode: writes the buffer out
}

// Open starts a trace session. With LevelOff the session is inert and its
// Tracer is Nop.
func Open(cfg Config) (*Session, error) {
	if cfg.Level == LevelOff {
		return &Session{Tracer: Nop}, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatFor(cfg.OutputPath)
	}

	s := &Session{}
	switch cfg.Mode {
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		s.Tracer = NewStreamTracer(w, cfg.Level, format)
		if cfg.Mode == ModeBoth {
			s.Tracer = NewMultiTracer(cfg.Level, s.Tracer, NewRingTracer(cfg.RingSize, cfg.Level))
		}
	case ModeRing:
		// файл открываем только при сбросе кольца
		ring := NewRingTracer(cfg.RingSize, cfg.Level)
		s.Tracer = ring
		s.dump = func() error {
			if cfg.Output != nil {
				return ring.Dump(cfg.Output, format)
			}
			return ring.DumpTo(cfg.OutputPath, format)
		}
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	s.heartbeat = StartHeartbeat(s.Tracer, cfg.Heartbeat)
	return s, nil
}

// Close stops the heartbeat, writes the ring in ring mode and closes the
// output. It is safe to call on an inert session.
func (s *Session) Close() error {
	if s == nil || s.Tracer == nil {
		return nil
	}
	s.heartbeat.Stop()
	var errs []error
	if s.dump != nil {
		errs = append(errs, s.dump())
	}
	errs = append(errs, s.Tracer.Flush(), s.Tracer.Close())
	s.Tracer = nil
	return errors.Join(errs...)
}

// formatFor picks NDJSON for .ndjson and .json paths, text otherwise.
func formatFor(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".json") {
		return FormatNDJSON
	}
	return FormatText
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
