package trace

import (
	"fmt"
	"strings"
)

// Level controls how deep into an export the trace goes.
type Level uint8

const (
	LevelOff    Level = iota
	LevelPhase        // driver and snapshot phases
	LevelDetail       // + one span per lowered item
	LevelDebug        // + single nodes
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a --trace-level value.
func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil // #nosec G115 -- index of a four-element table
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|phase|detail|debug)", s)
}

// Admits reports whether events of scope are recorded at level l.
func (l Level) Admits(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeBatch
	case LevelDetail:
		return scope <= ScopeItem
	case LevelDebug:
		return scope <= ScopeNode
	}
	return false
}
