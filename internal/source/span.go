package source

import (
	"fmt"
)

// Span is a portable provenance record: a line/column range inside a file.
type Span struct {
	Lo       Loc      `json:"lo" msgpack:"lo"`
	Hi       Loc      `json:"hi" msgpack:"hi"`
	Filename FileName `json:"filename" msgpack:"filename"`
}

// Empty reports whether the span covers no text.
func (s Span) Empty() bool {
	return s.Lo == s.Hi
}

// Valid reports whether Lo does not come after Hi.
func (s Span) Valid() bool {
	return !s.Hi.Less(s.Lo)
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%s-%s", s.Filename, s.Lo, s.Hi)
}

// Cover extends s to include other when both point into the same file.
func (s Span) Cover(other Span) Span {
	if s.Filename != other.Filename {
		return s
	}
	if other.Lo.Less(s.Lo) {
		s.Lo = other.Lo
	}
	if s.Hi.Less(other.Hi) {
		s.Hi = other.Hi
	}
	return s
}

// Contains reports whether other lies within s.
func (s Span) Contains(other Span) bool {
	if s.Filename != other.Filename {
		return false
	}
	return !other.Lo.Less(s.Lo) && !s.Hi.Less(other.Hi)
}

// SpanSet is an insertion-ordered set of spans. It is owned by a single
// translation run and is not safe for concurrent use.
type SpanSet struct {
	seen  map[Span]struct{}
	order []Span
}

// NewSpanSet creates an empty set.
func NewSpanSet() *SpanSet {
	return &SpanSet{seen: make(map[Span]struct{})}
}

// Insert records sp, returning false if it was already present.
func (set *SpanSet) Insert(sp Span) bool {
	if _, ok := set.seen[sp]; ok {
		return false
	}
	set.seen[sp] = struct{}{}
	set.order = append(set.order, sp)
	return true
}

// Has reports whether sp has been recorded.
func (set *SpanSet) Has(sp Span) bool {
	_, ok := set.seen[sp]
	return ok
}

// Len returns the number of recorded spans.
func (set *SpanSet) Len() int {
	return len(set.order)
}

// Spans returns the recorded spans in insertion order.
// ВАЖНО: срез указывает на внутренний массив, не модифицируйте его.
func (set *SpanSet) Spans() []Span {
	return set.order
}
