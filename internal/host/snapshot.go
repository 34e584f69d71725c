package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"portast/internal/source"
)

// SnapshotSchema is bumped whenever the wire layout changes.
const SnapshotSchema uint16 = 1

// DefEntry is one row of the definition table.
type DefEntry struct {
	ID   DefID   `msgpack:"id"`
	Path DefPath `msgpack:"path"`
	Kind DefKind `msgpack:"kind"`
}

// SigEntry is a function signature.
type SigEntry struct {
	Def DefID `msgpack:"def"`
	Sig FnSig `msgpack:"sig"`
}

// ImplEntry records the trait a trait impl implements.
type ImplEntry struct {
	Impl  DefID    `msgpack:"impl"`
	Trait TraitRef `msgpack:"trait"`
}

// PredicateEntry holds the predicates and item bounds of one definition.
type PredicateEntry struct {
	Def        DefID       `msgpack:"def"`
	Predicates []Predicate `msgpack:"predicates"`
	ItemBounds []Predicate `msgpack:"item_bounds"`
}

// SpanEntry is one row of the span table.
type SpanEntry struct {
	File uint32     `msgpack:"file"`
	Lo   source.Loc `msgpack:"lo"`
	Hi   source.Loc `msgpack:"hi"`
	Expn ExpnID     `msgpack:"expn"`
}

// ScopeEntry maps a region scope of an owner to a syntax node.
type ScopeEntry struct {
	Owner DefID       `msgpack:"owner"`
	Scope RegionScope `msgpack:"scope"`
	HirID HirID       `msgpack:"hir_id"`
}

// AttrEntry holds the attributes of one syntax node.
type AttrEntry struct {
	HirID HirID       `msgpack:"hir_id"`
	Attrs []Attribute `msgpack:"attrs"`
}

// ConstEntry is the folded value of a constant definition.
type ConstEntry struct {
	Def   DefID        `msgpack:"def"`
	Value ConstantKind `msgpack:"value"`
}

// Snapshot is a Program materialized into tables, as written by the host
// side exporter. Span 0 and expansion 0 are reserved for the dummy span and
// the root context.
type Snapshot struct {
	Schema           uint16            `msgpack:"schema"`
	Crate            string            `msgpack:"crate"`
	Roots            []DefID           `msgpack:"roots"`
	Defs             []DefEntry        `msgpack:"defs"`
	Items            []Item            `msgpack:"items"`
	Bodies           []Body            `msgpack:"bodies"`
	Adts             []AdtDef          `msgpack:"adts"`
	Sigs             []SigEntry        `msgpack:"sigs"`
	Impls            []ImplEntry       `msgpack:"impls"`
	PredicateEntries []PredicateEntry  `msgpack:"predicates"`
	Files            []source.FileName `msgpack:"files"`
	Spans            []SpanEntry       `msgpack:"spans"`
	Expns            []ExpnData        `msgpack:"expns"`
	Macros           []MacroCall       `msgpack:"macro_calls"`
	Scopes           []ScopeEntry      `msgpack:"scopes"`
	Attributes       []AttrEntry       `msgpack:"attributes"`
	Consts           []ConstEntry      `msgpack:"consts"`

	once sync.Once
	idx  snapshotIndex
}

type scopeKey struct {
	owner DefID
	id    uint32
	data  ScopeData
}

type snapshotIndex struct {
	defs   map[DefID]int
	items  map[DefID]int
	bodies map[DefID]int
	adts   map[DefID]int
	sigs   map[DefID]int
	impls  map[DefID]int
	preds  map[DefID]int
	scopes map[scopeKey]HirID
	attrs  map[HirID]int
	consts map[DefID]int
}

var _ Program = (*Snapshot)(nil)

// NewSnapshot creates an empty snapshot with the reserved rows in place.
func NewSnapshot(crate string) *Snapshot {
	return &Snapshot{
		Schema: SnapshotSchema,
		Crate:  crate,
		Files:  []source.FileName{{Kind: source.FileNameAnon}},
		Spans:  []SpanEntry{{}},
		Expns:  []ExpnData{{Kind: ExpnRoot}},
	}
}

func indexBy[T any, K comparable](rows []T, key func(*T) K) map[K]int {
	m := make(map[K]int, len(rows))
	for i := range rows {
		m[key(&rows[i])] = i
	}
	return m
}

// index is built on first query; tables must not change afterwards.
func (s *Snapshot) index() *snapshotIndex {
	s.once.Do(func() {
		s.idx = snapshotIndex{
			defs:   indexBy(s.Defs, func(e *DefEntry) DefID { return e.ID }),
			items:  indexBy(s.Items, func(e *Item) DefID { return e.Owner }),
			bodies: indexBy(s.Bodies, func(e *Body) DefID { return e.Owner }),
			adts:   indexBy(s.Adts, func(e *AdtDef) DefID { return e.Def }),
			sigs:   indexBy(s.Sigs, func(e *SigEntry) DefID { return e.Def }),
			impls:  indexBy(s.Impls, func(e *ImplEntry) DefID { return e.Impl }),
			preds:  indexBy(s.PredicateEntries, func(e *PredicateEntry) DefID { return e.Def }),
			attrs:  indexBy(s.Attributes, func(e *AttrEntry) HirID { return e.HirID }),
			consts: indexBy(s.Consts, func(e *ConstEntry) DefID { return e.Def }),
			scopes: make(map[scopeKey]HirID, len(s.Scopes)),
		}
		for _, e := range s.Scopes {
			s.idx.scopes[scopeKey{owner: e.Owner, id: e.Scope.ID, data: e.Scope.Data}] = e.HirID
		}
	})
	return &s.idx
}

// CrateName implements Program.
func (s *Snapshot) CrateName() string { return s.Crate }

// RootItems implements Program.
func (s *Snapshot) RootItems() []DefID { return s.Roots }

// DefPath implements Program.
func (s *Snapshot) DefPath(id DefID) (DefPath, error) {
	i, ok := s.index().defs[id]
	if !ok {
		return DefPath{}, fmt.Errorf("%w: %s", ErrUnknownDef, id)
	}
	return s.Defs[i].Path, nil
}

// DefKind implements Program.
func (s *Snapshot) DefKind(id DefID) (DefKind, error) {
	i, ok := s.index().defs[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDef, id)
	}
	return s.Defs[i].Kind, nil
}

// Item implements Program.
func (s *Snapshot) Item(id DefID) (*Item, error) {
	i, ok := s.index().items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %s", ErrUnknownDef, id)
	}
	return &s.Items[i], nil
}

// Body implements Program.
func (s *Snapshot) Body(id DefID) (*Body, error) {
	i, ok := s.index().bodies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoBody, id)
	}
	return &s.Bodies[i], nil
}

// AdtDef implements Program.
func (s *Snapshot) AdtDef(id DefID) (*AdtDef, error) {
	i, ok := s.index().adts[id]
	if !ok {
		return nil, fmt.Errorf("%w: adt %s", ErrUnknownDef, id)
	}
	return &s.Adts[i], nil
}

// FnSig implements Program.
func (s *Snapshot) FnSig(id DefID) (*FnSig, error) {
	i, ok := s.index().sigs[id]
	if !ok {
		return nil, fmt.Errorf("%w: signature of %s", ErrUnknownDef, id)
	}
	return &s.Sigs[i].Sig, nil
}

// ImplTraitRef implements Program.
func (s *Snapshot) ImplTraitRef(id DefID) (*TraitRef, bool) {
	i, ok := s.index().impls[id]
	if !ok {
		return nil, false
	}
	return &s.Impls[i].Trait, true
}

// Predicates implements Program.
func (s *Snapshot) Predicates(id DefID) []Predicate {
	if i, ok := s.index().preds[id]; ok {
		return s.PredicateEntries[i].Predicates
	}
	return nil
}

// ItemBounds implements Program.
func (s *Snapshot) ItemBounds(id DefID) []Predicate {
	if i, ok := s.index().preds[id]; ok {
		return s.PredicateEntries[i].ItemBounds
	}
	return nil
}

// LookupSpan implements Program.
func (s *Snapshot) LookupSpan(sp Span) (SpanLoc, error) {
	if sp == DummySpan && len(s.Spans) == 0 {
		return SpanLoc{File: source.FileName{Kind: source.FileNameAnon}}, nil
	}
	if int(sp) >= len(s.Spans) {
		return SpanLoc{}, fmt.Errorf("%w: %d", ErrUnknownSpan, sp)
	}
	e := s.Spans[sp]
	if int(e.File) >= len(s.Files) {
		return SpanLoc{}, fmt.Errorf("%w: span %d points at file %d", ErrUnknownSpan, sp, e.File)
	}
	return SpanLoc{File: s.Files[e.File], Lo: e.Lo, Hi: e.Hi}, nil
}

// MacroBacktrace implements Program. Consecutive expansions whose call site
// repeats the previous span (recursive expansions) are reported once.
func (s *Snapshot) MacroBacktrace(sp Span) []ExpnData {
	var out []ExpnData
	prev := DummySpan
	cur := sp
	for range len(s.Expns) + 1 {
		if int(cur) >= len(s.Spans) {
			break
		}
		expn := s.Spans[cur].Expn
		if expn == RootExpn || int(expn) >= len(s.Expns) {
			break
		}
		data := s.Expns[expn]
		recursive := s.sameSource(data.CallSite, prev)
		prev = cur
		cur = data.CallSite
		if !recursive {
			out = append(out, data)
		}
	}
	return out
}

func (s *Snapshot) sameSource(a, b Span) bool {
	if a == b {
		return true
	}
	if int(a) >= len(s.Spans) || int(b) >= len(s.Spans) {
		return false
	}
	x, y := s.Spans[a], s.Spans[b]
	return x.File == y.File && x.Lo == y.Lo && x.Hi == y.Hi
}

// MacroCalls implements Program.
func (s *Snapshot) MacroCalls() []MacroCall { return s.Macros }

// ScopeHirID implements Program.
func (s *Snapshot) ScopeHirID(owner DefID, scope RegionScope) (HirID, bool) {
	id, ok := s.index().scopes[scopeKey{owner: owner, id: scope.ID, data: scope.Data}]
	return id, ok
}

// Attrs implements Program.
func (s *Snapshot) Attrs(id HirID) []Attribute {
	if i, ok := s.index().attrs[id]; ok {
		return s.Attributes[i].Attrs
	}
	return nil
}

// EvalConstant implements Program. Values and non-reference type-level
// constants are returned as is; references are looked up in the folded
// constant table.
func (s *Snapshot) EvalConstant(c ConstantKind) (ConstantKind, error) {
	var ref *UnevaluatedConst
	switch c.Kind {
	case ConstantVal:
		return c, nil
	case ConstantUnevaluated:
		ref = c.Unevaluated
	case ConstantTy:
		if c.Const == nil || c.Const.Kind != ConstKindUnevaluated {
			return c, nil
		}
		ref = c.Const.Unevaluated
	}
	if ref == nil {
		return ConstantKind{}, fmt.Errorf("%w: missing reference", ErrNotEvaluable)
	}
	i, ok := s.index().consts[ref.Def]
	if !ok {
		return ConstantKind{}, fmt.Errorf("%w: %s", ErrNotEvaluable, ref.Def)
	}
	return s.Consts[i].Value, nil
}

// ReadSnapshot decodes a snapshot and checks its schema.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Schema != SnapshotSchema {
		return nil, fmt.Errorf("%w: %d, want %d", ErrSchema, s.Schema, SnapshotSchema)
	}
	return &s, nil
}

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	// #nosec G304 -- path is given by the user
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Write encodes the snapshot.
func (s *Snapshot) Write(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(s)
}
