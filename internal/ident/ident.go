// Package ident holds the portable identity model: qualified identifiers
// that stand in for host-internal definition handles.
package ident

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefPathItemKind enumerates the namespaces a path segment can live in.
type DefPathItemKind uint8

const (
	CrateRoot DefPathItemKind = iota
	Impl
	ForeignMod
	Use
	GlobalAsm
	TypeNs
	ValueNs
	MacroNs
	LifetimeNs
	ClosureExpr
	Ctor
	AnonConst
	ImplTrait
	ImplTraitAssocTy
)

// String returns a human-readable name for the segment kind.
func (k DefPathItemKind) String() string {
	switch k {
	case CrateRoot:
		return "CrateRoot"
	case Impl:
		return "Impl"
	case ForeignMod:
		return "ForeignMod"
	case Use:
		return "Use"
	case GlobalAsm:
		return "GlobalAsm"
	case TypeNs:
		return "TypeNs"
	case ValueNs:
		return "ValueNs"
	case MacroNs:
		return "MacroNs"
	case LifetimeNs:
		return "LifetimeNs"
	case ClosureExpr:
		return "ClosureExpr"
	case Ctor:
		return "Ctor"
	case AnonConst:
		return "AnonConst"
	case ImplTrait:
		return "ImplTrait"
	case ImplTraitAssocTy:
		return "ImplTraitAssocTy"
	default:
		return "Unknown"
	}
}

// MarshalText renders the kind by name in serialized output.
func (k DefPathItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Named reports whether segments of this kind carry a name.
func (k DefPathItemKind) Named() bool {
	switch k {
	case TypeNs, ValueNs, MacroNs, LifetimeNs:
		return true
	default:
		return false
	}
}

// DefPathItem is one path segment. Name is set only for named kinds.
type DefPathItem struct {
	Kind DefPathItemKind `json:"kind" msgpack:"kind"`
	Name string          `json:"name,omitempty" msgpack:"name,omitempty"`
}

// DisambiguatedItem is a segment plus the index separating same-named siblings.
type DisambiguatedItem struct {
	Data          DefPathItem `json:"data" msgpack:"data"`
	Disambiguator uint32      `json:"disambiguator" msgpack:"disambiguator"`
}

// DefID is a qualified identifier: crate name plus the full segment sequence.
type DefID struct {
	Krate string              `json:"krate" msgpack:"krate"`
	Path  []DisambiguatedItem `json:"path" msgpack:"path"`
}

// Equal reports whether both identifiers name the same definition.
func (id DefID) Equal(other DefID) bool {
	if id.Krate != other.Krate || len(id.Path) != len(other.Path) {
		return false
	}
	for i := range id.Path {
		if id.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}

// Parent drops the last segment. It fails on an empty path.
func (id DefID) Parent() (DefID, bool) {
	if len(id.Path) == 0 {
		return DefID{}, false
	}
	return DefID{Krate: id.Krate, Path: id.Path[:len(id.Path)-1]}, true
}

// LastName returns the name of the last segment if it carries one.
func (id DefID) LastName() (string, bool) {
	if len(id.Path) == 0 {
		return "", false
	}
	last := id.Path[len(id.Path)-1].Data
	if !last.Kind.Named() {
		return "", false
	}
	return last.Name, true
}

// QualifiedPath is the crate followed by the named segments; structural markers
// such as Impl or ClosureExpr are dropped.
func (id DefID) QualifiedPath() Path {
	out := make(Path, 0, len(id.Path)+1)
	out = append(out, id.Krate)
	for _, seg := range id.Path {
		if seg.Data.Kind.Named() {
			out = append(out, seg.Data.Name)
		}
	}
	return out
}

func (id DefID) String() string {
	var sb strings.Builder
	sb.WriteString(id.Krate)
	for _, seg := range id.Path {
		sb.WriteString("::")
		if seg.Data.Kind.Named() {
			sb.WriteString(seg.Data.Name)
		} else {
			sb.WriteString("{")
			sb.WriteString(seg.Data.Kind.String())
			sb.WriteString("}")
		}
		if seg.Disambiguator != 0 {
			sb.WriteString("#")
			sb.WriteString(strconv.FormatUint(uint64(seg.Disambiguator), 10))
		}
	}
	return sb.String()
}

// Path is a sequence of names matched by macro patterns.
type Path []string

func (p Path) String() string {
	return strings.Join(p, "::")
}

// Name normalizes a host identifier to NFC.
func Name(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
