package options

import (
	"errors"
	"fmt"
	"strings"

	"portast/internal/ident"
)

// ErrEmptySegment is returned for patterns such as "a::::b".
var ErrEmptySegment = errors.New("empty pattern segment")

type globKind uint8

const (
	globExact globKind = iota
	globOne            // *
	globMany           // **
)

type glob struct {
	kind globKind
	name string
}

// Pattern is a macro path glob: "*" matches exactly one segment, "**" matches
// zero or more, anything else must match literally. A pattern is anchored at
// both ends and starts with the crate name.
type Pattern struct {
	segs []glob
}

// ParsePattern parses a "::"-separated glob.
func ParsePattern(text string) (Pattern, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Pattern{}, fmt.Errorf("pattern %q: %w", text, ErrEmptySegment)
	}
	parts := strings.Split(text, "::")
	segs := make([]glob, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "":
			return Pattern{}, fmt.Errorf("pattern %q: %w", text, ErrEmptySegment)
		case "*":
			segs = append(segs, glob{kind: globOne})
		case "**":
			segs = append(segs, glob{kind: globMany})
		default:
			segs = append(segs, glob{kind: globExact, name: ident.Name(part)})
		}
	}
	return Pattern{segs: segs}, nil
}

// MustParsePattern is ParsePattern for literals known to be valid.
func MustParsePattern(text string) Pattern {
	p, err := ParsePattern(text)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether path matches the whole pattern.
func (p Pattern) Match(path ident.Path) bool {
	return matchGlobs(p.segs, path)
}

func matchGlobs(segs []glob, path []string) bool {
	if len(segs) == 0 {
		return len(path) == 0
	}
	head, rest := segs[0], segs[1:]
	switch head.kind {
	case globOne:
		return len(path) > 0 && matchGlobs(rest, path[1:])
	case globMany:
		for i := 0; i <= len(path); i++ {
			if matchGlobs(rest, path[i:]) {
				return true
			}
		}
		return false
	default:
		return len(path) > 0 && path[0] == head.name && matchGlobs(rest, path[1:])
	}
}

func (p Pattern) String() string {
	parts := make([]string, len(p.segs))
	for i, s := range p.segs {
		switch s.kind {
		case globOne:
			parts[i] = "*"
		case globMany:
			parts[i] = "**"
		default:
			parts[i] = s.name
		}
	}
	return strings.Join(parts, "::")
}

// MarshalText implements encoding.TextMarshaler.
func (p Pattern) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so patterns decode
// straight from TOML string arrays.
func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePatterns parses a list, stopping at the first invalid entry.
func ParsePatterns(texts []string) ([]Pattern, error) {
	out := make([]Pattern, 0, len(texts))
	for _, t := range texts {
		p, err := ParsePattern(t)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
