package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"portast/internal/portable"
)

// Format selects the encoding of the exported tree.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatMsgpack:
		return "msgpack"
	default:
		return "json"
	}
}

// ParseFormat converts a --format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	}
	return FormatJSON, fmt.Errorf("invalid output format: %q (expected: json|msgpack)", s)
}

// Encode writes c in format f. JSON documents end with a newline so several
// crates can be streamed one per line.
func Encode(w io.Writer, c *portable.Crate, f Format) error {
	switch f {
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		return enc.Encode(c)
	default:
		return json.NewEncoder(w).Encode(c)
	}
}
