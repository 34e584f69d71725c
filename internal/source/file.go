package source

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File is a source file read back from disk. Content has no BOM and uses LF
// line endings.
type File struct {
	Path    string
	Content []byte

	// lineEnds holds the offset of every '\n' in Content.
	lineEnds []uint32
}

func newFile(path string, raw []byte) *File {
	content := normalizeContent(raw)
	f := &File{Path: path, Content: content}
	for i, b := range content {
		if b == '\n' {
			f.lineEnds = append(f.lineEnds, offset(i))
		}
	}
	return f
}

// normalizeContent drops a leading BOM and turns CRLF into LF. A lone CR
// is kept.
func normalizeContent(raw []byte) []byte {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if bytes.IndexByte(raw, '\r') < 0 {
		return raw
	}
	return bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
}

func offset(i int) uint32 {
	n, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return n
}

// LineCount returns the number of lines. A trailing newline does not open a
// new line.
func (f *File) LineCount() uint32 {
	n := offset(len(f.lineEnds))
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// GetLine returns line n (1-based) without its newline, or "" when there is
// no such line.
func (f *File) GetLine(n uint32) string {
	if n == 0 || n > f.LineCount() {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.lineEnds[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.lineEnds) {
		end = int(f.lineEnds[n-1])
	}
	return string(f.Content[start:end])
}
