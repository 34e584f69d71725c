package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotRealFile is returned when a span does not point at a local file on disk.
	ErrNotRealFile = errors.New("span does not point at a local file")
	// ErrNotEnoughLines is returned when the file is shorter than the span.
	ErrNotEnoughLines = errors.New("file has fewer lines than the span")
	// ErrInvalidSpan is returned for spans whose end precedes their start.
	ErrInvalidSpan = errors.New("invalid span")
)

// ReadSpan returns the literal source text covered by sp.
//
// Only plain local paths can be read. Lines lo.Line..hi.Line are taken; a
// single line is cut to [lo.Col, hi.Col), otherwise the first line starts at
// lo.Col, the last one stops at hi.Col and the lines are joined with "\n".
// Columns count characters, not bytes or display cells.
func (fileSet *FileSet) ReadSpan(sp Span) (string, error) {
	path, ok := sp.Filename.LocalPath()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotRealFile, sp.Filename)
	}
	if sp.Lo.Line == 0 || !sp.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidSpan, sp)
	}
	f, err := fileSet.Open(path)
	if err != nil {
		return "", fmt.Errorf("read span %s: %w", sp, err)
	}
	if f.LineCount() < sp.Hi.Line {
		return "", fmt.Errorf("%w: %s has %d, want %d", ErrNotEnoughLines, path, f.LineCount(), sp.Hi.Line)
	}

	if sp.Lo.Line == sp.Hi.Line {
		return sliceColumns(f.GetLine(sp.Lo.Line), sp.Lo.Col, sp.Hi.Col), nil
	}

	lines := make([]string, 0, sp.Hi.Line-sp.Lo.Line+1)
	lines = append(lines, sliceColumns(f.GetLine(sp.Lo.Line), sp.Lo.Col, ^uint32(0)))
	for n := sp.Lo.Line + 1; n < sp.Hi.Line; n++ {
		lines = append(lines, f.GetLine(n))
	}
	lines = append(lines, sliceColumns(f.GetLine(sp.Hi.Line), 0, sp.Hi.Col))
	return strings.Join(lines, "\n"), nil
}

// sliceColumns keeps the runes with index in [from, to).
func sliceColumns(line string, from, to uint32) string {
	if from >= to {
		return ""
	}
	var sb strings.Builder
	col := uint32(0)
	for _, r := range line {
		if col >= to {
			break
		}
		if col >= from {
			sb.WriteRune(r)
		}
		col++
	}
	return sb.String()
}
