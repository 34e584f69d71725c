package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadSpan(t *testing.T) {
	path := writeFixture(t, "fn main() {\n    helper_macro!(1, 2, 3);\n    let x = [\n        1,\n        2];\n}\n")

	tests := []struct {
		name string
		lo   Loc
		hi   Loc
		want string
	}{
		{"single line", Loc{Line: 2, Col: 18}, Loc{Line: 2, Col: 25}, "1, 2, 3"},
		{"whole line", Loc{Line: 1, Col: 0}, Loc{Line: 1, Col: 11}, "fn main() {"},
		{"empty", Loc{Line: 2, Col: 4}, Loc{Line: 2, Col: 4}, ""},
		{"multi line", Loc{Line: 3, Col: 12}, Loc{Line: 5, Col: 9}, "[\n        1,\n        2"},
		{"two lines", Loc{Line: 1, Col: 3}, Loc{Line: 2, Col: 4}, "main() {\n    "},
	}
	fs := NewFileSet()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fs.ReadSpan(Span{Lo: tt.lo, Hi: tt.hi, Filename: LocalFile(path)})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSpanCountsCharacters(t *testing.T) {
	// колонка = номер символа, широкие руны считаются за один
	path := writeFixture(t, "helper!(日本, 1);\n")
	fs := NewFileSet()
	got, err := fs.ReadSpan(Span{Lo: Loc{Line: 1, Col: 8}, Hi: Loc{Line: 1, Col: 13}, Filename: LocalFile(path)})
	require.NoError(t, err)
	assert.Equal(t, "日本, 1", got)

	got, err = fs.ReadSpan(Span{Lo: Loc{Line: 1, Col: 10}, Hi: Loc{Line: 1, Col: 11}, Filename: LocalFile(path)})
	require.NoError(t, err)
	assert.Equal(t, ",", got)
}

func TestReadSpanErrors(t *testing.T) {
	path := writeFixture(t, "one\ntwo\n")
	fs := NewFileSet()

	_, err := fs.ReadSpan(Span{Lo: Loc{Line: 1}, Hi: Loc{Line: 1, Col: 1}, Filename: FileName{Kind: FileNameMacroExpansion, Hash: 1}})
	assert.ErrorIs(t, err, ErrNotRealFile)

	_, err = fs.ReadSpan(Span{Lo: Loc{Line: 1}, Hi: Loc{Line: 5, Col: 1}, Filename: LocalFile(path)})
	assert.ErrorIs(t, err, ErrNotEnoughLines)

	_, err = fs.ReadSpan(Span{Lo: Loc{Line: 2}, Hi: Loc{Line: 1}, Filename: LocalFile(path)})
	assert.ErrorIs(t, err, ErrInvalidSpan)

	_, err = fs.ReadSpan(Span{Lo: Loc{Line: 1}, Hi: Loc{Line: 1, Col: 1}, Filename: LocalFile(filepath.Join(t.TempDir(), "missing.rs"))})
	assert.Error(t, err)
}
