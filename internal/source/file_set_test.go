package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenNormalizesContent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "fn f() {}\n", "fn f() {}\n"},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"lone cr kept", "a\rb\r\nc", "a\rb\nc"},
		{"bom", "\xEF\xBB\xBFfn f() {}", "fn f() {}"},
		{"bom and crlf", "\xEF\xBB\xBFa\r\nb", "a\nb"},
		{"short", "\xEF\xBB", "\xEF\xBB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.rs"), []byte(tt.raw), 0o600))
			f, err := NewFileSetWithBase(dir).Open("lib.rs")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(f.Content))
		})
	}
}

func TestGetLineAndLineCount(t *testing.T) {
	tests := []struct {
		content string
		count   uint32
		lines   []string
	}{
		{"", 0, nil},
		{"\n", 1, []string{""}},
		{"one", 1, []string{"one"}},
		{"one\ntwo\n", 2, []string{"one", "two"}},
		{"one\n\nthree", 3, []string{"one", "", "three"}},
	}
	for _, tt := range tests {
		f := newFile("lib.rs", []byte(tt.content))
		assert.Equal(t, tt.count, f.LineCount(), "%q", tt.content)
		for i, want := range tt.lines {
			assert.Equal(t, want, f.GetLine(uint32(i+1)), "%q line %d", tt.content, i+1)
		}
		assert.Empty(t, f.GetLine(0))
		assert.Empty(t, f.GetLine(tt.count+1))
	}
}

func TestOpenReadsOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	fs := NewFileSet()
	first, err := fs.Open(path)
	require.NoError(t, err)

	// spans of one run always see the text read first
	require.NoError(t, os.WriteFile(path, []byte("new\n"), 0o600))
	second, err := fs.Open(filepath.Join(dir, ".", "lib.rs"))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "old", second.GetLine(1))
	assert.Equal(t, 1, fs.Len())
}

func TestOpenRemembersFailure(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileSetWithBase(dir)

	_, err := fs.Open("missing.rs")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "missing.rs"), []byte("x"), 0o600))
	_, again := fs.Open("missing.rs")
	assert.Equal(t, err, again)
	assert.Zero(t, fs.Len())
}

func TestOpenResolvesAgainstBase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "lib.rs"), []byte("mod a;\n"), 0o600))

	fs := NewFileSetWithBase(dir)
	assert.Equal(t, dir, fs.BaseDir())
	f, err := fs.Open("src/lib.rs")
	require.NoError(t, err)
	assert.Equal(t, "src/lib.rs", f.Path)
	assert.Equal(t, "mod a;", f.GetLine(1))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, NewFileSet().BaseDir())
}
