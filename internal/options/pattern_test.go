package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/ident"
)

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    ident.Path
		want    bool
	}{
		{"mod::helper_macro", ident.Path{"mod", "helper_macro"}, true},
		{"mod::helper_macro", ident.Path{"mod", "other"}, false},
		{"mod::helper_macro", ident.Path{"mod", "inner", "helper_macro"}, false},
		{"mod::*", ident.Path{"mod", "helper_macro"}, true},
		{"mod::*", ident.Path{"mod"}, false},
		{"mod::*", ident.Path{"mod", "a", "b"}, false},
		{"mod::**", ident.Path{"mod"}, true},
		{"mod::**", ident.Path{"mod", "a", "b"}, true},
		{"**::array", ident.Path{"hacspec_lib", "array", "array"}, true},
		{"**::array", ident.Path{"hacspec_lib", "array", "bytes"}, false},
		{"a::**::z", ident.Path{"a", "z"}, true},
		{"a::**::z", ident.Path{"a", "b", "c", "z"}, true},
		{"a::**::z", ident.Path{"a", "b", "c"}, false},
		{"*::*::array", ident.Path{"hacspec_lib", "array", "array"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.path.String(), func(t *testing.T) {
			p, err := ParsePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Match(tt.path))
		})
	}
}

func TestParsePatternErrors(t *testing.T) {
	for _, text := range []string{"", "a::::b", "::a", "a::"} {
		_, err := ParsePattern(text)
		assert.ErrorIs(t, err, ErrEmptySegment, "pattern %q", text)
	}
}

func TestPatternTextRoundTrip(t *testing.T) {
	var p Pattern
	require.NoError(t, p.UnmarshalText([]byte("a::*::**::b")))
	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "a::*::**::b", string(text))
}

func TestDefaultOptions(t *testing.T) {
	opts := Default()
	require.Len(t, opts.InlineMacroCalls, len(DefaultInlineMacroCalls))
	assert.True(t, opts.MatchesMacro(ident.Path{"hacspec_lib", "array", "public_bytes"}))
	assert.True(t, opts.MatchesMacro(ident.Path{"hacspec_lib", "math_integers", "unsigned_public_integer"}))
	assert.False(t, opts.MatchesMacro(ident.Path{"std", "vec"}))
}
