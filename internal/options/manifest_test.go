package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/ident"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[export]\ninline_macro_calls = [\"mod::*\"]\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := FindManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	m, ok, err := LoadManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, m.Config.Export.InlineMacroCalls, 1)
	assert.Equal(t, "mod::*", m.Config.Export.InlineMacroCalls[0].String())
	assert.Equal(t, root, m.Root)
}

func TestResolveLayers(t *testing.T) {
	t.Setenv(EnvVar, "")
	root := t.TempDir()

	opts, err := Resolve(root, "")
	require.NoError(t, err)
	assert.Len(t, opts.InlineMacroCalls, len(DefaultInlineMacroCalls), "defaults without manifest")

	writeManifest(t, root, "[export]\ninline_macro_calls = [\"mod::helper_macro\"]\n")
	opts, err = Resolve(root, "")
	require.NoError(t, err)
	require.Len(t, opts.InlineMacroCalls, 1)
	assert.True(t, opts.MatchesMacro(ident.Path{"mod", "helper_macro"}))
	assert.False(t, opts.MatchesMacro(ident.Path{"hacspec_lib", "array", "array"}))

	t.Setenv(EnvVar, "[export]\ninline_macro_calls = []\n")
	opts, err = Resolve(root, "")
	require.NoError(t, err)
	assert.Empty(t, opts.InlineMacroCalls, "env overrides the manifest")
}

func TestResolveManifestWithoutExportKeepsDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	root := t.TempDir()
	path := writeManifest(t, root, "[other]\nkey = 1\n")

	opts, err := Resolve(root, path)
	require.NoError(t, err)
	assert.Len(t, opts.InlineMacroCalls, len(DefaultInlineMacroCalls))
}

func TestResolveRejectsBadPattern(t *testing.T) {
	t.Setenv(EnvVar, "")
	root := t.TempDir()
	path := writeManifest(t, root, "[export]\ninline_macro_calls = [\"a::::b\"]\n")

	_, err := Resolve(root, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptySegment)
}

func TestResolveMarksEnvFailures(t *testing.T) {
	t.Setenv(EnvVar, "[export]\ninline_macro_calls = [\"::x\"]\n")
	_, err := Resolve(t.TempDir(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnvOptions)
	assert.ErrorIs(t, err, ErrEmptySegment)
}
