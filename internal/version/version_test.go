package version

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func override(t *testing.T, v, commit, msg, date string) {
	t.Helper()
	origVersion, origCommit, origMsg, origDate := Version, GitCommit, GitMessage, BuildDate
	Version, GitCommit, GitMessage, BuildDate = v, commit, msg, date
	t.Cleanup(func() {
		Version, GitCommit, GitMessage, BuildDate = origVersion, origCommit, origMsg, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	assert.NotEmpty(t, Version)
}

func TestWrite_Plain(t *testing.T) {
	override(t, "1.2.3", "", "", "")
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, false))
	assert.Equal(t, "portast 1.2.3 (tree schema 1)\n", buf.String())
}

func TestWrite_WithBuildInfo(t *testing.T) {
	override(t, "1.2.3", "abc123def456", "fix folding", "2024-01-15T10:30:00Z")
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, false))
	assert.Equal(t, "portast 1.2.3 (tree schema 1)\n"+
		"commit: abc123def456 fix folding\n"+
		"built:  2024-01-15T10:30:00Z\n", buf.String())
}

func TestColored(t *testing.T) {
	override(t, "0.4.1-rc1", "", "", "")
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	assert.Equal(t, "0.4.1-rc1", Colored())

	override(t, "weird", "", "", "")
	assert.Equal(t, "weird", Colored())
}
