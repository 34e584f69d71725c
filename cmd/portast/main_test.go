package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portast/internal/diag"
	"portast/internal/driver"
	"portast/internal/options"
	"portast/internal/source"
)

func TestConfigDiagnosticCodes(t *testing.T) {
	cases := []struct {
		err      error
		fromFlag bool
		want     diag.Code
	}{
		{errors.New("portast.toml: failed to parse TOML"), false, diag.ProjBadManifest},
		{fmt.Errorf("%w: bad", options.ErrEnvOptions), false, diag.ProjEnvOverride},
		{options.ErrEmptySegment, true, diag.ProjBadPattern},
	}
	for _, tc := range cases {
		d := configDiagnostic(tc.err, tc.fromFlag)
		assert.Equal(t, tc.want, d.Code, tc.err.Error())
		assert.Equal(t, diag.SevError, d.Severity)
	}
}

func TestWriteOutputsSkipsFailed(t *testing.T) {
	results := []driver.ExportResult{
		{Output: []byte("{\"name\":\"a\"}\n")},
		{},
		{Output: []byte("{\"name\":\"b\"}\n")},
	}

	var buf bytes.Buffer
	require.NoError(t, writeOutputs(&buf, "-", results))
	assert.Equal(t, "{\"name\":\"a\"}\n{\"name\":\"b\"}\n", buf.String())

	path := filepath.Join(t.TempDir(), "out.jsonl")
	require.NoError(t, writeOutputs(&buf, path, results))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(data))
}

func TestVisibleFiltersTimingsAndQuiet(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.ExpMacroArgUnreadable, source.Span{}, "w"))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "t"))
	bag.Add(diag.NewError(diag.IOLoadSnapshot, source.Span{}, "e"))

	pretty := reportOptions{format: "pretty"}
	assert.Equal(t, 2, pretty.visible(bag).Len())

	jsonOut := reportOptions{format: "json"}
	assert.Equal(t, 3, jsonOut.visible(bag).Len())

	quiet := reportOptions{format: "pretty", quiet: true}
	got := quiet.visible(bag).Items()
	require.Len(t, got, 1)
	assert.Equal(t, diag.IOLoadSnapshot, got[0].Code)
}

func TestPrintResultsReportsFailure(t *testing.T) {
	ok := driver.ExportResult{Path: "a", Output: []byte("x"), Bag: diag.NewBag(4), FileSet: source.NewFileSet()}
	bad := driver.ExportResult{Path: "b", Bag: diag.NewBag(4), FileSet: source.NewFileSet()}
	bad.Bag.Add(diag.NewError(diag.IOLoadSnapshot, source.Span{}, "failed to load snapshot"))

	var buf bytes.Buffer
	ro := reportOptions{format: "pretty"}
	allOK, err := ro.printResults(&buf, []driver.ExportResult{ok})
	require.NoError(t, err)
	assert.True(t, allOK)
	assert.Empty(t, buf.String())

	allOK, err = ro.printResults(&buf, []driver.ExportResult{ok, bad})
	require.NoError(t, err)
	assert.False(t, allOK)
	assert.Contains(t, buf.String(), "failed to load snapshot")
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := readUIMode("sometimes")
	assert.Error(t, err)

	assert.True(t, shouldUseTUI(uiModeOn, true))
	assert.False(t, shouldUseTUI(uiModeOff, false))
	assert.False(t, shouldUseTUI(uiModeAuto, true))
}
