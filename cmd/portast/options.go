package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portast/internal/diag"
	"portast/internal/driver"
	"portast/internal/options"
	"portast/internal/source"
)

// addExportFlags registers the flags shared by export and dump.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("inline", "i", nil, "macro path patterns to fold, replaces the configured allowlist")
	cmd.Flags().String("config", "", "path to "+options.ManifestName+" (default: search upward from the working directory)")
	cmd.Flags().Int("jobs", 0, "snapshots exported in parallel (0 = GOMAXPROCS)")
	cmd.Flags().Bool("fullpath", false, "show absolute paths in diagnostics")
}

// configError is a setup failure that has already been turned into a
// diagnostic.
type configError struct {
	diag diag.Diagnostic
}

func (e *configError) Error() string { return e.diag.Message }

// configDiagnostic classifies an options failure.
func configDiagnostic(err error, fromFlag bool) diag.Diagnostic {
	code := diag.ProjBadManifest
	switch {
	case fromFlag:
		code = diag.ProjBadPattern
	case errors.Is(err, options.ErrEnvOptions):
		code = diag.ProjEnvOverride
	}
	return diag.NewError(code, source.Span{}, err.Error())
}

// resolveExportOptions collects ExportOptions from the command line, the
// project file and the environment.
func resolveExportOptions(cmd *cobra.Command) (driver.ExportOptions, error) {
	var out driver.ExportOptions

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return out, fmt.Errorf("failed to get config flag: %w", err)
	}
	inline, err := cmd.Flags().GetStringSlice("inline")
	if err != nil {
		return out, fmt.Errorf("failed to get inline flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return out, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return out, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return out, fmt.Errorf("failed to get timings flag: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return out, fmt.Errorf("failed to get working directory: %w", err)
	}
	opts, err := options.Resolve(wd, configPath)
	if err != nil {
		return out, &configError{diag: configDiagnostic(err, false)}
	}
	if cmd.Flags().Changed("inline") {
		pats, err := options.ParsePatterns(inline)
		if err != nil {
			return out, &configError{diag: configDiagnostic(err, true)}
		}
		opts.InlineMacroCalls = pats
	}

	out = driver.ExportOptions{
		Options:        opts,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		EnableTimings:  timings,
	}
	return out, nil
}
