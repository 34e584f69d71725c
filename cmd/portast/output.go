package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"portast/internal/diag"
	"portast/internal/diagfmt"
	"portast/internal/driver"
	"portast/internal/observ"
	"portast/internal/source"
)

type reportOptions struct {
	color    bool
	quiet    bool
	timings  bool
	format   string
	pathMode diagfmt.PathMode
}

func readReportOptions(cmd *cobra.Command) (reportOptions, error) {
	var ro reportOptions
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return ro, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		ro.color = true
	case "off":
	case "auto":
		ro.color = isTerminal(os.Stderr)
	default:
		return ro, fmt.Errorf("invalid color mode: %q (expected: auto|on|off)", colorFlag)
	}
	if ro.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ro, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if ro.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return ro, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if f := cmd.Flags().Lookup("diag-format"); f != nil {
		ro.format = strings.ToLower(f.Value.String())
	}
	switch ro.format {
	case "", "pretty", "json":
	default:
		return ro, fmt.Errorf("unknown diagnostics format: %s", ro.format)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return ro, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	ro.pathMode = diagfmt.PathModeAuto
	if fullPath {
		ro.pathMode = diagfmt.PathModeAbsolute
	}
	return ro, nil
}

// visible drops what the current mode does not show. Timing entries are
// printed as a summary in pretty mode.
func (ro reportOptions) visible(bag *diag.Bag) *diag.Bag {
	if !ro.quiet && ro.format == "json" {
		return bag
	}
	out := diag.NewBag(bag.Cap())
	for _, d := range bag.Items() {
		if ro.quiet && d.Severity < diag.SevError {
			continue
		}
		if ro.format != "json" && d.Code == diag.ObsTimings {
			continue
		}
		out.Add(d)
	}
	return out
}

func (ro reportOptions) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	bag = ro.visible(bag)
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	if ro.format == "json" {
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{PathMode: ro.pathMode, IncludeNotes: true})
	}
	return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     ro.color,
		Context:   true,
		PathMode:  ro.pathMode,
		ShowNotes: true,
	})
}

// printResults reports every result's diagnostics and timings to w and
// tells whether all snapshots were exported.
func (ro reportOptions) printResults(w io.Writer, results []driver.ExportResult) (bool, error) {
	ok := true
	for _, res := range results {
		if res.Bag.HasErrors() || res.Output == nil {
			ok = false
		}
		if err := ro.printDiagnostics(w, res.Bag, res.FileSet); err != nil {
			return false, err
		}
		if ro.timings && !ro.quiet && res.Timing != nil && ro.format != "json" {
			printTimings(w, res.Path, res.Cached, *res.Timing)
		}
	}
	return ok, nil
}

func printTimings(w io.Writer, path string, cached bool, report observ.Report) {
	suffix := ""
	if cached {
		suffix = " (cached)"
	}
	fmt.Fprintf(w, "%s: %.1f ms%s\n", path, report.TotalMS, suffix)
	for _, p := range report.Phases {
		fmt.Fprintf(w, "  %-8s %7.1f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(w, "  // %s", p.Note)
		}
		fmt.Fprintln(w)
	}
}

// reportConfigError prints a setup diagnostic the same way export
// diagnostics are printed.
func (ro reportOptions) reportConfigError(w io.Writer, ce *configError) error {
	bag := diag.NewBag(1)
	bag.Add(ce.diag)
	return ro.printDiagnostics(w, bag, source.NewFileSet())
}
