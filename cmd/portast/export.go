package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"portast/internal/driver"
)

var exportCmd = &cobra.Command{
	Use:   "export SNAPSHOT...",
	Short: "Export host snapshots as portable trees",
	Long: `Export lowers every snapshot into the portable tree and writes the trees
in argument order. JSON trees are written one per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	addExportFlags(exportCmd)
	exportCmd.Flags().String("format", "json", "tree encoding (json|msgpack)")
	exportCmd.Flags().StringP("output", "o", "-", "output file (- for stdout)")
	exportCmd.Flags().Bool("cache", false, "reuse trees from the disk cache")
	exportCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json)")
	exportCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ro, err := readReportOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := resolveExportOptions(cmd)
	if err != nil {
		return failSetup(cmd, ro, err)
	}

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.Format, err = driver.ParseFormat(formatStr); err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		if opts.Cache, err = driver.OpenDiskCache("portast"); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var results []driver.ExportResult
	if shouldUseTUI(mode, ro.quiet) {
		results, err = runExportWithUI(cmd.Context(), "export", args, opts)
	} else {
		results, err = driver.ExportSnapshots(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	ok, err := ro.printResults(cmd.ErrOrStderr(), results)
	if err != nil {
		return err
	}
	if err := writeOutputs(cmd.OutOrStdout(), outPath, results); err != nil {
		return err
	}
	if !ok {
		return silentFailure(cmd)
	}
	return nil
}

// writeOutputs writes the exported trees in argument order. Failed
// snapshots are skipped.
func writeOutputs(stdout io.Writer, path string, results []driver.ExportResult) (err error) {
	w := stdout
	if path != "-" && path != "" {
		// #nosec G304 -- path is given by the user
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	bw := bufio.NewWriter(w)
	for _, res := range results {
		if res.Output == nil {
			continue
		}
		if _, err := bw.Write(res.Output); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return bw.Flush()
}

// failSetup prints a configuration diagnostic, or returns other errors as is.
func failSetup(cmd *cobra.Command, ro reportOptions, err error) error {
	var ce *configError
	if !errors.As(err, &ce) {
		return err
	}
	if perr := ro.reportConfigError(cmd.ErrOrStderr(), ce); perr != nil {
		return perr
	}
	return silentFailure(cmd)
}

// silentFailure exits with status 1 without cobra's usage text: the
// diagnostics are already printed.
func silentFailure(cmd *cobra.Command) error {
	runTraceCleanup()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return errors.New("")
}
