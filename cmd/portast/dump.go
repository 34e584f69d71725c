package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"portast/internal/driver"
	"portast/internal/portable"
)

var dumpCmd = &cobra.Command{
	Use:   "dump SNAPSHOT...",
	Short: "Print the portable tree of snapshots in readable form",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDump,
}

func init() {
	addExportFlags(dumpCmd)
	dumpCmd.Flags().Bool("spans", false, "print item spans")
	dumpCmd.Flags().Bool("types", false, "print expression types")
}

func runDump(cmd *cobra.Command, args []string) error {
	ro, err := readReportOptions(cmd)
	if err != nil {
		return err
	}
	opts, err := resolveExportOptions(cmd)
	if err != nil {
		return failSetup(cmd, ro, err)
	}
	var dumpOpts portable.DumpOptions
	if dumpOpts.ShowSpans, err = cmd.Flags().GetBool("spans"); err != nil {
		return fmt.Errorf("failed to get spans flag: %w", err)
	}
	if dumpOpts.ShowTypes, err = cmd.Flags().GetBool("types"); err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}

	// без кэша: дампу нужно само дерево, а не байты
	results, err := driver.ExportSnapshots(cmd.Context(), args, opts)
	if err != nil {
		return err
	}
	ok, err := ro.printResults(cmd.ErrOrStderr(), results)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, res := range results {
		if res.Crate == nil {
			continue
		}
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", res.Path)
		}
		if err := portable.Dump(out, res.Crate, dumpOpts); err != nil {
			return err
		}
	}
	if !ok {
		return silentFailure(cmd)
	}
	return nil
}
