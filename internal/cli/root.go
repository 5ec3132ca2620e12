// Package cli implements the matchlake command-line tooling: one-shot
// merges and table inspection over local parquet files, useful for
// debugging a consolidation without touching the lake.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "matchlake",
		Short:         "Head-to-head consolidation tooling",
		Long:          "Tooling for the head-to-head consolidated table: merge delta batches and inspect parquet tables locally.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newShowCmd())
	return rootCmd
}
