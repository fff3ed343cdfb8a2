// Package main provides the entry point for the psrscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for psrscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "psrscan",
		Short: "Extract NRC 1999 power reactor status reports",
		Long: `psrscan downloads the daily Power Reactor Status Report pages the NRC
published during 1999, caches the raw HTML on disk, and extracts every
reactor unit's power level and reason/comment into a pipe-delimited file.

Pages are fetched once and reused from the cache on later runs, so a
re-run after a partial failure only downloads the days it is missing.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON instead of text")

	// Add subcommands
	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
