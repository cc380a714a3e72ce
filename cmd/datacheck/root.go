// Package main provides the entry point for the datacheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for datacheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datacheck",
		Short: "Data quality analyzer for tabular data",
		Long: `datacheck analyzes tabular data (CSV) for quality issues.

It runs a fixed set of quality checks over the input: column types,
descriptive statistics, missing values, duplicate rows, distribution
shape, IQR outliers, and Pearson correlations. A failed check never
aborts the run; its section is simply absent from the report.

Results are written as an Excel workbook with charts, and can also be
emitted as JSON or Markdown for tool integration.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
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
