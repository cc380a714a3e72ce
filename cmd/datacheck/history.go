package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/datacheck/internal/config"
	"github.com/nao1215/datacheck/internal/database"
)

// NewHistoryCmd creates the history command.
// This command lists analysis runs stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [file.csv]",
		Short: "List stored analysis runs",
		Long: `History lists analysis runs saved with 'datacheck analyze --save'.

Without arguments it lists runs for all sources. With a file argument it
lists only runs for that source.

Examples:
  # List all stored runs
  datacheck history

  # List runs for one dataset
  datacheck history sales.csv

  # List only the five most recent runs
  datacheck history --limit 5

  # List all analyzed sources
  datacheck history --sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 0,
		"Maximum number of runs to list (0 = no limit)")
	cmd.Flags().Bool("sources", false,
		"List analyzed sources instead of runs")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only usage

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	listSources, err := cmd.Flags().GetBool("sources")
	if err != nil {
		return err
	}
	if listSources {
		sources, err := db.ListSources(ctx)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			fmt.Fprintln(out, "No analyzed sources found in the database.")
			fmt.Fprintln(out, "\nUse 'datacheck analyze --save <file.csv>' to store a run.")
			return nil
		}
		fmt.Fprintf(out, "Analyzed sources (%d):\n\n", len(sources))
		for _, source := range sources {
			fmt.Fprintf(out, "  • %s\n", source)
		}
		return nil
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	var source string
	if len(args) == 1 {
		source = args[0]
	}

	runs, err := db.ListRuns(ctx, source, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		if source != "" {
			fmt.Fprintf(out, "No runs found for %s\n", source)
		} else {
			fmt.Fprintln(out, "No runs found in the database.")
		}
		fmt.Fprintln(out, "\nUse 'datacheck analyze --save <file.csv>' to store a run.")
		return nil
	}

	fmt.Fprintf(out, "Stored runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-8s  %-8s  %-8s  %s\n",
		"ID", "Date", "Rows", "Columns", "Failures", "Source")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 78))

	for _, meta := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-8d  %-8d  %-8d  %s\n",
			meta.ID,
			meta.AnalyzedAt.Format("2006-01-02 15:04:05"),
			meta.RowCount,
			meta.ColumnCount,
			meta.FailureCount,
			meta.Source,
		)
	}

	fmt.Fprintln(out, "\nUse 'datacheck compare <file.csv>' to compare the latest two runs.")
	return nil
}
