package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/nao1215/datacheck/internal/config"
	"github.com/nao1215/datacheck/internal/database"
	"github.com/nao1215/datacheck/internal/model"
)

// NewCompareCmd creates the compare command.
// This command compares two stored analysis runs of the same dataset.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [file.csv]",
		Short: "Compare two stored analysis runs",
		Long: `Compare shows how data quality changed between two analysis runs.

By default the latest two runs for the given source are compared. The
comparison covers dataset shape, missing values per column, duplicate
rows, and which checks failed.

At least two stored runs are required. Use 'datacheck analyze --save'
to store runs, and 'datacheck history' to see their IDs.

Examples:
  # Compare the latest two runs of a dataset
  datacheck compare sales.csv

  # Compare the latest run with a specific older run
  datacheck compare --with-run-id 5 sales.csv

  # Compare two specific runs by ID
  datacheck compare --run-id 12 --with-run-id 5 sales.csv

  # JSON output for tooling
  datacheck compare --json sales.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().Int64P("run-id", "r", 0,
		"Newer run ID (default: latest run for the source)")
	cmd.Flags().Int64P("with-run-id", "w", 0,
		"Older run ID to compare against (default: second-latest run)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	source := args[0]

	runID, err := cmd.Flags().GetInt64("run-id")
	if err != nil {
		return err
	}
	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close() //nolint:errcheck // read-only usage

	ctx := cmd.Context()
	newer, older, err := selectReports(ctx, db, source, runID, withRunID)
	if err != nil {
		return err
	}

	comparison := compareReports(older, newer)

	out := cmd.OutOrStdout()
	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(comparison)
	}

	writeComparison(out, comparison)
	return nil
}

// selectReports resolves the two reports to compare, newest first.
func selectReports(ctx context.Context, db *database.HistoryDB, source string, runID, withRunID int64) (newer, older *model.Report, err error) {
	if runID != 0 {
		newer, err = db.GetReportByID(ctx, runID)
		if err != nil {
			return nil, nil, err
		}
		if newer == nil {
			return nil, nil, fmt.Errorf("no run with ID %d", runID)
		}
	}

	if withRunID != 0 {
		older, err = db.GetReportByID(ctx, withRunID)
		if err != nil {
			return nil, nil, err
		}
		if older == nil {
			return nil, nil, fmt.Errorf("no run with ID %d", withRunID)
		}
	}

	if newer != nil && older != nil {
		return newer, older, nil
	}

	// Fill the unspecified slots from the newest runs of the source.
	runs, err := db.ListRuns(ctx, source, 2)
	if err != nil {
		return nil, nil, err
	}

	if newer == nil {
		if len(runs) == 0 {
			return nil, nil, fmt.Errorf("no runs found for %s", source)
		}
		newer, err = db.GetReportByID(ctx, runs[0].ID)
		if err != nil {
			return nil, nil, err
		}
	}
	if older == nil {
		if len(runs) < 2 {
			return nil, nil, fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
		}
		older, err = db.GetReportByID(ctx, runs[1].ID)
		if err != nil {
			return nil, nil, err
		}
	}

	return newer, older, nil
}

// MissingDelta describes the change in missing values for one column.
type MissingDelta struct {
	// Column is the column name.
	Column string `json:"column"`

	// Before and After are the null counts in the older and newer runs.
	Before int `json:"before"`
	After  int `json:"after"`

	// PercentDelta is the change in the null percentage, rounded to two
	// decimals.
	PercentDelta float64 `json:"percent_delta"`
}

// Comparison summarizes the quality drift between two runs.
type Comparison struct {
	// Source is the compared dataset.
	Source string `json:"source"`

	// BeforeAnalyzedAt and AfterAnalyzedAt are the run timestamps.
	BeforeAnalyzedAt string `json:"before_analyzed_at"`
	AfterAnalyzedAt  string `json:"after_analyzed_at"`

	// SameData is true when both runs carry the same dataset fingerprint.
	SameData bool `json:"same_data"`

	// RowDelta and ColumnDelta are shape changes (after minus before).
	RowDelta    int `json:"row_delta"`
	ColumnDelta int `json:"column_delta"`

	// MissingDeltas lists columns whose null counts changed.
	MissingDeltas []MissingDelta `json:"missing_deltas,omitempty"`

	// DuplicateDelta is the change in duplicate row count. Nil when either
	// run is missing the duplicates block.
	DuplicateDelta *int `json:"duplicate_delta,omitempty"`

	// NewFailures and ResolvedFailures list checks that started or
	// stopped failing.
	NewFailures      []string `json:"new_failures,omitempty"`
	ResolvedFailures []string `json:"resolved_failures,omitempty"`
}

// compareReports builds the comparison between an older and a newer run.
func compareReports(older, newer *model.Report) *Comparison {
	c := &Comparison{
		Source:           newer.Source,
		BeforeAnalyzedAt: older.AnalyzedAt.Format("2006-01-02 15:04:05"),
		AfterAnalyzedAt:  newer.AnalyzedAt.Format("2006-01-02 15:04:05"),
		SameData:         older.Fingerprint != "" && older.Fingerprint == newer.Fingerprint,
		RowDelta:         newer.RowCount - older.RowCount,
		ColumnDelta:      newer.ColumnCount - older.ColumnCount,
	}

	if older.Missing != nil && newer.Missing != nil {
		before := make(map[string]model.MissingColumn, len(older.Missing.Columns))
		for _, col := range older.Missing.Columns {
			before[col.Name] = col
		}
		for _, col := range newer.Missing.Columns {
			prev, ok := before[col.Name]
			if !ok || prev.NullCount == col.NullCount {
				continue
			}
			c.MissingDeltas = append(c.MissingDeltas, MissingDelta{
				Column:       col.Name,
				Before:       prev.NullCount,
				After:        col.NullCount,
				PercentDelta: math.Round((col.NullPercent-prev.NullPercent)*100) / 100,
			})
		}
	}

	if older.Duplicates != nil && newer.Duplicates != nil {
		delta := newer.Duplicates.TotalDuplicates - older.Duplicates.TotalDuplicates
		c.DuplicateDelta = &delta
	}

	beforeFailures := make(map[string]bool, len(older.Failures))
	for _, f := range older.Failures {
		beforeFailures[f.Check] = true
	}
	afterFailures := make(map[string]bool, len(newer.Failures))
	for _, f := range newer.Failures {
		afterFailures[f.Check] = true
		if !beforeFailures[f.Check] {
			c.NewFailures = append(c.NewFailures, f.Check)
		}
	}
	for _, f := range older.Failures {
		if !afterFailures[f.Check] {
			c.ResolvedFailures = append(c.ResolvedFailures, f.Check)
		}
	}

	return c
}

// writeComparison renders the comparison as human-readable text.
func writeComparison(w io.Writer, c *Comparison) {
	fmt.Fprintf(w, "Comparison for %s\n", c.Source)
	fmt.Fprintf(w, "  Before: %s\n", c.BeforeAnalyzedAt)
	fmt.Fprintf(w, "  After:  %s\n\n", c.AfterAnalyzedAt)

	if c.SameData {
		fmt.Fprintln(w, "The dataset content is identical in both runs.")
	}

	if c.RowDelta != 0 || c.ColumnDelta != 0 {
		fmt.Fprintf(w, "Shape changed: %+d rows, %+d columns\n", c.RowDelta, c.ColumnDelta)
	} else {
		fmt.Fprintln(w, "Shape unchanged.")
	}

	if c.DuplicateDelta != nil {
		switch {
		case *c.DuplicateDelta > 0:
			fmt.Fprintf(w, "Duplicate rows increased by %d\n", *c.DuplicateDelta)
		case *c.DuplicateDelta < 0:
			fmt.Fprintf(w, "Duplicate rows decreased by %d\n", -*c.DuplicateDelta)
		default:
			fmt.Fprintln(w, "Duplicate rows unchanged.")
		}
	}

	if len(c.MissingDeltas) > 0 {
		fmt.Fprintln(w, "\nMissing value changes:")
		for _, d := range c.MissingDeltas {
			fmt.Fprintf(w, "  %-24s %d -> %d (%+.2f%%)\n",
				d.Column, d.Before, d.After, d.PercentDelta)
		}
	} else {
		fmt.Fprintln(w, "No missing value changes.")
	}

	if len(c.NewFailures) > 0 {
		fmt.Fprintf(w, "\nNew failed checks: %v\n", c.NewFailures)
	}
	if len(c.ResolvedFailures) > 0 {
		fmt.Fprintf(w, "Resolved failed checks: %v\n", c.ResolvedFailures)
	}
}
