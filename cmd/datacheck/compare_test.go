package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/datacheck/internal/model"
)

func runAt(day int) *model.Report {
	r := model.NewReport("sales.csv", "fp-1", 100, 4)
	r.AnalyzedAt = time.Date(2026, 8, day, 12, 0, 0, 0, time.UTC)
	r.Missing = &model.MissingBlock{Columns: []model.MissingColumn{
		{Name: "amount", NullCount: 5, NullPercent: 5},
		{Name: "region", NullCount: 0, NullPercent: 0},
	}}
	r.Duplicates = &model.DuplicatesBlock{TotalDuplicates: 2, DuplicatePercent: 2, TotalUnique: 98}
	r.Complete = true
	return r
}

// TestCompareReports tests drift computation between two runs.
func TestCompareReports(t *testing.T) {
	t.Parallel()

	t.Run("identical runs show no drift", func(t *testing.T) {
		t.Parallel()

		c := compareReports(runAt(1), runAt(2))
		if !c.SameData {
			t.Error("matching fingerprints should mean same data")
		}
		if c.RowDelta != 0 || c.ColumnDelta != 0 {
			t.Errorf("got shape delta %+d/%+d, want zero", c.RowDelta, c.ColumnDelta)
		}
		if len(c.MissingDeltas) != 0 {
			t.Errorf("got missing deltas %v, want none", c.MissingDeltas)
		}
		if c.DuplicateDelta == nil || *c.DuplicateDelta != 0 {
			t.Errorf("got duplicate delta %v, want 0", c.DuplicateDelta)
		}
		if c.BeforeAnalyzedAt != "2026-08-01 12:00:00" {
			t.Errorf("got before timestamp %q", c.BeforeAnalyzedAt)
		}
	})

	t.Run("shape and missing drift", func(t *testing.T) {
		t.Parallel()

		older := runAt(1)
		newer := runAt(2)
		newer.Fingerprint = "fp-2"
		newer.RowCount = 120
		newer.ColumnCount = 5
		newer.Missing.Columns[0] = model.MissingColumn{
			Name: "amount", NullCount: 12, NullPercent: 10,
		}

		c := compareReports(older, newer)
		if c.SameData {
			t.Error("different fingerprints should not be same data")
		}
		if c.RowDelta != 20 || c.ColumnDelta != 1 {
			t.Errorf("got shape delta %+d/%+d, want +20/+1", c.RowDelta, c.ColumnDelta)
		}
		if len(c.MissingDeltas) != 1 {
			t.Fatalf("got %d missing deltas, want 1", len(c.MissingDeltas))
		}
		d := c.MissingDeltas[0]
		if d.Column != "amount" || d.Before != 5 || d.After != 12 {
			t.Errorf("got delta %+v, want amount 5 -> 12", d)
		}
		if d.PercentDelta != 5 {
			t.Errorf("got percent delta %v, want 5", d.PercentDelta)
		}
	})

	t.Run("duplicate drift", func(t *testing.T) {
		t.Parallel()

		older := runAt(1)
		newer := runAt(2)
		newer.Duplicates.TotalDuplicates = 7

		c := compareReports(older, newer)
		if c.DuplicateDelta == nil || *c.DuplicateDelta != 5 {
			t.Errorf("got duplicate delta %v, want 5", c.DuplicateDelta)
		}
	})

	t.Run("missing blocks disable their deltas", func(t *testing.T) {
		t.Parallel()

		older := runAt(1)
		older.Missing = nil
		older.Duplicates = nil

		c := compareReports(older, runAt(2))
		if len(c.MissingDeltas) != 0 {
			t.Error("missing deltas require both runs to have the block")
		}
		if c.DuplicateDelta != nil {
			t.Error("duplicate delta requires both runs to have the block")
		}
	})

	t.Run("new and resolved failures", func(t *testing.T) {
		t.Parallel()

		older := runAt(1)
		older.Failures = []model.Failure{
			{Check: "outliers", Cause: "boom"},
			{Check: "correlation", Cause: "boom"},
		}
		newer := runAt(2)
		newer.Failures = []model.Failure{
			{Check: "outliers", Cause: "boom"},
			{Check: "duplicates", Cause: "boom"},
		}

		c := compareReports(older, newer)
		if len(c.NewFailures) != 1 || c.NewFailures[0] != "duplicates" {
			t.Errorf("got new failures %v, want [duplicates]", c.NewFailures)
		}
		if len(c.ResolvedFailures) != 1 || c.ResolvedFailures[0] != "correlation" {
			t.Errorf("got resolved failures %v, want [correlation]", c.ResolvedFailures)
		}
	})
}

// TestWriteComparison tests the text rendering.
func TestWriteComparison(t *testing.T) {
	t.Parallel()

	t.Run("quiet comparison", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		writeComparison(buf, compareReports(runAt(1), runAt(2)))

		out := buf.String()
		for _, want := range []string{
			"Comparison for sales.csv",
			"identical in both runs",
			"Shape unchanged.",
			"Duplicate rows unchanged.",
			"No missing value changes.",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("drifting comparison", func(t *testing.T) {
		t.Parallel()

		older := runAt(1)
		newer := runAt(2)
		newer.Fingerprint = "fp-2"
		newer.RowCount = 90
		newer.Duplicates.TotalDuplicates = 9
		newer.Missing.Columns[0].NullCount = 20
		newer.Missing.Columns[0].NullPercent = 22.22
		newer.Failures = []model.Failure{{Check: "outliers", Cause: "boom"}}

		buf := &bytes.Buffer{}
		writeComparison(buf, compareReports(older, newer))

		out := buf.String()
		for _, want := range []string{
			"Shape changed: -10 rows, +0 columns",
			"Duplicate rows increased by 7",
			"Missing value changes:",
			"amount",
			"New failed checks: [outliers]",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}
