package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/datacheck/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with aligned columns and
// clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether blocks with no rows are shown.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show blocks with no rows.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	for _, table := range report.Tables() {
		if len(table.Rows) == 0 && !w.showEmpty {
			continue
		}
		w.writeTable(&sb, table)
	}
	w.writeFailures(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run metadata section.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("=== Data Quality Report ===\n")
	fmt.Fprintf(sb, "Source:      %s\n", report.Source)
	fmt.Fprintf(sb, "Analyzed At: %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Shape:       %d rows x %d columns\n", report.RowCount, report.ColumnCount)
	fmt.Fprintf(sb, "Checks:      %d succeeded, %d failed\n\n",
		report.BlockCount(), len(report.Failures))
}

// writeTable writes one block as an aligned text table.
func (w *SimpleWriter) writeTable(sb *strings.Builder, table model.Table) {
	fmt.Fprintf(sb, "--- %s ---\n", table.Name)

	widths := make([]int, len(table.Header))
	for i, h := range table.Header {
		widths[i] = len(h)
	}
	rendered := make([][]string, len(table.Rows))
	for r, row := range table.Rows {
		rendered[r] = make([]string, len(row))
		for i, cell := range row {
			s := cell.String()
			rendered[r][i] = s
			if i < len(widths) && len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, s := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			fmt.Fprintf(sb, "%-*s", widths[i], s)
		}
		sb.WriteString("\n")
	}

	writeRow(table.Header)
	for _, row := range rendered {
		writeRow(row)
	}
	sb.WriteString("\n")
}

// writeFailures writes the failed-checks section, if any.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.Report) {
	if !report.HasFailures() {
		return
	}

	sb.WriteString("--- Failed Checks ---\n")
	for _, f := range report.Failures {
		fmt.Fprintf(sb, "%s: %s\n", f.Check, f.Cause)
	}
	sb.WriteString("\n")
}
