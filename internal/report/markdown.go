package report

import (
	"io"
	"strconv"

	"github.com/nao1215/datacheck/internal/model"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)

	for _, table := range report.Tables() {
		w.writeTable(md, table)
	}

	w.writeFailures(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run metadata.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Data Quality Report")
	md.PlainText("")

	rows := [][]string{
		{"Source", "`" + report.Source + "`"},
		{"Analyzed At", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
		{"Rows", strconv.Itoa(report.RowCount)},
		{"Columns", strconv.Itoa(report.ColumnCount)},
		{"Status", w.getStatusText(report)},
	}
	if report.Fingerprint != "" {
		rows = append(rows, []string{"Fingerprint", "`" + report.Fingerprint + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.Report) string {
	switch {
	case !report.Complete:
		return "⚠️ Incomplete (partial results)"
	case report.HasFailures():
		return "⚠️ Complete with failed checks"
	default:
		return "✅ Complete"
	}
}

// writeAlert writes an appropriate alert based on the report contents.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case report.HasFailures():
		md.Warningf(
			"%d check(s) failed to complete. Their sections are absent from this report.",
			len(report.Failures),
		)
	case w.totalMissing(report) > 0 || w.totalDuplicates(report) > 0:
		md.Importantf(
			"Data quality issues detected: %d missing value(s), %d duplicate row(s).",
			w.totalMissing(report), w.totalDuplicates(report),
		)
	default:
		md.Tip("No missing values or duplicate rows detected.")
	}
	md.PlainText("")
}

// totalMissing sums null counts across all columns, zero when the
// missing-values block is absent.
func (w *MarkdownWriter) totalMissing(report *model.Report) int {
	if report.Missing == nil {
		return 0
	}
	var total int
	for _, c := range report.Missing.Columns {
		total += c.NullCount
	}
	return total
}

// totalDuplicates returns the duplicate row count, zero when the
// duplicates block is absent.
func (w *MarkdownWriter) totalDuplicates(report *model.Report) int {
	if report.Duplicates == nil {
		return 0
	}
	return report.Duplicates.TotalDuplicates
}

// writeTable writes one block as a markdown section with a table.
func (w *MarkdownWriter) writeTable(md *markdown.Markdown, table model.Table) {
	md.H2(table.Name)
	md.PlainText("")

	if len(table.Rows) == 0 {
		md.PlainText("No data.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(table.Rows))
	for r, row := range table.Rows {
		rows[r] = make([]string, len(row))
		for i, cell := range row {
			rows[r][i] = cell.String()
		}
	}

	md.Table(markdown.TableSet{
		Header: table.Header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the failed-checks section, if any.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.Report) {
	if !report.HasFailures() {
		return
	}

	md.H2("Failed Checks")
	md.PlainText("")

	rows := make([][]string, len(report.Failures))
	for i, f := range report.Failures {
		rows[i] = []string{f.Check, f.Cause}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Check", "Cause"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [datacheck](https://github.com/nao1215/datacheck)*")
}
