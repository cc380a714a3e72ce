package report

import (
	"fmt"
	"io"

	"github.com/nao1215/datacheck/internal/model"
	"github.com/xuri/excelize/v2"
)

// defaultExcelSheet is the sheet name excelize creates in every new
// workbook. It is renamed to the overview sheet rather than deleted,
// since a workbook must always hold at least one sheet.
const defaultExcelSheet = "Sheet1"

// overviewSheet is the first sheet of the workbook and holds the run
// metadata.
const overviewSheet = "Overview"

// ExcelWriter outputs reports as an Excel workbook, one sheet per block.
// This format is designed for spreadsheet review by non-engineers.
//
// Design decision: Numeric cells are written as float64 values rather
// than formatted strings so that sorting, filtering, and charting work
// in spreadsheet tools. "Not computed" values are left as blank cells,
// which Excel treats as absent rather than zero.
type ExcelWriter struct {
	baseWriter
}

// NewExcelWriter creates an ExcelWriter that outputs to the given writer.
func NewExcelWriter(output io.Writer) *ExcelWriter {
	return &ExcelWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report as an xlsx workbook.
func (w *ExcelWriter) Write(report *model.Report) (int, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // close on an in-memory workbook

	if err := w.writeOverview(f, report); err != nil {
		return 0, err
	}

	for _, table := range report.Tables() {
		if err := w.writeSheet(f, table); err != nil {
			return 0, err
		}
	}

	if report.HasFailures() {
		if err := w.writeFailuresSheet(f, report); err != nil {
			return 0, err
		}
	}

	// Make the overview the active sheet when the workbook is opened.
	idx, err := f.GetSheetIndex(overviewSheet)
	if err != nil {
		return 0, err
	}
	f.SetActiveSheet(idx)

	n, err := f.WriteTo(w.output)
	return int(n), err
}

// writeOverview renames the default sheet and fills it with run metadata.
func (w *ExcelWriter) writeOverview(f *excelize.File, report *model.Report) error {
	if err := f.SetSheetName(defaultExcelSheet, overviewSheet); err != nil {
		return fmt.Errorf("failed to create overview sheet: %w", err)
	}

	rows := [][]any{
		{"Property", "Value"},
		{"Source", report.Source},
		{"Analyzed At", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
		{"Rows", report.RowCount},
		{"Columns", report.ColumnCount},
		{"Checks Succeeded", report.BlockCount()},
		{"Checks Failed", len(report.Failures)},
	}
	if report.Fingerprint != "" {
		rows = append(rows, []any{"Fingerprint", report.Fingerprint})
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(overviewSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write overview cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// writeSheet writes one block table as a dedicated sheet.
func (w *ExcelWriter) writeSheet(f *excelize.File, table model.Table) error {
	sheet := sheetName(table.Name)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	for c, h := range table.Header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
	}

	for r, row := range table.Rows {
		for c, cellValue := range row {
			// Blank cells stay blank: Excel distinguishes absent from zero.
			if cellValue.Kind == model.CellEmpty {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}

			var v any
			switch cellValue.Kind {
			case model.CellNumber:
				v = cellValue.Num
			default:
				v = cellValue.Str
			}

			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s on %q: %w", cell, sheet, err)
			}
		}
	}
	return nil
}

// writeFailuresSheet writes the failed-checks list as its own sheet.
func (w *ExcelWriter) writeFailuresSheet(f *excelize.File, report *model.Report) error {
	const sheet = "Failed Checks"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	for c, h := range []string{"Check", "Cause"} {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for r, failure := range report.Failures {
		for c, v := range []string{failure.Check, failure.Cause} {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetName clamps a block name to Excel's 31-character sheet name limit.
func sheetName(name string) string {
	const maxSheetNameLen = 31
	if len(name) <= maxSheetNameLen {
		return name
	}
	return name[:maxSheetNameLen]
}
