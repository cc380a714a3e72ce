// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for documentation
//   - ExcelWriter: One-sheet-per-block workbook for spreadsheet review
//
// Design decision: We separate report writing from report data
// structures (which are in the model package) to follow the single
// responsibility principle. Writers consume the blocks that are present
// and never treat an absent block as an error; a partial report renders
// as a partial document.
package report
