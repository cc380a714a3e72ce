// Package main provides the entry point for the datacheck CLI.
//
// datacheck analyzes tabular data (CSV) for quality issues: missing
// values, duplicate rows, distribution shape, outliers, and column
// correlations. Results are written as an Excel workbook with charts,
// with optional JSON and Markdown output.
//
// Usage:
//
//	datacheck analyze <file.csv>
//	datacheck history
//
// See --help for all available options.
package main

// main is the entry point for datacheck.
func main() {
	Execute()
}
