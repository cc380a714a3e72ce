// Package pipeline orchestrates a full analysis run as a sequence of
// steps: load the dataset, run the quality checks, and emit the
// configured artifacts (Excel workbook, charts, history database entry).
//
// Steps share one Run carrier. The load and analyze steps are the
// backbone of a run and fail it on error; artifact steps degrade to a
// logged warning when continue-on-error is enabled.
package pipeline
