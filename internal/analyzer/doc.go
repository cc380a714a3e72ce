// Package analyzer implements the data-quality checks and the
// coordinator that runs them.
//
// Each check computes one quality facet (types, descriptive statistics,
// missing values, duplicates, distribution shape, outliers, correlation)
// from a read-only dataset and returns a typed report block. The
// coordinator runs every check exactly once, isolates per-check
// failures, and assembles a single report: a failing check costs its own
// block and nothing else.
package analyzer
