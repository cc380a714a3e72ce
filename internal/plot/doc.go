// Package plot renders dataset quality charts as PNG files.
//
// Charts are a best-effort supplement to the report: a failed chart is
// logged and skipped, never fatal to the run. Each numeric column gets a
// histogram and a box plot; the dataset as a whole gets a missing-values
// bar chart and, when at least two numeric columns exist, a Pearson
// correlation heatmap.
package plot
