package analyzer

import (
	"context"

	"github.com/montanaflynn/stats"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// BasicStatsCheck computes describe-style statistics for every column:
// count, mean, std, min, quartiles, and max for numeric columns; count,
// unique, top value, and top frequency for everything else.
type BasicStatsCheck struct{}

// NewBasicStatsCheck creates a new BasicStatsCheck.
func NewBasicStatsCheck() *BasicStatsCheck {
	return &BasicStatsCheck{}
}

// Name returns the check name.
func (c *BasicStatsCheck) Name() string {
	return "basic_statistics"
}

// Run builds the basic-statistics block.
func (c *BasicStatsCheck) Run(ctx context.Context, ds *dataset.Dataset) (model.Block, error) {
	block := &model.BasicStatsBlock{
		Columns: make([]model.ColumnSummary, 0, ds.ColumnCount()),
	}

	for _, col := range ds.Columns() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if col.Type() == dataset.TypeNumeric {
			block.Columns = append(block.Columns, numericSummary(col))
			continue
		}
		block.Columns = append(block.Columns, categoricalSummary(col))
	}

	return block, nil
}

// numericSummary computes the numeric describe fields for one column.
// All-null columns report a zero count and leave every statistic
// uncomputed.
func numericSummary(col *dataset.Column) model.ColumnSummary {
	xs := col.Floats()
	summary := model.ColumnSummary{
		Name:  col.Name(),
		Count: len(xs),
	}
	if len(xs) == 0 {
		return summary
	}

	if mean, err := stats.Mean(xs); err == nil {
		summary.Mean = ptr(mean)
	}
	if sd, ok := sampleStd(xs); ok {
		summary.Std = ptr(sd)
	}

	sorted := sortedCopy(xs)
	summary.Min = ptr(sorted[0])
	summary.Q25 = ptr(quantile(sorted, 0.25))
	summary.Median = ptr(quantile(sorted, 0.50))
	summary.Q75 = ptr(quantile(sorted, 0.75))
	summary.Max = ptr(sorted[len(sorted)-1])

	return summary
}

// categoricalSummary computes count, unique, top, and freq for one
// non-numeric column. Frequency ties break toward the value seen first
// in row order, which keeps repeated runs bit-identical.
func categoricalSummary(col *dataset.Column) model.ColumnSummary {
	summary := model.ColumnSummary{Name: col.Name()}

	counts := make(map[string]int, col.Len())
	firstSeen := make(map[string]int, col.Len())
	top := ""
	topCount := 0

	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		summary.Count++

		v := col.Value(i)
		counts[v]++
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}

		switch {
		case counts[v] > topCount:
			top, topCount = v, counts[v]
		case counts[v] == topCount && firstSeen[v] < firstSeen[top]:
			top = v
		}
	}

	summary.Unique = intPtr(len(counts))
	if summary.Count > 0 {
		summary.Top = strPtr(top)
		summary.Freq = intPtr(topCount)
	}

	return summary
}
