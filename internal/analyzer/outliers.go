package analyzer

import (
	"context"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// OutlierCheck reports per numeric column the count and percentage of
// values outside the Tukey fence: Q1 - m*IQR below, Q3 + m*IQR above,
// with strict comparisons. Null values are excluded from both the
// quantile estimation and the outlier count.
type OutlierCheck struct {
	// multiplier scales the fence distance from the quartiles.
	multiplier float64
}

// NewOutlierCheck creates an OutlierCheck with the given fence
// multiplier. Non-positive multipliers fall back to the conventional 1.5.
func NewOutlierCheck(multiplier float64) *OutlierCheck {
	if multiplier <= 0 {
		multiplier = DefaultIQRMultiplier
	}
	return &OutlierCheck{multiplier: multiplier}
}

// Name returns the check name.
func (c *OutlierCheck) Name() string {
	return "outliers"
}

// Run builds the outliers block.
// A constant column collapses the fence onto the constant itself, so
// every value is an inlier and the count is zero; any value different
// from the constant would fall strictly outside.
func (c *OutlierCheck) Run(ctx context.Context, ds *dataset.Dataset) (model.Block, error) {
	names := ds.NumericColumnNames()
	block := &model.OutliersBlock{
		Columns: make([]model.OutlierColumn, 0, len(names)),
	}

	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		col, _ := ds.Column(name)
		block.Columns = append(block.Columns, c.outlierColumn(col, ds.RowCount()))
	}

	return block, nil
}

// outlierColumn computes fence statistics for one numeric column.
// Columns with no non-null values report an uncomputed fence and a zero
// count.
func (c *OutlierCheck) outlierColumn(col *dataset.Column, rows int) model.OutlierColumn {
	out := model.OutlierColumn{Name: col.Name()}

	xs := col.Floats()
	if len(xs) == 0 {
		return out
	}

	sorted := sortedCopy(xs)
	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lower := q1 - c.multiplier*iqr
	upper := q3 + c.multiplier*iqr

	count := 0
	for _, x := range xs {
		if x < lower || x > upper {
			count++
		}
	}

	out.Q1 = ptr(q1)
	out.Q3 = ptr(q3)
	out.IQR = ptr(iqr)
	out.LowerFence = ptr(lower)
	out.UpperFence = ptr(upper)
	out.OutlierCount = count
	out.OutlierPercent = percent(count, rows)

	return out
}
