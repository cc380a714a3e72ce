package analyzer

import (
	"context"

	"github.com/montanaflynn/stats"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// CorrelationCheck computes the pairwise Pearson correlation matrix over
// numeric columns using pairwise-complete observations: for each column
// pair, only rows where both cells are non-null contribute.
type CorrelationCheck struct{}

// NewCorrelationCheck creates a new CorrelationCheck.
func NewCorrelationCheck() *CorrelationCheck {
	return &CorrelationCheck{}
}

// Name returns the check name.
func (c *CorrelationCheck) Name() string {
	return "correlation"
}

// Run builds the correlation block. Fewer than two numeric columns yield
// an empty matrix (success, not failure). Zero-variance columns yield an
// uncomputed coefficient against every column including themselves; the
// diagonal is exactly 1.0 for columns with nonzero variance.
func (c *CorrelationCheck) Run(ctx context.Context, ds *dataset.Dataset) (model.Block, error) {
	names := ds.NumericColumnNames()
	if len(names) < 2 {
		return &model.CorrelationBlock{Columns: []string{}}, nil
	}

	columns := make([]*dataset.Column, len(names))
	for i, name := range names {
		columns[i], _ = ds.Column(name)
	}

	coefficients := make([][]*float64, len(names))
	for i := range coefficients {
		coefficients[i] = make([]*float64, len(names))
	}

	for i := range columns {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if v, ok := sampleVariance(columns[i].Floats()); ok && v > 0 {
			coefficients[i][i] = ptr(1.0)
		}

		for j := i + 1; j < len(columns); j++ {
			r := pearson(columns[i], columns[j])
			coefficients[i][j] = r
			coefficients[j][i] = r
		}
	}

	return &model.CorrelationBlock{
		Columns:      names,
		Coefficients: coefficients,
	}, nil
}

// pearson computes the Pearson coefficient over rows where both columns
// are non-null. Nil when fewer than two complete pairs exist or either
// side has zero variance over the complete pairs.
func pearson(a, b *dataset.Column) *float64 {
	xs := make([]float64, 0, a.Len())
	ys := make([]float64, 0, a.Len())
	for row := 0; row < a.Len(); row++ {
		x, okX := a.Float(row)
		y, okY := b.Float(row)
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	if len(xs) < 2 {
		return nil
	}
	if v, ok := sampleVariance(xs); !ok || v == 0 {
		return nil
	}
	if v, ok := sampleVariance(ys); !ok || v == 0 {
		return nil
	}

	r, err := stats.Pearson(xs, ys)
	if err != nil {
		return nil
	}
	return ptr(r)
}
