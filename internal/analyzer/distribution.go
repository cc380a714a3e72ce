package analyzer

import (
	"context"

	"github.com/montanaflynn/stats"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// DistributionCheck reports distributional shape per numeric column:
// bias-corrected sample skewness, excess kurtosis, mean, median, and
// sample standard deviation.
type DistributionCheck struct{}

// NewDistributionCheck creates a new DistributionCheck.
func NewDistributionCheck() *DistributionCheck {
	return &DistributionCheck{}
}

// Name returns the check name.
func (c *DistributionCheck) Name() string {
	return "distribution"
}

// Run builds the distribution block. Columns with too few non-null
// values or zero variance report skewness and kurtosis as not computed;
// mean and median are still reported whenever at least one value exists.
func (c *DistributionCheck) Run(ctx context.Context, ds *dataset.Dataset) (model.Block, error) {
	names := ds.NumericColumnNames()
	block := &model.DistributionBlock{
		Columns: make([]model.DistributionColumn, 0, len(names)),
	}

	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		col, _ := ds.Column(name)
		block.Columns = append(block.Columns, distributionColumn(col))
	}

	return block, nil
}

// distributionColumn computes the shape statistics for one numeric column.
func distributionColumn(col *dataset.Column) model.DistributionColumn {
	xs := col.Floats()
	out := model.DistributionColumn{
		Name:  col.Name(),
		Count: len(xs),
	}
	if len(xs) == 0 {
		return out
	}

	mean, err := stats.Mean(xs)
	if err != nil {
		return out
	}
	out.Mean = ptr(mean)

	if median, err := stats.Median(xs); err == nil {
		out.Median = ptr(median)
	}

	sd, ok := sampleStd(xs)
	if !ok {
		return out
	}
	out.Std = ptr(sd)

	out.Skewness = skewness(xs, mean, sd)
	out.Kurtosis = kurtosis(xs, mean, sd)

	return out
}
