package analyzer

import (
	"context"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// MissingValueCheck reports per-column null counts and percentages.
type MissingValueCheck struct{}

// NewMissingValueCheck creates a new MissingValueCheck.
func NewMissingValueCheck() *MissingValueCheck {
	return &MissingValueCheck{}
}

// Name returns the check name.
func (c *MissingValueCheck) Name() string {
	return "missing_values"
}

// Run builds the missing-values block. An empty dataset reports zero
// percentages rather than dividing by zero.
func (c *MissingValueCheck) Run(ctx context.Context, ds *dataset.Dataset) (model.Block, error) {
	block := &model.MissingBlock{
		Columns: make([]model.MissingColumn, 0, ds.ColumnCount()),
	}

	for _, col := range ds.Columns() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		nulls := col.NullCount()
		block.Columns = append(block.Columns, model.MissingColumn{
			Name:        col.Name(),
			NullCount:   nulls,
			NullPercent: percent(nulls, ds.RowCount()),
		})
	}

	return block, nil
}
