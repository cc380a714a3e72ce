package analyzer

import (
	"context"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// DataTypeCheck reports each column's inferred type, estimated memory
// footprint, and distinct non-null value count.
type DataTypeCheck struct{}

// NewDataTypeCheck creates a new DataTypeCheck.
func NewDataTypeCheck() *DataTypeCheck {
	return &DataTypeCheck{}
}

// Name returns the check name.
func (c *DataTypeCheck) Name() string {
	return "data_types"
}

// Run builds the data-types block. A dataset with zero columns yields an
// empty block, not an error.
func (c *DataTypeCheck) Run(ctx context.Context, ds *dataset.Dataset) (model.Block, error) {
	block := &model.DataTypesBlock{
		Columns: make([]model.ColumnInfo, 0, ds.ColumnCount()),
	}

	for _, col := range ds.Columns() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		block.Columns = append(block.Columns, model.ColumnInfo{
			Name:         col.Name(),
			DataType:     col.Type().String(),
			MemoryBytes:  col.MemoryFootprint(),
			UniqueValues: col.DistinctCount(),
		})
	}

	return block, nil
}
