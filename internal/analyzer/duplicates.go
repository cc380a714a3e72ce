package analyzer

import (
	"context"

	"github.com/nao1215/datacheck/internal/dataset"
	"github.com/nao1215/datacheck/internal/model"
)

// DuplicateCheck reports whole-row duplicate statistics. A row is a
// duplicate when all cells, including null markers, compare equal to an
// earlier row; the first occurrence of each distinct row is "original".
type DuplicateCheck struct{}

// NewDuplicateCheck creates a new DuplicateCheck.
func NewDuplicateCheck() *DuplicateCheck {
	return &DuplicateCheck{}
}

// Name returns the check name.
func (c *DuplicateCheck) Name() string {
	return "duplicates"
}

// Run builds the duplicates block.
// Invariant: TotalDuplicates + TotalUnique == RowCount.
func (c *DuplicateCheck) Run(ctx context.Context, ds *dataset.Dataset) (model.Block, error) {
	seen := make(map[string]struct{}, ds.RowCount())
	duplicates := 0

	for row := 0; row < ds.RowCount(); row++ {
		// Row keys are cheap; check for cancellation at a coarse stride.
		if row%4096 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		key := ds.RowKey(row)
		if _, exists := seen[key]; exists {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}

	return &model.DuplicatesBlock{
		TotalDuplicates:  duplicates,
		DuplicatePercent: percent(duplicates, ds.RowCount()),
		TotalUnique:      len(seen),
	}, nil
}
