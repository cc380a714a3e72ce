package analyzer

import (
	"context"
	"testing"

	"github.com/nao1215/datacheck/internal/model"
)

// TestDataTypeCheck tests the per-column type block.
func TestDataTypeCheck(t *testing.T) {
	t.Parallel()

	t.Run("reports type and cardinality per column", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t,
			numCol("score", 1, 2, 2),
			catCol("city", "Tokyo", "Osaka", "Tokyo"),
		)

		block, err := NewDataTypeCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		types := block.(*model.DataTypesBlock)
		if len(types.Columns) != 2 {
			t.Fatalf("got %d columns, want 2", len(types.Columns))
		}
		if types.Columns[0].DataType != "numeric" {
			t.Errorf("got type %q, want numeric", types.Columns[0].DataType)
		}
		if types.Columns[0].UniqueValues != 2 {
			t.Errorf("got %d unique values, want 2", types.Columns[0].UniqueValues)
		}
		if types.Columns[1].DataType != "categorical" {
			t.Errorf("got type %q, want categorical", types.Columns[1].DataType)
		}
		if types.Columns[1].MemoryBytes <= 0 {
			t.Error("memory footprint should be positive")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ds := mustDataset(t, catCol("a", "x"))
		if _, err := NewDataTypeCheck().Run(ctx, ds); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}

// TestBasicStatsCheck tests describe-style statistics.
func TestBasicStatsCheck(t *testing.T) {
	t.Parallel()

	t.Run("numeric column gets quartile statistics", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numCol("v", 1, 2, 3, 4, 5))
		block, err := NewBasicStatsCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		s := block.(*model.BasicStatsBlock).Columns[0]
		if s.Count != 5 {
			t.Errorf("got count %d, want 5", s.Count)
		}
		if s.Mean == nil || !almostEqual(*s.Mean, 3) {
			t.Errorf("got mean %v, want 3", s.Mean)
		}
		if s.Min == nil || *s.Min != 1 || s.Max == nil || *s.Max != 5 {
			t.Errorf("got min/max %v/%v, want 1/5", s.Min, s.Max)
		}
		if s.Q25 == nil || !almostEqual(*s.Q25, 2) {
			t.Errorf("got Q25 %v, want 2", s.Q25)
		}
		if s.Median == nil || !almostEqual(*s.Median, 3) {
			t.Errorf("got median %v, want 3", s.Median)
		}
		if s.Q75 == nil || !almostEqual(*s.Q75, 4) {
			t.Errorf("got Q75 %v, want 4", s.Q75)
		}
		if s.Unique != nil || s.Top != nil || s.Freq != nil {
			t.Error("numeric columns should not report unique/top/freq")
		}
	})

	t.Run("categorical ties break toward first occurrence", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, catCol("c", "b", "a", "a", "b"))
		block, err := NewBasicStatsCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		s := block.(*model.BasicStatsBlock).Columns[0]
		if s.Count != 4 {
			t.Errorf("got count %d, want 4", s.Count)
		}
		if s.Unique == nil || *s.Unique != 2 {
			t.Errorf("got unique %v, want 2", s.Unique)
		}
		if s.Top == nil || *s.Top != "b" {
			t.Errorf("got top %v, want b (seen first)", s.Top)
		}
		if s.Freq == nil || *s.Freq != 2 {
			t.Errorf("got freq %v, want 2", s.Freq)
		}
	})

	t.Run("all-null numeric column reports only the count", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numColWithNulls("v", []float64{0, 0}, []bool{true, true}))
		block, err := NewBasicStatsCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		s := block.(*model.BasicStatsBlock).Columns[0]
		if s.Count != 0 {
			t.Errorf("got count %d, want 0", s.Count)
		}
		if s.Mean != nil || s.Std != nil || s.Min != nil {
			t.Error("all-null column should leave statistics uncomputed")
		}
	})
}

// TestMissingValueCheck tests null accounting.
func TestMissingValueCheck(t *testing.T) {
	t.Parallel()

	t.Run("counts and percentages per column", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t,
			catColWithNulls("a", []string{"x", "", "", "y"}, []bool{false, true, true, false}),
			catCol("b", "1", "2", "3", "4"),
		)

		block, err := NewMissingValueCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		missing := block.(*model.MissingBlock)
		if missing.Columns[0].NullCount != 2 {
			t.Errorf("got %d nulls, want 2", missing.Columns[0].NullCount)
		}
		if missing.Columns[0].NullPercent != 50 {
			t.Errorf("got %v%%, want 50", missing.Columns[0].NullPercent)
		}
		if missing.Columns[1].NullCount != 0 || missing.Columns[1].NullPercent != 0 {
			t.Errorf("got %+v, want zero nulls", missing.Columns[1])
		}
	})

	t.Run("empty dataset reports zero percent", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, catCol("a"))
		block, err := NewMissingValueCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		missing := block.(*model.MissingBlock)
		if missing.Columns[0].NullPercent != 0 {
			t.Errorf("got %v%%, want 0", missing.Columns[0].NullPercent)
		}
	})
}

// TestDuplicateCheck tests whole-row duplicate detection.
func TestDuplicateCheck(t *testing.T) {
	t.Parallel()

	t.Run("duplicates plus uniques equal the row count", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t,
			catCol("a", "x", "x", "y", "x"),
			catCol("b", "1", "1", "2", "1"),
		)

		block, err := NewDuplicateCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dup := block.(*model.DuplicatesBlock)
		if dup.TotalDuplicates != 2 {
			t.Errorf("got %d duplicates, want 2", dup.TotalDuplicates)
		}
		if dup.TotalUnique != 2 {
			t.Errorf("got %d uniques, want 2", dup.TotalUnique)
		}
		if dup.TotalDuplicates+dup.TotalUnique != ds.RowCount() {
			t.Error("duplicates plus uniques must equal the row count")
		}
		if dup.DuplicatePercent != 50 {
			t.Errorf("got %v%%, want 50", dup.DuplicatePercent)
		}
	})

	t.Run("aligned nulls make rows duplicates", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t,
			catColWithNulls("a", []string{"", ""}, []bool{true, true}),
			catCol("b", "x", "x"),
		)

		block, err := NewDuplicateCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dup := block.(*model.DuplicatesBlock)
		if dup.TotalDuplicates != 1 {
			t.Errorf("got %d duplicates, want 1", dup.TotalDuplicates)
		}
	})

	t.Run("empty dataset reports zeros", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, catCol("a"))
		block, err := NewDuplicateCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dup := block.(*model.DuplicatesBlock)
		if dup.TotalDuplicates != 0 || dup.TotalUnique != 0 || dup.DuplicatePercent != 0 {
			t.Errorf("got %+v, want all zeros", dup)
		}
	})
}

// TestDistributionCheck tests shape statistics.
func TestDistributionCheck(t *testing.T) {
	t.Parallel()

	t.Run("symmetric column", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numCol("v", 1, 2, 3, 4, 5))
		block, err := NewDistributionCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		col := block.(*model.DistributionBlock).Columns[0]
		if col.Skewness == nil || !almostEqual(*col.Skewness, 0) {
			t.Errorf("got skewness %v, want 0", col.Skewness)
		}
		if col.Kurtosis == nil || !almostEqual(*col.Kurtosis, -1.2) {
			t.Errorf("got kurtosis %v, want -1.2", col.Kurtosis)
		}
		if col.Mean == nil || !almostEqual(*col.Mean, 3) {
			t.Errorf("got mean %v, want 3", col.Mean)
		}
		if col.Median == nil || !almostEqual(*col.Median, 3) {
			t.Errorf("got median %v, want 3", col.Median)
		}
	})

	t.Run("constant column leaves shape uncomputed", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numCol("v", 7, 7, 7, 7))
		block, err := NewDistributionCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		col := block.(*model.DistributionBlock).Columns[0]
		if col.Skewness != nil || col.Kurtosis != nil {
			t.Error("constant column should not report skewness or kurtosis")
		}
		if col.Mean == nil || *col.Mean != 7 {
			t.Errorf("got mean %v, want 7", col.Mean)
		}
	})

	t.Run("too few values for kurtosis", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numCol("v", 1, 2, 3))
		block, err := NewDistributionCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		col := block.(*model.DistributionBlock).Columns[0]
		if col.Skewness == nil {
			t.Error("three values should be enough for skewness")
		}
		if col.Kurtosis != nil {
			t.Error("three values should not be enough for kurtosis")
		}
	})

	t.Run("no numeric columns yields empty block", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, catCol("a", "x"))
		block, err := NewDistributionCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := len(block.(*model.DistributionBlock).Columns); got != 0 {
			t.Errorf("got %d columns, want 0", got)
		}
	})
}

// TestOutlierCheck tests Tukey fence outlier detection.
func TestOutlierCheck(t *testing.T) {
	t.Parallel()

	t.Run("flags values strictly outside the fence", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numCol("v", 1, 2, 3, 4, 100))
		block, err := NewOutlierCheck(1.5).Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		col := block.(*model.OutliersBlock).Columns[0]
		if col.Q1 == nil || !almostEqual(*col.Q1, 2) {
			t.Errorf("got Q1 %v, want 2", col.Q1)
		}
		if col.Q3 == nil || !almostEqual(*col.Q3, 4) {
			t.Errorf("got Q3 %v, want 4", col.Q3)
		}
		if col.IQR == nil || !almostEqual(*col.IQR, 2) {
			t.Errorf("got IQR %v, want 2", col.IQR)
		}
		if col.LowerFence == nil || !almostEqual(*col.LowerFence, -1) {
			t.Errorf("got lower fence %v, want -1", col.LowerFence)
		}
		if col.UpperFence == nil || !almostEqual(*col.UpperFence, 7) {
			t.Errorf("got upper fence %v, want 7", col.UpperFence)
		}
		if col.OutlierCount != 1 {
			t.Errorf("got %d outliers, want 1", col.OutlierCount)
		}
		if col.OutlierPercent != 20 {
			t.Errorf("got %v%%, want 20", col.OutlierPercent)
		}
	})

	t.Run("constant column has zero outliers", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numCol("v", 5, 5, 5, 5))
		block, err := NewOutlierCheck(1.5).Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		col := block.(*model.OutliersBlock).Columns[0]
		if col.OutlierCount != 0 {
			t.Errorf("got %d outliers, want 0", col.OutlierCount)
		}
		if col.IQR == nil || *col.IQR != 0 {
			t.Errorf("got IQR %v, want 0", col.IQR)
		}
	})

	t.Run("value exactly on the fence is an inlier", func(t *testing.T) {
		t.Parallel()

		// Q1=2, Q3=4, fence multiplier 1.5 puts the upper fence at 7.
		ds := mustDataset(t, numCol("v", 1, 2, 3, 4, 7))
		block, err := NewOutlierCheck(1.5).Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		col := block.(*model.OutliersBlock).Columns[0]
		if col.OutlierCount != 0 {
			t.Errorf("got %d outliers, want 0 (fence value is an inlier)", col.OutlierCount)
		}
	})

	t.Run("percentage is relative to all rows including nulls", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numColWithNulls("v",
			[]float64{1, 2, 3, 4, 100, 0, 0, 0, 0, 0},
			[]bool{false, false, false, false, false, true, true, true, true, true}))

		block, err := NewOutlierCheck(1.5).Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		col := block.(*model.OutliersBlock).Columns[0]
		if col.OutlierCount != 1 {
			t.Errorf("got %d outliers, want 1", col.OutlierCount)
		}
		if col.OutlierPercent != 10 {
			t.Errorf("got %v%%, want 10 (1 of 10 rows)", col.OutlierPercent)
		}
	})

	t.Run("non-positive multiplier falls back to the default", func(t *testing.T) {
		t.Parallel()

		check := NewOutlierCheck(0)
		if check.multiplier != DefaultIQRMultiplier {
			t.Errorf("got multiplier %v, want %v", check.multiplier, DefaultIQRMultiplier)
		}
	})

	t.Run("all-null column reports an uncomputed fence", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numColWithNulls("v", []float64{0, 0}, []bool{true, true}))
		block, err := NewOutlierCheck(1.5).Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		col := block.(*model.OutliersBlock).Columns[0]
		if col.Q1 != nil || col.UpperFence != nil {
			t.Error("all-null column should leave the fence uncomputed")
		}
		if col.OutlierCount != 0 || col.OutlierPercent != 0 {
			t.Errorf("got %+v, want zero outliers", col)
		}
	})
}

// TestCorrelationCheck tests the Pearson matrix.
func TestCorrelationCheck(t *testing.T) {
	t.Parallel()

	t.Run("perfect linear relationships", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t,
			numCol("a", 1, 2, 3),
			numCol("b", 2, 4, 6),
			numCol("c", 6, 4, 2),
		)

		block, err := NewCorrelationCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		corr := block.(*model.CorrelationBlock)
		if len(corr.Columns) != 3 {
			t.Fatalf("got %d columns, want 3", len(corr.Columns))
		}
		if r := corr.At(0, 1); r == nil || !almostEqual(*r, 1) {
			t.Errorf("got r(a,b)=%v, want 1", r)
		}
		if r := corr.At(0, 2); r == nil || !almostEqual(*r, -1) {
			t.Errorf("got r(a,c)=%v, want -1", r)
		}
		for i := range corr.Columns {
			if r := corr.At(i, i); r == nil || *r != 1 {
				t.Errorf("diagonal [%d] = %v, want 1", i, r)
			}
		}
	})

	t.Run("matrix is symmetric", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t,
			numCol("a", 1, 3, 2, 5),
			numCol("b", 2, 1, 4, 3),
		)

		block, err := NewCorrelationCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		corr := block.(*model.CorrelationBlock)
		r01, r10 := corr.At(0, 1), corr.At(1, 0)
		if r01 == nil || r10 == nil || *r01 != *r10 {
			t.Errorf("got r(0,1)=%v and r(1,0)=%v, want equal", r01, r10)
		}
	})

	t.Run("zero-variance column is uncomputed everywhere", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t,
			numCol("a", 1, 2, 3),
			numCol("constant", 5, 5, 5),
		)

		block, err := NewCorrelationCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		corr := block.(*model.CorrelationBlock)
		if corr.At(0, 1) != nil || corr.At(1, 0) != nil {
			t.Error("pairs with a constant column should be uncomputed")
		}
		if corr.At(1, 1) != nil {
			t.Error("diagonal of a constant column should be uncomputed")
		}
		if r := corr.At(0, 0); r == nil || *r != 1 {
			t.Errorf("got diagonal %v for varying column, want 1", r)
		}
	})

	t.Run("pairwise complete observations", func(t *testing.T) {
		t.Parallel()

		// Row 3 is null in b, so only the first three rows pair up; over
		// those the relationship is exactly linear.
		ds := mustDataset(t,
			numCol("a", 1, 2, 3, 100),
			numColWithNulls("b", []float64{2, 4, 6, 0}, []bool{false, false, false, true}),
		)

		block, err := NewCorrelationCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		corr := block.(*model.CorrelationBlock)
		if r := corr.At(0, 1); r == nil || !almostEqual(*r, 1) {
			t.Errorf("got r=%v, want 1 over complete pairs", r)
		}
	})

	t.Run("fewer than two numeric columns yields empty matrix", func(t *testing.T) {
		t.Parallel()

		ds := mustDataset(t, numCol("a", 1, 2), catCol("b", "x", "y"))
		block, err := NewCorrelationCheck().Run(context.Background(), ds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		corr := block.(*model.CorrelationBlock)
		if corr.Columns == nil || len(corr.Columns) != 0 {
			t.Errorf("got columns %v, want empty non-nil slice", corr.Columns)
		}
	})
}
