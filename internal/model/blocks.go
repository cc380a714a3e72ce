package model

// Block names double as report section titles and Excel sheet names.
// The order in which blocks are published is fixed by Report.Tables,
// not by these constants.
const (
	// BlockDataTypes is the per-column type and footprint block.
	BlockDataTypes = "Data Types"

	// BlockBasicStats is the describe-all-columns block.
	BlockBasicStats = "Basic Statistics"

	// BlockMissing is the per-column null count block.
	BlockMissing = "Missing Values"

	// BlockDuplicates is the whole-row duplicate block.
	BlockDuplicates = "Duplicates"

	// BlockDistribution is the per-numeric-column shape block.
	BlockDistribution = "Distribution Stats"

	// BlockOutliers is the Tukey-fence outlier block.
	BlockOutliers = "Outliers"

	// BlockCorrelation is the Pearson correlation matrix block.
	BlockCorrelation = "Correlations"
)

// Block is one named section of the report, produced by one quality
// check. Each block renders itself as a format-agnostic table.
type Block interface {
	// BlockName returns the block's section title.
	BlockName() string

	// Table projects the block into a renderable table.
	Table() Table
}

// ColumnInfo describes one column for the data-types block.
type ColumnInfo struct {
	// Name is the column name.
	Name string `json:"name"`

	// DataType is the inferred column type ("numeric", "categorical",
	// "temporal", "boolean").
	DataType string `json:"data_type"`

	// MemoryBytes is the estimated in-memory footprint of the column.
	MemoryBytes int64 `json:"memory_bytes"`

	// UniqueValues is the count of distinct non-null values.
	UniqueValues int `json:"unique_values"`
}

// DataTypesBlock reports per-column type, footprint, and cardinality.
type DataTypesBlock struct {
	// Columns holds one entry per dataset column, in source order.
	Columns []ColumnInfo `json:"columns"`
}

// BlockName implements Block.
func (b *DataTypesBlock) BlockName() string { return BlockDataTypes }

// Table implements Block.
func (b *DataTypesBlock) Table() Table {
	t := Table{
		Name:   b.BlockName(),
		Header: []string{"Column", "Data Type", "Memory (Bytes)", "Unique Values"},
	}
	for _, c := range b.Columns {
		t.Rows = append(t.Rows, []Cell{
			StringCell(c.Name),
			StringCell(c.DataType),
			NumberCell(float64(c.MemoryBytes)),
			IntCell(c.UniqueValues),
		})
	}
	return t
}

// ColumnSummary holds describe-style statistics for one column.
// Numeric fields are set for numeric columns; Unique/Top/Freq are set
// for non-numeric columns. Nil means not computed.
type ColumnSummary struct {
	// Name is the column name.
	Name string `json:"name"`

	// Count is the number of non-null values.
	Count int `json:"count"`

	// Mean is the arithmetic mean of non-null values.
	Mean *float64 `json:"mean,omitempty"`

	// Std is the sample standard deviation (denominator n-1).
	Std *float64 `json:"std,omitempty"`

	// Min is the smallest non-null value.
	Min *float64 `json:"min,omitempty"`

	// Q25, Median, Q75 are the linear-interpolation quartiles.
	Q25    *float64 `json:"q25,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Q75    *float64 `json:"q75,omitempty"`

	// Max is the largest non-null value.
	Max *float64 `json:"max,omitempty"`

	// Unique is the distinct non-null value count (non-numeric columns).
	Unique *int `json:"unique,omitempty"`

	// Top is the most frequent non-null value (non-numeric columns).
	// Ties break toward the first occurrence in row order.
	Top *string `json:"top,omitempty"`

	// Freq is the occurrence count of Top (non-numeric columns).
	Freq *int `json:"freq,omitempty"`
}

// BasicStatsBlock reports whole-table descriptive statistics for every
// column, numeric or not.
type BasicStatsBlock struct {
	// Columns holds one summary per dataset column, in source order.
	Columns []ColumnSummary `json:"columns"`
}

// BlockName implements Block.
func (b *BasicStatsBlock) BlockName() string { return BlockBasicStats }

// Table implements Block.
func (b *BasicStatsBlock) Table() Table {
	t := Table{
		Name: b.BlockName(),
		Header: []string{
			"Column", "Count", "Mean", "Std", "Min",
			"25%", "50%", "75%", "Max", "Unique", "Top", "Freq",
		},
	}
	for _, c := range b.Columns {
		t.Rows = append(t.Rows, []Cell{
			StringCell(c.Name),
			IntCell(c.Count),
			OptNumberCell(c.Mean),
			OptNumberCell(c.Std),
			OptNumberCell(c.Min),
			OptNumberCell(c.Q25),
			OptNumberCell(c.Median),
			OptNumberCell(c.Q75),
			OptNumberCell(c.Max),
			OptIntCell(c.Unique),
			OptStringCell(c.Top),
			OptIntCell(c.Freq),
		})
	}
	return t
}

// MissingColumn reports null statistics for one column.
type MissingColumn struct {
	// Name is the column name.
	Name string `json:"name"`

	// NullCount is the number of null cells.
	NullCount int `json:"null_count"`

	// NullPercent is NullCount/RowCount*100 rounded to two decimals.
	// Zero by convention when the dataset has no rows.
	NullPercent float64 `json:"null_percent"`
}

// MissingBlock reports per-column null counts and percentages.
type MissingBlock struct {
	// Columns holds one entry per dataset column, in source order.
	Columns []MissingColumn `json:"columns"`
}

// BlockName implements Block.
func (b *MissingBlock) BlockName() string { return BlockMissing }

// Table implements Block.
func (b *MissingBlock) Table() Table {
	t := Table{
		Name:   b.BlockName(),
		Header: []string{"Column", "Missing Count", "Missing Percentage"},
	}
	for _, c := range b.Columns {
		t.Rows = append(t.Rows, []Cell{
			StringCell(c.Name),
			IntCell(c.NullCount),
			NumberCell(c.NullPercent),
		})
	}
	return t
}

// DuplicatesBlock reports whole-row duplicate statistics.
// Rows are duplicates when every cell, including null markers, compares
// equal; the first occurrence of each distinct row counts as unique.
type DuplicatesBlock struct {
	// TotalDuplicates is the number of rows beyond the first occurrence
	// of each distinct row.
	TotalDuplicates int `json:"total_duplicates"`

	// DuplicatePercent is TotalDuplicates/RowCount*100 rounded to two
	// decimals, zero for empty datasets.
	DuplicatePercent float64 `json:"duplicate_percent"`

	// TotalUnique is the number of distinct rows.
	// Invariant: TotalDuplicates + TotalUnique == RowCount.
	TotalUnique int `json:"total_unique"`
}

// BlockName implements Block.
func (b *DuplicatesBlock) BlockName() string { return BlockDuplicates }

// Table implements Block.
func (b *DuplicatesBlock) Table() Table {
	return Table{
		Name:   b.BlockName(),
		Header: []string{"Total Duplicates", "Duplicate Percentage", "Total Unique Records"},
		Rows: [][]Cell{{
			IntCell(b.TotalDuplicates),
			NumberCell(b.DuplicatePercent),
			IntCell(b.TotalUnique),
		}},
	}
}

// DistributionColumn reports distributional shape for one numeric column.
type DistributionColumn struct {
	// Name is the column name.
	Name string `json:"name"`

	// Count is the number of non-null values used.
	Count int `json:"count"`

	// Skewness is the bias-corrected sample skewness. Nil when fewer
	// than three non-null values exist or the column has zero variance.
	Skewness *float64 `json:"skewness,omitempty"`

	// Kurtosis is the bias-corrected sample excess kurtosis. Nil when
	// fewer than four non-null values exist or the column has zero
	// variance.
	Kurtosis *float64 `json:"kurtosis,omitempty"`

	// Mean is the arithmetic mean. Nil only for empty columns.
	Mean *float64 `json:"mean,omitempty"`

	// Median is the middle value. Nil only for empty columns.
	Median *float64 `json:"median,omitempty"`

	// Std is the sample standard deviation. Nil when fewer than two
	// non-null values exist.
	Std *float64 `json:"std,omitempty"`
}

// DistributionBlock reports skewness, kurtosis, and central tendency per
// numeric column.
type DistributionBlock struct {
	// Columns holds one entry per numeric column, in source order.
	Columns []DistributionColumn `json:"columns"`
}

// BlockName implements Block.
func (b *DistributionBlock) BlockName() string { return BlockDistribution }

// Table implements Block.
func (b *DistributionBlock) Table() Table {
	t := Table{
		Name:   b.BlockName(),
		Header: []string{"Column", "Skewness", "Kurtosis", "Mean", "Median", "Std"},
	}
	for _, c := range b.Columns {
		t.Rows = append(t.Rows, []Cell{
			StringCell(c.Name),
			OptNumberCell(c.Skewness),
			OptNumberCell(c.Kurtosis),
			OptNumberCell(c.Mean),
			OptNumberCell(c.Median),
			OptNumberCell(c.Std),
		})
	}
	return t
}

// OutlierColumn reports Tukey-fence outlier statistics for one numeric
// column.
type OutlierColumn struct {
	// Name is the column name.
	Name string `json:"name"`

	// Q1 and Q3 are the linear-interpolation quartiles. Nil for columns
	// with no non-null values.
	Q1 *float64 `json:"q1,omitempty"`
	Q3 *float64 `json:"q3,omitempty"`

	// IQR is Q3 - Q1.
	IQR *float64 `json:"iqr,omitempty"`

	// LowerFence and UpperFence bound the inlier range.
	LowerFence *float64 `json:"lower_fence,omitempty"`
	UpperFence *float64 `json:"upper_fence,omitempty"`

	// OutlierCount is the number of non-null values strictly outside the
	// fence.
	OutlierCount int `json:"outlier_count"`

	// OutlierPercent is OutlierCount/RowCount*100 rounded to two
	// decimals, zero for empty datasets.
	OutlierPercent float64 `json:"outlier_percent"`
}

// OutliersBlock reports IQR-method outlier counts per numeric column.
type OutliersBlock struct {
	// Columns holds one entry per numeric column, in source order.
	Columns []OutlierColumn `json:"columns"`
}

// BlockName implements Block.
func (b *OutliersBlock) BlockName() string { return BlockOutliers }

// Table implements Block.
func (b *OutliersBlock) Table() Table {
	t := Table{
		Name: b.BlockName(),
		Header: []string{
			"Column", "Q1", "Q3", "IQR",
			"Lower Fence", "Upper Fence", "Outliers Count", "Outliers Percentage",
		},
	}
	for _, c := range b.Columns {
		t.Rows = append(t.Rows, []Cell{
			StringCell(c.Name),
			OptNumberCell(c.Q1),
			OptNumberCell(c.Q3),
			OptNumberCell(c.IQR),
			OptNumberCell(c.LowerFence),
			OptNumberCell(c.UpperFence),
			IntCell(c.OutlierCount),
			NumberCell(c.OutlierPercent),
		})
	}
	return t
}

// CorrelationBlock reports the pairwise Pearson correlation matrix over
// numeric columns. The matrix is symmetric; nil coefficients mark pairs
// involving a zero-variance column (not computed, not zero).
type CorrelationBlock struct {
	// Columns holds the numeric column names in source order.
	Columns []string `json:"columns"`

	// Coefficients is the square matrix aligned with Columns.
	Coefficients [][]*float64 `json:"coefficients"`
}

// BlockName implements Block.
func (b *CorrelationBlock) BlockName() string { return BlockCorrelation }

// At returns the coefficient for the column pair (i, j), or nil when it
// was not computed.
func (b *CorrelationBlock) At(i, j int) *float64 {
	return b.Coefficients[i][j]
}

// Table implements Block.
func (b *CorrelationBlock) Table() Table {
	t := Table{
		Name:   b.BlockName(),
		Header: append([]string{"Column"}, b.Columns...),
	}
	for i, name := range b.Columns {
		row := make([]Cell, 0, len(b.Columns)+1)
		row = append(row, StringCell(name))
		for j := range b.Columns {
			row = append(row, OptNumberCell(b.Coefficients[i][j]))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
