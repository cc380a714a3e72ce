package model

import (
	"fmt"
	"time"
)

// Failure records one quality check that did not produce a block.
// The corresponding section is simply absent from the report; a failure
// never aborts the remaining checks.
type Failure struct {
	// Check is the name of the failed check.
	Check string `json:"check"`

	// Cause is the failure message.
	Cause string `json:"cause"`
}

// Report is the result of one data-quality analysis run.
// It holds one optional block per quality check, the failure list, and
// run metadata. A report is fully assembled before it is handed to any
// writer and is never modified afterwards.
//
// Design decision: Blocks are named struct fields rather than a generic
// map because the set of checks is closed, the published order is fixed,
// and typed access keeps the writers and the compare command honest.
type Report struct {
	// Source is the analyzed input, typically the CSV file path.
	Source string `json:"source"`

	// AnalyzedAt is the timestamp of the analysis run.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// RowCount and ColumnCount describe the dataset shape.
	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`

	// Fingerprint is the dataset content digest, used by the history
	// database to link runs over the same data.
	Fingerprint string `json:"fingerprint,omitempty"`

	// One optional block per quality check. Nil means the check failed
	// and its cause is recorded in Failures.
	DataTypes    *DataTypesBlock    `json:"data_types,omitempty"`
	BasicStats   *BasicStatsBlock   `json:"basic_statistics,omitempty"`
	Missing      *MissingBlock      `json:"missing_values,omitempty"`
	Duplicates   *DuplicatesBlock   `json:"duplicates,omitempty"`
	Distribution *DistributionBlock `json:"distribution,omitempty"`
	Outliers     *OutliersBlock     `json:"outliers,omitempty"`
	Correlation  *CorrelationBlock  `json:"correlation,omitempty"`

	// Failures lists the checks that produced no block, with causes.
	Failures []Failure `json:"failures,omitempty"`

	// Complete is set once every check has been attempted exactly once,
	// regardless of individual outcomes.
	Complete bool `json:"complete"`
}

// NewReport creates a report for the given dataset metadata with the
// analysis timestamp set to now.
func NewReport(source, fingerprint string, rows, columns int) *Report {
	return &Report{
		Source:      source,
		AnalyzedAt:  time.Now(),
		RowCount:    rows,
		ColumnCount: columns,
		Fingerprint: fingerprint,
	}
}

// Attach stores the block in its slot. It fails on block types the
// report does not know about.
func (r *Report) Attach(b Block) error {
	switch block := b.(type) {
	case *DataTypesBlock:
		r.DataTypes = block
	case *BasicStatsBlock:
		r.BasicStats = block
	case *MissingBlock:
		r.Missing = block
	case *DuplicatesBlock:
		r.Duplicates = block
	case *DistributionBlock:
		r.Distribution = block
	case *OutliersBlock:
		r.Outliers = block
	case *CorrelationBlock:
		r.Correlation = block
	default:
		return fmt.Errorf("unknown block type %T", b)
	}
	return nil
}

// AddFailure records a check that produced no block.
func (r *Report) AddFailure(check string, err error) {
	cause := "unknown cause"
	if err != nil {
		cause = err.Error()
	}
	r.Failures = append(r.Failures, Failure{Check: check, Cause: cause})
}

// blocks returns the report's blocks in the fixed published order.
// Absent blocks are skipped. Each slot is nil-checked before conversion
// to the Block interface because a typed nil pointer would otherwise
// masquerade as a present block.
func (r *Report) blocks() []Block {
	var all []Block
	if r.DataTypes != nil {
		all = append(all, r.DataTypes)
	}
	if r.BasicStats != nil {
		all = append(all, r.BasicStats)
	}
	if r.Missing != nil {
		all = append(all, r.Missing)
	}
	if r.Duplicates != nil {
		all = append(all, r.Duplicates)
	}
	if r.Distribution != nil {
		all = append(all, r.Distribution)
	}
	if r.Outliers != nil {
		all = append(all, r.Outliers)
	}
	if r.Correlation != nil {
		all = append(all, r.Correlation)
	}
	return all
}

// Tables projects all present blocks into renderable tables in the fixed
// published order: data types, basic statistics, missing values,
// duplicates, distribution, outliers, correlation.
func (r *Report) Tables() []Table {
	blocks := r.blocks()
	tables := make([]Table, 0, len(blocks))
	for _, b := range blocks {
		tables = append(tables, b.Table())
	}
	return tables
}

// BlockCount returns the number of present blocks.
func (r *Report) BlockCount() int { return len(r.blocks()) }

// HasFailures reports whether any check failed.
func (r *Report) HasFailures() bool { return len(r.Failures) > 0 }
