package dataset

import (
	"encoding/hex"
	"fmt"
	"math"

	"golang.org/x/crypto/blake2b"
)

// Type classifies the semantic type of a column, decided once at load time.
//
// Design decision: We use an explicit type tag rather than inspecting cell
// values at analysis time because:
//  1. Every check dispatches on the same classification, so it must be
//     decided exactly once to keep results consistent
//  2. Type inference over raw text is the loader's job; checks should
//     never re-parse cells
//  3. A closed enum makes "numeric column" a well-defined notion for the
//     distribution, outlier, and correlation checks
type Type int

// Column types recognized by the loader.
const (
	// TypeNumeric marks columns whose non-null cells all parse as floats.
	TypeNumeric Type = iota

	// TypeCategorical marks free-text columns. This is also the fallback
	// when no more specific type fits (including all-null columns).
	TypeCategorical

	// TypeTemporal marks columns whose non-null cells all parse as dates
	// or timestamps.
	TypeTemporal

	// TypeBoolean marks columns whose non-null cells are all true/false
	// literals.
	TypeBoolean
)

// String returns the lower-case type name used in reports.
func (t Type) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeCategorical:
		return "categorical"
	case TypeTemporal:
		return "temporal"
	case TypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Column is one named, typed column of a dataset.
// Cells are stored as the original text plus a null mask; numeric columns
// additionally carry parsed float values so checks never re-parse text.
// Columns expose no mutation methods.
type Column struct {
	// name is the unique column name from the source header.
	name string

	// typ is the inferred semantic type.
	typ Type

	// raw holds the original cell text. Null cells hold the empty string.
	raw []string

	// null marks which cells are null.
	null []bool

	// num holds parsed values for numeric columns, NaN at null positions.
	// Nil for non-numeric columns.
	num []float64
}

// NewColumn creates a column with the given name, type, cell text, and
// null mask. For numeric columns, nums must hold the parsed values (NaN
// at null positions); other types pass nil.
func NewColumn(name string, typ Type, raw []string, null []bool, nums []float64) *Column {
	return &Column{
		name: name,
		typ:  typ,
		raw:  raw,
		null: null,
		num:  nums,
	}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the column's inferred type.
func (c *Column) Type() Type { return c.typ }

// Len returns the number of cells (the dataset row count).
func (c *Column) Len() int { return len(c.raw) }

// IsNull reports whether the cell at row i is null.
func (c *Column) IsNull(i int) bool { return c.null[i] }

// Value returns the original cell text at row i, or the empty string for
// null cells.
func (c *Column) Value(i int) string { return c.raw[i] }

// Float returns the parsed numeric value at row i. The second return
// value is false for null cells and for non-numeric columns.
func (c *Column) Float(i int) (float64, bool) {
	if c.num == nil || c.null[i] {
		return math.NaN(), false
	}
	return c.num[i], true
}

// Floats returns the non-null numeric values in row order.
// It returns nil for non-numeric columns.
func (c *Column) Floats() []float64 {
	if c.num == nil {
		return nil
	}
	out := make([]float64, 0, len(c.num))
	for i, v := range c.num {
		if c.null[i] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// NullCount returns the number of null cells.
func (c *Column) NullCount() int {
	n := 0
	for _, isNull := range c.null {
		if isNull {
			n++
		}
	}
	return n
}

// DistinctCount returns the number of distinct non-null values.
// Distinctness is decided on the original cell text.
func (c *Column) DistinctCount() int {
	seen := make(map[string]struct{}, len(c.raw))
	for i, v := range c.raw {
		if c.null[i] {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// MemoryFootprint estimates the in-memory size of the column in bytes.
// Numeric columns count 8 bytes per cell; text-backed columns count the
// string length plus header overhead. One byte per cell covers the null
// mask. This mirrors a deep memory-usage estimate rather than Go's exact
// allocator accounting.
func (c *Column) MemoryFootprint() int64 {
	size := int64(len(c.raw)) // null mask
	if c.typ == TypeNumeric {
		return size + int64(8*len(c.raw))
	}
	for _, v := range c.raw {
		size += int64(len(v)) + 16
	}
	return size
}

// Dataset is an immutable, in-memory table of named columns.
// All columns share the same row count and column names are unique.
type Dataset struct {
	// source is the origin of the data, typically a file path.
	source string

	// columns holds the columns in source order.
	columns []*Column

	// index maps column names to positions in columns.
	index map[string]int

	// rows is the shared row count.
	rows int
}

// New constructs a dataset from the given columns.
// It fails if column names collide or column lengths differ; a dataset
// that constructs successfully is guaranteed rectangular.
func New(source string, columns []*Column) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	rows := 0
	for i, col := range columns {
		if _, exists := index[col.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name())
		}
		index[col.Name()] = i

		if i == 0 {
			rows = col.Len()
		} else if col.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				ErrColumnLengthMismatch, col.Name(), col.Len(), rows)
		}
	}

	return &Dataset{
		source:  source,
		columns: columns,
		index:   index,
		rows:    rows,
	}, nil
}

// Source returns the origin of the data, typically the input file path.
func (d *Dataset) Source() string { return d.source }

// RowCount returns the number of rows shared by all columns.
func (d *Dataset) RowCount() int { return d.rows }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.columns) }

// ColumnNames returns the column names in source order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, col := range d.columns {
		names[i] = col.Name()
	}
	return names
}

// Column returns the named column, or false if no such column exists.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Columns returns the columns in source order.
// The returned slice must not be modified.
func (d *Dataset) Columns() []*Column { return d.columns }

// NumericColumnNames returns the names of numeric columns in source order.
func (d *Dataset) NumericColumnNames() []string {
	names := make([]string, 0, len(d.columns))
	for _, col := range d.columns {
		if col.Type() == TypeNumeric {
			names = append(names, col.Name())
		}
	}
	return names
}

// IsNull reports whether the cell at the given row of the named column is
// null. It returns false for unknown column names.
func (d *Dataset) IsNull(row int, name string) bool {
	col, ok := d.Column(name)
	if !ok {
		return false
	}
	return col.IsNull(row)
}

// RowKey returns a deterministic equality key for the given row.
// Two rows are duplicates of each other exactly when their keys are
// equal: all cell texts match and null markers align. Cell texts are
// joined with the ASCII unit separator, with a dedicated marker for null
// cells so that a null never collides with a literal empty string.
func (d *Dataset) RowKey(row int) string {
	const (
		sep        = "\x1f"
		nullMarker = "\x00"
	)
	key := make([]byte, 0, 16*len(d.columns))
	for i, col := range d.columns {
		if i > 0 {
			key = append(key, sep...)
		}
		if col.IsNull(row) {
			key = append(key, nullMarker...)
		} else {
			key = append(key, col.Value(row)...)
		}
	}
	return string(key)
}

// Fingerprint returns a BLAKE2b-256 digest over the header and cell grid.
// Repeated runs over identical data produce identical fingerprints, which
// lets the history database link runs of the same dataset even when the
// file was moved or renamed.
func (d *Dataset) Fingerprint() string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// Only reachable with an invalid key; we pass none.
		panic(err)
	}
	for _, col := range d.columns {
		h.Write([]byte(col.Name()))
		h.Write([]byte{0x1f})
	}
	for row := 0; row < d.rows; row++ {
		h.Write([]byte(d.RowKey(row)))
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}
