package model

import "strconv"

// CellKind discriminates the content of a table cell.
type CellKind int

// Table cell kinds.
const (
	// CellEmpty marks a value that was not computed.
	CellEmpty CellKind = iota

	// CellString holds text.
	CellString

	// CellNumber holds a float64.
	CellNumber
)

// Cell is one value of a rendered report table.
//
// Design decision: Cells keep numbers as numbers rather than
// pre-formatted strings because the Excel writer wants typed cells
// (numeric cells sort and chart correctly in spreadsheet tools), while
// the text writers format on demand via String.
type Cell struct {
	// Kind discriminates which field below is meaningful.
	Kind CellKind

	// Str holds the text for CellString cells.
	Str string

	// Num holds the value for CellNumber cells.
	Num float64
}

// StringCell returns a text cell.
func StringCell(s string) Cell { return Cell{Kind: CellString, Str: s} }

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }

// IntCell returns a numeric cell holding an integer count.
func IntCell(v int) Cell { return Cell{Kind: CellNumber, Num: float64(v)} }

// OptNumberCell returns a numeric cell, or an empty cell when v is nil.
func OptNumberCell(v *float64) Cell {
	if v == nil {
		return Cell{Kind: CellEmpty}
	}
	return NumberCell(*v)
}

// OptIntCell returns a numeric cell, or an empty cell when v is nil.
func OptIntCell(v *int) Cell {
	if v == nil {
		return Cell{Kind: CellEmpty}
	}
	return IntCell(*v)
}

// OptStringCell returns a text cell, or an empty cell when v is nil.
func OptStringCell(v *string) Cell {
	if v == nil {
		return Cell{Kind: CellEmpty}
	}
	return StringCell(*v)
}

// EmptyCell returns the cell used for values that were not computed.
func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

// String renders the cell for text output. Empty cells render as "n/a";
// numbers use up to six significant digits.
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'g', 6, 64)
	default:
		return "n/a"
	}
}

// Table is a format-agnostic projection of one report block: a named
// header row plus data rows. Writers render tables without knowing which
// block produced them.
type Table struct {
	// Name is the block name, also used as the sheet name in Excel output.
	Name string

	// Header holds the column captions.
	Header []string

	// Rows holds the data cells, one slice per row, aligned with Header.
	Rows [][]Cell
}
