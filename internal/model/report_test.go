package model

import (
	"errors"
	"testing"
)

// TestReportAttach tests block attachment by type.
func TestReportAttach(t *testing.T) {
	t.Parallel()

	t.Run("attaches every known block type", func(t *testing.T) {
		t.Parallel()

		r := NewReport("test.csv", "", 10, 3)
		blocks := []Block{
			&DataTypesBlock{},
			&BasicStatsBlock{},
			&MissingBlock{},
			&DuplicatesBlock{},
			&DistributionBlock{},
			&OutliersBlock{},
			&CorrelationBlock{},
		}
		for _, b := range blocks {
			if err := r.Attach(b); err != nil {
				t.Fatalf("unexpected error attaching %T: %v", b, err)
			}
		}
		if got := r.BlockCount(); got != 7 {
			t.Errorf("got %d blocks, want 7", got)
		}
	})

	t.Run("rejects unknown block types", func(t *testing.T) {
		t.Parallel()

		r := NewReport("test.csv", "", 0, 0)
		if err := r.Attach(unknownBlock{}); err == nil {
			t.Error("expected error for unknown block type")
		}
	})
}

type unknownBlock struct{}

func (unknownBlock) BlockName() string { return "Unknown" }
func (unknownBlock) Table() Table      { return Table{} }

// TestReportTables tests the fixed publication order.
func TestReportTables(t *testing.T) {
	t.Parallel()

	t.Run("tables follow the published order", func(t *testing.T) {
		t.Parallel()

		r := NewReport("test.csv", "", 10, 3)
		// Attach in reverse to prove order is fixed, not insertion-based.
		r.Correlation = &CorrelationBlock{Columns: []string{"a", "b"}, Coefficients: [][]*float64{{nil, nil}, {nil, nil}}}
		r.Duplicates = &DuplicatesBlock{}
		r.DataTypes = &DataTypesBlock{}

		tables := r.Tables()
		want := []string{BlockDataTypes, BlockDuplicates, BlockCorrelation}
		if len(tables) != len(want) {
			t.Fatalf("got %d tables, want %d", len(tables), len(want))
		}
		for i, name := range want {
			if tables[i].Name != name {
				t.Errorf("table[%d]: got %q, want %q", i, tables[i].Name, name)
			}
		}
	})

	t.Run("absent blocks are skipped", func(t *testing.T) {
		t.Parallel()

		r := NewReport("test.csv", "", 0, 0)
		if got := len(r.Tables()); got != 0 {
			t.Errorf("got %d tables, want 0", got)
		}
	})
}

// TestReportFailures tests failure bookkeeping.
func TestReportFailures(t *testing.T) {
	t.Parallel()

	t.Run("records check name and cause", func(t *testing.T) {
		t.Parallel()

		r := NewReport("test.csv", "", 0, 0)
		r.AddFailure("duplicates", errors.New("boom"))

		if !r.HasFailures() {
			t.Fatal("expected failures to be recorded")
		}
		if r.Failures[0].Check != "duplicates" {
			t.Errorf("got check %q, want duplicates", r.Failures[0].Check)
		}
		if r.Failures[0].Cause != "boom" {
			t.Errorf("got cause %q, want boom", r.Failures[0].Cause)
		}
	})

	t.Run("nil error gets placeholder cause", func(t *testing.T) {
		t.Parallel()

		r := NewReport("test.csv", "", 0, 0)
		r.AddFailure("outliers", nil)
		if r.Failures[0].Cause != "unknown cause" {
			t.Errorf("got cause %q, want unknown cause", r.Failures[0].Cause)
		}
	})
}

// TestCellString tests text rendering of cells.
func TestCellString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		cell Cell
		want string
	}{
		{name: "empty cell", cell: EmptyCell(), want: "n/a"},
		{name: "string cell", cell: StringCell("hello"), want: "hello"},
		{name: "integer number", cell: NumberCell(42), want: "42"},
		{name: "int cell", cell: IntCell(-3), want: "-3"},
		{name: "fractional number", cell: NumberCell(1.5), want: "1.5"},
		{name: "six significant digits", cell: NumberCell(1.23456789), want: "1.23457"},
		{name: "nil optional number", cell: OptNumberCell(nil), want: "n/a"},
		{name: "nil optional string", cell: OptStringCell(nil), want: "n/a"},
		{name: "nil optional int", cell: OptIntCell(nil), want: "n/a"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.cell.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

// TestOptionalCells tests nil versus value handling.
func TestOptionalCells(t *testing.T) {
	t.Parallel()

	v := 2.5
	if c := OptNumberCell(&v); c.Kind != CellNumber || c.Num != 2.5 {
		t.Errorf("got %+v, want number cell 2.5", c)
	}

	n := 7
	if c := OptIntCell(&n); c.Kind != CellNumber || c.Num != 7 {
		t.Errorf("got %+v, want number cell 7", c)
	}

	s := "top"
	if c := OptStringCell(&s); c.Kind != CellString || c.Str != "top" {
		t.Errorf("got %+v, want string cell top", c)
	}
}

// TestBlockTables tests table projections of individual blocks.
func TestBlockTables(t *testing.T) {
	t.Parallel()

	t.Run("duplicates block renders a single row", func(t *testing.T) {
		t.Parallel()

		b := &DuplicatesBlock{TotalDuplicates: 2, DuplicatePercent: 20, TotalUnique: 8}
		table := b.Table()
		if table.Name != BlockDuplicates {
			t.Errorf("got name %q, want %q", table.Name, BlockDuplicates)
		}
		if len(table.Rows) != 1 {
			t.Fatalf("got %d rows, want 1", len(table.Rows))
		}
		if table.Rows[0][0].Num != 2 || table.Rows[0][2].Num != 8 {
			t.Errorf("got row %+v, want counts 2 and 8", table.Rows[0])
		}
	})

	t.Run("correlation block renders square matrix with name column", func(t *testing.T) {
		t.Parallel()

		one := 1.0
		b := &CorrelationBlock{
			Columns: []string{"a", "b"},
			Coefficients: [][]*float64{
				{&one, nil},
				{nil, &one},
			},
		}
		table := b.Table()
		if len(table.Header) != 3 {
			t.Fatalf("got %d header cells, want 3", len(table.Header))
		}
		if len(table.Rows) != 2 || len(table.Rows[0]) != 3 {
			t.Fatalf("got %dx%d rows, want 2x3", len(table.Rows), len(table.Rows[0]))
		}
		if table.Rows[0][2].Kind != CellEmpty {
			t.Error("uncomputed coefficient should render as empty cell")
		}
		if got := b.At(1, 1); got == nil || *got != 1.0 {
			t.Errorf("got At(1,1)=%v, want 1.0", got)
		}
	})

	t.Run("basic stats block preserves nil markers", func(t *testing.T) {
		t.Parallel()

		mean := 3.0
		b := &BasicStatsBlock{Columns: []ColumnSummary{
			{Name: "score", Count: 5, Mean: &mean},
		}}
		table := b.Table()
		row := table.Rows[0]
		if row[2].Kind != CellNumber || row[2].Num != 3.0 {
			t.Errorf("got mean cell %+v, want 3.0", row[2])
		}
		if row[3].Kind != CellEmpty {
			t.Error("unset std should render as empty cell")
		}
	})
}
