package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DefaultNullValues is the cell vocabulary treated as null.
// The empty string covers unquoted empty fields; the rest follow the
// common conventions of CSV exports from spreadsheet and dataframe tools.
var DefaultNullValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "nil"}

// temporalLayouts are the timestamp layouts tried during type inference,
// most specific first.
var temporalLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// LoadOptions configures CSV loading.
//
// Design decision: We use a flat options struct rather than functional
// options because every field has a usable zero-ish default and the
// struct maps directly onto the configuration file.
type LoadOptions struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune

	// NullValues is the cell vocabulary treated as null.
	// Nil means DefaultNullValues; pass an empty non-nil slice to treat
	// no value as null.
	NullValues []string

	// Encoding is an IANA text encoding name (e.g. "shift_jis") used to
	// decode the file before CSV parsing. Empty means UTF-8 as-is.
	Encoding string

	// IgnoreColumns lists column names dropped after parsing.
	IgnoreColumns []string

	// TrimSpace trims surrounding whitespace from cells before null
	// matching and type inference.
	TrimSpace bool

	// Logger receives inference diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultLoadOptions returns the options used when no configuration
// overrides are present.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Delimiter:  ',',
		NullValues: DefaultNullValues,
		TrimSpace:  true,
	}
}

// LoadCSV reads one CSV file into a Dataset.
// The first record is the header; every following record must have the
// same field count or loading fails. Column types are inferred from the
// non-null cells (numeric, then boolean, then temporal, falling back to
// categorical) and fixed for the lifetime of the dataset.
func LoadCSV(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // path is the user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	ds, err := loadCSV(f, path, opts)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// loadCSV parses CSV content from r. Split from LoadCSV for testability.
func loadCSV(r io.Reader, source string, opts LoadOptions) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Encoding != "" {
		enc, err := ianaindex.IANA.Encoding(opts.Encoding)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, opts.Encoding)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	// FieldsPerRecord defaults to the header width, so ragged rows fail
	// fast here instead of surfacing as a half-loaded dataset.

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cells := make([][]string, len(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		for i, v := range record {
			cells[i] = append(cells[i], v)
		}
	}

	nullSet := newNullSet(opts.NullValues)
	ignored := make(map[string]bool, len(opts.IgnoreColumns))
	for _, name := range opts.IgnoreColumns {
		ignored[name] = true
	}

	columns := make([]*Column, 0, len(header))
	for i, name := range header {
		if opts.TrimSpace {
			name = strings.TrimSpace(name)
		}
		if ignored[name] {
			logger.Debug("ignoring column", "column", name)
			continue
		}
		columns = append(columns, buildColumn(name, cells[i], nullSet, opts.TrimSpace, logger))
	}

	return New(source, columns)
}

// newNullSet builds the null vocabulary lookup set.
func newNullSet(values []string) map[string]bool {
	if values == nil {
		values = DefaultNullValues
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// buildColumn applies the null vocabulary and type inference to one
// column's cells.
func buildColumn(name string, cells []string, nullSet map[string]bool, trim bool, logger *slog.Logger) *Column {
	raw := make([]string, len(cells))
	null := make([]bool, len(cells))
	for i, v := range cells {
		if trim {
			v = strings.TrimSpace(v)
		}
		if nullSet[v] {
			null[i] = true
			continue
		}
		raw[i] = v
	}

	typ := inferType(raw, null, logger, name)

	var nums []float64
	if typ == TypeNumeric {
		nums = make([]float64, len(raw))
		for i, v := range raw {
			if null[i] {
				nums[i] = math.NaN()
				continue
			}
			// Inference already validated every non-null cell.
			nums[i], _ = strconv.ParseFloat(v, 64)
		}
	}

	logger.Debug("inferred column type",
		"column", name,
		"type", typ.String(),
		"rows", len(raw),
	)

	return NewColumn(name, typ, raw, null, nums)
}

// inferType classifies a column from its non-null cells.
// Order matters: numeric is tried before boolean so that 0/1 columns stay
// numeric, and temporal is tried last among the specific types. A column
// with no non-null cells, or with mixed content, is categorical.
func inferType(raw []string, null []bool, logger *slog.Logger, name string) Type {
	seen := false
	numeric, boolean, temporal := true, true, true

	for i, v := range raw {
		if null[i] {
			continue
		}
		seen = true

		if numeric {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
			}
		}
		if boolean && !isBoolLiteral(v) {
			boolean = false
		}
		if temporal && !isTemporal(v) {
			temporal = false
		}
		if !numeric && !boolean && !temporal {
			// First cell that rules out every specific type. Log a sample
			// so mis-typed columns can be diagnosed; the redacting log
			// handler masks PII-looking values.
			logger.Debug("column falls back to categorical",
				"column", name,
				"sample_value", v,
			)
			return TypeCategorical
		}
	}

	switch {
	case !seen:
		return TypeCategorical
	case numeric:
		return TypeNumeric
	case boolean:
		return TypeBoolean
	case temporal:
		return TypeTemporal
	default:
		return TypeCategorical
	}
}

// isBoolLiteral reports whether v is a true/false literal.
// 0/1 are deliberately excluded; those classify as numeric.
func isBoolLiteral(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false":
		return true
	default:
		return false
	}
}

// isTemporal reports whether v parses with any known timestamp layout.
func isTemporal(v string) bool {
	for _, layout := range temporalLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
