package dataset

import "errors"

// Load and construction errors.
// These errors are returned before any analysis runs; a dataset that
// loads successfully is guaranteed to be rectangular with unique column
// names.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each call site. This allows callers to
// use errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrEmptySource is returned when the CSV source contains no header row.
	ErrEmptySource = errors.New("empty source: no header row found")

	// ErrDuplicateColumn is returned when two columns share the same name.
	// Column names must be unique so that checks can address columns by name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrColumnLengthMismatch is returned when columns passed to New have
	// different lengths. All columns of a dataset share one row count.
	ErrColumnLengthMismatch = errors.New("column length mismatch")

	// ErrUnknownEncoding is returned when the configured text encoding
	// name is not registered in the IANA index.
	ErrUnknownEncoding = errors.New("unknown text encoding")
)
