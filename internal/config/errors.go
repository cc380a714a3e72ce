package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no input file path is specified.
	ErrNoInput = errors.New("no input specified: provide a path to a CSV file")

	// ErrInvalidIQRMultiplier is returned when the Tukey fence multiplier
	// is not positive. A non-positive multiplier would flag every value,
	// or none, regardless of the data.
	ErrInvalidIQRMultiplier = errors.New("invalid IQR multiplier: must be positive")

	// ErrInvalidDelimiter is returned when the delimiter is not exactly
	// one character.
	ErrInvalidDelimiter = errors.New("invalid delimiter: must be a single character")

	// ErrInvalidJobs is returned when the worker count is negative.
	// Zero means one worker per check.
	ErrInvalidJobs = errors.New("invalid jobs: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one stdout format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
