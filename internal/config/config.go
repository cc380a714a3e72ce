package config

import (
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/adrg/xdg"

	"github.com/nao1215/datacheck/internal/dataset"
)

// Default configuration values.
// These values mirror the conventions of mainstream dataframe tooling so
// that reports line up with what data practitioners expect.
const (
	// DefaultIQRMultiplier places the Tukey fences 1.5 interquartile
	// ranges beyond the quartiles, the conventional definition of a mild
	// outlier.
	DefaultIQRMultiplier = 1.5

	// DefaultDelimiter is the comma, by far the most common CSV field
	// separator. Semicolon and tab exports can override via flag or
	// config file.
	DefaultDelimiter = ","

	// AppName is the application name used for XDG directory paths.
	AppName = "datacheck"

	// DefaultReportFileName is the Excel workbook written into the
	// output directory.
	DefaultReportFileName = "data_quality_report.xlsx"

	// OutputDirPrefix prefixes timestamped report directories, e.g.
	// quality_report_20260825_130500.
	OutputDirPrefix = "quality_report_"

	// outputDirTimeLayout formats the run timestamp in directory names.
	// Second resolution keeps consecutive runs from colliding without
	// producing unwieldy names.
	outputDirTimeLayout = "20060102_150405"
)

// Config holds all options for one analysis run.
// This struct is populated from CLI flags and the optional configuration
// file and passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., LoadConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// InputPath is the CSV file to analyze.
	InputPath string

	// OutputDir is the directory receiving the Excel report and plots.
	// Empty means a timestamped directory next to the working directory
	// (see OutputDirName).
	OutputDir string

	// Delimiter is the CSV field separator as a one-character string.
	Delimiter string

	// Encoding is an IANA text encoding name used to decode the input
	// before CSV parsing. Empty means UTF-8.
	Encoding string

	// NullValues overrides the cell vocabulary treated as null.
	// Nil keeps the loader default.
	NullValues []string

	// IQRMultiplier scales the Tukey fence used by the outlier check.
	IQRMultiplier float64

	// Jobs bounds concurrent check execution. Zero means one goroutine
	// per check.
	Jobs int

	// JSONReport writes the full report as JSON to stdout instead of the
	// human-readable summary. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the report as GitHub Flavored Markdown to
	// stdout instead of the human-readable summary. Mutually exclusive
	// with JSONReport.
	MarkdownReport bool

	// ReportFile redirects the stdout report to a file path.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// NoPlots disables PNG chart rendering.
	NoPlots bool

	// NoExcel disables the Excel workbook output.
	NoExcel bool

	// SaveToDB persists the report to the history database.
	SaveToDB bool

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/datacheck on
	// Linux).
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .datacheck.yml in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds settings loaded from the configuration file,
	// including per-dataset overrides.
	FileConfig *File
}

// NewConfig creates a Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (delimiter, fence
// multiplier). This also serves as documentation of what the defaults
// are.
func NewConfig() *Config {
	return &Config{
		Delimiter:     DefaultDelimiter,
		IQRMultiplier: DefaultIQRMultiplier,
		FileConfig:    NewFile(),
	}
}

// Validate checks the configuration for consistency.
// It returns one of the package sentinel errors on the first problem
// found.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrNoInput
	}
	if c.IQRMultiplier <= 0 {
		return ErrInvalidIQRMultiplier
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return ErrInvalidDelimiter
	}
	if c.Jobs < 0 {
		return ErrInvalidJobs
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// LoadOptions resolves the effective CSV load options for the input
// path, applying flat config values first and per-dataset file overrides
// on top.
func (c *Config) LoadOptions() dataset.LoadOptions {
	opts := dataset.DefaultLoadOptions()

	if c.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(c.Delimiter)
		opts.Delimiter = r
	}
	if c.Encoding != "" {
		opts.Encoding = c.Encoding
	}
	if c.NullValues != nil {
		opts.NullValues = c.NullValues
	}

	if c.FileConfig != nil {
		c.FileConfig.apply(&opts, c.InputPath)
	}

	return opts
}

// OutputDirName returns the effective output directory for a run that
// started at the given time. The timestamp is passed explicitly so that
// naming stays a caller decision rather than hidden global state.
func (c *Config) OutputDirName(now time.Time) string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return OutputDirPrefix + now.Format(outputDirTimeLayout)
}

// XDGDataDir returns the XDG data directory for datacheck.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/datacheck
// On macOS: ~/Library/Application Support/datacheck
// On Windows: %LOCALAPPDATA%\datacheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
