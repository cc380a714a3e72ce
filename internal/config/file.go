package config

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/nao1215/datacheck/internal/dataset"
)

// File is the YAML configuration file structure.
// The top-level fields set defaults for every dataset; the datasets map
// overrides them per input file, keyed by base name or full path.
//
// Example:
//
//	null_values: ["", "NA", "missing"]
//	iqr_multiplier: 3.0
//	datasets:
//	  sales.csv:
//	    delimiter: ";"
//	    encoding: shift_jis
//	    ignore_columns: [internal_id]
type File struct {
	// NullValues is the default null vocabulary.
	NullValues []string `yaml:"null_values"`

	// Delimiter is the default field separator as a one-character string.
	Delimiter string `yaml:"delimiter"`

	// Encoding is the default IANA text encoding name.
	Encoding string `yaml:"encoding"`

	// IQRMultiplier is the default Tukey fence multiplier.
	// Zero keeps the built-in default.
	IQRMultiplier float64 `yaml:"iqr_multiplier"`

	// Datasets holds per-input overrides keyed by file base name or
	// full path.
	Datasets map[string]DatasetConfig `yaml:"datasets"`
}

// DatasetConfig overrides load options for one input file.
type DatasetConfig struct {
	// Delimiter overrides the field separator.
	Delimiter string `yaml:"delimiter"`

	// Encoding overrides the text encoding.
	Encoding string `yaml:"encoding"`

	// NullValues overrides the null vocabulary.
	NullValues []string `yaml:"null_values"`

	// IgnoreColumns lists columns dropped before analysis.
	IgnoreColumns []string `yaml:"ignore_columns"`
}

// NewFile returns an empty configuration file structure.
func NewFile() *File {
	return &File{
		Datasets: make(map[string]DatasetConfig),
	}
}

// Lookup returns the dataset override for the given input path, matching
// the full path first and the base name second.
func (f *File) Lookup(inputPath string) (DatasetConfig, bool) {
	if dc, ok := f.Datasets[inputPath]; ok {
		return dc, true
	}
	dc, ok := f.Datasets[filepath.Base(inputPath)]
	return dc, ok
}

// apply layers the file-level defaults and the per-dataset override for
// inputPath onto opts.
func (f *File) apply(opts *dataset.LoadOptions, inputPath string) {
	if f.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(f.Delimiter)
		opts.Delimiter = r
	}
	if f.Encoding != "" {
		opts.Encoding = f.Encoding
	}
	if f.NullValues != nil {
		opts.NullValues = f.NullValues
	}

	dc, ok := f.Lookup(inputPath)
	if !ok {
		return
	}
	if dc.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(dc.Delimiter)
		opts.Delimiter = r
	}
	if dc.Encoding != "" {
		opts.Encoding = dc.Encoding
	}
	if dc.NullValues != nil {
		opts.NullValues = dc.NullValues
	}
	if len(dc.IgnoreColumns) > 0 {
		opts.IgnoreColumns = dc.IgnoreColumns
	}
}
