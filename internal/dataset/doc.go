// Package dataset provides the in-memory tabular dataset that all
// quality checks operate on.
//
// A Dataset is an ordered collection of named, typed columns sharing a
// single row count. Column types are decided once at load time and the
// dataset is immutable afterwards: checks only ever observe it.
package dataset
