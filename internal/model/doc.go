// Package model defines the data-quality report and its result blocks.
//
// A Report holds one optional block per quality check plus the list of
// check failures. Blocks are typed structs; the Tables method projects
// whichever blocks are present into ordered, format-agnostic tables for
// the report writers. Values that could not be computed (too few
// observations, zero variance) are nil pointers, never zero.
package model
