// Package config provides configuration structures and utilities for
// datacheck. It defines the analysis options (CSV parsing, null
// vocabulary, outlier fence), report output preferences, and the
// optional YAML configuration file with per-dataset overrides.
package config
