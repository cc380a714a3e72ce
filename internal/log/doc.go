// Package log provides structured logging helpers for datacheck.
//
// Dataset cells routinely contain personal data, and the loader logs
// sample cell values when diagnosing type inference. The RedactHandler
// wraps any slog.Handler and masks attribute values that look like
// personal identifiers before they reach the log output.
package log
