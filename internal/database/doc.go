// Package database provides SQLite-based storage for analysis history.
//
// Reports are stored as JSON alongside queryable run metadata (source,
// fingerprint, shape, timestamp) so the history and compare commands can
// list runs cheaply and load full reports on demand.
package database
