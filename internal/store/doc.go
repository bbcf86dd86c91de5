// Package store persists benchmark runs to SQLite.
//
// The schema is two tables: runs (one row per plan execution, keyed by the
// run UUID) and results (one row per engine invocation, foreign-keyed to
// its run). Persisted results can be read back as harness rows or exported
// in the same fixed-column CSV the harness writes, so a stored run and a
// live run serialize identically.
//
// SQLite is opened with WAL mode and a single writer connection; the bench
// command is the only writer, and exports are plain reads.
package store
