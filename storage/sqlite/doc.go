// Package sqlite stores corpus metadata in the corpus.db SQLite file shipped
// with a corpus.
//
// The database holds the corpus records, field and metadata tables, and the
// models table that serves as the bundle's availability registry. Schema
// changes are applied through embedded migrations on open; tables are only
// created when missing, so databases produced by other tools keep their rows.
package sqlite
