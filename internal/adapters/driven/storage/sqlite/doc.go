// Package sqlite keeps relay history in a local SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Only outcome metadata is written: status, reason, sizes,
// the HTTP status and the content hash. Clipboard payloads never reach disk.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each applied version is recorded in
// schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.cliprelay/data/history.db
package sqlite
