// Package migrations embeds the SQL migrations of the history database.
package migrations

import "embed"

// FS holds the migration files. Only *.up.sql files are applied.
//
//go:embed *.sql
var FS embed.FS
