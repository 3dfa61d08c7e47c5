// Package migrations embeds the schema files, one directory per
// database/sql driver name.
package migrations

import "embed"

// FS holds sqlite3/*.sql and pgx/*.sql
//
//go:embed sqlite3/*.sql pgx/*.sql
var FS embed.FS
