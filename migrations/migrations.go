// Package migrations embeds the SQLite schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// InitialSchema is the file applied by sqlite.DB.RunMigrations.
const InitialSchema = "001_initial_schema.up.sql"
