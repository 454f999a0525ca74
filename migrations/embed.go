// Package migrations embeds the goose migrations for each SQL backend.
package migrations

import "embed"

// FS contains one directory per dialect
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Dialect directories inside FS
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
