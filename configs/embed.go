// Package configs embeds the default game data and its schemas.
package configs

import "embed"

// FS holds catalog.json and the schemas/ directory
//
//go:embed catalog.json schemas/*.json
var FS embed.FS

// Paths inside FS
const (
	CatalogPath       = "catalog.json"
	CatalogSchemaPath = "schemas/catalog.schema.json"
)
