// Package migrations embeds the Postgres schema files.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files.
//
//go:embed *.sql
var FS embed.FS

// TerritoriesUp returns the schema for the catalog tables.
func TerritoriesUp() (string, error) {
	b, err := FS.ReadFile("001_territories.up.sql")
	return string(b), err
}
