// Package migrations embeds the goose migrations of the SQL sheet backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
