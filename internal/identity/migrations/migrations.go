// Package migrations embeds the goose migrations for the SQLite identity
// store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
