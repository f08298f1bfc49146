// Package migrations embeds the SQL schema migrations for the postgres
// record store backend.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
