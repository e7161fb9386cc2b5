// Package migrations embeds the SQL migration files so they ship inside
// the binary and can be applied at startup via golang-migrate's iofs
// source driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
