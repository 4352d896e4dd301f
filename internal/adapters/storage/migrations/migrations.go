// Package migrations embeds the Postgres schema for the hosted profile store.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
