// Package migrations embeds the goose SQL migration set for
// internal/store's PostgreSQL schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
