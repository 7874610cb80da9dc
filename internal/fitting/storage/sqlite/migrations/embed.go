package migrations

import "embed"

// FS contains embedded SQLite migrations for fitting storage.
//
//go:embed *.sql
var FS embed.FS
