// Package migrations embeds the SQL schema of the corpus metadata database.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
