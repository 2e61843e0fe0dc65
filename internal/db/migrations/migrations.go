// Package migrations embeds the SQL schema of the catalog database.
package migrations

import "embed"

// FS holds the golang-migrate style up/down files.
//
//go:embed *.sql
var FS embed.FS
