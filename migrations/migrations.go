// Package migrations embeds the SQL schema applied when the store is opened.
package migrations

import "embed"

// FS holds the numbered *.up.sql files, applied in name order.
//
//go:embed *.up.sql
var FS embed.FS
