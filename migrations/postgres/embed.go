// Package migrations embeds the Postgres schema.
package migrations

import "embed"

// FS contains the *_up.sql scripts, applied in lexical order.
//
//go:embed *_up.sql
var FS embed.FS
