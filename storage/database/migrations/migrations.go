// Package migrations embeds the goose SQL migrations of each database engine.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
