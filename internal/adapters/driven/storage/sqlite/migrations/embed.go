// Package migrations holds the versioned schema of the Sentinel database.
package migrations

import "embed"

// FS holds the NNN_name.up.sql and .down.sql scripts.
//
//go:embed *.sql
var FS embed.FS
