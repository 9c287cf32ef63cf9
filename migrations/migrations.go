// Package migrations embeds the versioned SQL schema.
package migrations

import "embed"

// FS holds <version>_<name>.up.sql / .down.sql pairs in golang-migrate naming.
//
//go:embed *.sql
var FS embed.FS
