// Package migrations embeds the SQL schema so binaries and tests apply the
// same statements.
package migrations

import _ "embed"

//go:embed 001_initial.up.sql
var Initial string
