// Package db embeds the goose migrations applied at startup.
package db

import "embed"

// Migrations holds migrations/*.sql; pass "migrations" as the path.
//
//go:embed migrations/*.sql
var Migrations embed.FS
