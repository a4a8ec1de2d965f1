package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema for tests, results and ranks. Each
// numbered file in this package registers one step.
var Migrations = migrate.NewMigrations()
