// Package schema embeds the SQL migration files applied by
// postgresdb.Migrate.
package schema

import "embed"

//go:embed pgmigrations/*.sql
var MigrationsFS embed.FS
