// Package migrations embeds the SQL migration files into the binary, so the
// server can migrate its schema without loose files on disk.
package migrations

import (
	"embed"

	"github.com/zerolugithub/gns3-server/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "." // files sit at the root of the embedded FS
}
