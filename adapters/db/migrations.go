package db

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies every embedded migration in filename order. Statements are
// idempotent so reapplying on startup is safe.
func (db *DB) Migrate() error {
	db.log.Debug("running migrations")

	names, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.conn.Exec(string(raw)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	db.log.Debug("migrations finished")
	return nil
}
