package database

import (
	"fmt"
	"io/fs"
	"sort"

	dbsql "postdeck/pkg/database/sql"
	"postdeck/pkg/logging"
)

// ApplySchema runs the embedded schema files against the database in
// filename order. Every statement is idempotent, so this is safe to run
// on each startup.
func ApplySchema(db PostgresConn, logger logging.Logger) error {
	names, err := fs.Glob(dbsql.Content, "schema/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list schema files: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(dbsql.Content, name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
		logger.WithField("file", name).Debug("Applied schema file")
	}

	return nil
}
