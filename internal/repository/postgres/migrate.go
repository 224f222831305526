package postgres

import (
	"database/sql"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"

	"github.com/jafarshop/sellingplans/migrations"
)

// RunMigrations applies every *.up.sql file of the embedded schema in name order.
// Statements use IF NOT EXISTS, so running them again is harmless.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	return ApplyMigrations(db, migrations.FS, logger)
}

// ApplyMigrations applies the *.up.sql files found at the root of fsys
func ApplyMigrations(db *sql.DB, fsys fs.FS, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	files, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(body)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		logger.Info("Applied migration", zap.String("file", name))
	}
	return nil
}
