package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embeddedMigrations embed.FS

type dialect struct {
	name            string
	migrationsTable string
	recordMigration string
	embeddedDir     string
}

var sqliteDialect = dialect{
	name: "sqlite",
	migrationsTable: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  filename TEXT PRIMARY KEY,
  installed_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	recordMigration: `INSERT INTO schema_migrations (filename) VALUES (?)`,
	embeddedDir:     "migrations/sqlite",
}

var postgresDialect = dialect{
	name: "postgres",
	migrationsTable: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  filename TEXT PRIMARY KEY,
  installed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	recordMigration: `INSERT INTO schema_migrations (filename) VALUES ($1)`,
	embeddedDir:     "migrations/postgres",
}

// migrationSource picks the on-disk directory when one is configured and the
// embedded scripts otherwise.
func migrationSource(d dialect, dir string) (fs.FS, string) {
	if dir = strings.TrimSpace(dir); dir != "" {
		return os.DirFS(dir), "."
	}
	return embeddedMigrations, d.embeddedDir
}

func applyMigrations(db *sql.DB, d dialect, fsys fs.FS, dir string) error {
	if err := ensureMigrationsTable(db, d); err != nil {
		return err
	}
	applied, err := loadAppliedMigrations(db)
	if err != nil {
		return err
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read migrations: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	for _, filename := range files {
		if applied[filename] {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, filename))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filename, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			continue
		}
		if err := applyMigration(db, d, filename, string(content)); err != nil {
			return fmt.Errorf("apply %s migration %s: %w", d.name, filename, err)
		}
	}
	return nil
}

func ensureMigrationsTable(db *sql.DB, d dialect) error {
	if _, err := db.Exec(d.migrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func loadAppliedMigrations(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("load schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, d dialect, filename, sqlContent string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	if _, err := tx.Exec(sqlContent); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(d.recordMigration, filename); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration tx: %w", err)
	}
	return nil
}
