package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteSlot struct {
	db   *sql.DB
	name string
}

type SQLiteOptions struct {
	SlotName      string
	MigrationsDir string
}

func NewSQLiteSlot(path string, opts SQLiteOptions) (*SQLiteSlot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	fsys, dir := migrationSource(sqliteDialect, opts.MigrationsDir)
	if err := applyMigrations(db, sqliteDialect, fsys, dir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteSlot{db: db, name: slotName(opts.SlotName)}, nil
}

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM roster_slots WHERE name = ?`, s.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read sqlite slot %s: %w", s.name, err)
	}
	return []byte(payload), nil
}

func (s *SQLiteSlot) Write(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO roster_slots (name, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.name, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write sqlite slot %s: %w", s.name, err)
	}
	return nil
}

func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}

func slotName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return DefaultSlotName
}
