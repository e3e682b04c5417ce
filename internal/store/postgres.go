package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresSlot struct {
	db   *sql.DB
	name string
}

type PostgresOptions struct {
	SlotName      string
	MigrationsDir string
}

func NewPostgresSlot(dsn string, opts PostgresOptions) (*PostgresSlot, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	fsys, dir := migrationSource(postgresDialect, opts.MigrationsDir)
	if err := applyMigrations(db, postgresDialect, fsys, dir); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresSlot{db: db, name: slotName(opts.SlotName)}, nil
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM roster_slots WHERE name = $1`, s.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read postgres slot %s: %w", s.name, err)
	}
	return payload, nil
}

func (s *PostgresSlot) Write(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO roster_slots (name, payload, updated_at) VALUES ($1, $2::jsonb, now())
ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		s.name, string(payload),
	)
	if err != nil {
		return fmt.Errorf("write postgres slot %s: %w", s.name, err)
	}
	return nil
}

func (s *PostgresSlot) Close() error {
	return s.db.Close()
}
