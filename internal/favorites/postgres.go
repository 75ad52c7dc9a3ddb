package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the part of *pgxpool.Pool the slot needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSlot stores the value as one jsonb row of favorites_slots.
type PostgresSlot struct {
	db  DB
	key string
}

func NewPostgresSlot(db DB, key string) *PostgresSlot {
	return &PostgresSlot{
		db:  db,
		key: key,
	}
}

func (s *PostgresSlot) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS favorites_slots (
		key  TEXT PRIMARY KEY,
		data JSONB NOT NULL
	)`
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create favorites_slots: %w", err)
	}
	return nil
}

func (s *PostgresSlot) Get(ctx context.Context) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM favorites_slots WHERE key = $1`, s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load favorites slot %s: %w", s.key, err)
	}
	return data, true, nil
}

func (s *PostgresSlot) Set(ctx context.Context, value []byte) error {
	query := `
	INSERT INTO favorites_slots (key, data)
	VALUES ($1, $2)
	ON CONFLICT (key)
	DO UPDATE SET data = $2`
	if _, err := s.db.Exec(ctx, query, s.key, value); err != nil {
		return fmt.Errorf("failed to save favorites slot %s: %w", s.key, err)
	}
	return nil
}
