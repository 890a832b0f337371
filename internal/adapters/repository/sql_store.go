package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres SQLSTATE disk_full.
const pgDiskFull = "53100"

var _ domain.KeyValueStore = (*SQLStore)(nil)

// SQLStore persists documents in a single key-value table. Queries are written
// with '?' placeholders and rebound per driver, so the same store serves
// pgx, lib/pq and sqlite connections.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

const createStateTable = `
    CREATE TABLE IF NOT EXISTS kv_state (
        state_key   TEXT PRIMARY KEY,
        state_value TEXT NOT NULL,
        updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`

// Migrate creates the state table when it does not exist yet.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createStateTable); err != nil {
		return fmt.Errorf("failed to create state table: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := s.db.Rebind(`SELECT state_value FROM kv_state WHERE state_key = ?`)

	var value string
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("repository: load %s failed: %w", key, err)
	}

	return []byte(value), nil
}

func (s *SQLStore) Save(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := s.db.Rebind(`
        INSERT INTO kv_state (state_key, state_value, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT (state_key) DO UPDATE SET
            state_value = excluded.state_value,
            updated_at = CURRENT_TIMESTAMP`)

	if _, err := s.db.ExecContext(ctx, query, key, string(value)); err != nil {
		if isStorageFull(err) {
			return fmt.Errorf("repository: save %s: %w", key, domain.ErrStorageFull)
		}
		return fmt.Errorf("repository: save %s failed: %w", key, err)
	}

	return nil
}

func isStorageFull(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgDiskFull
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgDiskFull
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_FULL
	}

	return false
}
