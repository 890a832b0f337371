package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupPostgres(t *testing.T, driverName string) *sqlx.DB {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "kanso_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "kanso_db"),
	)

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	return db
}

func exerciseStore(t *testing.T, store *SQLStore) {
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "migrate must be repeatable")

	key := "test-" + t.Name()

	_, err := store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Save(ctx, key, []byte(`{"v":1}`)))
	require.NoError(t, store.Save(ctx, key, []byte(`{"v":2}`)))

	got, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestSQLStore_SQLite(t *testing.T) {
	db, err := sqlx.Connect("sqlite", filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer db.Close()

	exerciseStore(t, NewSQLStore(db))
}

func TestSQLStore_Postgres_Integration(t *testing.T) {
	for _, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			db := setupPostgres(t, driver)
			defer db.Close()

			store := NewSQLStore(db)
			exerciseStore(t, store)

			_, err := db.Exec(db.Rebind("DELETE FROM kv_state WHERE state_key LIKE ?"), "test-%")
			require.NoError(t, err)
		})
	}
}

func TestIsStorageFull(t *testing.T) {
	assert.True(t, isStorageFull(fmt.Errorf("exec: %w", &pgconn.PgError{Code: "53100"})))
	assert.True(t, isStorageFull(&pq.Error{Code: "53100"}))
	assert.False(t, isStorageFull(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isStorageFull(assert.AnError))
	assert.False(t, isStorageFull(nil))
}
