package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	for _, name := range []string{"pgx", "postgres", "PostgreSQL"} {
		d, err := ParseDialect(name)
		require.NoError(t, err)
		assert.Equal(t, DialectPostgres, d)
	}
	for _, name := range []string{"sqlite", "sqlite3"} {
		d, err := ParseDialect(name)
		require.NoError(t, err)
		assert.Equal(t, DialectSQLite, d)
	}

	_, err := ParseDialect("mysql")
	assert.Error(t, err)
}

func TestDialect_Names(t *testing.T) {
	assert.Equal(t, "pgx", DialectPostgres.DriverName())
	assert.Equal(t, "sqlite", DialectSQLite.DriverName())
	assert.Equal(t, "postgres", DialectPostgres.GooseDialect())
	assert.Equal(t, "sqlite3", DialectSQLite.GooseDialect())
}

func TestRebind(t *testing.T) {
	q := `SELECT id FROM messages WHERE receiver = $1 AND id > $12 LIMIT 1`

	assert.Equal(t, q, DialectPostgres.Rebind(q))
	assert.Equal(t,
		`SELECT id FROM messages WHERE receiver = ?1 AND id > ?12 LIMIT 1`,
		DialectSQLite.Rebind(q))
	assert.Equal(t, "price$", DialectSQLite.Rebind("price$"))
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = db.ExecContext(ctx, `CREATE TABLE u (name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, DialectSQLite.Rebind(`INSERT INTO u (name) VALUES ($1)`), "abcde")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, DialectSQLite.Rebind(`INSERT INTO u (name) VALUES ($1)`), "abcde")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", err)))
}
