// Package repomanager provides a RepositoryManager for the SQL backends
// (PostgreSQL through pgx, SQLite through modernc), wiring together repository
// constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophinbox/internal/dbx"
	"github.com/dmitrijs2005/gophinbox/internal/server/migrations"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends SQL repository implementations for one dialect
// and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

// Messages returns a messages.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Messages(db dbx.DBTX) messages.Repository {
	return messages.NewSQLRepository(db, m.dialect)
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewSQLRepository(db, m.dialect)
}

// Dialect reports the SQL dialect the manager was built for.
func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// migrationsDir maps a dialect onto its directory inside migrations.Migrations.
func migrationsDir(d dbx.Dialect) string {
	if d == dbx.DialectSQLite {
		return "sqlite"
	}
	return "postgres"
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, migrationsDir(m.dialect)); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	switch dialect {
	case dbx.DialectPostgres, dbx.DialectSQLite:
		return &SQLRepositoryManager{dialect: dialect}, nil
	}
	return nil, fmt.Errorf("unsupported dialect %q", dialect)
}

// Open opens a connection pool for dialect. SQLite gets a single connection
// so that in-memory databases are shared by every caller.
func Open(dialect dbx.Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}
