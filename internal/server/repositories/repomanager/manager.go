package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophinbox/internal/dbx"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that services can
// run the same repository code inside or outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Messages(db dbx.DBTX) messages.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
