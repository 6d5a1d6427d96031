package repomanager

import (
	"github.com/dmitrijs2005/gophinbox/internal/dbx"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/sessions"
)

// sessionStoreManager overrides the session repository of an underlying
// manager with a store that lives outside the database, such as Valkey.
type sessionStoreManager struct {
	RepositoryManager
	sessions sessions.Repository
}

// WithSessionStore returns m with Sessions always returning store. Sessions
// then ignore the DBTX and are not part of database transactions.
func WithSessionStore(m RepositoryManager, store sessions.Repository) RepositoryManager {
	return &sessionStoreManager{RepositoryManager: m, sessions: store}
}

func (m *sessionStoreManager) Sessions(dbx.DBTX) sessions.Repository {
	return m.sessions
}
