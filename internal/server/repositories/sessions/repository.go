// Package sessions declares the server-side session store used to make
// logout effective for access tokens that are still within their validity.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/gophinbox/internal/server/models"
)

// Repository defines operations for creating, resolving and ending sessions.
type Repository interface {
	// Create stores a new session.
	Create(ctx context.Context, s *models.Session) error

	// Find returns the session with the given id or common.ErrorNotFound.
	// Expiry is not checked here.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete ends a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error
}
