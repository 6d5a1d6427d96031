// Package users declares the account repository and its SQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophinbox/internal/server/models"
)

type Repository interface {
	// Create stores a new account and fills in its ID. A taken name yields
	// common.ErrorDuplicateName.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByName returns common.ErrorNotFound when no account has that name.
	GetUserByName(ctx context.Context, name string) (*models.User, error)
}
