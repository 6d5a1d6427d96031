// Package messages declares the message repository contract and its SQL
// implementation. Ordering is by id, which is assigned monotonically and
// therefore equals creation order.
package messages

import (
	"context"

	"github.com/dmitrijs2005/gophinbox/internal/server/models"
)

// Repository stores inbox messages. MarkRead and Delete are single atomic
// statements so concurrent callers racing on one id see exactly one winner.
type Repository interface {
	// Create inserts msg and assigns its ID.
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)

	// GetByID returns common.ErrorNotFound when the message does not exist.
	GetByID(ctx context.Context, id int64) (*models.Message, error)

	// FindByReceiver returns messages addressed to receiver in creation order,
	// optionally restricted to unread ones.
	FindByReceiver(ctx context.Context, receiver string, unreadOnly bool) ([]*models.Message, error)

	// FindFirstUnreadForReceiver returns the earliest unread message for
	// receiver or common.ErrorNotFound.
	FindFirstUnreadForReceiver(ctx context.Context, receiver string) (*models.Message, error)

	// MarkRead flips read to true. It reports whether this call performed the
	// transition; an already read or missing message is a no-op.
	MarkRead(ctx context.Context, id int64) (bool, error)

	// Delete removes the message and reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
