package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/dbx"
	"github.com/dmitrijs2005/gophinbox/internal/logging"
	"github.com/dmitrijs2005/gophinbox/internal/server/access"
	"github.com/dmitrijs2005/gophinbox/internal/server/config"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/repomanager"
)

// maxNextUnreadAttempts bounds how many times FetchNextUnread moves on to the
// following message after losing the read transition to a concurrent caller.
const maxNextUnreadAttempts = 16

// Limits bounds user supplied message fields. Zero disables a bound.
type Limits struct {
	MaxNameLength    int
	MaxSubjectLength int
	MaxBodyLength    int
}

// SurfacedMessage is a message handed to its receiver. Fresh reports whether
// the call that returned it performed the Unread -> Read transition.
type SurfacedMessage struct {
	*models.Message
	Fresh bool
}

// InboxService implements sending, listing, fetching and deleting messages.
// Messages move Unread -> Read only through markSurfacedRead, when they are
// surfaced to their receiver.
type InboxService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	limits      Limits
	now         func() time.Time
}

func NewInboxService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *InboxService {
	return &InboxService{
		db:          db,
		repomanager: m,
		logger:      logger,
		limits: Limits{
			MaxNameLength:    cfg.MaxNameLength,
			MaxSubjectLength: cfg.MaxSubjectLength,
			MaxBodyLength:    cfg.MaxBodyLength,
		},
		now: time.Now,
	}
}

// Send stores a new unread message from actor. The receiver is free text and
// need not be a registered user.
func (s *InboxService) Send(ctx context.Context, actor *models.Identity, receiver, subject, body string) (*models.Message, error) {
	if !access.CanSend(actor) {
		return nil, common.ErrorUnauthenticated
	}
	if err := s.validateMessage(receiver, subject, body); err != nil {
		return nil, err
	}

	msg := &models.Message{
		Sender:       actor.Name,
		Receiver:     receiver,
		Subject:      subject,
		Body:         body,
		CreatedAt:    s.now().UTC(),
		Read:         false,
		AuthorUserID: actor.UserID,
	}

	msg, err := s.repomanager.Messages(s.db).Create(ctx, msg)
	if err != nil {
		s.logger.Error(ctx, "message create failed", "sender", actor.Name, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "message sent", "id", msg.ID, "sender", msg.Sender, "receiver", msg.Receiver)
	return msg, nil
}

// ListAll returns every message addressed to actor and marks the unread ones
// read.
func (s *InboxService) ListAll(ctx context.Context, actor *models.Identity) ([]*SurfacedMessage, error) {
	return s.list(ctx, actor, false)
}

// ListUnread returns the unread messages addressed to actor and marks them
// read.
func (s *InboxService) ListUnread(ctx context.Context, actor *models.Identity) ([]*SurfacedMessage, error) {
	return s.list(ctx, actor, true)
}

func (s *InboxService) list(ctx context.Context, actor *models.Identity, unreadOnly bool) ([]*SurfacedMessage, error) {
	if !access.CanSend(actor) {
		return nil, common.ErrorUnauthenticated
	}

	empty := func() error {
		if unreadOnly {
			return fmt.Errorf("%w: no unread messages for this receiver", common.ErrorNotFound)
		}
		return fmt.Errorf("%w: no messages for this receiver", common.ErrorNotFound)
	}

	var result []*SurfacedMessage
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Messages(tx)

		msgs, err := repo.FindByReceiver(ctx, actor.Name, unreadOnly)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			return empty()
		}

		surfaced, err := s.markSurfacedRead(ctx, repo, actor, msgs...)
		if err != nil {
			return err
		}
		if len(surfaced) == 0 {
			return empty()
		}
		result = surfaced
		return nil
	})
	if err != nil {
		return nil, s.mapError(ctx, "list", err)
	}

	return result, nil
}

// FetchOne returns message id if actor is its receiver, marking it read.
func (s *InboxService) FetchOne(ctx context.Context, actor *models.Identity, id int64) (*SurfacedMessage, error) {
	if !access.CanSend(actor) {
		return nil, common.ErrorUnauthenticated
	}

	repo := s.repomanager.Messages(s.db)

	msg, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: no message with that id", common.ErrorNotFound)
		}
		return nil, s.mapError(ctx, "fetch", err)
	}

	if !access.CanViewAsReceiver(actor, msg) {
		return nil, fmt.Errorf("%w: you do not have access to this message", common.ErrorForbidden)
	}

	surfaced, err := s.markSurfacedRead(ctx, repo, actor, msg)
	if err != nil {
		return nil, s.mapError(ctx, "fetch", err)
	}
	if len(surfaced) == 0 {
		return nil, fmt.Errorf("%w: no message with that id", common.ErrorNotFound)
	}

	return surfaced[0], nil
}

// FetchNextUnread returns the earliest unread message for actor and marks it
// read. When a concurrent caller wins the transition on that message the
// next one is tried, so two callers never both open the same message.
func (s *InboxService) FetchNextUnread(ctx context.Context, actor *models.Identity) (*SurfacedMessage, error) {
	if !access.CanSend(actor) {
		return nil, common.ErrorUnauthenticated
	}

	repo := s.repomanager.Messages(s.db)

	for attempt := 0; attempt < maxNextUnreadAttempts; attempt++ {
		msg, err := repo.FindFirstUnreadForReceiver(ctx, actor.Name)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, fmt.Errorf("%w: no unread message available", common.ErrorNotFound)
			}
			return nil, s.mapError(ctx, "fetch next", err)
		}

		surfaced, err := s.markSurfacedRead(ctx, repo, actor, msg)
		if err != nil {
			return nil, s.mapError(ctx, "fetch next", err)
		}
		if len(surfaced) == 1 && surfaced[0].Fresh {
			return surfaced[0], nil
		}

		s.logger.Debug(ctx, "lost read race, moving on", "id", msg.ID, "receiver", actor.Name)
	}

	s.logger.Warn(ctx, "next unread gave up", "receiver", actor.Name, "attempts", maxNextUnreadAttempts)
	return nil, fmt.Errorf("%w: too many concurrent readers", common.ErrorInternal)
}

// Delete removes message id if actor is its sender or receiver. A message
// removed concurrently by someone else is reported as not found.
func (s *InboxService) Delete(ctx context.Context, actor *models.Identity, id int64) error {
	if !access.CanSend(actor) {
		return common.ErrorUnauthenticated
	}

	repo := s.repomanager.Messages(s.db)

	msg, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: no such message", common.ErrorNotFound)
		}
		return s.mapError(ctx, "delete", err)
	}

	if !access.CanDelete(actor, msg) {
		return fmt.Errorf("%w: you are neither the sender nor the receiver of this message", common.ErrorForbidden)
	}

	deleted, err := repo.Delete(ctx, id)
	if err != nil {
		return s.mapError(ctx, "delete", err)
	}
	if !deleted {
		return fmt.Errorf("%w: message already deleted", common.ErrorNotFound)
	}

	s.logger.Info(ctx, "message deleted", "id", id, "by", actor.Name)
	return nil
}

// markSurfacedRead performs the Unread -> Read transition for messages that
// are being handed to their receiver and returns the ones that still exist,
// in input order, showing the committed state. A message deleted after it
// was loaded is left out.
func (s *InboxService) markSurfacedRead(ctx context.Context, repo messages.Repository, actor *models.Identity, msgs ...*models.Message) ([]*SurfacedMessage, error) {
	out := make([]*SurfacedMessage, 0, len(msgs))
	for _, m := range msgs {
		if !access.CanViewAsReceiver(actor, m) {
			return nil, fmt.Errorf("%w: message %d is not addressed to %q", common.ErrorForbidden, m.ID, actor.Name)
		}
		if m.Read {
			out = append(out, &SurfacedMessage{Message: m})
			continue
		}

		transitioned, err := repo.MarkRead(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		if !transitioned {
			// Zero rows changed: read by someone else, or no longer there.
			if _, err := repo.GetByID(ctx, m.ID); err != nil {
				if errors.Is(err, common.ErrorNotFound) {
					s.logger.Debug(ctx, "message gone before read", "id", m.ID, "receiver", m.Receiver)
					continue
				}
				return nil, err
			}
		}
		m.Read = true
		out = append(out, &SurfacedMessage{Message: m, Fresh: transitioned})

		if transitioned {
			s.logger.Debug(ctx, "message read", "id", m.ID, "receiver", m.Receiver)
		}
	}
	return out, nil
}

// mapError passes sentinel errors through and turns anything else into
// ErrorInternal after logging it.
func (s *InboxService) mapError(ctx context.Context, op string, err error) error {
	for _, known := range []error{
		common.ErrorNotFound,
		common.ErrorForbidden,
		common.ErrorValidation,
		common.ErrorUnauthenticated,
		common.ErrorInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error(ctx, op+" failed", "error", err)
	return common.ErrorInternal
}

func (s *InboxService) validateMessage(receiver, subject, body string) error {
	if strings.TrimSpace(receiver) == "" {
		return fmt.Errorf("%w: receiver is required", common.ErrorValidation)
	}
	if exceeds(receiver, s.limits.MaxNameLength) {
		return fmt.Errorf("%w: receiver longer than %d characters", common.ErrorValidation, s.limits.MaxNameLength)
	}
	if exceeds(subject, s.limits.MaxSubjectLength) {
		return fmt.Errorf("%w: subject longer than %d characters", common.ErrorValidation, s.limits.MaxSubjectLength)
	}
	if exceeds(body, s.limits.MaxBodyLength) {
		return fmt.Errorf("%w: body longer than %d characters", common.ErrorValidation, s.limits.MaxBodyLength)
	}
	return nil
}

func exceeds(s string, limit int) bool {
	return limit > 0 && len([]rune(s)) > limit
}
