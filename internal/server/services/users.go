// Package services contains server-side business logic. This file implements
// UserService: registration, login and logout, and resolving an access token
// back to the acting identity.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/cryptox"
	"github.com/dmitrijs2005/gophinbox/internal/dbx"
	"github.com/dmitrijs2005/gophinbox/internal/logging"
	"github.com/dmitrijs2005/gophinbox/internal/server/auth"
	"github.com/dmitrijs2005/gophinbox/internal/server/config"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SessionToken is what a successful register or login hands back: the
// signed access token plus the identity and expiry it encodes.
type SessionToken struct {
	AccessToken string
	Identity    models.Identity
	ExpiresAt   time.Time
}

// UserService provides identity operations:
// - Register: create a user and log it in
// - Login: verify credentials, ending the caller's current session first
// - Logout: end a session
// - Authenticate: resolve a bearer token to a live session identity
type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	logger                  logging.Logger
	jwtSecret               []byte
	sessionValidityDuration time.Duration
	maxNameLength           int

	now          func() time.Time
	newSessionID func() string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                      db,
		repomanager:             m,
		logger:                  logger,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionValidityDuration,
		maxNameLength:           cfg.MaxNameLength,
		now:                     time.Now,
		newSessionID:            func() string { return uuid.NewString() },
	}
}

// Register creates the account and a first session in one transaction.
func (s *UserService) Register(ctx context.Context, name, password string) (*SessionToken, error) {
	if err := s.validateCredentials(name, password); err != nil {
		return nil, err
	}

	_, err := s.repomanager.Users(s.db).GetUserByName(ctx, name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: user %q already exists", common.ErrorDuplicateName, name)
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "name", name, "error", err)
		return nil, common.ErrorInternal
	}

	pwd := []byte(password)
	hash := cryptox.HashPassword(pwd)
	common.WipeByteArray(pwd)

	var token *SessionToken
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Name:         name,
			PasswordHash: hash,
			CreatedAt:    s.now().UTC(),
		})
		if err != nil {
			return err
		}
		token, err = s.startSession(ctx, tx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateName) {
			return nil, fmt.Errorf("%w: user %q already exists", common.ErrorDuplicateName, name)
		}
		s.logger.Error(ctx, "register failed", "name", name, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "user_id", token.Identity.UserID, "name", name)
	return token, nil
}

// Login verifies name and password. A still-valid session presented by the
// caller is ended before the credentials are checked, so a failed login
// also logs the caller out.
func (s *UserService) Login(ctx context.Context, name, password string, current *models.Identity) (*SessionToken, error) {
	if current != nil {
		if err := s.Logout(ctx, current); err != nil {
			return nil, err
		}
	}

	user, err := s.repomanager.Users(s.db).GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: no such user %q", common.ErrorNotFound, name)
		}
		s.logger.Error(ctx, "user lookup failed", "name", name, "error", err)
		return nil, common.ErrorInternal
	}

	pwd := []byte(password)
	ok, err := cryptox.VerifyPassword(user.PasswordHash, pwd)
	common.WipeByteArray(pwd)
	if err != nil {
		s.logger.Error(ctx, "stored password hash unreadable", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, fmt.Errorf("%w: wrong password", common.ErrorInvalidCredential)
	}

	token, err := s.startSession(ctx, s.db, user)
	if err != nil {
		s.logger.Error(ctx, "session create failed", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID, "session_id", token.Identity.SessionID)
	return token, nil
}

// Logout ends the session behind identity. Ending an already ended session
// is not an error here; the guard rejects its token before we get here.
func (s *UserService) Logout(ctx context.Context, identity *models.Identity) error {
	if identity == nil || identity.SessionID == "" {
		return common.ErrorUnauthenticated
	}

	if err := s.repomanager.Sessions(s.db).Delete(ctx, identity.SessionID); err != nil {
		s.logger.Error(ctx, "session delete failed", "session_id", identity.SessionID, "error", err)
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "session ended", "user_id", identity.UserID, "session_id", identity.SessionID)
	return nil
}

// Authenticate checks the token signature and expiry and that its session
// is still live. Every failure is ErrorUnauthenticated.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*models.Identity, error) {
	identity, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorUnauthenticated, err)
	}

	session, err := s.repomanager.Sessions(s.db).Find(ctx, identity.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: session ended", common.ErrorUnauthenticated)
		}
		s.logger.Error(ctx, "session lookup failed", "session_id", identity.SessionID, "error", err)
		return nil, common.ErrorInternal
	}

	if session.UserID != identity.UserID {
		return nil, fmt.Errorf("%w: session does not match token", common.ErrorUnauthenticated)
	}
	if session.Expired(s.now()) {
		return nil, fmt.Errorf("%w: session expired", common.ErrorUnauthenticated)
	}

	return identity, nil
}

// --- helpers below ---

func (s *UserService) startSession(ctx context.Context, db dbx.DBTX, user *models.User) (*SessionToken, error) {
	now := s.now().UTC()
	session := &models.Session{
		ID:        s.newSessionID(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionValidityDuration),
	}
	if err := s.repomanager.Sessions(db).Create(ctx, session); err != nil {
		return nil, err
	}

	identity := models.Identity{UserID: user.ID, Name: user.Name, SessionID: session.ID}
	access, err := auth.GenerateToken(&identity, s.jwtSecret, s.sessionValidityDuration)
	if err != nil {
		return nil, err
	}

	return &SessionToken{AccessToken: access, Identity: identity, ExpiresAt: session.ExpiresAt}, nil
}

func (s *UserService) validateCredentials(name, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if s.maxNameLength > 0 && len([]rune(name)) > s.maxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", common.ErrorValidation, s.maxNameLength)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: name must not contain spaces", common.ErrorValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return nil
}
