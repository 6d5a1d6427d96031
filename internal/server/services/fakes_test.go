package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/dbx"
	"github.com/dmitrijs2005/gophinbox/internal/logging"
	"github.com/dmitrijs2005/gophinbox/internal/server/config"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// -------- test fakes --------

type fakeUsersRepo struct {
	mu      sync.Mutex
	byName  map[string]*models.User
	nextID  int64
	getErr  error
	makeErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.makeErr != nil {
		return nil, f.makeErr
	}
	if _, ok := f.byName[u.Name]; ok {
		return nil, common.ErrorDuplicateName
	}
	f.nextID++
	u.ID = f.nextID
	f.byName[u.Name] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeSessionsRepo struct {
	mu        sync.Mutex
	byID      map[string]*models.Session
	createErr error
	findErr   error
	delErr    error
	deleted   []string
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{byID: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

type fakeMessagesRepo struct {
	messages.Repository

	getOut   *models.Message
	getErr   error
	findOut  []*models.Message
	findErr  error
	firstOut []*models.Message
	firstErr error
	markOut  []bool
	markErr  error
	delOut   bool
	delErr   error
	created  []*models.Message
	createEr error
	// gone lists ids deleted between load and MarkRead: MarkRead changes
	// nothing and later GetByID calls report NotFound.
	gone     map[int64]bool

	marked []int64
}

func (f *fakeMessagesRepo) Create(ctx context.Context, m *models.Message) (*models.Message, error) {
	if f.createEr != nil {
		return nil, f.createEr
	}
	m.ID = int64(len(f.created) + 1)
	f.created = append(f.created, m)
	return m, nil
}

func (f *fakeMessagesRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut == nil {
		return nil, common.ErrorNotFound
	}
	cp := *f.getOut
	return &cp, nil
}

func (f *fakeMessagesRepo) FindByReceiver(ctx context.Context, receiver string, unreadOnly bool) ([]*models.Message, error) {
	return f.findOut, f.findErr
}

// FindFirstUnreadForReceiver hands out firstOut in order, then NotFound.
func (f *fakeMessagesRepo) FindFirstUnreadForReceiver(ctx context.Context, receiver string) (*models.Message, error) {
	if f.firstErr != nil {
		return nil, f.firstErr
	}
	if len(f.firstOut) == 0 {
		return nil, common.ErrorNotFound
	}
	m := f.firstOut[0]
	if len(f.firstOut) > 1 {
		f.firstOut = f.firstOut[1:]
	}
	cp := *m
	return &cp, nil
}

// MarkRead returns markOut in order; once exhausted every call transitions.
func (f *fakeMessagesRepo) MarkRead(ctx context.Context, id int64) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	f.marked = append(f.marked, id)
	if f.gone[id] {
		f.getOut = nil
		return false, nil
	}
	if len(f.markOut) == 0 {
		return true, nil
	}
	out := f.markOut[0]
	f.markOut = f.markOut[1:]
	return out, nil
}

func (f *fakeMessagesRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return f.delOut, f.delErr
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	u *fakeUsersRepo
	m *fakeMessagesRepo
	s *fakeSessionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository          { return m.u }
func (m *fakeRepoManager) Messages(db dbx.DBTX) messages.Repository    { return m.m }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository    { return m.s }

// -------- helpers --------

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:               "k",
		SessionValidityDuration: time.Hour,
		MaxNameLength:           32,
		MaxSubjectLength:        200,
		MaxBodyLength:           1000,
	}
}

var errDB = errors.New("db error: connection reset")

func nopLogger() logging.Logger { return logging.Nop() }
