package rest

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"github.com/dmitrijs2005/gophinbox/internal/server/services"
)

type fakeUsers struct {
	mu sync.Mutex

	tokens map[string]*models.Identity

	registerToken *services.SessionToken
	registerErr   error

	loginToken   *services.SessionToken
	loginErr     error
	loginCurrent *models.Identity
	loginCalls   int

	logoutErr   error
	loggedOut   []*models.Identity
	authErrOver error
}

func (f *fakeUsers) Register(_ context.Context, name, _ string) (*services.SessionToken, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.registerToken != nil {
		return f.registerToken, nil
	}
	return &services.SessionToken{AccessToken: "tok-" + name, Identity: models.Identity{Name: name}}, nil
}

func (f *fakeUsers) Login(_ context.Context, name, _ string, current *models.Identity) (*services.SessionToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	f.loginCurrent = current
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginToken != nil {
		return f.loginToken, nil
	}
	return &services.SessionToken{AccessToken: "tok-" + name, Identity: models.Identity{Name: name}}, nil
}

func (f *fakeUsers) Logout(_ context.Context, identity *models.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedOut = append(f.loggedOut, identity)
	return nil
}

func (f *fakeUsers) Authenticate(_ context.Context, token string) (*models.Identity, error) {
	if f.authErrOver != nil {
		return nil, f.authErrOver
	}
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return nil, common.ErrorUnauthenticated
}

type fakeInbox struct {
	mu sync.Mutex

	actor    *models.Identity
	sent     []models.Message
	sendErr  error
	list     []*services.SurfacedMessage
	unread   []*services.SurfacedMessage
	listErr  error
	one      *services.SurfacedMessage
	oneErr   error
	oneID    int64
	next     *services.SurfacedMessage
	nextErr  error
	deleted  []int64
	deleteEr error
}

func (f *fakeInbox) Send(_ context.Context, actor *models.Identity, receiver, subject, body string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actor = actor
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	m := models.Message{ID: int64(len(f.sent) + 1), Sender: actor.Name, Receiver: receiver, Subject: subject, Body: body}
	f.sent = append(f.sent, m)
	return &m, nil
}

func (f *fakeInbox) ListAll(_ context.Context, actor *models.Identity) ([]*services.SurfacedMessage, error) {
	f.actor = actor
	return f.list, f.listErr
}

func (f *fakeInbox) ListUnread(_ context.Context, actor *models.Identity) ([]*services.SurfacedMessage, error) {
	f.actor = actor
	return f.unread, f.listErr
}

func (f *fakeInbox) FetchOne(_ context.Context, actor *models.Identity, id int64) (*services.SurfacedMessage, error) {
	f.actor = actor
	f.oneID = id
	return f.one, f.oneErr
}

func (f *fakeInbox) FetchNextUnread(_ context.Context, actor *models.Identity) (*services.SurfacedMessage, error) {
	f.actor = actor
	return f.next, f.nextErr
}

func (f *fakeInbox) Delete(_ context.Context, actor *models.Identity, id int64) error {
	f.actor = actor
	if f.deleteEr != nil {
		return f.deleteEr
	}
	f.deleted = append(f.deleted, id)
	return nil
}
