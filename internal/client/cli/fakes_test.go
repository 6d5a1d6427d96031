package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophinbox/internal/client/models"
)

type fakeAPI struct {
	regName, regPass string
	regErr           error

	loginName, loginPass, loginCurrent string
	loginErr                           error

	logoutToken string
	logoutErr   error

	sent    models.NewMessage
	sendErr error

	list    []models.Message
	unread  []models.Message
	listErr error

	getID  int64
	next   *models.Message
	one    *models.Message
	getErr error

	deleted   int64
	deleteErr error

	tokenSeen string
}

func (f *fakeAPI) Register(_ context.Context, name, password string) (*models.Token, error) {
	f.regName, f.regPass = name, password
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.Token{Token: "tok-" + name, Name: name, Message: "Registered and logged in as " + name}, nil
}

func (f *fakeAPI) Login(_ context.Context, name, password, token string) (*models.Token, error) {
	f.loginName, f.loginPass, f.loginCurrent = name, password, token
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.Token{Token: "tok-" + name, Name: name, Message: "Logged in as " + name}, nil
}

func (f *fakeAPI) Logout(_ context.Context, token string) error {
	f.logoutToken = token
	return f.logoutErr
}

func (f *fakeAPI) Send(_ context.Context, token string, m models.NewMessage) (int64, error) {
	f.tokenSeen = token
	f.sent = m
	return 11, f.sendErr
}

func (f *fakeAPI) ListAll(_ context.Context, token string) ([]models.Message, error) {
	f.tokenSeen = token
	return f.list, f.listErr
}

func (f *fakeAPI) ListUnread(_ context.Context, token string) ([]models.Message, error) {
	f.tokenSeen = token
	return f.unread, f.listErr
}

func (f *fakeAPI) Next(_ context.Context, token string) (*models.Message, error) {
	f.tokenSeen = token
	return f.next, f.getErr
}

func (f *fakeAPI) Get(_ context.Context, token string, id int64) (*models.Message, error) {
	f.tokenSeen = token
	f.getID = id
	return f.one, f.getErr
}

func (f *fakeAPI) Delete(_ context.Context, token string, id int64) error {
	f.tokenSeen = token
	f.deleted = id
	return f.deleteErr
}


func newTestApp(t *testing.T, input string) (*App, *fakeAPI, *bytes.Buffer) {
	t.Helper()
	f := &fakeAPI{}
	out := &bytes.Buffer{}
	a := &App{
		api:    f,
		tokens: tokenFile{path: filepath.Join(t.TempDir(), "token")},
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}
	return a, f, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}
