package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophinbox/internal/common"
)

func (a *App) credentials() (string, []byte, error) {
	name, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return name, password, nil
}

func (a *App) register(ctx context.Context, _ []string) error {
	name, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	tok, err := a.api.Register(ctx, name, string(password))
	if err != nil {
		return err
	}

	if err := a.tokens.Save(tok.Token); err != nil {
		return err
	}
	a.printf("%s", tok.Message)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	name, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	current, err := a.tokens.Load()
	if err != nil {
		return err
	}

	tok, err := a.api.Login(ctx, name, string(password), current)
	if err != nil {
		// The server has ended the previous session either way.
		if current != "" {
			_ = a.tokens.Clear()
		}
		return err
	}

	if err := a.tokens.Save(tok.Token); err != nil {
		return err
	}
	a.printf("%s", tok.Message)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return common.ErrorUnauthenticated
	}

	err = a.api.Logout(ctx, token)
	if err != nil && !errors.Is(err, common.ErrorUnauthenticated) {
		return err
	}

	if err := a.tokens.Clear(); err != nil {
		return err
	}
	a.printf("Logged out")
	return nil
}

// session returns the stored token or ErrorUnauthenticated.
func (a *App) session() (string, error) {
	token, err := a.tokens.Load()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrorUnauthenticated
	}
	return token, nil
}
