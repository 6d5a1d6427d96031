package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophinbox/internal/client/api"
	"github.com/dmitrijs2005/gophinbox/internal/client/config"
	"github.com/dmitrijs2005/gophinbox/internal/client/models"
)

// ErrUsage is returned for an unknown command or bad arguments.
var ErrUsage = errors.New("usage")

// inboxAPI is the server surface the commands use; *api.Client satisfies it.
type inboxAPI interface {
	Register(ctx context.Context, name, password string) (*models.Token, error)
	Login(ctx context.Context, name, password, token string) (*models.Token, error)
	Logout(ctx context.Context, token string) error
	Send(ctx context.Context, token string, m models.NewMessage) (int64, error)
	ListAll(ctx context.Context, token string) ([]models.Message, error)
	ListUnread(ctx context.Context, token string) ([]models.Message, error)
	Next(ctx context.Context, token string) (*models.Message, error)
	Get(ctx context.Context, token string, id int64) (*models.Message, error)
	Delete(ctx context.Context, token string, id int64) error
}

type App struct {
	api    inboxAPI
	tokens tokenFile
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		api:    api.NewClient(c.ServerURL, c.RequestTimeout),
		tokens: tokenFile{path: c.TokenFile},
		reader: bufio.NewReader(in),
		out:    out,
	}
}

type command func(a *App, ctx context.Context, args []string) error

var commands = map[string]command{
	"register": (*App).register,
	"login":    (*App).login,
	"logout":   (*App).logout,
	"send":     (*App).send,
	"list":     (*App).list,
	"unread":   (*App).unread,
	"read":     (*App).read,
	"delete":   (*App).delete,
}

const usageText = `usage: inboxctl [-s server] [-t tokenfile] <command> [args]

commands:
  register          create an account and log in
  login             log in
  logout            end the current session
  send [receiver]   send a message
  list              show all your messages
  unread            show your unread messages
  read [id]         show one message, or the next unread one
  delete <id>       delete a message`

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		fmt.Fprintln(a.out, usageText)
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintln(a.out, usageText)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	return cmd(a, ctx, args[1:])
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
