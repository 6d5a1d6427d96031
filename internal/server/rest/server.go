// Package rest exposes the inbox over HTTP/JSON using chi. Handlers only
// translate between HTTP and the services; every rule lives in the services.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/logging"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"github.com/dmitrijs2005/gophinbox/internal/server/services"
	"github.com/go-playground/validator/v10"
)

// UserAPI is the identity side of the service layer used by the handlers.
type UserAPI interface {
	Register(ctx context.Context, name, password string) (*services.SessionToken, error)
	Login(ctx context.Context, name, password string, current *models.Identity) (*services.SessionToken, error)
	Logout(ctx context.Context, identity *models.Identity) error
	Authenticate(ctx context.Context, accessToken string) (*models.Identity, error)
}

// InboxAPI is the message side of the service layer used by the handlers.
type InboxAPI interface {
	Send(ctx context.Context, actor *models.Identity, receiver, subject, body string) (*models.Message, error)
	ListAll(ctx context.Context, actor *models.Identity) ([]*services.SurfacedMessage, error)
	ListUnread(ctx context.Context, actor *models.Identity) ([]*services.SurfacedMessage, error)
	FetchOne(ctx context.Context, actor *models.Identity, id int64) (*services.SurfacedMessage, error)
	FetchNextUnread(ctx context.Context, actor *models.Identity) (*services.SurfacedMessage, error)
	Delete(ctx context.Context, actor *models.Identity, id int64) error
}

type Server struct {
	address         string
	logger          logging.Logger
	users           UserAPI
	inbox           InboxAPI
	validate        *validator.Validate
	shutdownTimeout time.Duration
}

func NewServer(address string, l logging.Logger, users UserAPI, inbox InboxAPI, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		logger:          l.With("module", "rest_server"),
		users:           users,
		inbox:           inbox,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests for
// at most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
