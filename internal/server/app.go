// Package server wires configuration, storage, services and transports into
// a runnable inbox server and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophinbox/internal/dbx"
	"github.com/dmitrijs2005/gophinbox/internal/logging"
	"github.com/dmitrijs2005/gophinbox/internal/server/config"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophinbox/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophinbox/internal/server/rest"
	"github.com/dmitrijs2005/gophinbox/internal/server/services"
	"github.com/valkey-io/valkey-go"

	gs "github.com/dmitrijs2005/gophinbox/internal/server/grpc"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	valkey       valkey.Client
	userService  *services.UserService
	inboxService *services.InboxService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	dialect, err := dbx.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := repomanager.Open(dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	rm, err := repomanager.NewSQLRepositoryManager(dialect)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		app.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	if c.SessionBackend == config.SessionBackendValkey {
		client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{c.ValkeyAddr}})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("valkey init error: %w", err)
		}
		app.valkey = client
		rm = repomanager.WithSessionStore(rm, sessions.NewValkeyRepository(client))
	}

	app.userService = services.NewUserService(db, rm, c, logger)
	app.inboxService = services.NewInboxService(db, rm, c, logger)

	logger.Info(ctx, "storage ready", "driver", dialect.DriverName(), "sessions", c.SessionBackend)

	return app, nil
}

// Close releases the database and the session store connections.
func (app *App) Close() {
	if app.valkey != nil {
		app.valkey.Close()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err)
		}
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, s runner) {
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) servers() map[string]runner {
	return map[string]runner{
		"http": rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.inboxService, app.config.ShutdownTimeout),
		"grpc": gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService),
	}
}

// Run starts every transport and blocks until a signal arrives, ctx is
// cancelled or one of the servers fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	for name, s := range app.servers() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runServer(ctx, cancelFunc, name, s)
		}()
	}

	wg.Wait()

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
}
