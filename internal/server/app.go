// Package server wires configuration, storage, services and both transports
// into a runnable application.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/drawgallery/internal/logging"
	"github.com/dmitrijs2005/drawgallery/internal/server/auth"
	"github.com/dmitrijs2005/drawgallery/internal/server/config"
	"github.com/dmitrijs2005/drawgallery/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/drawgallery/internal/server/services"

	gs "github.com/dmitrijs2005/drawgallery/internal/server/grpc"
	hs "github.com/dmitrijs2005/drawgallery/internal/server/http"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	accountService *services.AccountService
	drawingService *services.DrawingService
}

// NewApp validates c, opens and migrates the database and builds the
// services. The caller must Close the returned App.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.NewJSONLogger(os.Stdout, slog.LevelInfo))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	authn, err := auth.NewAuthenticator([]byte(c.SecretKey), c.TokenValidityDuration)
	if err != nil {
		return nil, err
	}

	hasher, err := auth.NewArgon2Hasher(auth.DefaultArgon2Params)
	if err != nil {
		return nil, err
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as, err := services.NewAccountService(db, rm, authn, hasher, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	ds := services.NewDrawingService(db, rm, authn, logger, c.HideForeignRecords)

	return &App{config: c, logger: logger, db: db, accountService: as, drawingService: ds}, nil
}

// Accounts exposes account provisioning to the admin tool.
func (app *App) Accounts() *services.AccountService {
	return app.accountService
}

func (app *App) Close() error {
	return app.db.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.accountService, app.drawingService,
		app.config.TokenValidityDuration, int(app.config.MaxBodyBytes))
	return s.Run(ctx)
}

func (app *App) startHTTPServer(ctx context.Context) error {
	s := hs.NewServer(app.config.EndpointAddrHTTP, app.logger,
		app.accountService, app.drawingService,
		hs.Options{
			TokenValidity:      app.config.TokenValidityDuration,
			CookieSecure:       app.config.CookieSecure,
			MaxBodyBytes:       app.config.MaxBodyBytes,
			LoginRatePerMinute: app.config.LoginRatePerMinute,
		})
	return s.Run(ctx)
}

// Run serves HTTP and gRPC until ctx is cancelled, a termination signal
// arrives or either server fails. A failure of one server stops the other.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	run := func(name string, start func(context.Context) error) {
		defer wg.Done()
		if err := start(ctx); err != nil {
			app.logger.Error(ctx, "server failed", "server", name, "error", err)
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
			cancelFunc()
		}
	}

	wg.Add(2)
	go run("grpc", app.startGRPCServer)
	go run("http", app.startHTTPServer)
	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(errs...)
}
