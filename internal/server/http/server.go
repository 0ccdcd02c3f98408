// Package http exposes the gallery services as a JSON API with cookie
// sessions.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/logging"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/dmitrijs2005/drawgallery/internal/server/services"
	"golang.org/x/time/rate"
)

type AccountService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type DrawingService interface {
	Authenticate(ctx context.Context, token string) error
	List(ctx context.Context, token string) ([]*models.Drawing, error)
	Get(ctx context.Context, token, id string) (*models.Drawing, error)
	Save(ctx context.Context, token string, in services.SaveInput) (*models.Drawing, bool, error)
}

// Options tunes session cookies and request limits.
type Options struct {
	TokenValidity      time.Duration
	CookieSecure       bool
	MaxBodyBytes       int64
	LoginRatePerMinute int
}

type Server struct {
	address      string
	accounts     AccountService
	drawings     DrawingService
	logger       logging.Logger
	opts         Options
	loginLimiter *rate.Limiter
}

func NewServer(address string, l logging.Logger, as AccountService, ds DrawingService, opts Options) *Server {
	s := &Server{
		address:  address,
		accounts: as,
		drawings: ds,
		logger:   l.With("module", "http_server"),
		opts:     opts,
	}

	if opts.LoginRatePerMinute > 0 {
		s.loginLimiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.LoginRatePerMinute)), opts.LoginRatePerMinute)
	}

	return s
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(context.Background(), "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-shutdownDone
	return nil
}
