// Package httpapi exposes the Passport operations over HTTP/JSON: the
// public register/login endpoints, the token-gated profile endpoint, a
// health check and a catch-all 404. Every response uses the same
// {success, message, data} envelope.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ryabovm/passport/internal/logging"
	"github.com/ryabovm/passport/internal/server/auth"
	"github.com/ryabovm/passport/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr   string
	logger logging.Logger
	users  *users.Service
	tokens *auth.TokenService
}

func NewServer(addr string, l logging.Logger, us *users.Service, tokens *auth.TokenService) *Server {
	return &Server{
		addr:   addr,
		logger: l.With("module", "http_server"),
		users:  us,
		tokens: tokens,
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(s.logRequests)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(protected chi.Router) {
		protected.Use(s.authenticate)
		protected.Get("/auth/profile", s.handleProfile)
	})

	r.Get("/health", s.handleHealth)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleNotFound)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
