// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api touch net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/genre"
	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/core/language"
	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/core/stats"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	"github.com/taibuivan/locallibrary/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; always 200 while the process runs.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; 200 only when every dependency answers.
	Readiness http.HandlerFunc

	Auth     *auth.Handler
	Stats    *stats.Handler
	Language *language.Handler
	Genre    *genre.Handler
	Author   *author.Handler
	Book     *book.Handler
	Instance *instance.Handler
	Loan     *loan.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(ctx))
	r.Use(chimw.CleanPath)
	r.Use(middleware.Visitor(cfg.IsProduction()))
	r.Use(middleware.Authenticate(verifier))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", h.Auth.RegisterRoutes)
		api.Route("/stats", h.Stats.RegisterRoutes)
		api.Route("/languages", h.Language.RegisterRoutes)
		api.Route("/genres", h.Genre.RegisterRoutes)
		api.Route("/authors", h.Author.RegisterRoutes)
		api.Route("/books", h.Book.RegisterRoutes)
		api.Route("/bookinstances", h.Instance.RegisterRoutes)
		api.Route("/loans", h.Loan.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
