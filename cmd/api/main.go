// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Local Library HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire repositories, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/locallibrary/internal/api"
	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/genre"
	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/core/language"
	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/core/stats"
	"github.com/taibuivan/locallibrary/internal/platform/clock"
	"github.com/taibuivan/locallibrary/internal/platform/config"
	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/migration"
	pgstore "github.com/taibuivan/locallibrary/internal/platform/postgres"
	redisstore "github.com/taibuivan/locallibrary/internal/platform/redis"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	location, err := cfg.Location()
	must(log, err, "resolve timezone")
	clk := clock.NewSystem(location)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("timezone", location.String()),
	)

	// Startup gets a 30s deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	instanceRepository := instance.NewPostgresRepository(pool)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(auth.NewUserRepository(pool), jwtSvc, log)),
		Stats:     stats.NewHandler(stats.NewService(stats.NewPostgresRepository(pool), stats.NewRedisVisitCounter(rdb), log)),
		Language:  language.NewHandler(language.NewService(language.NewPostgresRepository(pool), log)),
		Genre:     genre.NewHandler(genre.NewService(genre.NewPostgresRepository(pool), log)),
		Author:    author.NewHandler(author.NewService(author.NewPostgresRepository(pool), log)),
		Book:      book.NewHandler(book.NewService(book.NewPostgresRepository(pool), log)),
		Instance:  instance.NewHandler(instance.NewService(instanceRepository, clk, log)),
		Loan:      loan.NewHandler(loan.NewService(instanceRepository, clk, log)),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	// serverCtx bounds background work owned by the server (rate limiter eviction).
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	err = server.Shutdown(shutdownTimeout)
	serverCancel()
	if err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger returns the JSON logger every entry of which carries the app name.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
