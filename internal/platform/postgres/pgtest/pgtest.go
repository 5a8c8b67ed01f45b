// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pgtest opens a migrated scratch database for repository tests.
//
// Tests are skipped unless LIBRARY_TEST_DATABASE_URL points at a database the
// tests are allowed to wipe.
package pgtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/database/schema"
	"github.com/taibuivan/locallibrary/internal/platform/migration"
	"github.com/taibuivan/locallibrary/internal/platform/postgres"
)

// EnvDatabaseURL names the variable holding the scratch database DSN.
const EnvDatabaseURL = "LIBRARY_TEST_DATABASE_URL"

// lockKey serializes tests from different packages that share the database.
const lockKey = 71_0001

// Open migrates the scratch database, empties every table and returns a pool
// that is closed when the test ends.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s not set; skipping PostgreSQL test", EnvDatabaseURL)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, migration.RunUp(dsn, migrationsPath(), logger))

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	_, err = conn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey)
		conn.Release()
	})

	tables := []string{
		schema.CatalogBookInstance.Table,
		schema.CatalogBookGenre.Table,
		schema.CatalogBook.Table,
		schema.CatalogAuthor.Table,
		schema.CatalogGenre.Table,
		schema.CatalogLanguage.Table,
		schema.UserAccount.Table,
	}
	_, err = pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", strings.Join(tables, ", ")))
	require.NoError(t, err)

	return pool
}

// migrationsPath resolves data/migrations relative to this source file so
// tests work from any package directory.
func migrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations")
}
