// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes handled explicitly.
const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// action names the failed operation (e.g. "get_book") and is kept on the
// cause for server-side logs.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.As(err) != nil {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateForeignKeyViolation:
			ae := apperr.Unprocessable("Referenced record does not exist")
			ae.Cause = fmt.Errorf("%s: %w", action, err)
			return ae
		case sqlStateUniqueViolation:
			ae := apperr.Conflict("Record already exists")
			ae.Cause = fmt.Errorf("%s: %w", action, err)
			return ae
		case sqlStateCheckViolation:
			ae := apperr.ValidationError("Value violates a storage constraint")
			ae.Cause = fmt.Errorf("%s: %w", action, err)
			return ae
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// NotFound maps pgx.ErrNoRows to a resource-specific 404 and defers every
// other error to [Wrap].
func NotFound(err error, resource, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}
