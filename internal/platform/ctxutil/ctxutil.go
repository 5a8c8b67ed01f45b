// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/locallibrary/internal/platform/ctxkey"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// # Identity & Access

// WithAuthUser returns a new context with the provided auth claims attached.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser retrieves the [*sec.AuthClaims] from the context, or nil for
// anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}

// CallerRole returns the caller's role, or "" when anonymous.
func CallerRole(ctx context.Context) sec.UserRole {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserRole()
	}
	return ""
}

// # Visitors

// WithVisitorID attaches the anonymous visitor id read from the cookie.
func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyVisitor, id)
}

// VisitorKey identifies whoever is making the request for per-visitor
// counters: the user id when authenticated, otherwise the visitor cookie.
// Returns "" when neither is known.
func VisitorKey(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil && claims.UserID != "" {
		return "user:" + claims.UserID
	}
	if id, _ := ctx.Value(ctxkey.KeyVisitor).(string); id != "" {
		return "anon:" + id
	}
	return ""
}
