// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (s stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

type stubConfig struct {
	dev     bool
	origins []string
}

func (c stubConfig) IsDevelopment() bool      { return c.dev }
func (c stubConfig) AllowedOrigins() []string { return c.origins }

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequireRole checks the 401/403/200 outcomes for staff-only routes.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		header string
		role   string
		want   int
	}{
		{"anonymous", "", "", http.StatusUnauthorized},
		{"bad scheme", "Token good", "librarian", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "librarian", http.StatusUnauthorized},
		{"member", "Bearer good", "member", http.StatusForbidden},
		{"librarian", "Bearer good", "librarian", http.StatusOK},
		{"admin", "Bearer good", "admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "u-1", Role: tt.role}}
			handler := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleLibrarian)(okHandler))

			request := httptest.NewRequest(http.MethodPost, "/api/v1/books", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			assert.Equal(t, tt.want, serve(handler, request).Code)
		})
	}
}

/*
TestAuthenticate_AnonymousPassesThrough ensures optional auth does not block.
*/
func TestAuthenticate_AnonymousPassesThrough(t *testing.T) {
	var seen *sec.AuthClaims
	handler := middleware.Authenticate(stubVerifier{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetAuthUser(r.Context())
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/api/v1/books", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, seen)
}

/*
TestRequireAuth rejects anonymous callers.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.Authenticate(stubVerifier{claims: &sec.AuthClaims{UserID: "u-1", Role: "member"}})(middleware.RequireAuth(okHandler))

	assert.Equal(t, http.StatusUnauthorized, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer good")
	assert.Equal(t, http.StatusOK, serve(handler, request).Code)
}

/*
TestRateLimiter_Allow exhausts the burst for one IP only.
*/
func TestRateLimiter_Allow(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.0001, 2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRealIP, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, serve(limiter.Middleware(okHandler), request).Code)
}

/*
TestCORS echoes only allowed origins outside development.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(stubConfig{origins: []string{"https://library.example"}})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://library.example")
	assert.Equal(t, "https://library.example", serve(handler, request).Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://evil.example")
	assert.Empty(t, serve(handler, request).Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://library.example")
	assert.Equal(t, http.StatusNoContent, serve(handler, request).Code)

	dev := middleware.CORS(stubConfig{dev: true})(okHandler)
	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", serve(dev, request).Header().Get("Access-Control-Allow-Origin"))
}

/*
TestVisitor issues a cookie once, reuses it, and replaces malformed ones.
*/
func TestVisitor(t *testing.T) {
	var key string
	handler := middleware.Visitor(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = ctxutil.VisitorKey(r.Context())
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.VisitorCookieName, cookies[0].Name)
	assert.Equal(t, "anon:"+cookies[0].Value, key)

	known := cookies[0].Value
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.VisitorCookieName, Value: known})
	recorder = serve(handler, request)
	assert.Empty(t, recorder.Result().Cookies())
	assert.Equal(t, "anon:"+known, key)

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: constants.VisitorCookieName, Value: "stats:*"})
	recorder = serve(handler, forged)
	require.Len(t, recorder.Result().Cookies(), 1)
	assert.NotEqual(t, "anon:stats:*", key)
}

/*
TestRequestID keeps a client-supplied id and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "abc")
	recorder := serve(handler, request)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", recorder.Header().Get(constants.HeaderXRequestID))

	serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
}
