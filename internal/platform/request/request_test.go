// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

func withParam(request *http.Request, key, value string) *http.Request {
	routeContext := chi.NewRouteContext()
	routeContext.URLParams.Add(key, value)
	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, routeContext))
}

/*
TestIntID maps bad ids to 404.
*/
func TestIntID(t *testing.T) {
	request := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "42")
	id, err := requestutil.IntID(request, "id", "Book")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		request := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", raw)
		_, err := requestutil.IntID(request, "id", "Book")
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound), raw)
	}
}

/*
TestUUIDParam accepts canonical UUIDs only.
*/
func TestUUIDParam(t *testing.T) {
	const id = "01928f3e-7c6b-7d3a-9f21-6a2b3c4d5e6f"
	request := withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id)
	got, err := requestutil.UUIDParam(request, "id", "BookInstance")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	request = withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "not-a-uuid")
	_, err = requestutil.UUIDParam(request, "id", "BookInstance")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

/*
TestDecodeJSON rejects unknown fields and malformed bodies.
*/
func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"French"}`))
	require.NoError(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))
	assert.Equal(t, "French", target.Name)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"French","extra":1}`))
	assert.Error(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))
}

/*
TestRequiredUserID requires authentication.
*/
func TestRequiredUserID(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := requestutil.RequiredUserID(request)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: "u-1"}))
	id, err := requestutil.RequiredUserID(request)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
}
