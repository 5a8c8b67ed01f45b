// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides chi's URL parameter lookup and the body decoding conventions behind
helpers that already return [apperr.AppError] values.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body into target.

Returns validate.ErrInvalidJSON if the body is not valid JSON, is larger
than 1 MiB, or carries unknown fields.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID parses a named integer URL parameter. A malformed or non-positive
value yields a 404 for resource, the same answer as an unknown id.
*/
func IntID(request *http.Request, name, resource string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(request, name))
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(resource)
	}
	return id, nil
}

// UUIDParam is [IntID] for UUID-keyed resources.
func UUIDParam(request *http.Request, name, resource string) (string, error) {
	id := chi.URLParam(request, name)
	if !uuid.Valid(id) {
		return "", apperr.NotFound(resource)
	}
	return id, nil
}

/*
Claims extracts the authenticated user claims, or nil for anonymous requests.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims returns the caller's claims or apperr.Unauthorized.
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

/*
RequiredUserID returns the caller's user id or apperr.Unauthorized.
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
