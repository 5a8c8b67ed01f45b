// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

/*
TestError_AppError keeps the code, status and field details.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", nil)

	respond.Error(recorder, request, apperr.Invalid("RENEWAL_DATE_IN_PAST", "Invalid date - renewal in past",
		apperr.FieldError{Field: "renewal_date", Message: "Invalid date - renewal in past"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "RENEWAL_DATE_IN_PAST", body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "renewal_date", body.Details[0].Field)
}

/*
TestError_Unknown hides the message of plain errors.
*/
func TestError_Unknown(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "relation")
	assert.Contains(t, recorder.Body.String(), apperr.CodeInternal)
}

/*
TestPaginated writes an empty array rather than null.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated[string](recorder, nil, pagination.NewMeta(1, 20, 0))

	assert.JSONEq(t, `{"data":[],"meta":{"page":1,"limit":20,"total":0,"total_pages":0,"has_next":false}}`, recorder.Body.String())
}
