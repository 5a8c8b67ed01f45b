// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package instance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

func newRouter(repo instance.Repository) http.Handler {
	return newRouterAs(repo, "")
}

// newRouterAs authenticates every request with role; "" stays anonymous.
func newRouterAs(repo instance.Repository, role sec.UserRole) http.Handler {
	router := chi.NewRouter()
	if role != "" {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims := &sec.AuthClaims{UserID: "u-1", Role: string(role)}
				next.ServeHTTP(w, r.WithContext(ctxutil.WithAuthUser(r.Context(), claims)))
			})
		})
	}
	router.Route("/bookinstances", instance.NewHandler(newService(repo)).RegisterRoutes)
	return router
}

/*
TestGetInstance_OverdueFromClock evaluates is_overdue against the injected day.
*/
func TestGetInstance_OverdueFromClock(t *testing.T) {
	const id = "01928f3e-7c6b-7d3a-9f21-6a2b3c4d5e6f"

	repo := new(mockRepository)
	repo.On("GetInstance", mock.Anything, id).Return(&instance.Instance{
		ID:      id,
		Imprint: "Ace",
		Status:  status.OnLoan,
		DueBack: pointer.To(date.MustParse("2026-10-13")),
	}, nil)

	recorder := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookinstances/"+id, nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"is_overdue":true`)
	assert.Contains(t, recorder.Body.String(), `"display_name":"[deleted book](`+id+`)"`)
}

/*
TestGetInstance_MalformedID answers 404 without touching storage.
*/
func TestGetInstance_MalformedID(t *testing.T) {
	repo := new(mockRepository)

	recorder := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookinstances/42", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	repo.AssertNotCalled(t, "GetInstance", mock.Anything, mock.Anything)
}

/*
TestCreateInstance_RequiresAuth rejects anonymous writes.
*/
func TestCreateInstance_RequiresAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	newRouter(new(mockRepository)).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/bookinstances/", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

const heldBy = "01928f3e-7c6b-7d3a-9f21-6a2b3c4d5e6f"

func borrowedCopy() *instance.Instance {
	return &instance.Instance{
		ID:         "01928f3e-0000-7d3a-9f21-6a2b3c4d5e6f",
		Status:     status.OnLoan,
		DueBack:    pointer.To(date.MustParse("2026-10-20")),
		BorrowerID: pointer.To(heldBy),
	}
}

/*
TestListInstances_BorrowerFilterIsStaffOnly refuses ?borrower_id= to
anonymous callers and members before any storage access.
*/
func TestListInstances_BorrowerFilterIsStaffOnly(t *testing.T) {
	tests := []struct {
		name     string
		role     sec.UserRole
		wantCode int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"member", sec.RoleMember, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/bookinstances/?status=o&borrower_id="+heldBy, nil)
			newRouterAs(repo, tt.role).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code, recorder.Body.String())
			assert.NotContains(t, recorder.Body.String(), heldBy)
			repo.AssertNotCalled(t, "ListInstances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

/*
TestListInstances_HidesBorrowerFromPublic keeps status and due date but
drops the heldBy for callers outside library staff.
*/
func TestListInstances_HidesBorrowerFromPublic(t *testing.T) {
	tests := []struct {
		name         string
		role         sec.UserRole
		seesBorrower bool
	}{
		{"anonymous", "", false},
		{"member", sec.RoleMember, false},
		{"librarian", sec.RoleLibrarian, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("ListInstances", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return([]*instance.Instance{borrowedCopy()}, 1, nil)

			recorder := httptest.NewRecorder()
			newRouterAs(repo, tt.role).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookinstances/?status=o", nil))

			require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
			assert.Contains(t, recorder.Body.String(), `"status":"o"`)
			assert.Contains(t, recorder.Body.String(), `"due_back":"2026-10-20"`)
			if tt.seesBorrower {
				assert.Contains(t, recorder.Body.String(), `"borrower_id":"`+heldBy+`"`)
			} else {
				assert.Contains(t, recorder.Body.String(), `"borrower_id":null`)
				assert.NotContains(t, recorder.Body.String(), heldBy)
			}
		})
	}
}

/*
TestGetInstance_HidesBorrowerFromPublic applies the same rule to a single copy.
*/
func TestGetInstance_HidesBorrowerFromPublic(t *testing.T) {
	held := borrowedCopy()
	repo := new(mockRepository)
	repo.On("GetInstance", mock.Anything, held.ID).Return(held, nil)

	recorder := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookinstances/"+held.ID, nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.NotContains(t, recorder.Body.String(), heldBy)
	require.NotNil(t, held.BorrowerID, "the stored copy itself is left untouched")
}

/*
TestListInstances_StaffMayFilterByBorrower passes the filter through for librarians.
*/
func TestListInstances_StaffMayFilterByBorrower(t *testing.T) {
	repo := new(mockRepository)
	repo.On("ListInstances", mock.Anything, mock.MatchedBy(func(f instance.Filter) bool {
		return f.BorrowerID == heldBy
	}), 20, 0).Return([]*instance.Instance{borrowedCopy()}, 1, nil)

	ctx := ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: "u-1", Role: string(sec.RoleLibrarian)})
	instances, total, err := newService(repo).ListInstances(ctx, instance.Filter{BorrowerID: " " + heldBy + " "}, 20, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, instances, 1)
	assert.True(t, instance.SeesBorrowers(ctx))
	assert.False(t, instance.SeesBorrowers(context.Background()))
	repo.AssertExpectations(t)

	_, _, err = newService(repo).ListInstances(context.Background(), instance.Filter{BorrowerID: heldBy}, 20, 0)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
}
