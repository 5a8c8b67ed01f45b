// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/stats"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Counts(ctx context.Context) (*stats.Summary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*stats.Summary)
	return s, args.Error(1)
}

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) Hit(ctx context.Context, visitor string) (int64, error) {
	args := m.Called(ctx, visitor)
	return args.Get(0).(int64), args.Error(1)
}

func newService(repo stats.Repository, counter stats.VisitCounter) *stats.Service {
	return stats.NewService(repo, counter, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestSummary_CountsVisitsPerVisitor keys users and anonymous visitors apart.
*/
func TestSummary_CountsVisitsPerVisitor(t *testing.T) {
	repo := new(mockRepository)
	counter := new(mockCounter)
	repo.On("Counts", mock.Anything).Return(&stats.Summary{NumBooks: 3}, nil)
	counter.On("Hit", mock.Anything, "user:u-1").Return(int64(4), nil)
	counter.On("Hit", mock.Anything, "anon:v-1").Return(int64(0), nil)

	service := newService(repo, counter)

	userCtx := ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{UserID: "u-1"})
	got, err := service.Summary(userCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.NumVisits)
	assert.Equal(t, 3, got.NumBooks)

	anonCtx := ctxutil.WithVisitorID(context.Background(), "v-1")
	got, err = service.Summary(anonCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.NumVisits)

	counter.AssertExpectations(t)
}

/*
TestSummary_CounterFailureIsSoft still answers with the catalog counts.
*/
func TestSummary_CounterFailureIsSoft(t *testing.T) {
	repo := new(mockRepository)
	counter := new(mockCounter)
	repo.On("Counts", mock.Anything).Return(&stats.Summary{NumAuthors: 2}, nil)
	counter.On("Hit", mock.Anything, "anon:v-1").Return(int64(0), errors.New("connection refused"))

	got, err := newService(repo, counter).Summary(ctxutil.WithVisitorID(context.Background(), "v-1"))

	require.NoError(t, err)
	assert.Equal(t, 2, got.NumAuthors)
	assert.Zero(t, got.NumVisits)
}

/*
TestSummary_NoVisitor skips the counter entirely.
*/
func TestSummary_NoVisitor(t *testing.T) {
	repo := new(mockRepository)
	counter := new(mockCounter)
	repo.On("Counts", mock.Anything).Return(&stats.Summary{}, nil)

	_, err := newService(repo, counter).Summary(context.Background())

	require.NoError(t, err)
	counter.AssertNotCalled(t, "Hit", mock.Anything, mock.Anything)
}

/*
TestHandler_Summary serves the counters in the data envelope.
*/
func TestHandler_Summary(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Counts", mock.Anything).Return(&stats.Summary{NumBooks: 1, NumInstances: 2, NumInstancesAvailable: 1}, nil)

	router := chi.NewRouter()
	router.Route("/stats", stats.NewHandler(newService(repo, new(mockCounter))).RegisterRoutes)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/stats/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"num_books":1,"num_instances":2,"num_instances_available":1,"num_authors":0,"num_genres":0,"num_visits":0}}`, recorder.Body.String())
}
