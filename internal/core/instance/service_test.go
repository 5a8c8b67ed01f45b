// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package instance_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/clock"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/pointer"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListInstances(ctx context.Context, f instance.Filter, limit, offset int) ([]*instance.Instance, int, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]*instance.Instance), args.Int(1), args.Error(2)
}

func (m *mockRepository) GetInstance(ctx context.Context, id string) (*instance.Instance, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*instance.Instance)
	return i, args.Error(1)
}

func (m *mockRepository) CreateInstance(ctx context.Context, id string, in *instance.Input) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockRepository) UpdateInstance(ctx context.Context, id string, in *instance.Input) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockRepository) DeleteInstance(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) SetDueBack(ctx context.Context, id string, due date.Date) error {
	return m.Called(ctx, id, due).Error(0)
}

func (m *mockRepository) MarkReturned(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var today = date.MustParse("2026-10-14")

func newService(repo instance.Repository) *instance.Service {
	return instance.NewService(repo, clock.At(today), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreateInstance_Defaults assigns a UUID and the maintenance status.
*/
func TestCreateInstance_Defaults(t *testing.T) {
	repo := new(mockRepository)
	var assigned string

	repo.On("CreateInstance", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(in *instance.Input) bool {
		return in.Status == status.Maintenance && in.Imprint == "Ace"
	})).Run(func(args mock.Arguments) {
		assigned = args.String(1)
	}).Return(nil)
	repo.On("GetInstance", mock.Anything, mock.AnythingOfType("string")).Return(&instance.Instance{Status: status.Maintenance}, nil)

	got, err := newService(repo).CreateInstance(context.Background(), &instance.Input{Imprint: " Ace ", BookID: pointer.To(1)})

	require.NoError(t, err)
	assert.Equal(t, status.Maintenance, got.Status)
	assert.True(t, uuid.Valid(assigned))
	repo.AssertExpectations(t)
}

/*
TestCreateInstance_Validation rejects bad fields before storage.
*/
func TestCreateInstance_Validation(t *testing.T) {
	tests := []struct {
		name      string
		input     instance.Input
		wantField string
	}{
		{"missing imprint", instance.Input{Imprint: "  "}, instance.FieldImprint},
		{"unknown status", instance.Input{Imprint: "Ace", Status: "x"}, instance.FieldStatus},
		{"zero book", instance.Input{Imprint: "Ace", BookID: pointer.To(0)}, instance.FieldBookID},
		{"bad borrower", instance.Input{Imprint: "Ace", BorrowerID: pointer.To("nope")}, instance.FieldBorrowerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepository)
			_, err := newService(repo).CreateInstance(context.Background(), &tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)
			assert.Equal(t, tt.wantField, appErr.Details[0].Field)
			repo.AssertNotCalled(t, "CreateInstance", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

/*
TestUpdateInstance_AnyTransition accepts every status pair.
*/
func TestUpdateInstance_AnyTransition(t *testing.T) {
	for _, to := range status.All() {
		t.Run(string(to), func(t *testing.T) {
			repo := new(mockRepository)
			repo.On("UpdateInstance", mock.Anything, "id-1", mock.Anything).Return(nil)
			repo.On("GetInstance", mock.Anything, "id-1").Return(&instance.Instance{ID: "id-1", Status: to}, nil)

			got, err := newService(repo).UpdateInstance(context.Background(), "id-1", &instance.Input{Imprint: "Ace", Status: to})
			require.NoError(t, err)
			assert.Equal(t, to, got.Status)
		})
	}
}

/*
TestUpdateInstance_ClearsBlankBorrower treats "" as no borrower.
*/
func TestUpdateInstance_ClearsBlankBorrower(t *testing.T) {
	repo := new(mockRepository)
	repo.On("UpdateInstance", mock.Anything, "id-1", mock.MatchedBy(func(in *instance.Input) bool {
		return in.BorrowerID == nil
	})).Return(nil)
	repo.On("GetInstance", mock.Anything, "id-1").Return(&instance.Instance{ID: "id-1"}, nil)

	_, err := newService(repo).UpdateInstance(context.Background(), "id-1", &instance.Input{Imprint: "Ace", BorrowerID: pointer.To(" ")})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

/*
TestListInstances_RejectsUnknownStatus validates the status filter.
*/
func TestListInstances_RejectsUnknownStatus(t *testing.T) {
	repo := new(mockRepository)
	_, _, err := newService(repo).ListInstances(context.Background(), instance.Filter{Statuses: []status.Status{"z"}}, 20, 0)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

/*
TestToday follows the injected clock.
*/
func TestToday(t *testing.T) {
	assert.True(t, newService(new(mockRepository)).Today().Equal(today))
}
