// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package instance

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/clock"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/uuid"
)

type Service struct {
	repo   Repository
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(repo Repository, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

// Today is the day overdue flags are evaluated against.
func (service *Service) Today() date.Date {
	return clock.Today(service.clock)
}

// ListInstances lists copies. Only library staff may filter by borrower.
func (service *Service) ListInstances(ctx context.Context, filter Filter, limit, offset int) ([]*Instance, int, error) {
	filter.BorrowerID = strings.TrimSpace(filter.BorrowerID)
	if filter.BorrowerID != "" {
		if err := requireStaff(ctx); err != nil {
			return nil, 0, err
		}
	}

	validator := &validate.Validator{}
	for _, s := range filter.Statuses {
		validator.OneOf(FieldStatus, string(s), status.Codes()...)
	}
	if filter.BorrowerID != "" {
		validator.UUID(FieldBorrowerID, filter.BorrowerID)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.ListInstances(ctx, filter, limit, offset)
}

func (service *Service) GetInstance(ctx context.Context, id string) (*Instance, error) {
	return service.repo.GetInstance(ctx, id)
}

// CreateInstance assigns a fresh id and stores the copy. A copy created
// without a status is under maintenance.
func (service *Service) CreateInstance(ctx context.Context, in *Input) (*Instance, error) {
	if err := prepare(in); err != nil {
		return nil, err
	}

	id := uuid.New()
	if err := service.repo.CreateInstance(ctx, id, in); err != nil {
		return nil, err
	}

	service.logger.Info("instance_created",
		slog.String("instance_id", id),
		slog.String("status", string(in.Status)),
	)
	return service.repo.GetInstance(ctx, id)
}

// UpdateInstance replaces every writable field. No status transition is
// refused.
func (service *Service) UpdateInstance(ctx context.Context, id string, in *Input) (*Instance, error) {
	if err := prepare(in); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateInstance(ctx, id, in); err != nil {
		return nil, err
	}

	service.logger.Info("instance_updated",
		slog.String("instance_id", id),
		slog.String("status", string(in.Status)),
	)
	return service.repo.GetInstance(ctx, id)
}

func (service *Service) DeleteInstance(ctx context.Context, id string) error {
	if err := service.repo.DeleteInstance(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("instance_deleted", slog.String("instance_id", id))
	return nil
}

func prepare(in *Input) error {
	in.Imprint = strings.TrimSpace(in.Imprint)
	if in.Status == "" {
		in.Status = status.Default
	}
	if in.BorrowerID != nil {
		trimmed := strings.TrimSpace(*in.BorrowerID)
		if trimmed == "" {
			in.BorrowerID = nil
		} else {
			in.BorrowerID = &trimmed
		}
	}

	validator := &validate.Validator{}
	validator.Required(FieldImprint, in.Imprint).MaxLen(FieldImprint, in.Imprint, maxImprintLength)
	validator.OneOf(FieldStatus, string(in.Status), status.Codes()...)
	validator.PositiveID(FieldBookID, in.BookID)
	if in.BorrowerID != nil {
		validator.UUID(FieldBorrowerID, *in.BorrowerID)
	}
	return validator.Err()
}

// SeesBorrowers reports whether the caller may see who holds a copy.
func SeesBorrowers(ctx context.Context) bool {
	return ctxutil.CallerRole(ctx).CanMarkReturned()
}

func requireStaff(ctx context.Context) error {
	role := ctxutil.CallerRole(ctx)
	if role == "" {
		return apperr.Unauthorized("Authentication required")
	}
	if !role.CanMarkReturned() {
		return apperr.Forbidden("Only library staff can filter copies by borrower")
	}
	return nil
}
