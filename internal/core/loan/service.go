// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/internal/platform/apperr"
	"github.com/taibuivan/locallibrary/internal/platform/clock"
	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/date"
)

const tracerName = "locallibrary/loan"

// Store is the subset of the copy repository loans need.
// [*instance.PostgresRepository] satisfies it.
type Store interface {
	ListInstances(ctx context.Context, f instance.Filter, limit, offset int) ([]*instance.Instance, int, error)
	GetInstance(ctx context.Context, id string) (*instance.Instance, error)
	SetDueBack(ctx context.Context, id string, due date.Date) error
	MarkReturned(ctx context.Context, id string) error
}

type Service struct {
	store  Store
	clock  clock.Clock
	tracer trace.Tracer
	logger *slog.Logger
}

func NewService(store Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		tracer: otel.Tracer(tracerName),
		logger: logger,
	}
}

// Today is the day renewal windows and overdue flags are computed from.
func (service *Service) Today() date.Date {
	return clock.Today(service.clock)
}

// Proposal is what the renewal form is opened with.
type Proposal struct {
	Instance     instance.View `json:"instance"`
	ProposedDate date.Date     `json:"proposed_renewal_date"`
	Earliest     date.Date     `json:"earliest"`
	Latest       date.Date     `json:"latest"`
}

// ProposeRenewal loads the copy and suggests a due date three weeks out.
func (service *Service) ProposeRenewal(ctx context.Context, id string) (*Proposal, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, err
	}

	bookCopy, err := service.store.GetInstance(ctx, id)
	if err != nil {
		return nil, err
	}

	today := service.Today()
	return &Proposal{
		Instance:     bookCopy.ViewAt(today),
		ProposedDate: ProposedRenewal(today),
		Earliest:     today,
		Latest:       LatestRenewal(today),
	}, nil
}

// Renew checks candidate against the window and stores it as the new due
// date. The copy's status is left untouched.
func (service *Service) Renew(ctx context.Context, id string, candidate date.Date) (*instance.Instance, error) {
	ctx, span := service.tracer.Start(ctx, "loan.renew",
		trace.WithAttributes(
			attribute.String("instance.id", id),
			attribute.String("renewal.date", candidate.String()),
		),
	)
	defer span.End()

	bookCopy, err := service.renew(ctx, id, candidate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "renewal failed")
		return nil, err
	}
	return bookCopy, nil
}

func (service *Service) renew(ctx context.Context, id string, candidate date.Date) (*instance.Instance, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if candidate.IsZero() {
		return nil, validate.RequiredError(FieldRenewalDate, msgRenewalRequired)
	}

	if _, err := service.store.GetInstance(ctx, id); err != nil {
		return nil, err
	}

	accepted, err := ValidateRenewalDate(candidate, service.Today())
	if err != nil {
		return nil, err
	}

	if err := service.store.SetDueBack(ctx, id, accepted); err != nil {
		return nil, err
	}

	service.logger.Info("loan_renewed",
		slog.String("instance_id", id),
		slog.String("due_back", accepted.String()),
	)
	return service.store.GetInstance(ctx, id)
}

// Return marks the copy available again and clears its borrower and due
// date.
func (service *Service) Return(ctx context.Context, id string) (*instance.Instance, error) {
	ctx, span := service.tracer.Start(ctx, "loan.return",
		trace.WithAttributes(attribute.String("instance.id", id)),
	)
	defer span.End()

	if err := requireStaff(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forbidden")
		return nil, err
	}

	if err := service.store.MarkReturned(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "return failed")
		return nil, err
	}

	service.logger.Info("loan_returned", slog.String("instance_id", id))
	return service.store.GetInstance(ctx, id)
}

// BorrowedBy lists the copies on loan to userID, soonest due first.
func (service *Service) BorrowedBy(ctx context.Context, userID string, limit, offset int) ([]*instance.Instance, int, error) {
	filter := instance.Filter{
		Statuses:   []status.Status{status.OnLoan},
		BorrowerID: userID,
	}
	return service.store.ListInstances(ctx, filter, limit, offset)
}

// OnLoan lists every copy on loan. With overdueOnly only copies due before
// today are returned.
func (service *Service) OnLoan(ctx context.Context, overdueOnly bool, limit, offset int) ([]*instance.Instance, int, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, 0, err
	}

	filter := instance.Filter{Statuses: []status.Status{status.OnLoan}}
	if overdueOnly {
		today := service.Today()
		filter.DueBefore = &today
	}
	return service.store.ListInstances(ctx, filter, limit, offset)
}

func requireStaff(ctx context.Context) error {
	role := ctxutil.CallerRole(ctx)
	if role == "" {
		return apperr.Unauthorized("Authentication required")
	}
	if !role.CanMarkReturned() {
		return apperr.Forbidden("Only library staff can manage loans")
	}
	return nil
}
