// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"log/slog"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
)

type Service struct {
	repo   Repository
	visits VisitCounter
	logger *slog.Logger
}

func NewService(repo Repository, visits VisitCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		visits: visits,
		logger: logger,
	}
}

/*
Summary returns the catalog counts and records the caller's visit.

Callers without a visitor identity are not counted. A failing visit counter
is logged and reported as zero visits; it never fails the request.
*/
func (service *Service) Summary(ctx context.Context) (*Summary, error) {
	summary, err := service.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	visitor := ctxutil.VisitorKey(ctx)
	if visitor == "" {
		return summary, nil
	}

	visits, err := service.visits.Hit(ctx, visitor)
	if err != nil {
		service.logger.Warn("visit_counter_failed", slog.String("visitor", visitor), slog.Any("error", err))
		return summary, nil
	}

	summary.NumVisits = visits
	return summary, nil
}
