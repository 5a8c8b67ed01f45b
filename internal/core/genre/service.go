// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(ctx context.Context) ([]*Genre, error) {
	return service.repo.ListGenres(ctx)
}

func (service *Service) GetGenre(ctx context.Context, id int) (*Genre, error) {
	return service.repo.GetGenre(ctx, id)
}

func (service *Service) GetGenreBySlug(ctx context.Context, value string) (*Genre, error) {
	return service.repo.GetGenreBySlug(ctx, strings.ToLower(value))
}

func (service *Service) CreateGenre(ctx context.Context, g *Genre) error {
	if err := prepare(g); err != nil {
		return err
	}

	if err := service.repo.CreateGenre(ctx, g); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.Int("genre_id", g.ID), slog.String("slug", g.Slug))
	return nil
}

func (service *Service) UpdateGenre(ctx context.Context, id int, g *Genre) error {
	g.ID = id
	if err := prepare(g); err != nil {
		return err
	}

	if err := service.repo.UpdateGenre(ctx, g); err != nil {
		return err
	}

	service.logger.Info("genre_updated", slog.Int("genre_id", g.ID), slog.String("slug", g.Slug))
	return nil
}

func (service *Service) DeleteGenre(ctx context.Context, id int) error {
	if err := service.repo.DeleteGenre(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.Int("genre_id", id))
	return nil
}

// prepare trims the name, derives the slug and validates both. A client
// supplied slug is ignored.
func prepare(g *Genre) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Slug = slug.From(g.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, g.Name).MaxLen(FieldName, g.Name, maxNameLength)
	if g.Name != "" {
		validator.Custom(FieldName, g.Slug == "", "Must contain at least one Latin letter or digit")
	}
	return validator.Err()
}
