// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/locallibrary/internal/platform/validate"
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

func (service *Service) ListLanguages(ctx context.Context) ([]*Language, error) {
	return service.repo.ListLanguages(ctx)
}

func (service *Service) GetLanguage(ctx context.Context, id int) (*Language, error) {
	return service.repo.GetLanguage(ctx, id)
}

func (service *Service) CreateLanguage(ctx context.Context, l *Language) error {
	if err := prepare(l); err != nil {
		return err
	}

	if err := service.repo.CreateLanguage(ctx, l); err != nil {
		return err
	}

	service.logger.Info("language_created", slog.Int("language_id", l.ID), slog.String("name", l.Name))
	return nil
}

func (service *Service) UpdateLanguage(ctx context.Context, id int, l *Language) error {
	l.ID = id
	if err := prepare(l); err != nil {
		return err
	}

	if err := service.repo.UpdateLanguage(ctx, l); err != nil {
		return err
	}

	service.logger.Info("language_updated", slog.Int("language_id", l.ID))
	return nil
}

func (service *Service) DeleteLanguage(ctx context.Context, id int) error {
	if err := service.repo.DeleteLanguage(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("language_deleted", slog.Int("language_id", id))
	return nil
}

func prepare(l *Language) error {
	l.Name = strings.TrimSpace(l.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, l.Name).MaxLen(FieldName, l.Name, maxNameLength)
	return validator.Err()
}
