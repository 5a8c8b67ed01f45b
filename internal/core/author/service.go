// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package author

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

func (service *Service) ListAuthors(ctx context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.ListAuthors(ctx, filter, limit, offset)
}

func (service *Service) GetAuthor(ctx context.Context, id int) (*Author, error) {
	return service.repo.GetAuthor(ctx, id)
}

func (service *Service) CreateAuthor(ctx context.Context, author *Author) error {
	if err := prepare(author); err != nil {
		return err
	}

	if err := service.repo.CreateAuthor(ctx, author); err != nil {
		return err
	}

	service.logger.Info("author_created", slog.Int("author_id", author.ID), slog.String("name", author.String()))
	return nil
}

func (service *Service) UpdateAuthor(ctx context.Context, id int, author *Author) error {
	author.ID = id
	if err := prepare(author); err != nil {
		return err
	}

	if err := service.repo.UpdateAuthor(ctx, author); err != nil {
		return err
	}

	service.logger.Info("author_updated", slog.Int("author_id", author.ID))
	return nil
}

// DeleteAuthor removes the author; books that referenced them lose their
// author rather than being deleted.
func (service *Service) DeleteAuthor(ctx context.Context, id int) error {
	if err := service.repo.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.Int("author_id", id))
	return nil
}

func prepare(author *Author) error {
	author.FirstName = strings.TrimSpace(author.FirstName)
	author.LastName = strings.TrimSpace(author.LastName)

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, author.FirstName).MaxLen(FieldFirstName, author.FirstName, maxNameLength)
	validator.Required(FieldLastName, author.LastName).MaxLen(FieldLastName, author.LastName, maxNameLength)
	return validator.Err()
}
