// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/locallibrary/internal/platform/validate"
	"github.com/taibuivan/locallibrary/pkg/slice"
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

func (service *Service) ListBooks(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.ListBooks(ctx, filter, limit, offset)
}

func (service *Service) GetBook(ctx context.Context, id int) (*Book, error) {
	return service.repo.GetBook(ctx, id)
}

// CreateBook stores a new book and returns it hydrated.
func (service *Service) CreateBook(ctx context.Context, in *Input) (*Book, error) {
	if err := prepare(in); err != nil {
		return nil, err
	}

	id, err := service.repo.CreateBook(ctx, in)
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.Int("book_id", id),
		slog.String("title", in.Title),
		slog.Int("genres", len(in.GenreIDs)),
	)
	return service.repo.GetBook(ctx, id)
}

// UpdateBook replaces the book's writable fields. Omitted genre_ids clear
// the book's genres.
func (service *Service) UpdateBook(ctx context.Context, id int, in *Input) (*Book, error) {
	if err := prepare(in); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateBook(ctx, id, in); err != nil {
		return nil, err
	}

	service.logger.Info("book_updated", slog.Int("book_id", id))
	return service.repo.GetBook(ctx, id)
}

func (service *Service) DeleteBook(ctx context.Context, id int) error {
	if err := service.repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.Int("book_id", id))
	return nil
}

// CountAvailable returns how many copies of the book can be borrowed now.
func (service *Service) CountAvailable(ctx context.Context, id int) (int, error) {
	return service.repo.CountAvailable(ctx, id)
}

func prepare(in *Input) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.GenreIDs = slice.Unique(in.GenreIDs)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, in.Title).MaxLen(FieldTitle, in.Title, maxTitleLength)
	validator.MaxLen(FieldSummary, in.Summary, maxSummaryLength)
	validator.Required(FieldISBN, in.ISBN).ExactLen(FieldISBN, in.ISBN, isbnLength)
	validator.PositiveID(FieldAuthorID, in.AuthorID)
	validator.PositiveID(FieldLanguageID, in.LanguageID)

	invalidGenre := slice.Count(in.GenreIDs, func(id int) bool { return id <= 0 }) > 0
	validator.Custom(FieldGenreIDs, invalidGenre, "Must contain positive identifiers only")
	return validator.Err()
}
