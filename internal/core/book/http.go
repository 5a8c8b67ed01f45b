// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/pkg/pagination"
	"github.com/taibuivan/locallibrary/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
	router.Get("/{id}/available", handler.countAvailable)

	// Library staff
	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleLibrarian))

		staff.Post("/", handler.createBook)
		staff.Patch("/{id}", handler.updateBook)
		staff.Delete("/{id}", handler.deleteBook)
	})
}

// listBooks supports ?q=, ?author_id=, ?language_id= and ?genre_id=.
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		Query:      query.Trimmed(values, "q"),
		AuthorID:   query.OptionalInt(values, "author_id"),
		LanguageID: query.OptionalInt(values, "language_id"),
		GenreID:    query.OptionalInt(values, "genre_id"),
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) countAvailable(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.CountAvailable(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"book_id": bookID, "available_count": count})
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.CreateBook(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, b)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	b, err := handler.service.UpdateBook(request.Context(), bookID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBook(request.Context(), bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
