// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listGenres)
	router.Get("/{id}", handler.getGenre)
	router.Get("/by-slug/{slug}", handler.getGenreBySlug)

	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleLibrarian))

		staff.Post("/", handler.createGenre)
		staff.Patch("/{id}", handler.updateGenre)
		staff.Delete("/{id}", handler.deleteGenre)
	})
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.ListGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	g, err := handler.service.GetGenre(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, g)
}

func (handler *Handler) getGenreBySlug(writer http.ResponseWriter, request *http.Request) {
	g, err := handler.service.GetGenreBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, g)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input Genre
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateGenre(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Genre
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateGenre(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteGenre(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
