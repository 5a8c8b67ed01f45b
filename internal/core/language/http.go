// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package language

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
	router.Get("/", handler.listLanguages)
	router.Get("/{id}", handler.getLanguage)

	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleLibrarian))

		staff.Post("/", handler.createLanguage)
		staff.Patch("/{id}", handler.updateLanguage)
		staff.Delete("/{id}", handler.deleteLanguage)
	})
}

func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	langs, err := handler.service.ListLanguages(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, langs)
}

func (handler *Handler) getLanguage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lang, err := handler.service.GetLanguage(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lang)
}

func (handler *Handler) createLanguage(writer http.ResponseWriter, request *http.Request) {
	var input Language
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateLanguage(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateLanguage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Language
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateLanguage(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteLanguage(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteLanguage(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
