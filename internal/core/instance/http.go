// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package instance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/core/instance/status"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/pkg/pagination"
	"github.com/taibuivan/locallibrary/pkg/query"
	"github.com/taibuivan/locallibrary/pkg/slice"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listInstances)
	router.Get("/{id}", handler.getInstance)

	// Library staff
	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleLibrarian))

		staff.Post("/", handler.createInstance)
		staff.Patch("/{id}", handler.updateInstance)
		staff.Delete("/{id}", handler.deleteInstance)
	})
}

// listInstances supports ?book_id=, ?status=a,o and, for staff, ?borrower_id=.
func (handler *Handler) listInstances(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := Filter{
		BookID:     query.OptionalInt(values, "book_id"),
		Statuses:   slice.Map(query.StringSlice(values.Get("status")), func(s string) status.Status { return status.Status(s) }),
		BorrowerID: query.Trimmed(values, "borrower_id"),
	}

	instances, total, err := handler.service.ListInstances(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, handler.views(request, instances), pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUIDParam(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	i, err := handler.service.GetInstance(request.Context(), instanceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.views(request, []*Instance{i})[0])
}

// views hides borrowers from callers outside library staff.
func (handler *Handler) views(request *http.Request, instances []*Instance) []View {
	views := Views(instances, handler.service.Today())
	if SeesBorrowers(request.Context()) {
		return views
	}
	return slice.Map(views, View.WithoutBorrower)
}

func (handler *Handler) createInstance(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	i, err := handler.service.CreateInstance(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, i.ViewAt(handler.service.Today()))
}

func (handler *Handler) updateInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUIDParam(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	i, err := handler.service.UpdateInstance(request.Context(), instanceID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, i.ViewAt(handler.service.Today()))
}

func (handler *Handler) deleteInstance(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUIDParam(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteInstance(request.Context(), instanceID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
