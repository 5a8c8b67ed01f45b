// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/core/instance"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/pagination"
	"github.com/taibuivan/locallibrary/pkg/query"
)

const resourceName = "BookInstance"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts every loan endpoint behind authentication. Staff
// checks happen in the service.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/mine", handler.listMine)
		authed.Get("/", handler.listOnLoan)
		authed.Get("/{id}/renew", handler.proposeRenewal)
		authed.Post("/{id}/renew", handler.renew)
		authed.Post("/{id}/return", handler.markReturned)
	})
}

// renewRequest is the body of a renewal.
type renewRequest struct {
	RenewalDate date.Date `json:"renewal_date"`
}

func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	copies, total, err := handler.service.BorrowedBy(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, instance.Views(copies, handler.service.Today()), pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// listOnLoan supports ?overdue=true.
func (handler *Handler) listOnLoan(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	overdueOnly := query.Bool(request.URL.Query(), "overdue")

	copies, total, err := handler.service.OnLoan(request.Context(), overdueOnly, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, instance.Views(copies, handler.service.Today()), pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) proposeRenewal(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUIDParam(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	proposal, err := handler.service.ProposeRenewal(request.Context(), instanceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, proposal)
}

func (handler *Handler) renew(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUIDParam(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input renewRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	renewed, err := handler.service.Renew(request.Context(), instanceID, input.RenewalDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, renewed.ViewAt(handler.service.Today()))
}

func (handler *Handler) markReturned(writer http.ResponseWriter, request *http.Request) {
	instanceID, err := requestutil.UUIDParam(request, "id", resourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	returned, err := handler.service.Return(request.Context(), instanceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, returned.ViewAt(handler.service.Today()))
}
