// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package purchase

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tintero-app/tintero/internal/platform/request"
	"github.com/tintero-app/tintero/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes are mounted under /purchases behind the auth gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{id}", handler.get)
	return router
}

// AdminRoutes are mounted under /admin/purchases behind the admin gate.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.pending)
	router.Post("/{id}/confirm", handler.confirm)
	return router
}

type createRequest struct {
	Quantity int `json:"quantity"`
}

// Create handles POST /books/{id}/purchase.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, created, err := handler.service.Create(request.Context(), userID, requestutil.ID(request, "id"), input.Quantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.Created(writer, p)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Get(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) confirm(writer http.ResponseWriter, request *http.Request) {
	p, err := handler.service.Confirm(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, p)
}

func (handler *Handler) pending(writer http.ResponseWriter, request *http.Request) {
	purchases, err := handler.service.Pending(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, purchases)
}

// Sales handles GET /books/{id}/sales for admins and the book's author.
func (handler *Handler) Sales(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	history, err := handler.service.SalesHistory(request.Context(), claims, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, history)
}

// Purge handles DELETE /books/{id}/sales for admins.
func (handler *Handler) Purge(writer http.ResponseWriter, request *http.Request) {
	removed, err := handler.service.Purge(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int64{"removed": removed})
}
