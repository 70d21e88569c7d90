// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package download

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

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

// Routes are mounted under /downloads behind the auth gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{token}", handler.fulfill)
	return router
}

// AdminRoutes are mounted under /admin/downloads behind the admin gate.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/{id}/confirm", handler.confirm)
	return router
}

// Create handles POST /books/{id}/download-request.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	d, created, err := handler.service.Create(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.Created(writer, d)
		return
	}
	respond.OK(writer, d)
}

func (handler *Handler) confirm(writer http.ResponseWriter, request *http.Request) {
	d, err := handler.service.Confirm(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, d)
}

// fulfill streams the purchased file as an attachment. The state transition
// is committed before the first byte goes out.
func (handler *Handler) fulfill(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Fulfill(request.Context(), userID, requestutil.Param(request, "token"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer result.Content.Close()

	writer.Header().Set("Content-Type", "application/pdf")
	writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	if result.Size > 0 {
		writer.Header().Set("Content-Length", strconv.FormatInt(result.Size, 10))
	}
	writer.WriteHeader(http.StatusOK)

	// A copy error here means the client went away; the transition is
	// already committed, so there is nothing to roll back.
	_, _ = io.Copy(writer, result.Content)
}

// Notifications handles GET /admin/notifications.
func (handler *Handler) Notifications(writer http.ResponseWriter, request *http.Request) {
	notifications, err := handler.service.Inbox(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, notifications)
}
