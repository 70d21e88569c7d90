// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package banner

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tintero-app/tintero/internal/platform/middleware"
	requestutil "github.com/tintero-app/tintero/internal/platform/request"
	"github.com/tintero-app/tintero/internal/platform/respond"
	"github.com/tintero-app/tintero/internal/platform/sec"
	"github.com/tintero-app/tintero/internal/platform/validate"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the admin banner management router. The public side never
// addresses banners directly; they ride along with the catalog listing.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listBanners)
	router.Post("/", handler.createBanner)
	router.Patch("/{id}", handler.updateBanner)
	router.Delete("/{id}", handler.deleteBanner)

	return router
}

func (handler *Handler) listBanners(writer http.ResponseWriter, request *http.Request) {
	banners, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, banners)
}

func (handler *Handler) createBanner(writer http.ResponseWriter, request *http.Request) {
	var input Banner
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBanner(writer http.ResponseWriter, request *http.Request) {
	var input Banner
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBanner(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
