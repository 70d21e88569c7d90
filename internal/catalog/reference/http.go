// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package reference

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

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/categories", handler.listCategories)
	router.Get("/age-ratings", handler.listAgeRatings)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/categories", handler.createCategory)
		adminRoute.Delete("/categories/{id}", handler.deleteCategory)
		adminRoute.Post("/age-ratings", handler.createAgeRating)
		adminRoute.Delete("/age-ratings/{id}", handler.deleteAgeRating)
	})

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCategory(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) listAgeRatings(writer http.ResponseWriter, request *http.Request) {
	ratings, err := handler.service.ListAgeRatings(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ratings)
}

func (handler *Handler) createAgeRating(writer http.ResponseWriter, request *http.Request) {
	var input AgeRating
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.service.CreateAgeRating(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteAgeRating(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAgeRating(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
