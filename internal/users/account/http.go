// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/tintero-app/tintero/internal/platform/request"
	"github.com/tintero-app/tintero/internal/platform/respond"
	"github.com/tintero-app/tintero/internal/platform/validate"
)

// Handler implements profile and author-program HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes are mounted under /account behind the auth gate.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/me", handler.me)
	router.Patch("/me", handler.updateMe)
	return router
}

// AuthorRoutes are mounted under /authors behind the author gate.
func (handler *Handler) AuthorRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/me/panel", handler.panel)
	return router
}

// AdminRoutes are mounted under /admin/users behind the admin gate.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/{id}/promote-author", handler.promote)
	return router
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
}

/*
me returns the authenticated user's own profile.

GET /api/v1/account/me
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
updateMe applies a partial update to the authenticated user's profile.

PATCH /api/v1/account/me

Request:
  - Body: updateProfileRequest (Username, Bio — absent fields are unchanged)
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Username: input.Username,
		Bio:      input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
promote turns a client account into an author account.

POST /api/v1/admin/users/{id}/promote-author

Response:
  - 200: User: Updated account
  - 409: ErrConflict: Account is not a client
*/
func (handler *Handler) promote(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.Promote(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
panel returns the author's published books and confirmed-sales stats.

GET /api/v1/authors/me/panel
*/
func (handler *Handler) panel(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	panel, err := handler.service.Panel(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, panel)
}
