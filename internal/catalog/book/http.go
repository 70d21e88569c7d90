// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package book

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tintero-app/tintero/internal/catalog/banner"
	"github.com/tintero-app/tintero/internal/catalog/reference"
	"github.com/tintero-app/tintero/internal/platform/middleware"
	requestutil "github.com/tintero-app/tintero/internal/platform/request"
	"github.com/tintero-app/tintero/internal/platform/respond"
	"github.com/tintero-app/tintero/internal/platform/sec"
	"github.com/tintero-app/tintero/pkg/pagination"
)

// OwnedPurchase is the fragment of purchase data embedded in a book detail
// response when the caller already bought the book.
type OwnedPurchase struct {
	ID         string `json:"id"`
	Quantity   int    `json:"quantity"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

// PurchaseFinder reports the caller's confirmed purchase of a book, or nil
// when there is none. Satisfied by an adapter over the orders layer; declared
// here so the catalog does not import it.
type PurchaseFinder interface {
	ConfirmedByBook(ctx context.Context, accountID, bookID string) (*OwnedPurchase, error)
}

// OrderEndpoints are the purchase and download operations that hang off book
// URLs. They are injected as plain handlers so the catalog package stays
// decoupled from the orders packages.
type OrderEndpoints struct {
	CreatePurchase  http.HandlerFunc
	SalesHistory    http.HandlerFunc
	PurgeSales      http.HandlerFunc
	RequestDownload http.HandlerFunc
}

type Handler struct {
	service    *Service
	banners    *banner.Service
	references *reference.Service
	purchases  PurchaseFinder
	orders     OrderEndpoints
	pageSize   int
}

func NewHandler(service *Service, banners *banner.Service, references *reference.Service, purchases PurchaseFinder, orders OrderEndpoints, pageSize int) *Handler {
	return &Handler{
		service:    service,
		banners:    banners,
		references: references,
		purchases:  purchases,
		orders:     orders,
		pageSize:   pageSize,
	}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Authenticated workflows
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/{id}/purchase", handler.orders.CreatePurchase)
		authRoute.Get("/{id}/sales", handler.orders.SalesHistory)
		authRoute.Post("/{id}/download-request", handler.orders.RequestDownload)
	})

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.create)
		adminRoute.Put("/{id}", handler.update)
		adminRoute.Delete("/{id}", handler.delete)
		adminRoute.Delete("/{id}/sales", handler.orders.PurgeSales)
	})

	return router
}

// catalogPage bundles everything the storefront landing page renders in a
// single round trip.
type catalogPage struct {
	Books      []*Book                `json:"books"`
	Banners    []*banner.Banner       `json:"banners"`
	Categories []*reference.Category  `json:"categories"`
	AgeRatings []*reference.AgeRating `json:"age_ratings"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter := ParseFilter(request.URL.Query())
	params := pagination.FromRequest(request)
	params.Limit = handler.pageSize // catalog pages have a fixed size
	today := time.Now()

	books, total, err := handler.service.List(request.Context(), filter, today, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	banners, err := handler.banners.Visible(request.Context(), today)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, err := handler.references.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ratings, err := handler.references.ListAgeRatings(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := catalogPage{
		Books:      books,
		Banners:    banners,
		Categories: categories,
		AgeRatings: ratings,
	}
	respond.Paginated(writer, page, pagination.NewMeta(params.Page, params.Limit, total))
}

// bookDetail augments a book with the caller's purchase of it, if any.
type bookDetail struct {
	*Book
	Purchase *OwnedPurchase `json:"purchase,omitempty"`
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetActive(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail := bookDetail{Book: found}
	if claims := requestutil.Claims(request); claims != nil {
		owned, err := handler.purchases.ConfirmedByBook(request.Context(), claims.UserID, found.ID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		detail.Purchase = owned
	}

	respond.OK(writer, detail)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
