// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tintero-app/tintero/internal/catalog/banner"
	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/catalog/reference"
	"github.com/tintero-app/tintero/internal/orders/download"
	"github.com/tintero-app/tintero/internal/orders/purchase"
	"github.com/tintero-app/tintero/internal/platform/config"
	"github.com/tintero-app/tintero/internal/platform/constants"
	"github.com/tintero-app/tintero/internal/platform/middleware"
	"github.com/tintero-app/tintero/internal/platform/sec"
	"github.com/tintero-app/tintero/internal/users/account"
	"github.com/tintero-app/tintero/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register, recovery).
	Auth *auth.Handler

	// Account handles profile, author panel, and promotion routes.
	Account *account.Handler

	// Book handles the public catalog and its admin CRUD.
	Book *book.Handler

	// Reference manages category and age-rating lookups.
	Reference *reference.Handler

	// Banner manages promotional banner administration.
	Banner *banner.Handler

	// Purchase handles the purchase workflow.
	Purchase *purchase.Handler

	// Download handles the controlled-download workflow.
	Download *download.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/books", h.Book.Routes())
		api.Mount("/banners", h.Banner.Routes())
		api.Mount("/", h.Reference.Routes())

		// Authenticated user surface
		api.Group(func(user chi.Router) {
			user.Use(middleware.RequireAuth)

			user.Mount("/account", h.Account.Routes())
			user.Mount("/purchases", h.Purchase.Routes())
			user.Mount("/downloads", h.Download.Routes())
		})

		// Author surface
		api.Group(func(author chi.Router) {
			author.Use(middleware.RequireRole(sec.RoleAuthor))

			author.Mount("/authors", h.Account.AuthorRoutes())
		})

		// Back office
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))

			admin.Mount("/purchases", h.Purchase.AdminRoutes())
			admin.Mount("/downloads", h.Download.AdminRoutes())
			admin.Mount("/users", h.Account.AdminRoutes())
			admin.Get("/notifications", h.Download.Notifications)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
