// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package purchase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/platform/apperr"
	"github.com/tintero-app/tintero/internal/platform/dberr"
	"github.com/tintero-app/tintero/internal/platform/sec"
	"github.com/tintero-app/tintero/internal/platform/validate"
	"github.com/tintero-app/tintero/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	books  *book.Service
	logger *slog.Logger
}

func NewService(repo Repository, books *book.Service, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		logger: logger,
	}
}

/*
Create places a purchase request for the given book.

A caller who already holds a confirmed purchase of the book gets that
purchase back, flagged AlreadyOwned, and no new row is written. The returned
bool reports whether a row was actually created.
*/
func (service *Service) Create(ctx context.Context, userID, bookID string, quantity int) (*Purchase, bool, error) {
	validator := &validate.Validator{}
	validator.Custom(book.FieldQuantity, quantity < 1, "Must be at least 1")
	if err := validator.Err(); err != nil {
		return nil, false, err
	}

	item, err := service.books.GetActive(ctx, bookID)
	if err != nil {
		return nil, false, err
	}

	owned, err := service.repo.FindConfirmed(ctx, userID, bookID)
	if err == nil {
		owned.AlreadyOwned = true
		return owned, false, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, false, err
	}

	p := &Purchase{
		ID:         uuidv7.New(),
		BookID:     item.ID,
		BookTitle:  item.Title,
		UserID:     userID,
		Quantity:   quantity,
		TotalCents: item.PriceCents * int64(quantity),
		Status:     StatusRequested,
	}
	if err := service.repo.Create(ctx, p); err != nil {
		return nil, false, err
	}
	p.Decorate()

	service.logger.Info("purchase_requested",
		slog.String("purchase_id", p.ID),
		slog.String("book_id", p.BookID),
		slog.Int("quantity", p.Quantity),
		slog.Int64("total_cents", p.TotalCents),
	)
	return p, true, nil
}

// Get returns a purchase to its owner. Any other caller gets a not-found so
// purchase ids leak no information.
func (service *Service) Get(ctx context.Context, callerID, id string) (*Purchase, error) {
	p, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != callerID {
		return nil, apperr.NotFound("Purchase")
	}
	return p, nil
}

// Confirm finalizes a purchase and issues its fulfillment token. Exactly one
// of any set of concurrent confirms succeeds; the rest get a conflict.
func (service *Service) Confirm(ctx context.Context, id string) (*Purchase, error) {
	p, err := service.repo.Confirm(ctx, id, uuid.NewString())
	if err != nil {
		return nil, err
	}

	service.logger.Info("purchase_confirmed",
		slog.String("purchase_id", p.ID),
		slog.String("book_id", p.BookID),
	)
	return p, nil
}

// Pending returns the admin confirmation queue, newest first.
func (service *Service) Pending(ctx context.Context) ([]*Purchase, error) {
	return service.repo.ListPending(ctx)
}

// SalesHistory returns a book's purchases plus the revenue aggregate. Only an
// admin or the book's own author may see it.
func (service *Service) SalesHistory(ctx context.Context, caller *sec.AuthClaims, bookID string) (*SalesHistory, error) {
	item, err := service.books.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !caller.UserRole().IsAdmin() && item.AuthorID != caller.UserID {
		return nil, apperr.Forbidden("Not your book")
	}

	purchases, err := service.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return &SalesHistory{Purchases: purchases, Summary: Summarize(purchases)}, nil
}

// Purge erases a book's entire sales history.
func (service *Service) Purge(ctx context.Context, bookID string) (int64, error) {
	removed, err := service.repo.PurgeByBook(ctx, bookID)
	if err != nil {
		return 0, err
	}

	service.logger.Warn("sales_history_purged",
		slog.String("book_id", bookID),
		slog.Int64("removed", removed),
	)
	return removed, nil
}

// AuthorStats aggregates confirmed sales across all of an author's books.
func (service *Service) AuthorStats(ctx context.Context, authorID string) (copies int, revenueCents int64, err error) {
	return service.repo.AuthorStats(ctx, authorID)
}

// ConfirmedByBook satisfies [book.PurchaseFinder] so the catalog detail page
// can embed the caller's purchase. A missing purchase is not an error.
func (service *Service) ConfirmedByBook(ctx context.Context, accountID, bookID string) (*book.OwnedPurchase, error) {
	p, err := service.repo.FindConfirmed(ctx, accountID, bookID)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book.OwnedPurchase{
		ID:         p.ID,
		Quantity:   p.Quantity,
		TotalCents: p.TotalCents,
		Total:      p.Total,
	}, nil
}
