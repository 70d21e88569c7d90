// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package purchase

import "context"

/*
Repository defines the persistence contract for purchases.

State transitions are expressed as conditional updates so that the store can
guarantee at most one concurrent confirm succeeds.
*/
type Repository interface {
	// Create inserts a purchase in the requested state and fills the
	// generated timestamps.
	Create(ctx context.Context, p *Purchase) error

	// Get returns a purchase by id, with book title and buyer username joined.
	Get(ctx context.Context, id string) (*Purchase, error)

	// FindConfirmed returns the caller's confirmed purchase of a book, or
	// dberr.ErrNotFound when there is none.
	FindConfirmed(ctx context.Context, userID, bookID string) (*Purchase, error)

	// Confirm transitions a purchase from requested to confirmed, assigns the
	// fulfillment token, and stamps the book's last sale, all in a single
	// transaction. It returns apperr Conflict when the purchase exists but is
	// not in the requested state.
	Confirm(ctx context.Context, id, token string) (*Purchase, error)

	// ListPending returns all requested purchases, newest first.
	ListPending(ctx context.Context) ([]*Purchase, error)

	// ListByBook returns every purchase of a book, newest first.
	ListByBook(ctx context.Context, bookID string) ([]*Purchase, error)

	// PurgeByBook deletes all purchases of a book and clears the book's last
	// sale marker in a single transaction. It returns the number of rows
	// removed.
	PurgeByBook(ctx context.Context, bookID string) (int64, error)

	// AuthorStats aggregates confirmed sales across all of an author's books.
	AuthorStats(ctx context.Context, authorID string) (copies int, revenueCents int64, err error)
}
