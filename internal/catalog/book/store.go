// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package book

import (
	"context"
	"time"
)

type Repository interface {
	// List returns active books matching the filter, promotion-active books
	// first, then by title ascending. today anchors the promotion window.
	List(context context.Context, f Filter, today time.Time, limit, offset int) ([]*Book, int, error)

	// GetActive returns the active book with the given ID.
	GetActive(context context.Context, id string) (*Book, error)

	// Get returns the book with the given ID regardless of its active flag.
	// Administrative operations (sales history, purge) work on inactive
	// books too.
	Get(context context.Context, id string) (*Book, error)

	// ListByAuthor returns all books published by the given author account.
	ListByAuthor(context context.Context, authorID string) ([]*Book, error)

	Create(context context.Context, b *Book) error
	Update(context context.Context, b *Book) error
	Delete(context context.Context, id string) error
}
