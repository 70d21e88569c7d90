// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

/*
Package account handles user profile management and the author program.

It provides functionalities for users to view and update their private
identity data, for admins to promote clients into authors, and for authors
to inspect the performance of their published books.

# Architecture

  - Entities: AuthorPanel, AuthorStats (DTOs).
  - Domain: This package depends on the auth package for the User entity.
  - Contracts: Sales aggregates come in through [SalesStatsProvider] so the
    package stays decoupled from the orders layer.
*/
package account

import (
	"context"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/users/auth"
)

// # Domain Entities

// AuthorStats aggregates an author's confirmed sales across all their books.
type AuthorStats struct {
	BooksPublished   int    `json:"books_published"`
	CopiesSold       int    `json:"copies_sold"`
	RevenueCents     int64  `json:"revenue_cents"`
	Revenue          string `json:"revenue"`
	AuthorShareCents int64  `json:"author_share_cents"`
	AuthorShare      string `json:"author_share"`
}

// AuthorPanel is the author's back-office view: their published books plus
// the confirmed-sales aggregate.
type AuthorPanel struct {
	Books []*book.Book `json:"books"`
	Stats AuthorStats  `json:"stats"`
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
// It is satisfied by [auth.PostgresUserRepository].
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Promote rewrites the account's role from client to author.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.Conflict when the account is not a client
	*/
	Promote(context context.Context, id string) error
}

// SalesStatsProvider reports confirmed-sales aggregates for an author.
// It is satisfied by the purchase service.
type SalesStatsProvider interface {
	/*
		AuthorStats sums confirmed sales across all of an author's books.

		Parameters:
		  - context: context.Context
		  - authorID: string

		Returns:
		  - int: Copies sold
		  - int64: Revenue in cents
		  - error: Aggregation failures
	*/
	AuthorStats(context context.Context, authorID string) (int, int64, error)
}
