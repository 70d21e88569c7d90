// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package account

import (
	"context"
	"log/slog"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/platform/constants"
	"github.com/tintero-app/tintero/internal/platform/validate"
	"github.com/tintero-app/tintero/internal/users/auth"
	"github.com/tintero-app/tintero/pkg/convert"
)

// Service implements profile and author-program use cases.
type Service struct {
	accounts AccountRepository
	books    *book.Service
	sales    SalesStatsProvider
	logger   *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(accounts AccountRepository, books *book.Service, sales SalesStatsProvider, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		books:    books,
		sales:    sales,
		logger:   logger,
	}
}

// Profile returns the caller's own account.
func (service *Service) Profile(ctx context.Context, userID string) (*auth.User, error) {
	return service.accounts.FindByID(ctx, userID)
}

// UpdateProfileInput carries the patchable profile fields. Nil means "leave
// unchanged".
type UpdateProfileInput struct {
	Username *string
	Bio      *string
}

// UpdateProfile applies a partial update to the caller's account.
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accounts.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, user.Username).
		MinLen(auth.FieldUsername, user.Username, 3).
		MaxLen(auth.FieldBio, user.Bio, 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.accounts.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Promote turns a client account into an author account. Any other role is
// rejected with a conflict.
func (service *Service) Promote(ctx context.Context, userID string) (*auth.User, error) {
	if err := service.accounts.Promote(ctx, userID); err != nil {
		return nil, err
	}

	service.logger.Info("author_promoted", slog.String("user_id", userID))
	return service.accounts.FindByID(ctx, userID)
}

// Panel assembles the author's back-office view: their books plus stats over
// confirmed sales only.
func (service *Service) Panel(ctx context.Context, authorID string) (*AuthorPanel, error) {
	books, err := service.books.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	copies, revenueCents, err := service.sales.AuthorStats(ctx, authorID)
	if err != nil {
		return nil, err
	}

	authorShareCents := revenueCents * constants.AuthorSharePercent / 100
	return &AuthorPanel{
		Books: books,
		Stats: AuthorStats{
			BooksPublished:   len(books),
			CopiesSold:       copies,
			RevenueCents:     revenueCents,
			Revenue:          convert.CentsToDecimalString(revenueCents),
			AuthorShareCents: authorShareCents,
			AuthorShare:      convert.CentsToDecimalString(authorShareCents),
		},
	}, nil
}
