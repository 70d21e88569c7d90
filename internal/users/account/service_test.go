// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/platform/apperr"
	"github.com/tintero-app/tintero/internal/platform/sec"
	"github.com/tintero-app/tintero/internal/users/account"
	"github.com/tintero-app/tintero/internal/users/auth"
)

// fakeAccountRepo keeps accounts in memory and mimics the store's
// client-only promotion rule.
type fakeAccountRepo struct {
	accounts map[string]*auth.User
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	u, ok := r.accounts[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return u, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, user *auth.User) error {
	r.accounts[user.ID] = user
	return nil
}

func (r *fakeAccountRepo) Promote(_ context.Context, id string) error {
	u, ok := r.accounts[id]
	if !ok {
		return apperr.NotFound("User")
	}
	if u.Role != sec.RoleClient {
		return apperr.Conflict("Only client accounts can become authors")
	}
	u.Role = sec.RoleAuthor
	return nil
}

// fakeBookRepo only serves the author listing.
type fakeBookRepo struct {
	byAuthor map[string][]*book.Book
}

func (r *fakeBookRepo) List(_ context.Context, _ book.Filter, _ time.Time, _, _ int) ([]*book.Book, int, error) {
	return nil, 0, nil
}
func (r *fakeBookRepo) GetActive(_ context.Context, _ string) (*book.Book, error) {
	return nil, apperr.NotFound("Book")
}
func (r *fakeBookRepo) Get(_ context.Context, _ string) (*book.Book, error) {
	return nil, apperr.NotFound("Book")
}
func (r *fakeBookRepo) ListByAuthor(_ context.Context, authorID string) ([]*book.Book, error) {
	return r.byAuthor[authorID], nil
}
func (r *fakeBookRepo) Create(_ context.Context, _ *book.Book) error { return nil }
func (r *fakeBookRepo) Update(_ context.Context, _ *book.Book) error { return nil }
func (r *fakeBookRepo) Delete(_ context.Context, _ string) error     { return nil }

// fakeStats returns fixed confirmed-sales aggregates.
type fakeStats struct {
	copies  int
	revenue int64
}

func (s *fakeStats) AuthorStats(_ context.Context, _ string) (int, int64, error) {
	return s.copies, s.revenue, nil
}

func newTestService(accounts *fakeAccountRepo, books map[string][]*book.Book, stats *fakeStats) *account.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bookService := book.NewService(&fakeBookRepo{byAuthor: books}, logger)
	if stats == nil {
		stats = &fakeStats{}
	}
	return account.NewService(accounts, bookService, stats, logger)
}

/*
TestAccountService_UpdateProfile checks the partial-update semantics: a nil
field leaves the stored value untouched.
*/
func TestAccountService_UpdateProfile(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[string]*auth.User{
		"u-1": {ID: "u-1", Username: "ana", Bio: "old bio", Role: sec.RoleClient},
	}}
	service := newTestService(accounts, nil, nil)

	bio := "Writes about ink."
	user, err := service.UpdateProfile(context.Background(), "u-1", account.UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "Writes about ink.", user.Bio)

	username := "ab"
	_, err = service.UpdateProfile(context.Background(), "u-1", account.UpdateProfileInput{Username: &username})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestAccountService_Promote checks the client-to-author transition and the
conflict for every other starting role.
*/
func TestAccountService_Promote(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[string]*auth.User{
		"u-1": {ID: "u-1", Username: "ana", Role: sec.RoleClient},
		"u-2": {ID: "u-2", Username: "max", Role: sec.RoleAdmin},
	}}
	service := newTestService(accounts, nil, nil)

	user, err := service.Promote(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAuthor, user.Role)

	// Already an author now.
	_, err = service.Promote(context.Background(), "u-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	_, err = service.Promote(context.Background(), "u-2")
	require.Error(t, err)
}

/*
TestAccountService_Panel checks the back-office aggregate: book count from
the catalog, sales figures from the stats provider, and the truncated
author share.
*/
func TestAccountService_Panel(t *testing.T) {
	accounts := &fakeAccountRepo{accounts: map[string]*auth.User{}}
	books := map[string][]*book.Book{
		"a-1": {
			{ID: "b-1", Title: "Inkwell", AuthorID: "a-1"},
			{ID: "b-2", Title: "Quill", AuthorID: "a-1"},
		},
	}
	service := newTestService(accounts, books, &fakeStats{copies: 7, revenue: 2997})

	panel, err := service.Panel(context.Background(), "a-1")
	require.NoError(t, err)

	assert.Len(t, panel.Books, 2)
	assert.Equal(t, 2, panel.Stats.BooksPublished)
	assert.Equal(t, 7, panel.Stats.CopiesSold)
	assert.Equal(t, int64(2997), panel.Stats.RevenueCents)
	assert.Equal(t, "29.97", panel.Stats.Revenue)
	assert.Equal(t, int64(2697), panel.Stats.AuthorShareCents)
	assert.Equal(t, "26.97", panel.Stats.AuthorShare)
}

/*
TestAccountService_Panel_NoBooks checks the empty panel for a fresh author.
*/
func TestAccountService_Panel_NoBooks(t *testing.T) {
	service := newTestService(&fakeAccountRepo{accounts: map[string]*auth.User{}}, nil, nil)

	panel, err := service.Panel(context.Background(), "a-9")
	require.NoError(t, err)

	assert.Empty(t, panel.Books)
	assert.Equal(t, 0, panel.Stats.BooksPublished)
	assert.Equal(t, "0.00", panel.Stats.Revenue)
}
