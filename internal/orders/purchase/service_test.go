// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package purchase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/orders/purchase"
	"github.com/tintero-app/tintero/internal/platform/apperr"
	"github.com/tintero-app/tintero/internal/platform/dberr"
	"github.com/tintero-app/tintero/internal/platform/sec"
)

// fakeBookRepo serves a fixed catalog out of memory.
type fakeBookRepo struct {
	books map[string]*book.Book
}

func (r *fakeBookRepo) List(_ context.Context, _ book.Filter, _ time.Time, _, _ int) ([]*book.Book, int, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) GetActive(_ context.Context, id string) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok || !b.Active {
		return nil, apperr.NotFound("Book")
	}
	return b, nil
}

func (r *fakeBookRepo) Get(_ context.Context, id string) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return b, nil
}

func (r *fakeBookRepo) ListByAuthor(_ context.Context, _ string) ([]*book.Book, error) {
	return nil, nil
}

func (r *fakeBookRepo) Create(_ context.Context, _ *book.Book) error { return nil }
func (r *fakeBookRepo) Update(_ context.Context, _ *book.Book) error { return nil }
func (r *fakeBookRepo) Delete(_ context.Context, _ string) error     { return nil }

// fakePurchaseRepo keeps purchases in memory and mimics the store's
// transactional semantics: Confirm is a guarded compare-and-swap that also
// stamps the book's last sale, and PurgeByBook clears that stamp along with
// the rows.
type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[string]*purchase.Purchase
	lastSale  map[string]*time.Time
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{
		purchases: map[string]*purchase.Purchase{},
		lastSale:  map[string]*time.Time{},
	}
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *purchase.Purchase) error {
	p.RequestedAt = time.Now()
	r.purchases[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) Get(_ context.Context, id string) (*purchase.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, apperr.NotFound("Purchase")
	}
	return p, nil
}

func (r *fakePurchaseRepo) FindConfirmed(_ context.Context, userID, bookID string) (*purchase.Purchase, error) {
	for _, p := range r.purchases {
		if p.UserID == userID && p.BookID == bookID && p.Status == purchase.StatusConfirmed {
			return p, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakePurchaseRepo) Confirm(_ context.Context, id, token string) (*purchase.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.purchases[id]
	if !ok {
		return nil, apperr.NotFound("Purchase")
	}
	if p.Status != purchase.StatusRequested {
		return nil, apperr.Conflict("Purchase is not awaiting confirmation")
	}
	now := time.Now()
	p.Status = purchase.StatusConfirmed
	p.ConfirmedAt = &now
	p.FulfillmentToken = &token
	r.lastSale[p.BookID] = &now
	return p, nil
}

func (r *fakePurchaseRepo) ListPending(_ context.Context) ([]*purchase.Purchase, error) {
	return nil, nil
}

func (r *fakePurchaseRepo) ListByBook(_ context.Context, bookID string) ([]*purchase.Purchase, error) {
	var out []*purchase.Purchase
	for _, p := range r.purchases {
		if p.BookID == bookID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) PurgeByBook(_ context.Context, bookID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, p := range r.purchases {
		if p.BookID == bookID {
			delete(r.purchases, id)
			removed++
		}
	}
	r.lastSale[bookID] = nil
	return removed, nil
}

func (r *fakePurchaseRepo) AuthorStats(_ context.Context, _ string) (int, int64, error) {
	return 0, 0, nil
}

func newTestService(repo purchase.Repository, books map[string]*book.Book) *purchase.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bookService := book.NewService(&fakeBookRepo{books: books}, logger)
	return purchase.NewService(repo, bookService, logger)
}

func catalogWith(b *book.Book) map[string]*book.Book {
	return map[string]*book.Book{b.ID: b}
}

/*
TestPurchaseService_Create checks the request path: total derivation, the
requested status, and the invalid-quantity rejection.
*/
func TestPurchaseService_Create(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", PriceCents: 999, Active: true}
	repo := newFakePurchaseRepo()
	service := newTestService(repo, catalogWith(item))

	p, created, err := service.Create(context.Background(), "u-1", "b-1", 3)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, purchase.StatusRequested, p.Status)
	assert.Equal(t, int64(2997), p.TotalCents)
	assert.Equal(t, "29.97", p.Total)
	assert.Equal(t, "Inkwell", p.BookTitle)
	assert.False(t, p.AlreadyOwned)
	assert.Nil(t, p.FulfillmentToken)

	_, _, err = service.Create(context.Background(), "u-1", "b-1", 0)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestPurchaseService_Create_AlreadyOwned checks that a confirmed purchase of
the same book short-circuits the request instead of inserting a second row.
*/
func TestPurchaseService_Create_AlreadyOwned(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", PriceCents: 999, Active: true}
	repo := newFakePurchaseRepo()
	repo.purchases["p-1"] = &purchase.Purchase{
		ID: "p-1", BookID: "b-1", UserID: "u-1",
		Quantity: 1, TotalCents: 999, Status: purchase.StatusConfirmed,
	}
	service := newTestService(repo, catalogWith(item))

	p, created, err := service.Create(context.Background(), "u-1", "b-1", 2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, p.AlreadyOwned)
	assert.Equal(t, "p-1", p.ID)
	assert.Len(t, repo.purchases, 1)

	// A different caller is not blocked by someone else's purchase.
	other, created, err := service.Create(context.Background(), "u-2", "b-1", 1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, other.AlreadyOwned)
}

/*
TestPurchaseService_Create_InactiveBook checks that delisted books cannot be
requested.
*/
func TestPurchaseService_Create_InactiveBook(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", PriceCents: 999, Active: false}
	service := newTestService(newFakePurchaseRepo(), catalogWith(item))

	_, _, err := service.Create(context.Background(), "u-1", "b-1", 1)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestPurchaseService_Get checks that a purchase is only visible to its owner;
everyone else gets a plain not-found.
*/
func TestPurchaseService_Get(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.purchases["p-1"] = &purchase.Purchase{ID: "p-1", BookID: "b-1", UserID: "u-1"}
	service := newTestService(repo, nil)

	p, err := service.Get(context.Background(), "u-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)

	_, err = service.Get(context.Background(), "u-2", "p-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Purchase not found", ae.Message)
}

/*
TestPurchaseService_Confirm checks the token issue on first confirm and the
conflict on a repeat.
*/
func TestPurchaseService_Confirm(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.purchases["p-1"] = &purchase.Purchase{
		ID: "p-1", BookID: "b-1", UserID: "u-1", Status: purchase.StatusRequested,
	}
	service := newTestService(repo, nil)

	p, err := service.Confirm(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, purchase.StatusConfirmed, p.Status)
	require.NotNil(t, p.FulfillmentToken)
	assert.NotEmpty(t, *p.FulfillmentToken)
	require.NotNil(t, p.ConfirmedAt)

	_, err = service.Confirm(context.Background(), "p-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestPurchaseService_Confirm_Concurrent checks that of any set of concurrent
confirms of the same purchase exactly one succeeds; the rest observe the
state conflict and no second token is ever issued.
*/
func TestPurchaseService_Confirm_Concurrent(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.purchases["p-1"] = &purchase.Purchase{
		ID: "p-1", BookID: "b-1", UserID: "u-1", Status: purchase.StatusRequested,
	}
	service := newTestService(repo, nil)

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Confirm(context.Background(), "p-1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var won, conflicted int
	for err := range errs {
		if err == nil {
			won++
			continue
		}
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		conflicted++
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, attempts-1, conflicted)

	// The winner's token stuck; nobody overwrote it.
	final := repo.purchases["p-1"]
	assert.Equal(t, purchase.StatusConfirmed, final.Status)
	require.NotNil(t, final.FulfillmentToken)
	assert.NotEmpty(t, *final.FulfillmentToken)
}

/*
TestPurchaseService_Purge checks that purging a book removes every one of its
purchases regardless of state, clears the book's last-sale marker, and leaves
other books' sales untouched.
*/
func TestPurchaseService_Purge(t *testing.T) {
	now := time.Now()
	repo := newFakePurchaseRepo()
	repo.purchases["p-1"] = &purchase.Purchase{
		ID: "p-1", BookID: "b-1", UserID: "u-1",
		Quantity: 1, TotalCents: 999, Status: purchase.StatusConfirmed,
	}
	repo.purchases["p-2"] = &purchase.Purchase{
		ID: "p-2", BookID: "b-1", UserID: "u-2",
		Quantity: 2, TotalCents: 1998, Status: purchase.StatusRequested,
	}
	repo.purchases["p-3"] = &purchase.Purchase{
		ID: "p-3", BookID: "b-2", UserID: "u-1",
		Quantity: 1, TotalCents: 500, Status: purchase.StatusConfirmed,
	}
	repo.lastSale["b-1"] = &now
	repo.lastSale["b-2"] = &now
	service := newTestService(repo, nil)

	removed, err := service.Purge(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	for _, p := range repo.purchases {
		assert.NotEqual(t, "b-1", p.BookID)
	}
	assert.Contains(t, repo.purchases, "p-3")

	assert.Nil(t, repo.lastSale["b-1"])
	assert.NotNil(t, repo.lastSale["b-2"])
}

/*
TestPurchaseService_SalesHistory checks the access rule: an admin or the
book's own author may read it, any other author may not.
*/
func TestPurchaseService_SalesHistory(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", AuthorID: "a-1", Active: true}
	repo := newFakePurchaseRepo()
	repo.purchases["p-1"] = &purchase.Purchase{
		ID: "p-1", BookID: "b-1", UserID: "u-1",
		Quantity: 2, TotalCents: 1998, Status: purchase.StatusConfirmed,
	}
	service := newTestService(repo, catalogWith(item))

	owner := &sec.AuthClaims{UserID: "a-1", Role: string(sec.RoleAuthor)}
	history, err := service.SalesHistory(context.Background(), owner, "b-1")
	require.NoError(t, err)
	assert.Len(t, history.Purchases, 1)
	assert.Equal(t, int64(1998), history.Summary.TotalCents)

	admin := &sec.AuthClaims{UserID: "staff", Role: string(sec.RoleAdmin)}
	_, err = service.SalesHistory(context.Background(), admin, "b-1")
	require.NoError(t, err)

	stranger := &sec.AuthClaims{UserID: "a-2", Role: string(sec.RoleAuthor)}
	_, err = service.SalesHistory(context.Background(), stranger, "b-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

/*
TestPurchaseService_ConfirmedByBook checks the catalog-detail lookup: a
missing purchase is nil, not an error.
*/
func TestPurchaseService_ConfirmedByBook(t *testing.T) {
	repo := newFakePurchaseRepo()
	repo.purchases["p-1"] = &purchase.Purchase{
		ID: "p-1", BookID: "b-1", UserID: "u-1",
		Quantity: 1, TotalCents: 999, Status: purchase.StatusConfirmed,
	}
	service := newTestService(repo, nil)

	owned, err := service.ConfirmedByBook(context.Background(), "u-1", "b-1")
	require.NoError(t, err)
	require.NotNil(t, owned)
	assert.Equal(t, "p-1", owned.ID)

	none, err := service.ConfirmedByBook(context.Background(), "u-1", "b-2")
	require.NoError(t, err)
	assert.Nil(t, none)
}
