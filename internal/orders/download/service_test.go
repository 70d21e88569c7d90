// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package download_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/orders/download"
	"github.com/tintero-app/tintero/internal/platform/apperr"
	"github.com/tintero-app/tintero/internal/platform/dberr"
	"github.com/tintero-app/tintero/pkg/pointer"
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

// fakeDownloadRepo keeps downloads in memory and mimics the store's
// conditional-update semantics.
type fakeDownloadRepo struct {
	downloads     map[string]*download.Download
	notifications []string
	downloaded    []string
}

func newFakeDownloadRepo() *fakeDownloadRepo {
	return &fakeDownloadRepo{downloads: map[string]*download.Download{}}
}

func (r *fakeDownloadRepo) CreateWithNotification(_ context.Context, d *download.Download, notificationID string) error {
	d.RequestedAt = time.Now()
	r.downloads[d.ID] = d
	r.notifications = append(r.notifications, notificationID)
	return nil
}

func (r *fakeDownloadRepo) Get(_ context.Context, id string) (*download.Download, error) {
	d, ok := r.downloads[id]
	if !ok {
		return nil, apperr.NotFound("Download")
	}
	return d, nil
}

func (r *fakeDownloadRepo) FindOpen(_ context.Context, userID, bookID string) (*download.Download, error) {
	for _, d := range r.downloads {
		if d.UserID == userID && d.BookID == bookID && d.Open() {
			return d, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeDownloadRepo) Confirm(_ context.Context, id, token string) (*download.Download, error) {
	d, ok := r.downloads[id]
	if !ok {
		return nil, apperr.NotFound("Download")
	}
	if d.Status != download.StatusRequested {
		return nil, apperr.Conflict("Download is not awaiting confirmation")
	}
	now := time.Now()
	d.Status = download.StatusConfirmed
	d.ConfirmedAt = &now
	d.FulfillmentToken = &token
	return d, nil
}

func (r *fakeDownloadRepo) FindForFulfillment(_ context.Context, token, userID string) (*download.Download, error) {
	for _, d := range r.downloads {
		if d.FulfillmentToken != nil && *d.FulfillmentToken == token &&
			d.UserID == userID && d.Status == download.StatusConfirmed {
			return d, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (r *fakeDownloadRepo) MarkDownloaded(_ context.Context, id string) error {
	d, ok := r.downloads[id]
	if !ok || d.Status != download.StatusConfirmed {
		return dberr.ErrNotFound
	}
	d.Status = download.StatusDownloaded
	r.downloaded = append(r.downloaded, id)
	return nil
}

func (r *fakeDownloadRepo) ListUnreadNotifications(_ context.Context) ([]*download.Notification, error) {
	return nil, nil
}

// fakeObjectStore serves byte blobs by key.
type fakeObjectStore struct {
	objects map[string][]byte
}

func (s *fakeObjectStore) Get(_ context.Context, key string) (io.ReadCloser, int64, error) {
	blob, ok := s.objects[key]
	if !ok {
		return nil, 0, apperr.NotFound("File")
	}
	return io.NopCloser(bytes.NewReader(blob)), int64(len(blob)), nil
}

func (s *fakeObjectStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	blob, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = blob
	return nil
}

func (s *fakeObjectStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func newTestService(repo download.Repository, books map[string]*book.Book, files *fakeObjectStore) *download.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bookService := book.NewService(&fakeBookRepo{books: books}, logger)
	if files == nil {
		files = &fakeObjectStore{objects: map[string][]byte{}}
	}
	return download.NewService(repo, bookService, files, logger)
}

func catalogWith(b *book.Book) map[string]*book.Book {
	return map[string]*book.Book{b.ID: b}
}

/*
TestDownloadService_Create checks the request path and the open-request
idempotency: a second request for the same book returns the first row.
*/
func TestDownloadService_Create(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", Active: true}
	repo := newFakeDownloadRepo()
	service := newTestService(repo, catalogWith(item), nil)

	d, created, err := service.Create(context.Background(), "u-1", "b-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, download.StatusRequested, d.Status)
	assert.Len(t, repo.notifications, 1)

	again, created, err := service.Create(context.Background(), "u-1", "b-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, d.ID, again.ID)
	assert.Len(t, repo.downloads, 1)
	assert.Len(t, repo.notifications, 1)
}

/*
TestDownloadService_Create_ConfirmedStillOpen checks that a confirmed but
not-yet-downloaded request also blocks a new one.
*/
func TestDownloadService_Create_ConfirmedStillOpen(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", Active: true}
	repo := newFakeDownloadRepo()
	repo.downloads["d-1"] = &download.Download{
		ID: "d-1", BookID: "b-1", UserID: "u-1", Status: download.StatusConfirmed,
	}
	service := newTestService(repo, catalogWith(item), nil)

	d, created, err := service.Create(context.Background(), "u-1", "b-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "d-1", d.ID)

	// A downloaded request no longer blocks: the user may request again.
	repo.downloads["d-1"].Status = download.StatusDownloaded
	_, created, err = service.Create(context.Background(), "u-1", "b-1")
	require.NoError(t, err)
	assert.True(t, created)
}

/*
TestDownloadService_Confirm checks the token issue and the repeat conflict.
*/
func TestDownloadService_Confirm(t *testing.T) {
	repo := newFakeDownloadRepo()
	repo.downloads["d-1"] = &download.Download{
		ID: "d-1", BookID: "b-1", UserID: "u-1", Status: download.StatusRequested,
	}
	service := newTestService(repo, nil, nil)

	d, err := service.Confirm(context.Background(), "d-1")
	require.NoError(t, err)
	assert.Equal(t, download.StatusConfirmed, d.Status)
	require.NotNil(t, d.FulfillmentToken)

	_, err = service.Confirm(context.Background(), "d-1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestDownloadService_Fulfill checks the happy path: the downloaded transition
is persisted before the stream is handed out, and the stream carries the
stored file.
*/
func TestDownloadService_Fulfill(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", Active: true, FileKey: pointer.To("books/b-1.pdf")}
	files := &fakeObjectStore{objects: map[string][]byte{"books/b-1.pdf": []byte("%PDF-1.7 ...")}}
	repo := newFakeDownloadRepo()
	repo.downloads["d-1"] = &download.Download{
		ID: "d-1", BookID: "b-1", UserID: "u-1",
		Status: download.StatusConfirmed, FulfillmentToken: pointer.To("tok-1"),
	}
	service := newTestService(repo, catalogWith(item), files)

	result, err := service.Fulfill(context.Background(), "u-1", "tok-1")
	require.NoError(t, err)
	defer result.Content.Close()

	assert.Equal(t, "Inkwell.pdf", result.Filename)
	assert.Equal(t, int64(12), result.Size)
	assert.Equal(t, []string{"d-1"}, repo.downloaded)

	blob, err := io.ReadAll(result.Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 ...", string(blob))

	// The token is single-use: the row is no longer confirmed.
	_, err = service.Fulfill(context.Background(), "u-1", "tok-1")
	require.Error(t, err)
}

/*
TestDownloadService_Fulfill_Mismatch checks that a wrong token, a wrong
caller, and an unconfirmed row all read as the same plain not-found.
*/
func TestDownloadService_Fulfill_Mismatch(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", Active: true, FileKey: pointer.To("books/b-1.pdf")}
	repo := newFakeDownloadRepo()
	repo.downloads["d-1"] = &download.Download{
		ID: "d-1", BookID: "b-1", UserID: "u-1",
		Status: download.StatusConfirmed, FulfillmentToken: pointer.To("tok-1"),
	}
	repo.downloads["d-2"] = &download.Download{
		ID: "d-2", BookID: "b-1", UserID: "u-2",
		Status: download.StatusRequested, FulfillmentToken: pointer.To("tok-2"),
	}
	service := newTestService(repo, catalogWith(item), nil)

	tests := []struct {
		name   string
		userID string
		token  string
	}{
		{"wrong_token", "u-1", "tok-x"},
		{"wrong_caller", "u-2", "tok-1"},
		{"not_confirmed", "u-2", "tok-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Fulfill(context.Background(), tt.userID, tt.token)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "NOT_FOUND", ae.Code)
			assert.Equal(t, "Download not found", ae.Message)
		})
	}
}

/*
TestDownloadService_Fulfill_MissingFile checks the distinct message when the
download is valid but the book has no stored file.
*/
func TestDownloadService_Fulfill_MissingFile(t *testing.T) {
	item := &book.Book{ID: "b-1", Title: "Inkwell", Active: true}
	repo := newFakeDownloadRepo()
	repo.downloads["d-1"] = &download.Download{
		ID: "d-1", BookID: "b-1", UserID: "u-1",
		Status: download.StatusConfirmed, FulfillmentToken: pointer.To("tok-1"),
	}
	service := newTestService(repo, catalogWith(item), nil)

	_, err := service.Fulfill(context.Background(), "u-1", "tok-1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "File not found", ae.Message)

	// Nothing was consumed: the row stays confirmed.
	assert.Empty(t, repo.downloaded)
	assert.Equal(t, download.StatusConfirmed, repo.downloads["d-1"].Status)
}
