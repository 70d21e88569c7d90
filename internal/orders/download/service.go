// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package download

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/platform/apperr"
	"github.com/tintero-app/tintero/internal/platform/dberr"
	"github.com/tintero-app/tintero/internal/platform/storage"
	"github.com/tintero-app/tintero/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	books  *book.Service
	files  storage.ObjectStore
	logger *slog.Logger
}

func NewService(repo Repository, books *book.Service, files storage.ObjectStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		books:  books,
		files:  files,
		logger: logger,
	}
}

/*
Create places a download request for the given book.

If the caller already has an open request for the book (requested or
confirmed), that request is returned and nothing is written. The returned
bool reports whether a row was actually created.
*/
func (service *Service) Create(ctx context.Context, userID, bookID string) (*Download, bool, error) {
	item, err := service.books.GetActive(ctx, bookID)
	if err != nil {
		return nil, false, err
	}

	open, err := service.repo.FindOpen(ctx, userID, bookID)
	if err == nil {
		return open, false, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, false, err
	}

	d := &Download{
		ID:        uuidv7.New(),
		BookID:    item.ID,
		BookTitle: item.Title,
		UserID:    userID,
		Status:    StatusRequested,
	}
	if err := service.repo.CreateWithNotification(ctx, d, uuidv7.New()); err != nil {
		return nil, false, err
	}

	service.logger.Info("download_requested",
		slog.String("download_id", d.ID),
		slog.String("book_id", d.BookID),
	)
	return d, true, nil
}

// Confirm approves a download request and issues its fulfillment token.
// Exactly one of any set of concurrent confirms succeeds.
func (service *Service) Confirm(ctx context.Context, id string) (*Download, error) {
	d, err := service.repo.Confirm(ctx, id, uuid.NewString())
	if err != nil {
		return nil, err
	}

	service.logger.Info("download_confirmed",
		slog.String("download_id", d.ID),
		slog.String("book_id", d.BookID),
	)
	return d, nil
}

// FulfillResult carries the file stream handed to the HTTP layer. The caller
// owns Content and must close it.
type FulfillResult struct {
	Filename string
	Size     int64
	Content  io.ReadCloser
}

/*
Fulfill redeems a fulfillment token for the book file.

The token, the caller, and the confirmed status must all match one row;
any mismatch is a plain not-found so tokens cannot be probed. The
downloaded transition is persisted before the stream is handed out, so a
client abort mid-stream leaves no partial state.
*/
func (service *Service) Fulfill(ctx context.Context, userID, token string) (*FulfillResult, error) {
	d, err := service.repo.FindForFulfillment(ctx, token, userID)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.NotFound("Download")
	}
	if err != nil {
		return nil, err
	}

	item, err := service.books.Get(ctx, d.BookID)
	if err != nil {
		return nil, err
	}
	if item.FileKey == nil {
		return nil, apperr.NotFound("File")
	}

	content, size, err := service.files.Get(ctx, *item.FileKey)
	if err != nil {
		return nil, err
	}

	if err := service.repo.MarkDownloaded(ctx, d.ID); err != nil {
		content.Close()
		return nil, err
	}

	service.logger.Info("download_fulfilled",
		slog.String("download_id", d.ID),
		slog.String("book_id", d.BookID),
	)
	return &FulfillResult{
		Filename: item.Title + ".pdf",
		Size:     size,
		Content:  content,
	}, nil
}

// Inbox returns the unread admin notifications, newest first.
func (service *Service) Inbox(ctx context.Context) ([]*Notification, error) {
	return service.repo.ListUnreadNotifications(ctx)
}
