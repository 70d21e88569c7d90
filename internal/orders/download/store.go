// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package download

import "context"

/*
Repository defines the persistence contract for download requests and their
notifications.

The request row and its inbox notification are always written in the same
transaction, so the admin inbox can never miss a pending request.
*/
type Repository interface {
	// CreateWithNotification inserts a requested download plus its unread
	// notification in one transaction.
	CreateWithNotification(ctx context.Context, d *Download, notificationID string) error

	// Get returns a download by id, with book title and requester joined.
	Get(ctx context.Context, id string) (*Download, error)

	// FindOpen returns the caller's download of a book that is still in the
	// requested or confirmed state, or dberr.ErrNotFound.
	FindOpen(ctx context.Context, userID, bookID string) (*Download, error)

	// Confirm transitions a download from requested to confirmed, assigns the
	// fulfillment token, and marks its notifications read, all in a single
	// transaction. It returns apperr Conflict when the download exists but is
	// not in the requested state.
	Confirm(ctx context.Context, id, token string) (*Download, error)

	// FindForFulfillment returns the confirmed download matching both the
	// token and the caller. Any mismatch is dberr.ErrNotFound; the caller
	// cannot tell which part failed.
	FindForFulfillment(ctx context.Context, token, userID string) (*Download, error)

	// MarkDownloaded records the downloaded transition.
	MarkDownloaded(ctx context.Context, id string) error

	// ListUnreadNotifications returns the admin inbox, newest first.
	ListUnreadNotifications(ctx context.Context) ([]*Notification, error)
}
