// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

/*
Package download implements the controlled-download workflow.

A download request must be confirmed by an admin before the file can be
fetched:

	requested --(admin confirm)--> confirmed --(fulfillment)--> downloaded

The expired state is reserved in the schema but has no producing transition.
Every request spawns an unread notification row that feeds the admin inbox;
confirming the download marks its notifications read.
*/
package download

import "time"

// Status is the lifecycle state of a download request.
type Status string

const (
	StatusRequested  Status = "requested"
	StatusConfirmed  Status = "confirmed"
	StatusDownloaded Status = "downloaded"
	StatusExpired    Status = "expired"
)

// Download represents one controlled-download request of a book file.
type Download struct {
	ID        string `json:"id"`
	BookID    string `json:"book_id"`
	BookTitle string `json:"book_title,omitempty"` // joined, read-only
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"` // joined, read-only

	Status           Status     `json:"status"`
	RequestedAt      time.Time  `json:"requested_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	DownloadedAt     *time.Time `json:"downloaded_at,omitempty"`
	FulfillmentToken *string    `json:"fulfillment_token,omitempty"`
}

// Open reports whether the request still blocks a new one for the same
// book and caller.
func (d *Download) Open() bool {
	return d.Status == StatusRequested || d.Status == StatusConfirmed
}

// Notification is one admin-inbox entry, created atomically with its
// download request and marked read when that download is confirmed.
type Notification struct {
	ID         string    `json:"id"`
	DownloadID string    `json:"download_id"`
	BookTitle  string    `json:"book_title"` // joined, read-only
	Username   string    `json:"username"`   // joined, read-only
	CreatedAt  time.Time `json:"created_at"`
	Read       bool      `json:"read"`
}
