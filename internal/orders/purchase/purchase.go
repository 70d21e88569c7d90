// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

/*
Package purchase implements the purchase workflow of the storefront.

A purchase moves through exactly one transition:

	requested --(admin confirm)--> confirmed

Confirmation is the only path to a fulfillment token and is final. There is
no cancel or reject; an unconfirmed purchase simply stays in the queue.
*/
package purchase

import (
	"time"

	"github.com/tintero-app/tintero/internal/platform/constants"
	"github.com/tintero-app/tintero/pkg/convert"
)

// Status is the lifecycle state of a purchase.
type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
)

// Purchase represents one order of a catalog book.
type Purchase struct {
	ID         string `json:"id"`
	BookID     string `json:"book_id"`
	BookTitle  string `json:"book_title,omitempty"` // joined, read-only
	UserID     string `json:"user_id"`
	Username   string `json:"username,omitempty"` // joined, read-only
	Quantity   int    `json:"quantity"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"` // decimal display form of TotalCents

	Status           Status     `json:"status"`
	RequestedAt      time.Time  `json:"requested_at"`
	ConfirmedAt      *time.Time `json:"confirmed_at,omitempty"`
	FulfillmentToken *string    `json:"fulfillment_token,omitempty"`

	// AlreadyOwned marks the response of a create call that matched an
	// existing confirmed purchase instead of inserting a new row.
	AlreadyOwned bool `json:"already_owned,omitempty"`
}

// Decorate fills the derived display fields after a storage scan.
func (p *Purchase) Decorate() {
	p.Total = convert.CentsToDecimalString(p.TotalCents)
}

// SalesSummary is the revenue aggregate of a book's sales history. The split
// is computed at read time and never persisted.
type SalesSummary struct {
	Copies           int    `json:"copies"`
	TotalCents       int64  `json:"total_cents"`
	Total            string `json:"total"`
	AuthorShareCents int64  `json:"author_share_cents"`
	AuthorShare      string `json:"author_share"`
	StoreShareCents  int64  `json:"store_share_cents"`
	StoreShare       string `json:"store_share"`
}

// Summarize aggregates the confirmed purchases in the list. The author share
// is truncated to whole cents; the store share takes the remainder so the two
// always add up to the total.
func Summarize(purchases []*Purchase) SalesSummary {
	var summary SalesSummary
	for _, p := range purchases {
		if p.Status != StatusConfirmed {
			continue
		}
		summary.Copies += p.Quantity
		summary.TotalCents += p.TotalCents
	}

	summary.AuthorShareCents = summary.TotalCents * constants.AuthorSharePercent / 100
	summary.StoreShareCents = summary.TotalCents - summary.AuthorShareCents

	summary.Total = convert.CentsToDecimalString(summary.TotalCents)
	summary.AuthorShare = convert.CentsToDecimalString(summary.AuthorShareCents)
	summary.StoreShare = convert.CentsToDecimalString(summary.StoreShareCents)
	return summary
}

// SalesHistory is the admin/author view of a book's sales.
type SalesHistory struct {
	Purchases []*Purchase  `json:"purchases"`
	Summary   SalesSummary `json:"summary"`
}
