// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

/*
Package book implements the catalog item entity and the public catalog
query surface.

A book is the unit of sale of the storefront. Its price is stored as integer
cents (never floating point) so that purchase totals and the revenue split are
exact. The actual cover image and book file live in the object store and are
referenced by opaque keys.
*/
package book

import (
	"net/url"
	"time"

	"github.com/tintero-app/tintero/pkg/convert"
)

// Book represents a catalog item available in the storefront.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"author_name,omitempty"` // joined from users.account, read-only
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Price       string `json:"price"` // decimal display form of PriceCents

	CategoryID  string `json:"category_id"`
	AgeRatingID string `json:"age_rating_id"`

	// Object-store keys are internal addressing details, never exposed.
	CoverKey *string `json:"-"`
	FileKey  *string `json:"-"`

	HasPromotion   bool       `json:"has_promotion"`
	PromotionStart *time.Time `json:"promotion_start,omitempty"`
	PromotionEnd   *time.Time `json:"promotion_end,omitempty"`

	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSaleAt *time.Time `json:"last_sale_at,omitempty"`
}

// IsFree reports whether the book costs nothing.
func (b *Book) IsFree() bool { return b.PriceCents == 0 }

// PromotionActiveOn reports whether the book's promotion window covers the
// given day. Books with an active promotion sort before all others in the
// public listing.
func (b *Book) PromotionActiveOn(day time.Time) bool {
	if !b.HasPromotion || b.PromotionStart == nil || b.PromotionEnd == nil {
		return false
	}
	d := day.Truncate(24 * time.Hour)
	return !d.Before(b.PromotionStart.Truncate(24*time.Hour)) &&
		!d.After(b.PromotionEnd.Truncate(24*time.Hour))
}

// Decorate fills the derived display fields after a storage scan.
func (b *Book) Decorate() {
	b.Price = convert.CentsToDecimalString(b.PriceCents)
}

// # Listing Filters

// Filter holds the parameters for a catalog listing query.
//
// All filters are optional; the zero value selects every active book.
type Filter struct {
	// AgeRatingID filters by exact age-rating match.
	AgeRatingID string

	// MaxPriceCents keeps books priced at or below the bound. Nil means
	// unbounded.
	MaxPriceCents *int64

	// FreeOnly keeps only zero-priced books. When set, MaxPriceCents is
	// ignored entirely.
	FreeOnly bool
}

// ParseFilter builds a [Filter] from listing query parameters.
//
// An unparseable max_price value is silently dropped, matching the lenient
// behavior expected of the public listing page. The free filter overrides
// any price bound.
func ParseFilter(values url.Values) Filter {
	filter := Filter{
		AgeRatingID: values.Get("rating"),
		FreeOnly:    values.Get("free") != "",
	}

	if filter.FreeOnly {
		return filter
	}

	if raw := values.Get("max_price"); raw != "" {
		if cents, err := convert.DecimalStringToCents(raw); err == nil {
			filter.MaxPriceCents = &cents
		}
	}

	return filter
}

// Global field names for validation
const (
	FieldTitle       = "title"
	FieldAuthorID    = "author_id"
	FieldPriceCents  = "price_cents"
	FieldCategoryID  = "category_id"
	FieldAgeRatingID = "age_rating_id"
	FieldQuantity    = "quantity"
)
