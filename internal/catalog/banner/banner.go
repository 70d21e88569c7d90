// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

/*
Package banner implements promotional banners shown alongside the public
catalog listing.

A banner is visible when its active flag is set and today falls inside its
[StartsOn, EndsOn] window. Banners optionally point at a catalog book; when
that book is deleted the banner goes with it.
*/
package banner

import "time"

// Banner is a promotional placement for the catalog listing page.
type Banner struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageKey    *string `json:"-"`
	BookID      *string `json:"book_id,omitempty"`

	StartsOn time.Time `json:"starts_on"`
	EndsOn   time.Time `json:"ends_on"`
	Active   bool      `json:"active"`
}

// VisibleOn reports whether the banner should be shown on the given day.
func (b *Banner) VisibleOn(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return b.Active &&
		!d.Before(b.StartsOn.Truncate(24*time.Hour)) &&
		!d.After(b.EndsOn.Truncate(24*time.Hour))
}

// Global field names for validation
const (
	FieldTitle    = "title"
	FieldStartsOn = "starts_on"
	FieldEndsOn   = "ends_on"
)
