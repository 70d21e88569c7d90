// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package book_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/pkg/pointer"
)

/*
TestParseFilter checks the public listing query parameters, including the
lenient handling of malformed prices.
*/
func TestParseFilter(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantRating   string
		wantFreeOnly bool
		wantMaxPrice *int64
	}{
		{"empty", "", "", false, nil},
		{"rating_only", "rating=r-1", "r-1", false, nil},
		{"max_price", "max_price=9.99", "", false, pointer.To(int64(999))},
		{"whole_max_price", "max_price=5", "", false, pointer.To(int64(500))},
		{"free_only", "free=1", "", true, nil},
		{"free_overrides_price", "free=1&max_price=9.99", "", true, nil},
		{"bad_max_price_dropped", "max_price=cheap", "", false, nil},
		{"three_decimals_dropped", "max_price=1.999", "", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			filter := book.ParseFilter(values)

			assert.Equal(t, tt.wantRating, filter.AgeRatingID)
			assert.Equal(t, tt.wantFreeOnly, filter.FreeOnly)
			if tt.wantMaxPrice == nil {
				assert.Nil(t, filter.MaxPriceCents)
			} else {
				require.NotNil(t, filter.MaxPriceCents)
				assert.Equal(t, *tt.wantMaxPrice, *filter.MaxPriceCents)
			}
		})
	}
}

/*
TestBook_PromotionActiveOn checks the inclusive promotion window against the
listing's reference day.
*/
func TestBook_PromotionActiveOn(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	start := day("2026-03-01")
	end := day("2026-03-10")

	promoted := &book.Book{HasPromotion: true, PromotionStart: &start, PromotionEnd: &end}

	tests := []struct {
		name string
		book *book.Book
		on   time.Time
		want bool
	}{
		{"before_window", promoted, day("2026-02-28"), false},
		{"first_day", promoted, day("2026-03-01"), true},
		{"mid_window", promoted, day("2026-03-05"), true},
		{"last_day", promoted, day("2026-03-10"), true},
		{"after_window", promoted, day("2026-03-11"), false},
		{"flag_unset", &book.Book{PromotionStart: &start, PromotionEnd: &end}, day("2026-03-05"), false},
		{"missing_dates", &book.Book{HasPromotion: true}, day("2026-03-05"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.book.PromotionActiveOn(tt.on))
		})
	}
}

/*
TestBook_Decorate checks the derived display price.
*/
func TestBook_Decorate(t *testing.T) {
	b := &book.Book{PriceCents: 1250}
	b.Decorate()
	assert.Equal(t, "12.50", b.Price)

	free := &book.Book{}
	free.Decorate()
	assert.Equal(t, "0.00", free.Price)
	assert.True(t, free.IsFree())
}

