// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package purchase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tintero-app/tintero/internal/orders/purchase"
)

/*
TestSummarize checks the revenue aggregate and the 90/10 split. The author
share is integer-truncated; the store share absorbs the remainder so the two
always add up to the total.
*/
func TestSummarize(t *testing.T) {
	tests := []struct {
		name            string
		purchases       []*purchase.Purchase
		wantCopies      int
		wantTotal       int64
		wantAuthorShare int64
		wantStoreShare  int64
	}{
		{
			name:       "empty",
			purchases:  nil,
			wantCopies: 0, wantTotal: 0, wantAuthorShare: 0, wantStoreShare: 0,
		},
		{
			name: "single_confirmed",
			purchases: []*purchase.Purchase{
				{Status: purchase.StatusConfirmed, Quantity: 3, TotalCents: 2997},
			},
			wantCopies: 3, wantTotal: 2997, wantAuthorShare: 2697, wantStoreShare: 300,
		},
		{
			name: "requested_rows_excluded",
			purchases: []*purchase.Purchase{
				{Status: purchase.StatusConfirmed, Quantity: 1, TotalCents: 1000},
				{Status: purchase.StatusRequested, Quantity: 5, TotalCents: 5000},
			},
			wantCopies: 1, wantTotal: 1000, wantAuthorShare: 900, wantStoreShare: 100,
		},
		{
			name: "truncated_author_share",
			purchases: []*purchase.Purchase{
				{Status: purchase.StatusConfirmed, Quantity: 1, TotalCents: 199},
			},
			// 199 * 90 / 100 = 179.1 truncates to 179; store keeps 20.
			wantCopies: 1, wantTotal: 199, wantAuthorShare: 179, wantStoreShare: 20,
		},
		{
			name: "multiple_confirmed",
			purchases: []*purchase.Purchase{
				{Status: purchase.StatusConfirmed, Quantity: 2, TotalCents: 1998},
				{Status: purchase.StatusConfirmed, Quantity: 1, TotalCents: 999},
			},
			wantCopies: 3, wantTotal: 2997, wantAuthorShare: 2697, wantStoreShare: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := purchase.Summarize(tt.purchases)

			assert.Equal(t, tt.wantCopies, summary.Copies)
			assert.Equal(t, tt.wantTotal, summary.TotalCents)
			assert.Equal(t, tt.wantAuthorShare, summary.AuthorShareCents)
			assert.Equal(t, tt.wantStoreShare, summary.StoreShareCents)
			assert.Equal(t, summary.TotalCents, summary.AuthorShareCents+summary.StoreShareCents)
		})
	}
}

/*
TestSummarize_DisplayFields checks the rendered decimal strings.
*/
func TestSummarize_DisplayFields(t *testing.T) {
	summary := purchase.Summarize([]*purchase.Purchase{
		{Status: purchase.StatusConfirmed, Quantity: 3, TotalCents: 2997},
	})

	assert.Equal(t, "29.97", summary.Total)
	assert.Equal(t, "26.97", summary.AuthorShare)
	assert.Equal(t, "3.00", summary.StoreShare)
}
