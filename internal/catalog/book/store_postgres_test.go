// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package book

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintero-app/tintero/pkg/pointer"
)

var placeholderPattern = regexp.MustCompile(`\$(\d+)`)

// placeholders returns the sorted-unique placeholder indexes referenced by a
// SQL fragment.
func placeholders(t *testing.T, fragment string) map[int]bool {
	t.Helper()
	found := map[int]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(fragment, -1) {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		found[n] = true
	}
	return found
}

/*
TestListClauses checks that the listing WHERE fragment references exactly the
arguments it is executed with, for every filter combination. The count query
runs with these args alone, so a stray or missing placeholder breaks the
whole public listing.
*/
func TestListClauses(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		wantArgs int
	}{
		{"no_filters", Filter{}, 0},
		{"rating", Filter{AgeRatingID: "r-1"}, 1},
		{"max_price", Filter{MaxPriceCents: pointer.To(int64(999))}, 1},
		{"rating_and_max_price", Filter{AgeRatingID: "r-1", MaxPriceCents: pointer.To(int64(999))}, 2},
		{"free_only", Filter{FreeOnly: true}, 0},
		{"free_overrides_price", Filter{FreeOnly: true, MaxPriceCents: pointer.To(int64(999))}, 0},
		{"rating_and_free", Filter{AgeRatingID: "r-1", FreeOnly: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := listClauses(tt.filter)

			require.Len(t, args, tt.wantArgs)

			refs := placeholders(t, where)
			assert.Len(t, refs, tt.wantArgs)
			for i := 1; i <= tt.wantArgs; i++ {
				assert.True(t, refs[i], "where fragment must reference $%d: %s", i, where)
			}

			assert.Contains(t, where, "b.active = TRUE")
		})
	}
}

/*
TestListClauses_FilterSemantics checks the clause content: the free filter
pins the price to zero and drops any price bound.
*/
func TestListClauses_FilterSemantics(t *testing.T) {
	where, args := listClauses(Filter{FreeOnly: true, MaxPriceCents: pointer.To(int64(500))})
	assert.Contains(t, where, "b.pricecents = 0")
	assert.NotContains(t, where, "<=")
	assert.Empty(t, args)

	where, args = listClauses(Filter{MaxPriceCents: pointer.To(int64(500))})
	assert.Contains(t, where, "b.pricecents <= $1")
	require.Len(t, args, 1)
	assert.Equal(t, int64(500), args[0])
}
