// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tintero-app/tintero/pkg/convert"
)

/*
TestCentsToDecimalString checks the display rendering of integer cents.
*/
func TestCentsToDecimalString(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "0.00"},
		{"under_one_unit", 5, "0.05"},
		{"two_digit_fraction", 999, "9.99"},
		{"whole_amount", 1500, "15.00"},
		{"large_amount", 1234567, "12345.67"},
		{"negative", -250, "-2.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.CentsToDecimalString(tt.cents))
		})
	}
}

/*
TestDecimalStringToCents checks money-string parsing, including the inputs
that must be rejected instead of rounded.
*/
func TestDecimalStringToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"two_decimals", "9.99", 999, false},
		{"one_decimal", "5.5", 550, false},
		{"no_decimals", "5", 500, false},
		{"zero", "0", 0, false},
		{"bare_fraction", ".75", 75, false},
		{"negative", "-2.50", -250, false},
		{"three_decimals", "1.999", 0, true},
		{"not_a_number", "free", 0, true},
		{"letters_in_fraction", "1.x9", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convert.DecimalStringToCents(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestMoneyRoundTrip makes sure rendering and parsing are inverse operations.
*/
func TestMoneyRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 999, 123456} {
		s := convert.CentsToDecimalString(cents)
		back, err := convert.DecimalStringToCents(s)
		require.NoError(t, err)
		assert.Equal(t, cents, back, "round-trip of %s", s)
	}
}
