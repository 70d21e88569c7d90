// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestSeedTitle checks the folder-name parsing: only book_<suffix> folders are
importable, and any other directory under the import root is skipped rather
than aborting the run.
*/
func TestSeedTitle(t *testing.T) {
	tests := []struct {
		name      string
		folder    string
		wantTitle string
		wantOK    bool
	}{
		{"numbered_folder", "book_7", "Book 7", true},
		{"multi_digit", "book_22", "Book 22", true},
		{"named_suffix", "book_inkwell", "Book inkwell", true},
		{"bare_prefix", "book_", "", false},
		{"wrong_prefix", "libro_1", "", false},
		{"short_name", "abc", "", false},
		{"hidden_dir", ".git", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, ok := seedTitle(tt.folder)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTitle, title)
		})
	}
}
