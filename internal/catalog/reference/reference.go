// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

/*
Package reference manages the uniquely-named lookup entities of the catalog:
book categories and age ratings.

These are small administrative vocabularies; the public side only ever lists
them for filter UIs.
*/
package reference

// Category is a uniquely-named book grouping.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AgeRating is a uniquely-named audience classification.
type AgeRating struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Global field names for validation
const (
	FieldName = "name"
)
