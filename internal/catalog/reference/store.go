// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package reference

import "context"

type Repository interface {
	ListCategories(context context.Context) ([]*Category, error)
	CreateCategory(context context.Context, c *Category) error
	DeleteCategory(context context.Context, id string) error

	ListAgeRatings(context context.Context) ([]*AgeRating, error)
	CreateAgeRating(context context.Context, r *AgeRating) error
	DeleteAgeRating(context context.Context, id string) error
}
