// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package banner

import (
	"context"
	"time"
)

type Repository interface {
	// ListVisible returns banners whose active window covers the given day,
	// newest window first.
	ListVisible(context context.Context, day time.Time) ([]*Banner, error)

	// ListAll returns every banner for administration.
	ListAll(context context.Context) ([]*Banner, error)

	Create(context context.Context, b *Banner) error
	Update(context context.Context, b *Banner) error
	Delete(context context.Context, id string) error
}
