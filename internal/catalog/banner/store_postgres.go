// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package banner

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tintero-app/tintero/internal/platform/database/schema"
	"github.com/tintero-app/tintero/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func bannerColumns() string {
	t := schema.Banner
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Title, t.Description, t.ImageKey, t.BookID, t.StartsOn, t.EndsOn, t.Active)
}

func scanBanner(row interface{ Scan(dest ...any) error }) (*Banner, error) {
	b := &Banner{}
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.ImageKey, &b.BookID, &b.StartsOn, &b.EndsOn, &b.Active)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (repository *PostgresRepository) ListVisible(context context.Context, day time.Time) ([]*Banner, error) {
	t := schema.Banner
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = TRUE AND %s <= $1 AND %s >= $1
		ORDER BY %s DESC
	`, bannerColumns(), t.Table, t.Active, t.StartsOn, t.EndsOn, t.StartsOn)

	rows, err := repository.db.Query(context, query, day)
	if err != nil {
		return nil, dberr.Wrap(err, "list_visible_banners")
	}
	defer rows.Close()

	var banners []*Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_banner")
		}
		banners = append(banners, b)
	}

	return banners, nil
}

func (repository *PostgresRepository) ListAll(context context.Context) ([]*Banner, error) {
	t := schema.Banner
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`, bannerColumns(), t.Table, t.StartsOn)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_banners")
	}
	defer rows.Close()

	var banners []*Banner
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_banner")
		}
		banners = append(banners, b)
	}

	return banners, nil
}

func (repository *PostgresRepository) Create(context context.Context, b *Banner) error {
	t := schema.Banner
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.Table, t.ID, t.Title, t.Description, t.ImageKey, t.BookID, t.StartsOn, t.EndsOn, t.Active)

	_, err := repository.db.Exec(context, query,
		b.ID, b.Title, b.Description, b.ImageKey, b.BookID, b.StartsOn, b.EndsOn, b.Active)
	return dberr.Wrap(err, "create_banner")
}

func (repository *PostgresRepository) Update(context context.Context, b *Banner) error {
	t := schema.Banner
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1
	`, t.Table, t.Title, t.Description, t.ImageKey, t.BookID, t.StartsOn, t.EndsOn, t.Active, t.ID)

	cmd, err := repository.db.Exec(context, query,
		b.ID, b.Title, b.Description, b.ImageKey, b.BookID, b.StartsOn, b.EndsOn, b.Active)
	if err != nil {
		return dberr.Wrap(err, "update_banner")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	t := schema.Banner
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_banner")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
