// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package reference

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListCategories(context context.Context) ([]*Category, error) {
	t := schema.Category
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`, t.ID, t.Name, t.Table, t.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (repository *PostgresRepository) CreateCategory(context context.Context, c *Category) error {
	t := schema.Category
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, t.Table, t.ID, t.Name)

	_, err := repository.db.Exec(context, query, c.ID, c.Name)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) DeleteCategory(context context.Context, id string) error {
	t := schema.Category
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListAgeRatings(context context.Context) ([]*AgeRating, error) {
	t := schema.AgeRating
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`, t.ID, t.Name, t.Table, t.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_age_ratings")
	}
	defer rows.Close()

	var ratings []*AgeRating
	for rows.Next() {
		r := &AgeRating{}
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_age_rating")
		}
		ratings = append(ratings, r)
	}

	return ratings, nil
}

func (repository *PostgresRepository) CreateAgeRating(context context.Context, r *AgeRating) error {
	t := schema.AgeRating
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, t.Table, t.ID, t.Name)

	_, err := repository.db.Exec(context, query, r.ID, r.Name)
	return dberr.Wrap(err, "create_age_rating")
}

func (repository *PostgresRepository) DeleteAgeRating(context context.Context, id string) error {
	t := schema.AgeRating
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_age_rating")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
