// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package book

import (
	"context"
	"fmt"
	"strconv"
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

// bookColumns is the SELECT list shared by every book query. The author's
// username is joined in for display.
func bookColumns(alias string) string {
	t := schema.Book
	return fmt.Sprintf(
		"%[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s",
		alias,
		t.ID, t.Title, t.AuthorID, t.Description, t.PriceCents, t.CategoryID,
		t.AgeRatingID, t.CoverKey, t.FileKey, t.HasPromotion, t.PromotionStart,
		t.PromotionEnd, t.Active, t.CreatedAt, t.LastSaleAt,
	)
}

// scanBook populates a Book from a row holding bookColumns plus the joined
// author username.
func scanBook(row interface{ Scan(dest ...any) error }) (*Book, error) {
	b := &Book{}
	err := row.Scan(
		&b.ID, &b.Title, &b.AuthorID, &b.Description, &b.PriceCents, &b.CategoryID,
		&b.AgeRatingID, &b.CoverKey, &b.FileKey, &b.HasPromotion, &b.PromotionStart,
		&b.PromotionEnd, &b.Active, &b.CreatedAt, &b.LastSaleAt,
		&b.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	b.Decorate()
	return b, nil
}

// listClauses builds the WHERE fragment and its argument list for a catalog
// listing. Placeholders are numbered from $1 so the same fragment serves the
// count query, whose argument list ends here; the main query appends its day
// and paging placeholders after these.
func listClauses(f Filter) (string, []any) {
	t := schema.Book

	where := fmt.Sprintf("b.%s = TRUE", t.Active)
	var args []any

	if f.AgeRatingID != "" {
		args = append(args, f.AgeRatingID)
		where += fmt.Sprintf(" AND b.%s = $%d", t.AgeRatingID, len(args))
	}

	// The free filter overrides any price bound.
	if f.FreeOnly {
		where += fmt.Sprintf(" AND b.%s = 0", t.PriceCents)
	} else if f.MaxPriceCents != nil {
		args = append(args, *f.MaxPriceCents)
		where += fmt.Sprintf(" AND b.%s <= $%d", t.PriceCents, len(args))
	}

	return where, args
}

func (repository *PostgresRepository) List(context context.Context, f Filter, today time.Time, limit, offset int) ([]*Book, int, error) {
	t := schema.Book
	where, args := listClauses(f)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s b WHERE `, t.Table) + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_books")
	}

	// Promotion-active books sort before everything else; the window test is
	// evaluated against the caller-supplied day so listings are stable within
	// a request.
	day := itos(len(args) + 1)
	promoActive := fmt.Sprintf(
		"(b.%s AND b.%s IS NOT NULL AND b.%s IS NOT NULL AND b.%s <= $%s AND b.%s >= $%s)",
		t.HasPromotion, t.PromotionStart, t.PromotionEnd, t.PromotionStart, day, t.PromotionEnd, day,
	)

	query := fmt.Sprintf(`
		SELECT %s, a.username
		FROM %s b
		JOIN users.account a ON a.id = b.%s
		WHERE %s
		ORDER BY %s DESC, b.%s ASC
		LIMIT $%s OFFSET $%s
	`,
		bookColumns("b"), t.Table, t.AuthorID, where, promoActive, t.Title,
		itos(len(args)+2), itos(len(args)+3),
	)
	args = append(args, today, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetActive(context context.Context, id string) (*Book, error) {
	t := schema.Book
	query := fmt.Sprintf(`
		SELECT %s, a.username
		FROM %s b
		JOIN users.account a ON a.id = b.%s
		WHERE b.%s = $1 AND b.%s = TRUE
	`, bookColumns("b"), t.Table, t.AuthorID, t.ID, t.Active)

	b, err := scanBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_active_book")
	}
	return b, nil
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Book, error) {
	t := schema.Book
	query := fmt.Sprintf(`
		SELECT %s, a.username
		FROM %s b
		JOIN users.account a ON a.id = b.%s
		WHERE b.%s = $1
	`, bookColumns("b"), t.Table, t.AuthorID, t.ID)

	b, err := scanBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return b, nil
}

func (repository *PostgresRepository) ListByAuthor(context context.Context, authorID string) ([]*Book, error) {
	t := schema.Book
	query := fmt.Sprintf(`
		SELECT %s, a.username
		FROM %s b
		JOIN users.account a ON a.id = b.%s
		WHERE b.%s = $1
		ORDER BY b.%s DESC
	`, bookColumns("b"), t.Table, t.AuthorID, t.AuthorID, t.CreatedAt)

	rows, err := repository.db.Query(context, query, authorID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books_by_author")
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, b)
	}

	return books, nil
}

func (repository *PostgresRepository) Create(context context.Context, b *Book) error {
	t := schema.Book
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING %s
	`,
		t.Table,
		t.ID, t.Title, t.AuthorID, t.Description, t.PriceCents, t.CategoryID,
		t.AgeRatingID, t.CoverKey, t.FileKey, t.HasPromotion, t.PromotionStart,
		t.PromotionEnd, t.Active, t.CreatedAt,
		t.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		b.ID, b.Title, b.AuthorID, b.Description, b.PriceCents, b.CategoryID,
		b.AgeRatingID, b.CoverKey, b.FileKey, b.HasPromotion, b.PromotionStart,
		b.PromotionEnd, b.Active,
	).Scan(&b.CreatedAt)
	return dberr.Wrap(err, "create_book")
}

func (repository *PostgresRepository) Update(context context.Context, b *Book) error {
	t := schema.Book
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8,
		    %s = $9, %s = $10, %s = $11, %s = $12, %s = $13
		WHERE %s = $1
	`,
		t.Table,
		t.Title, t.AuthorID, t.Description, t.PriceCents, t.CategoryID,
		t.AgeRatingID, t.CoverKey, t.FileKey, t.HasPromotion, t.PromotionStart,
		t.PromotionEnd, t.Active,
		t.ID,
	)

	cmd, err := repository.db.Exec(context, query,
		b.ID, b.Title, b.AuthorID, b.Description, b.PriceCents, b.CategoryID,
		b.AgeRatingID, b.CoverKey, b.FileKey, b.HasPromotion, b.PromotionStart,
		b.PromotionEnd, b.Active,
	)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	// Purchases and downloads cascade via foreign keys.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Book.Table, schema.Book.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
