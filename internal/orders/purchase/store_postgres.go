// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package purchase

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tintero-app/tintero/internal/platform/apperr"
	"github.com/tintero-app/tintero/internal/platform/dberr"
)

const purchaseColumns = `
	p.id, p.bookid, p.userid, p.quantity, p.totalcents, p.status,
	p.requestedat, p.confirmedat, p.fulfillmenttoken`

const (
	queryInsertPurchase = `
		INSERT INTO orders.purchase
			(id, bookid, userid, quantity, totalcents, status, requestedat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING requestedat`

	queryGetPurchase = `
		SELECT ` + purchaseColumns + `, b.title, a.username
		FROM orders.purchase p
		JOIN catalog.book b ON b.id = p.bookid
		JOIN users.account a ON a.id = p.userid
		WHERE p.id = $1`

	queryFindConfirmed = `
		SELECT ` + purchaseColumns + `, b.title, a.username
		FROM orders.purchase p
		JOIN catalog.book b ON b.id = p.bookid
		JOIN users.account a ON a.id = p.userid
		WHERE p.userid = $1 AND p.bookid = $2 AND p.status = 'confirmed'
		ORDER BY p.requestedat DESC
		LIMIT 1`

	// The status predicate makes the transition conditional: a purchase that
	// is already confirmed matches zero rows and nothing changes.
	queryConfirmPurchase = `
		UPDATE orders.purchase
		SET status = 'confirmed', confirmedat = NOW(), fulfillmenttoken = $2
		WHERE id = $1 AND status = 'requested'
		RETURNING bookid`

	queryPurchaseStatus = `SELECT status FROM orders.purchase WHERE id = $1`

	queryStampLastSale = `UPDATE catalog.book SET lastsaleat = NOW() WHERE id = $1`

	queryListPending = `
		SELECT ` + purchaseColumns + `, b.title, a.username
		FROM orders.purchase p
		JOIN catalog.book b ON b.id = p.bookid
		JOIN users.account a ON a.id = p.userid
		WHERE p.status = 'requested'
		ORDER BY p.requestedat DESC`

	queryListByBook = `
		SELECT ` + purchaseColumns + `, b.title, a.username
		FROM orders.purchase p
		JOIN catalog.book b ON b.id = p.bookid
		JOIN users.account a ON a.id = p.userid
		WHERE p.bookid = $1
		ORDER BY p.requestedat DESC`

	queryPurgeByBook = `DELETE FROM orders.purchase WHERE bookid = $1`

	queryClearLastSale = `UPDATE catalog.book SET lastsaleat = NULL WHERE id = $1`

	queryAuthorStats = `
		SELECT COALESCE(SUM(p.quantity), 0), COALESCE(SUM(p.totalcents), 0)
		FROM orders.purchase p
		JOIN catalog.book b ON b.id = p.bookid
		WHERE b.authorid = $1 AND p.status = 'confirmed'`
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPurchase(row pgx.Row) (*Purchase, error) {
	p := &Purchase{}
	err := row.Scan(
		&p.ID, &p.BookID, &p.UserID, &p.Quantity, &p.TotalCents, &p.Status,
		&p.RequestedAt, &p.ConfirmedAt, &p.FulfillmentToken,
		&p.BookTitle, &p.Username,
	)
	if err != nil {
		return nil, err
	}
	p.Decorate()
	return p, nil
}

func (repository *PostgresRepository) Create(context context.Context, p *Purchase) error {
	err := repository.db.QueryRow(context, queryInsertPurchase,
		p.ID, p.BookID, p.UserID, p.Quantity, p.TotalCents, p.Status,
	).Scan(&p.RequestedAt)
	return dberr.Wrap(err, "create_purchase")
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Purchase, error) {
	p, err := scanPurchase(repository.db.QueryRow(context, queryGetPurchase, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_purchase")
	}
	return p, nil
}

func (repository *PostgresRepository) FindConfirmed(context context.Context, userID, bookID string) (*Purchase, error) {
	p, err := scanPurchase(repository.db.QueryRow(context, queryFindConfirmed, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_confirmed_purchase")
	}
	return p, nil
}

func (repository *PostgresRepository) Confirm(context context.Context, id, token string) (*Purchase, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_confirm_purchase")
	}
	defer tx.Rollback(context)

	var bookID string
	err = tx.QueryRow(context, queryConfirmPurchase, id, token).Scan(&bookID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing purchase from one already past requested.
		var status Status
		if statusErr := tx.QueryRow(context, queryPurchaseStatus, id).Scan(&status); statusErr != nil {
			return nil, dberr.Wrap(statusErr, "confirm_purchase_status")
		}
		return nil, apperr.Conflict("Purchase is not awaiting confirmation")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "confirm_purchase")
	}

	if _, err := tx.Exec(context, queryStampLastSale, bookID); err != nil {
		return nil, dberr.Wrap(err, "stamp_last_sale")
	}

	p, err := scanPurchase(tx.QueryRow(context, queryGetPurchase, id))
	if err != nil {
		return nil, dberr.Wrap(err, "reload_purchase")
	}

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_confirm_purchase")
	}
	return p, nil
}

func (repository *PostgresRepository) ListPending(context context.Context) ([]*Purchase, error) {
	return repository.list(context, queryListPending)
}

func (repository *PostgresRepository) ListByBook(context context.Context, bookID string) ([]*Purchase, error) {
	return repository.list(context, queryListByBook, bookID)
}

func (repository *PostgresRepository) list(context context.Context, query string, args ...any) ([]*Purchase, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_purchases")
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_purchase")
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func (repository *PostgresRepository) PurgeByBook(context context.Context, bookID string) (int64, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return 0, dberr.Wrap(err, "begin_purge_sales")
	}
	defer tx.Rollback(context)

	cmd, err := tx.Exec(context, queryPurgeByBook, bookID)
	if err != nil {
		return 0, dberr.Wrap(err, "purge_sales")
	}

	if _, err := tx.Exec(context, queryClearLastSale, bookID); err != nil {
		return 0, dberr.Wrap(err, "clear_last_sale")
	}

	if err := tx.Commit(context); err != nil {
		return 0, dberr.Wrap(err, "commit_purge_sales")
	}
	return cmd.RowsAffected(), nil
}

func (repository *PostgresRepository) AuthorStats(context context.Context, authorID string) (int, int64, error) {
	var copies int
	var revenueCents int64
	err := repository.db.QueryRow(context, queryAuthorStats, authorID).Scan(&copies, &revenueCents)
	if err != nil {
		return 0, 0, dberr.Wrap(err, "author_stats")
	}
	return copies, revenueCents, nil
}
