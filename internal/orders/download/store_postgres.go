// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package download

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tintero-app/tintero/internal/platform/apperr"
	"github.com/tintero-app/tintero/internal/platform/dberr"
)

const downloadColumns = `
	d.id, d.bookid, d.userid, d.status, d.requestedat, d.confirmedat,
	d.downloadedat, d.fulfillmenttoken`

const (
	queryInsertDownload = `
		INSERT INTO orders.download (id, bookid, userid, status, requestedat)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING requestedat`

	queryInsertNotification = `
		INSERT INTO orders.notification (id, downloadid, createdat, read)
		VALUES ($1, $2, NOW(), FALSE)`

	queryGetDownload = `
		SELECT ` + downloadColumns + `, b.title, a.username
		FROM orders.download d
		JOIN catalog.book b ON b.id = d.bookid
		JOIN users.account a ON a.id = d.userid
		WHERE d.id = $1`

	queryFindOpen = `
		SELECT ` + downloadColumns + `, b.title, a.username
		FROM orders.download d
		JOIN catalog.book b ON b.id = d.bookid
		JOIN users.account a ON a.id = d.userid
		WHERE d.userid = $1 AND d.bookid = $2
		  AND d.status IN ('requested', 'confirmed')
		ORDER BY d.requestedat DESC
		LIMIT 1`

	// Conditional transition: an already-confirmed download matches zero rows.
	queryConfirmDownload = `
		UPDATE orders.download
		SET status = 'confirmed', confirmedat = NOW(), fulfillmenttoken = $2
		WHERE id = $1 AND status = 'requested'
		RETURNING id`

	queryDownloadStatus = `SELECT status FROM orders.download WHERE id = $1`

	queryMarkNotificationsRead = `
		UPDATE orders.notification SET read = TRUE WHERE downloadid = $1`

	// The caller and token must match the same confirmed row; a token that
	// belongs to someone else behaves exactly like a token that does not exist.
	queryFindForFulfillment = `
		SELECT ` + downloadColumns + `, b.title, a.username
		FROM orders.download d
		JOIN catalog.book b ON b.id = d.bookid
		JOIN users.account a ON a.id = d.userid
		WHERE d.fulfillmenttoken = $1 AND d.userid = $2 AND d.status = 'confirmed'`

	queryMarkDownloaded = `
		UPDATE orders.download
		SET status = 'downloaded', downloadedat = NOW()
		WHERE id = $1 AND status = 'confirmed'`

	queryListUnreadNotifications = `
		SELECT n.id, n.downloadid, b.title, a.username, n.createdat, n.read
		FROM orders.notification n
		JOIN orders.download d ON d.id = n.downloadid
		JOIN catalog.book b ON b.id = d.bookid
		JOIN users.account a ON a.id = d.userid
		WHERE n.read = FALSE
		ORDER BY n.createdat DESC`
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanDownload(row pgx.Row) (*Download, error) {
	d := &Download{}
	err := row.Scan(
		&d.ID, &d.BookID, &d.UserID, &d.Status, &d.RequestedAt, &d.ConfirmedAt,
		&d.DownloadedAt, &d.FulfillmentToken,
		&d.BookTitle, &d.Username,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (repository *PostgresRepository) CreateWithNotification(context context.Context, d *Download, notificationID string) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_download")
	}
	defer tx.Rollback(context)

	err = tx.QueryRow(context, queryInsertDownload,
		d.ID, d.BookID, d.UserID, d.Status,
	).Scan(&d.RequestedAt)
	if err != nil {
		return dberr.Wrap(err, "create_download")
	}

	if _, err := tx.Exec(context, queryInsertNotification, notificationID, d.ID); err != nil {
		return dberr.Wrap(err, "create_notification")
	}

	return dberr.Wrap(tx.Commit(context), "commit_create_download")
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Download, error) {
	d, err := scanDownload(repository.db.QueryRow(context, queryGetDownload, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_download")
	}
	return d, nil
}

func (repository *PostgresRepository) FindOpen(context context.Context, userID, bookID string) (*Download, error) {
	d, err := scanDownload(repository.db.QueryRow(context, queryFindOpen, userID, bookID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_open_download")
	}
	return d, nil
}

func (repository *PostgresRepository) Confirm(context context.Context, id, token string) (*Download, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_confirm_download")
	}
	defer tx.Rollback(context)

	var confirmedID string
	err = tx.QueryRow(context, queryConfirmDownload, id, token).Scan(&confirmedID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing download from one already past requested.
		var status Status
		if statusErr := tx.QueryRow(context, queryDownloadStatus, id).Scan(&status); statusErr != nil {
			return nil, dberr.Wrap(statusErr, "confirm_download_status")
		}
		return nil, apperr.Conflict("Download is not awaiting confirmation")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "confirm_download")
	}

	if _, err := tx.Exec(context, queryMarkNotificationsRead, id); err != nil {
		return nil, dberr.Wrap(err, "mark_notifications_read")
	}

	d, err := scanDownload(tx.QueryRow(context, queryGetDownload, id))
	if err != nil {
		return nil, dberr.Wrap(err, "reload_download")
	}

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_confirm_download")
	}
	return d, nil
}

func (repository *PostgresRepository) FindForFulfillment(context context.Context, token, userID string) (*Download, error) {
	d, err := scanDownload(repository.db.QueryRow(context, queryFindForFulfillment, token, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_for_fulfillment")
	}
	return d, nil
}

func (repository *PostgresRepository) MarkDownloaded(context context.Context, id string) error {
	cmd, err := repository.db.Exec(context, queryMarkDownloaded, id)
	if err != nil {
		return dberr.Wrap(err, "mark_downloaded")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListUnreadNotifications(context context.Context) ([]*Notification, error) {
	rows, err := repository.db.Query(context, queryListUnreadNotifications)
	if err != nil {
		return nil, dberr.Wrap(err, "list_notifications")
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		err := rows.Scan(&n.ID, &n.DownloadID, &n.BookTitle, &n.Username, &n.CreatedAt, &n.Read)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_notification")
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
