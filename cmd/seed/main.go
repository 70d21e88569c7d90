// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

// Command seed imports a local directory of book folders into the catalog.
//
// Each folder under -dir must be named book_<n> and contain book.pdf and
// cover.jpg. The command ensures the baseline lookup rows and a seed author
// account exist, uploads both files to the object store, and inserts the
// catalog rows. It is idempotent per title: already-imported books are
// skipped.
//
// Usage:
//
//	seed -dir ./media/books
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tintero-app/tintero/internal/catalog/book"
	"github.com/tintero-app/tintero/internal/catalog/reference"
	"github.com/tintero-app/tintero/internal/platform/config"
	"github.com/tintero-app/tintero/internal/platform/migration"
	pgstore "github.com/tintero-app/tintero/internal/platform/postgres"
	"github.com/tintero-app/tintero/internal/platform/sec"
	"github.com/tintero-app/tintero/internal/platform/storage"
	"github.com/tintero-app/tintero/internal/users/auth"
	"github.com/tintero-app/tintero/pkg/uuidv7"
)

const (
	defaultCategoryName  = "General"
	defaultAgeRatingName = "All ages"
	seedAuthorUsername   = "tintero"
	seedAuthorEmail      = "catalog@tintero.shop"
)

func main() {
	dir := flag.String("dir", "./media/books", "directory holding book_<n> folders")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "tintero-seed"))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	files, err := storage.NewMinioStore(cfg.StorageEndpoint, cfg.StorageAccessKey, cfg.StorageSecretKey, cfg.StorageBucket, cfg.StorageUseSSL)
	must(log, err, "connect to object store")

	books := book.NewPostgresRepository(pool)
	references := reference.NewPostgresRepository(pool)
	users := auth.NewUserRepository(pool)

	categoryID, err := ensureCategory(ctx, references)
	must(log, err, "ensure default category")

	ratingID, err := ensureAgeRating(ctx, references)
	must(log, err, "ensure default age rating")

	authorID, err := ensureAuthor(ctx, users)
	must(log, err, "ensure seed author")

	imported, skipped := 0, 0
	entries, err := os.ReadDir(*dir)
	must(log, err, "read seed directory")

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		title, ok := seedTitle(entry.Name())
		if !ok {
			log.Warn("folder_skipped", slog.String("folder", entry.Name()))
			continue
		}
		folder := filepath.Join(*dir, entry.Name())

		created, err := importBook(ctx, books, files, folder, title, authorID, categoryID, ratingID)
		if err != nil {
			log.Error("import_failed", slog.String("folder", folder), slog.Any("error", err))
			continue
		}
		if created {
			imported++
			log.Info("book_imported", slog.String("title", title))
		} else {
			skipped++
		}
	}

	log.Info("seed_complete", slog.Int("imported", imported), slog.Int("skipped", skipped))
}

// seedTitle derives a human title from a folder name like "book_7". Folders
// that do not follow the naming scheme are reported as not importable.
func seedTitle(folder string) (string, bool) {
	suffix, found := strings.CutPrefix(folder, "book_")
	if !found || suffix == "" {
		return "", false
	}
	return "Book " + suffix, true
}

func ensureCategory(ctx context.Context, repo reference.Repository) (string, error) {
	categories, err := repo.ListCategories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.Name == defaultCategoryName {
			return c.ID, nil
		}
	}

	created := &reference.Category{ID: uuidv7.New(), Name: defaultCategoryName}
	if err := repo.CreateCategory(ctx, created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func ensureAgeRating(ctx context.Context, repo reference.Repository) (string, error) {
	ratings, err := repo.ListAgeRatings(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range ratings {
		if r.Name == defaultAgeRatingName {
			return r.ID, nil
		}
	}

	created := &reference.AgeRating{ID: uuidv7.New(), Name: defaultAgeRatingName}
	if err := repo.CreateAgeRating(ctx, created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// ensureAuthor creates the placeholder author account that owns imported
// books. The password must be rotated before the account is ever used
// interactively.
func ensureAuthor(ctx context.Context, users auth.UserRepository) (string, error) {
	existing, err := users.FindByUsername(ctx, seedAuthorUsername)
	if err == nil {
		return existing.ID, nil
	}

	hash, err := sec.HashPassword(uuidv7.New())
	if err != nil {
		return "", err
	}

	user := &auth.User{
		ID:           uuidv7.New(),
		Username:     seedAuthorUsername,
		Email:        seedAuthorEmail,
		PasswordHash: hash,
		Role:         sec.RoleAuthor,
		IsActive:     true,
	}
	if err := users.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// importBook uploads the folder's files and inserts the catalog row. It
// reports false without error when the title already exists.
func importBook(ctx context.Context, books book.Repository, files storage.ObjectStore, folder, title, authorID, categoryID, ratingID string) (bool, error) {
	existing, _, err := books.List(ctx, book.Filter{}, time.Now(), 1000, 0)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if b.Title == title {
			return false, nil
		}
	}

	id := uuidv7.New()
	coverKey := fmt.Sprintf("covers/%s.jpg", id)
	fileKey := fmt.Sprintf("books/%s.pdf", id)

	if err := upload(ctx, files, filepath.Join(folder, "cover.jpg"), coverKey, "image/jpeg"); err != nil {
		return false, err
	}
	if err := upload(ctx, files, filepath.Join(folder, "book.pdf"), fileKey, "application/pdf"); err != nil {
		return false, err
	}

	b := &book.Book{
		ID:          id,
		Title:       title,
		AuthorID:    authorID,
		Description: fmt.Sprintf("Description for %s", title),
		PriceCents:  0,
		CategoryID:  categoryID,
		AgeRatingID: ratingID,
		CoverKey:    &coverKey,
		FileKey:     &fileKey,
		Active:      true,
	}
	return true, books.Create(ctx, b)
}

func upload(ctx context.Context, files storage.ObjectStore, path, key, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	return files.Put(ctx, key, f, info.Size(), contentType)
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
