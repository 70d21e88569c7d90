// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/tintero-app/tintero/internal/platform/validate"
	"github.com/tintero-app/tintero/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns one page of the public catalog.
func (service *Service) List(context context.Context, filter Filter, today time.Time, limit, offset int) ([]*Book, int, error) {
	return service.repo.List(context, filter, today, limit, offset)
}

// GetActive returns an active book for public detail pages.
func (service *Service) GetActive(context context.Context, id string) (*Book, error) {
	return service.repo.GetActive(context, id)
}

// Get returns a book regardless of its active flag, for administration.
func (service *Service) Get(context context.Context, id string) (*Book, error) {
	return service.repo.Get(context, id)
}

// ListByAuthor returns the books published by the given author account.
func (service *Service) ListByAuthor(context context.Context, authorID string) ([]*Book, error) {
	return service.repo.ListByAuthor(context, authorID)
}

func (service *Service) Create(context context.Context, book *Book) error {
	if err := validateBook(book); err != nil {
		return err
	}

	book.ID = uuidv7.New()
	book.Active = true
	if err := service.repo.Create(context, book); err != nil {
		return err
	}
	book.Decorate()

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
	)
	return nil
}

func (service *Service) Update(context context.Context, id string, book *Book) error {
	book.ID = id
	if err := validateBook(book); err != nil {
		return err
	}

	if err := service.repo.Update(context, book); err != nil {
		return err
	}
	book.Decorate()

	service.logger.Info("book_updated", slog.String("book_id", book.ID))
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id))
	return nil
}

// validateBook rejects malformed catalog records. A negative price must
// never reach storage.
func validateBook(book *Book) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 200)
	validator.Required(FieldAuthorID, book.AuthorID).UUID(FieldAuthorID, book.AuthorID)
	validator.Required(FieldCategoryID, book.CategoryID).UUID(FieldCategoryID, book.CategoryID)
	validator.Required(FieldAgeRatingID, book.AgeRatingID).UUID(FieldAgeRatingID, book.AgeRatingID)
	validator.Custom(FieldPriceCents, book.PriceCents < 0, "Must not be negative")
	validator.Custom(FieldPriceCents, book.HasPromotion && (book.PromotionStart == nil || book.PromotionEnd == nil),
		"Promotion requires a start and end date")
	return validator.Err()
}
