// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package reference

import (
	"context"
	"log/slog"

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

func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.repo.ListCategories(context)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	category.ID = uuidv7.New()
	if err := service.repo.CreateCategory(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("name", category.Name))
	return nil
}

func (service *Service) DeleteCategory(context context.Context, id string) error {
	if err := service.repo.DeleteCategory(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("category_id", id))
	return nil
}

func (service *Service) ListAgeRatings(context context.Context) ([]*AgeRating, error) {
	return service.repo.ListAgeRatings(context)
}

func (service *Service) CreateAgeRating(context context.Context, rating *AgeRating) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, rating.Name).MaxLen(FieldName, rating.Name, 100)
	if err := validator.Err(); err != nil {
		return err
	}

	rating.ID = uuidv7.New()
	if err := service.repo.CreateAgeRating(context, rating); err != nil {
		return err
	}

	service.logger.Info("age_rating_created", slog.String("name", rating.Name))
	return nil
}

func (service *Service) DeleteAgeRating(context context.Context, id string) error {
	if err := service.repo.DeleteAgeRating(context, id); err != nil {
		return err
	}

	service.logger.Warn("age_rating_deleted", slog.String("age_rating_id", id))
	return nil
}
