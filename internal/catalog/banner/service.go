// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

package banner

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

// Visible returns the banners that should accompany today's catalog listing.
func (service *Service) Visible(context context.Context, day time.Time) ([]*Banner, error) {
	return service.repo.ListVisible(context, day)
}

func (service *Service) ListAll(context context.Context) ([]*Banner, error) {
	return service.repo.ListAll(context)
}

func (service *Service) Create(context context.Context, banner *Banner) error {
	if err := validateWindow(banner); err != nil {
		return err
	}

	banner.ID = uuidv7.New()
	if err := service.repo.Create(context, banner); err != nil {
		return err
	}

	service.logger.Info("banner_created", slog.String("title", banner.Title))
	return nil
}

func (service *Service) Update(context context.Context, id string, banner *Banner) error {
	banner.ID = id
	if err := validateWindow(banner); err != nil {
		return err
	}

	if err := service.repo.Update(context, banner); err != nil {
		return err
	}

	service.logger.Info("banner_updated", slog.String("banner_id", banner.ID))
	return nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("banner_deleted", slog.String("banner_id", id))
	return nil
}

func validateWindow(banner *Banner) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, banner.Title).MaxLen(FieldTitle, banner.Title, 200)
	validator.Custom(FieldStartsOn, banner.StartsOn.IsZero(), "This field is required")
	validator.Custom(FieldEndsOn, banner.EndsOn.IsZero(), "This field is required")
	validator.Custom(FieldEndsOn, !banner.EndsOn.IsZero() && banner.EndsOn.Before(banner.StartsOn),
		"Must not precede starts_on")
	return validator.Err()
}
