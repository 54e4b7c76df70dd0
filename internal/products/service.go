package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/money"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

// Service exposes catalog reads plus admin writes.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter) (*ListPage, error)
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the products service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListPage, error) {
	rows, next, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return &ListPage{Products: rows, NextCursor: next}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	if !input.Pricing.Complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricing must cover every rental duration")
	}
	if input.MonthlyPlan != nil && (input.MonthlyPlan.MonthlyPrice <= 0 || input.MonthlyPlan.SecurityDeposit < 0) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "monthly plan prices must be positive")
	}

	product := &models.Product{
		Category:           input.Category,
		Brand:              input.Brand,
		Model:              input.Model,
		Capacity:           input.Capacity,
		Type:               input.Type,
		Description:        input.Description,
		ImageURL:           input.ImageURL,
		Pricing:            input.Pricing,
		MonthlyPlan:        input.MonthlyPlan,
		InstallationCharge: money.Round(input.InstallationCharge),
		Status:             enums.ProductStatusAvailable,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.Model != nil {
		updates["model"] = *input.Model
	}
	if input.Capacity != nil {
		updates["capacity"] = *input.Capacity
	}
	if input.Type != nil {
		updates["type"] = *input.Type
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.Pricing != nil {
		if !input.Pricing.Complete() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricing must cover every rental duration")
		}
		updates["pricing"] = *input.Pricing
	}
	if input.MonthlyPlan != nil {
		updates["monthly_plan"] = *input.MonthlyPlan
	}
	if input.InstallationCharge != nil {
		updates["installation_charge"] = money.Round(*input.InstallationCharge)
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product status")
		}
		updates["status"] = *input.Status
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}
