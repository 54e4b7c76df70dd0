package homeservices

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

// CreateInput is the admin payload for a new service offering.
type CreateInput struct {
	Name        string                `json:"name" validate:"required"`
	Category    enums.ProductCategory `json:"category" validate:"required"`
	Description *string               `json:"description"`
	Price       float64               `json:"price" validate:"required,gt=0"`
}

// UpdateInput is a partial admin edit. Nil fields are untouched.
type UpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	IsActive    *bool    `json:"is_active"`
}

// Service exposes the home-service catalog.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.HomeService, error)
	List(ctx context.Context, category enums.ProductCategory, includeInactive bool) ([]models.HomeService, error)
	Create(ctx context.Context, input CreateInput) (*models.HomeService, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.HomeService, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the home-services service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("home services repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.HomeService, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load service")
	}
	return svc, nil
}

func (s *service) List(ctx context.Context, category enums.ProductCategory, includeInactive bool) ([]models.HomeService, error) {
	out, err := s.repo.List(ctx, category, !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list services")
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.HomeService, error) {
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown service category")
	}
	svc := &models.HomeService{
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		Price:       money.Round(input.Price),
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create service")
	}
	return svc, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.HomeService, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = money.Round(*input.Price)
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update service")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete service")
	}
	return nil
}
