package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

// AddInput adds one line to the cart.
type AddInput struct {
	Kind           string                `json:"type" validate:"required,oneof=rental service"`
	ProductID      *uuid.UUID            `json:"product_id"`
	ServiceID      *uuid.UUID            `json:"service_id"`
	Quantity       int                   `json:"quantity" validate:"omitempty,min=1,max=10"`
	Duration       int                   `json:"duration"`
	IsMonthly      bool                  `json:"is_monthly_payment"`
	BookingDetails *types.BookingDetails `json:"booking_details"`
}

// UpdateInput edits an existing line. Nil fields are untouched.
type UpdateInput struct {
	Quantity       *int                  `json:"quantity" validate:"omitempty,min=1,max=10"`
	Duration       *int                  `json:"duration"`
	BookingDetails *types.BookingDetails `json:"booking_details"`
}

// Entry is one cart line joined with its catalog record.
type Entry struct {
	Item    models.CartItem     `json:"item"`
	Product *models.Product     `json:"product,omitempty"`
	Service *models.HomeService `json:"service,omitempty"`
}

// Service manages the user's cart.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, input AddInput) (*models.CartItem, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, input UpdateInput) (*models.CartItem, error)
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, item *models.CartItem) error
	FindByID(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error)
	FindByTarget(ctx context.Context, userID uuid.UUID, productID, serviceID *uuid.UUID) (*models.CartItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, updates map[string]any) (bool, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type productCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type serviceCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.HomeService, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.HomeService, error)
}

type service struct {
	repo     repository
	products productCatalog
	services serviceCatalog
}

// NewService wires the cart service.
func NewService(repo repository, products productCatalog, services serviceCatalog) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if services == nil {
		return nil, fmt.Errorf("service catalog required")
	}
	return &service{repo: repo, products: products, services: services}, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, input AddInput) (*models.CartItem, error) {
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item := &models.CartItem{
		UserID:         userID,
		Quantity:       quantity,
		BookingDetails: input.BookingDetails,
	}

	switch enums.OrderItemKind(input.Kind) {
	case enums.OrderItemKindRental:
		if input.ProductID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required for rental items")
		}
		product, err := s.products.FindByID(ctx, *input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}
		if input.IsMonthly {
			if product.MonthlyPlan == nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "product does not offer a monthly plan")
			}
		} else if _, err := enums.ParseRentalDuration(input.Duration); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		item.Kind = enums.OrderItemKindRental
		item.ProductID = input.ProductID
		item.Duration = input.Duration
		item.IsMonthlyPayment = input.IsMonthly

	case enums.OrderItemKindService:
		if input.ServiceID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service_id is required for service items")
		}
		svc, err := s.services.FindByID(ctx, *input.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load service")
		}
		if !svc.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service is not available")
		}
		item.Kind = enums.OrderItemKindService
		item.ServiceID = input.ServiceID

	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item type must be rental or service")
	}

	// Same target twice merges into one line.
	existing, err := s.repo.FindByTarget(ctx, userID, item.ProductID, item.ServiceID)
	if err == nil {
		updates := map[string]any{"quantity": existing.Quantity + quantity}
		if item.Kind == enums.OrderItemKindRental {
			updates["duration"] = item.Duration
			updates["is_monthly_payment"] = item.IsMonthlyPayment
		}
		if _, err := s.repo.Update(ctx, userID, existing.ID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge cart item")
		}
		return s.repo.FindByID(ctx, userID, existing.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check cart")
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
	}
	return item, nil
}

func (s *service) Update(ctx context.Context, userID, itemID uuid.UUID, input UpdateInput) (*models.CartItem, error) {
	item, err := s.repo.FindByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}

	updates := map[string]any{}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		updates["quantity"] = *input.Quantity
	}
	if input.Duration != nil {
		if item.Kind != enums.OrderItemKindRental {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration applies to rental items only")
		}
		if !item.IsMonthlyPayment {
			if _, err := enums.ParseRentalDuration(*input.Duration); err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
			}
		}
		updates["duration"] = *input.Duration
	}
	if input.BookingDetails != nil {
		updates["booking_details"] = input.BookingDetails
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if _, err := s.repo.Update(ctx, userID, itemID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	return s.repo.FindByID(ctx, userID, itemID)
}

func (s *service) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	removed, err := s.repo.Delete(ctx, userID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]Entry, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart")
	}

	var productIDs, serviceIDs []uuid.UUID
	for _, item := range items {
		if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
		if item.ServiceID != nil {
			serviceIDs = append(serviceIDs, *item.ServiceID)
		}
	}

	productsByID := map[uuid.UUID]models.Product{}
	if len(productIDs) > 0 {
		rows, err := s.products.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart products")
		}
		for _, row := range rows {
			productsByID[row.ID] = row
		}
	}
	servicesByID := map[uuid.UUID]models.HomeService{}
	if len(serviceIDs) > 0 {
		rows, err := s.services.FindByIDs(ctx, serviceIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart services")
		}
		for _, row := range rows {
			servicesByID[row.ID] = row
		}
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entry := Entry{Item: item}
		if item.ProductID != nil {
			if product, ok := productsByID[*item.ProductID]; ok {
				p := product
				entry.Product = &p
			}
		}
		if item.ServiceID != nil {
			if svc, ok := servicesByID[*item.ServiceID]; ok {
				v := svc
				entry.Service = &v
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}
