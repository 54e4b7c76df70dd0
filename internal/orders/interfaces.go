package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/coupons"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

// Repository persists orders and their embedded items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error)
	ListAll(ctx context.Context, status enums.OrderStatus, params pagination.Params) ([]models.Order, string, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	CountForYear(ctx context.Context, year int) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productCatalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	SetStatusIf(ctx context.Context, id uuid.UUID, expected, next enums.ProductStatus) (bool, error)
}

type serviceCatalog interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.HomeService, error)
}

type settingsProvider interface {
	Get(ctx context.Context) (*models.Settings, error)
}

type couponEvaluator interface {
	Validate(ctx context.Context, input coupons.ValidateInput) (*coupons.ValidationResult, error)
	Redeem(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, userID, orderID uuid.UUID, discountAmount float64) error
}

type bookingWriter interface {
	Create(ctx context.Context, booking *models.ServiceBooking) error
	CancelByOrder(ctx context.Context, orderID uuid.UUID) error
}

type notifier interface {
	OrderCreated(ctx context.Context, order *models.Order)
	OrderCancelled(ctx context.Context, order *models.Order, reason string)
}
