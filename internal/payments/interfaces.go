package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/razorpay"
)

// Repository persists payment attempts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	// MarkCompletedIf flips Pending to Completed atomically. A false return
	// means another entry point already applied the transition.
	MarkCompletedIf(ctx context.Context, id uuid.UUID, transactionID, signature string, paidAt time.Time) (bool, error)
	// MarkFailedIf records a failure only while the payment is still Pending.
	MarkFailedIf(ctx context.Context, id uuid.UUID, reason string) (bool, error)
}

type gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, req razorpay.CreateOrderRequest) (*razorpay.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderResolver interface {
	Resolve(ctx context.Context, identifier string) (*models.Order, error)
}

type productFlipper interface {
	SetStatusIf(ctx context.Context, id uuid.UUID, expected, next enums.ProductStatus) (bool, error)
}

type notifier interface {
	PaymentReceived(ctx context.Context, order *models.Order, payment *models.Payment)
	PaymentFailed(ctx context.Context, order *models.Order, payment *models.Payment, reason string)
}
