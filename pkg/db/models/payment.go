package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// Payment is one attempt to collect a specific amount against an order.
// Amount equals the amount due at creation time (full finalTotal, the advance
// amount, or the remaining amount). The Pending -> Completed transition is the
// linearization point for all reconciliation entry points.
type Payment struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentNumber string    `gorm:"column:payment_number;not null;uniqueIndex"`
	OrderID       uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null"`

	Amount   float64 `gorm:"column:amount;not null"`
	Currency string  `gorm:"column:currency;not null;default:'INR'"`
	Gateway  string  `gorm:"column:gateway;not null;default:'razorpay'"`

	GatewayOrderID *string `gorm:"column:gateway_order_id;index"`
	TransactionID  *string `gorm:"column:transaction_id"`
	Signature      *string `gorm:"column:signature"`

	Status        enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'Pending'"`
	FailureReason *string             `gorm:"column:failure_reason"`
	PaidAt        *time.Time          `gorm:"column:paid_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
