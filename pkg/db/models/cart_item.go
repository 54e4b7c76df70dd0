package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

// CartItem is a saved line the user intends to order.
type CartItem struct {
	ID     uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Kind   enums.OrderItemKind `gorm:"column:kind;type:text;not null"`

	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`
	ServiceID *uuid.UUID `gorm:"column:service_id;type:uuid"`

	Quantity         int  `gorm:"column:quantity;not null;default:1"`
	Duration         int  `gorm:"column:duration"`
	IsMonthlyPayment bool `gorm:"column:is_monthly_payment;not null;default:false"`

	BookingDetails *types.BookingDetails `gorm:"column:booking_details;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
