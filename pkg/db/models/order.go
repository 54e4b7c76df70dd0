package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

// Order is the aggregate root of a purchase. Monetary fields are stored
// rounded to two decimals and satisfy
// finalTotal == round(total - paymentDiscount - couponDiscount).
type Order struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber string    `gorm:"column:order_number;not null;uniqueIndex"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null"`

	Total           float64 `gorm:"column:total;not null"`
	ProductDiscount float64 `gorm:"column:product_discount;not null;default:0"`
	PaymentDiscount float64 `gorm:"column:payment_discount;not null;default:0"`
	CouponDiscount  float64 `gorm:"column:coupon_discount;not null;default:0"`
	Discount        float64 `gorm:"column:discount;not null;default:0"`
	FinalTotal      float64 `gorm:"column:final_total;not null"`

	PaymentOption enums.PaymentOption      `gorm:"column:payment_option;type:text;not null"`
	PaymentStatus enums.OrderPaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	Status        enums.OrderStatus        `gorm:"column:status;type:text;not null;default:'pending'"`

	CouponCode *string `gorm:"column:coupon_code"`

	AdvanceAmount             float64 `gorm:"column:advance_amount;not null;default:0"`
	RemainingAmount           float64 `gorm:"column:remaining_amount;not null;default:0"`
	PriorityServiceScheduling bool    `gorm:"column:priority_service_scheduling;not null;default:false"`

	CustomerName  string `gorm:"column:customer_name"`
	CustomerEmail string `gorm:"column:customer_email"`
	CustomerPhone string `gorm:"column:customer_phone"`

	CancelReason *string    `gorm:"column:cancel_reason"`
	CancelledBy  *uuid.UUID `gorm:"column:cancelled_by;type:uuid"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is one line of an order: either an appliance rental or a service
// visit. Product/service attributes are snapshotted at order time so the line
// stays historically accurate when the catalog changes.
type OrderItem struct {
	ID      uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID uuid.UUID           `gorm:"column:order_id;type:uuid;not null"`
	Kind    enums.OrderItemKind `gorm:"column:kind;type:text;not null"`

	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`
	ServiceID *uuid.UUID `gorm:"column:service_id;type:uuid"`

	Name     string `gorm:"column:name;not null"`
	Category string `gorm:"column:category"`

	Quantity int     `gorm:"column:quantity;not null;default:1"`
	Price    float64 `gorm:"column:price;not null"`
	Duration int     `gorm:"column:duration"`

	IsMonthlyPayment bool    `gorm:"column:is_monthly_payment;not null;default:false"`
	MonthlyPrice     float64 `gorm:"column:monthly_price;not null;default:0"`
	MonthlyTenure    int     `gorm:"column:monthly_tenure;not null;default:0"`
	SecurityDeposit  float64 `gorm:"column:security_deposit;not null;default:0"`

	InstallationCharge float64 `gorm:"column:installation_charge;not null;default:0"`

	BookingDetails *types.BookingDetails `gorm:"column:booking_details;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
