package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// Coupon is a discount rule. Empty ApplicableCategories/ApplicableDurations
// mean the coupon is unrestricted. UsageCount only ever increases.
type Coupon struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code        string           `gorm:"column:code;not null;uniqueIndex"`
	Title       string           `gorm:"column:title;not null"`
	Description *string          `gorm:"column:description"`
	Type        enums.CouponType `gorm:"column:type;type:text;not null"`
	Value       float64          `gorm:"column:value;not null"`
	MinAmount   float64          `gorm:"column:min_amount;not null;default:0"`
	MaxDiscount *float64         `gorm:"column:max_discount"`

	ValidFrom  time.Time `gorm:"column:valid_from;not null"`
	ValidUntil time.Time `gorm:"column:valid_until;not null"`

	UsageLimit *int `gorm:"column:usage_limit"`
	UserLimit  *int `gorm:"column:user_limit"`
	UsageCount int  `gorm:"column:usage_count;not null;default:0"`

	ApplicableCategories pq.StringArray `gorm:"column:applicable_categories;type:text[]"`
	ApplicableDurations  pq.Int64Array  `gorm:"column:applicable_durations;type:bigint[]"`

	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// CouponUsage is an append-only ledger row recording one redemption. Per-user
// usage counts are derived from this table, never from a counter that could
// be decremented.
type CouponUsage struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CouponID       uuid.UUID `gorm:"column:coupon_id;type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	DiscountAmount float64   `gorm:"column:discount_amount;not null"`
	UsedAt         time.Time `gorm:"column:used_at;not null"`
}
