package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// ServiceBooking is the fulfillment-side record synthesized for every service
// line of an order. Cancelling the order cascades here.
type ServiceBooking struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID           `gorm:"column:order_id;type:uuid;not null;index"`
	ServiceID uuid.UUID           `gorm:"column:service_id;type:uuid;not null"`
	UserID    uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Status    enums.BookingStatus `gorm:"column:status;type:text;not null;default:'Pending'"`

	PreferredDate string  `gorm:"column:preferred_date"`
	PreferredTime string  `gorm:"column:preferred_time"`
	Address       string  `gorm:"column:address"`
	Description   *string `gorm:"column:description"`
	Priority      bool    `gorm:"column:priority;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
