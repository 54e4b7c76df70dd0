package models

import (
	"time"

	"github.com/google/uuid"
)

// SettingsRowID pins the configuration singleton to a single row.
const SettingsRowID = 1

// Settings is the single-row marketplace configuration: discount percentages
// per payment option and the fixed advance amount collected for payAdvance
// orders.
type Settings struct {
	ID                     int        `gorm:"column:id;primaryKey"`
	InstantPaymentDiscount float64    `gorm:"column:instant_payment_discount;not null"`
	AdvancePaymentDiscount float64    `gorm:"column:advance_payment_discount;not null"`
	AdvancePaymentAmount   float64    `gorm:"column:advance_payment_amount;not null"`
	UpdatedBy              *uuid.UUID `gorm:"column:updated_by;type:uuid"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
