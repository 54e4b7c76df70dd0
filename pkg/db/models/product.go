package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

// Product is a rentable appliance listing. Pricing carries an amount for
// every supported tenure; MonthlyPlan is present only when the product can be
// rented on a pay-monthly basis. InstallationCharge applies to ACs.
type Product struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Category           enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Brand              string                `gorm:"column:brand;not null"`
	Model              string                `gorm:"column:model;not null"`
	Capacity           string                `gorm:"column:capacity"`
	Type               string                `gorm:"column:type"`
	Description        *string               `gorm:"column:description"`
	ImageURL           *string               `gorm:"column:image_url"`
	Pricing            types.DurationPricing `gorm:"column:pricing;type:jsonb;serializer:json;not null"`
	MonthlyPlan        *types.MonthlyPlan    `gorm:"column:monthly_plan;type:jsonb;serializer:json"`
	InstallationCharge float64               `gorm:"column:installation_charge;not null;default:0"`
	Status             enums.ProductStatus   `gorm:"column:status;type:text;not null;default:'Available'"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
