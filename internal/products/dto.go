package products

import (
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

// ListFilter narrows the catalog listing. Zero values match all.
type ListFilter struct {
	Category enums.ProductCategory
	Status   enums.ProductStatus
	Brand    string
	Limit    int
	Cursor   string
}

// CreateInput is the admin payload for a new listing.
type CreateInput struct {
	Category           enums.ProductCategory `json:"category" validate:"required"`
	Brand              string                `json:"brand" validate:"required"`
	Model              string                `json:"model" validate:"required"`
	Capacity           string                `json:"capacity"`
	Type               string                `json:"type"`
	Description        *string               `json:"description"`
	ImageURL           *string               `json:"image_url" validate:"omitempty,url"`
	Pricing            types.DurationPricing `json:"pricing" validate:"required"`
	MonthlyPlan        *types.MonthlyPlan    `json:"monthly_plan"`
	InstallationCharge float64               `json:"installation_charge" validate:"gte=0"`
}

// UpdateInput is a partial admin edit. Nil fields are untouched.
type UpdateInput struct {
	Brand              *string                `json:"brand"`
	Model              *string                `json:"model"`
	Capacity           *string                `json:"capacity"`
	Type               *string                `json:"type"`
	Description        *string                `json:"description"`
	ImageURL           *string                `json:"image_url" validate:"omitempty,url"`
	Pricing            *types.DurationPricing `json:"pricing"`
	MonthlyPlan        *types.MonthlyPlan     `json:"monthly_plan"`
	InstallationCharge *float64               `json:"installation_charge" validate:"omitempty,gte=0"`
	Status             *enums.ProductStatus   `json:"status"`
}

// ListPage is a cursor page of products.
type ListPage struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
