package types

import (
	"encoding/json"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// DurationPricing is the per-tenure rent schedule of a product. Every
// supported tenure must carry a positive amount; the 12 month price is
// expected to be at least the 11 month price.
type DurationPricing struct {
	Months3  float64 `json:"3"`
	Months6  float64 `json:"6"`
	Months9  float64 `json:"9"`
	Months11 float64 `json:"11"`
	Months12 float64 `json:"12"`
	Months24 float64 `json:"24"`
}

// PriceFor returns the configured amount for the tenure.
func (p DurationPricing) PriceFor(d enums.RentalDuration) (float64, bool) {
	switch d {
	case enums.RentalDuration3:
		return p.Months3, p.Months3 > 0
	case enums.RentalDuration6:
		return p.Months6, p.Months6 > 0
	case enums.RentalDuration9:
		return p.Months9, p.Months9 > 0
	case enums.RentalDuration11:
		return p.Months11, p.Months11 > 0
	case enums.RentalDuration12:
		return p.Months12, p.Months12 > 0
	case enums.RentalDuration24:
		return p.Months24, p.Months24 > 0
	}
	return 0, false
}

// Complete reports whether every supported tenure has a positive price.
func (p DurationPricing) Complete() bool {
	for _, d := range enums.RentalDurations {
		if _, ok := p.PriceFor(d); !ok {
			return false
		}
	}
	return true
}

// MonthlyPlan is the optional pay-monthly configuration of a product.
type MonthlyPlan struct {
	MonthlyPrice    float64 `json:"monthly_price"`
	SecurityDeposit float64 `json:"security_deposit"`
}

// BookingDetails is the visit information attached to a service order line.
// The canonical field names are used internally; request parsing translates
// legacy aliases (date, notes) at the boundary.
type BookingDetails struct {
	PreferredDate string `json:"preferred_date,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
	Address       string `json:"address,omitempty"`
	Description   string `json:"description,omitempty"`
	ContactName   string `json:"contact_name,omitempty"`
	ContactPhone  string `json:"contact_phone,omitempty"`
}

// UnmarshalJSON accepts the legacy date/notes keys older clients still send
// and folds them into the canonical fields.
func (b *BookingDetails) UnmarshalJSON(data []byte) error {
	type plain BookingDetails
	aux := struct {
		*plain
		Date  string `json:"date"`
		Notes string `json:"notes"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if b.PreferredDate == "" {
		b.PreferredDate = aux.Date
	}
	if b.Description == "" {
		b.Description = aux.Notes
	}
	return nil
}
