package enums

import "fmt"

// RentalDuration is a supported tenure in months. Pricing requires every
// product to carry an amount for each of these durations.
type RentalDuration int

const (
	RentalDuration3  RentalDuration = 3
	RentalDuration6  RentalDuration = 6
	RentalDuration9  RentalDuration = 9
	RentalDuration11 RentalDuration = 11
	RentalDuration12 RentalDuration = 12
	RentalDuration24 RentalDuration = 24
)

// RentalDurations lists every supported tenure in ascending order.
var RentalDurations = []RentalDuration{
	RentalDuration3,
	RentalDuration6,
	RentalDuration9,
	RentalDuration11,
	RentalDuration12,
	RentalDuration24,
}

// IsValid reports whether the value is a supported tenure.
func (d RentalDuration) IsValid() bool {
	for _, candidate := range RentalDurations {
		if candidate == d {
			return true
		}
	}
	return false
}

// Months returns the duration as a plain month count.
func (d RentalDuration) Months() int {
	return int(d)
}

// ParseRentalDuration converts a month count into a RentalDuration.
func ParseRentalDuration(months int) (RentalDuration, error) {
	d := RentalDuration(months)
	if !d.IsValid() {
		return 0, fmt.Errorf("invalid rental duration %d months", months)
	}
	return d, nil
}
