package enums

import "fmt"

// PaymentOption selects how the buyer settles an order.
type PaymentOption string

const (
	PaymentOptionPayNow     PaymentOption = "payNow"
	PaymentOptionPayAdvance PaymentOption = "payAdvance"
	PaymentOptionPayLater   PaymentOption = "payLater"
)

var validPaymentOptions = []PaymentOption{
	PaymentOptionPayNow,
	PaymentOptionPayAdvance,
	PaymentOptionPayLater,
}

// String implements fmt.Stringer.
func (o PaymentOption) String() string {
	return string(o)
}

// IsValid reports whether the value is a known PaymentOption.
func (o PaymentOption) IsValid() bool {
	for _, candidate := range validPaymentOptions {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParsePaymentOption converts raw input into a PaymentOption.
func ParsePaymentOption(value string) (PaymentOption, error) {
	for _, candidate := range validPaymentOptions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment option %q", value)
}

// OrderPaymentStatus summarizes how much of an order has been collected.
type OrderPaymentStatus string

const (
	OrderPaymentStatusPending     OrderPaymentStatus = "pending"
	OrderPaymentStatusPaid        OrderPaymentStatus = "paid"
	OrderPaymentStatusAdvancePaid OrderPaymentStatus = "advance_paid"
)

var validOrderPaymentStatuses = []OrderPaymentStatus{
	OrderPaymentStatusPending,
	OrderPaymentStatusPaid,
	OrderPaymentStatusAdvancePaid,
}

// String implements fmt.Stringer.
func (s OrderPaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderPaymentStatus.
func (s OrderPaymentStatus) IsValid() bool {
	for _, candidate := range validOrderPaymentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// PaymentStatus tracks a single payment attempt against an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// String implements fmt.Stringer.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PaymentStatus.
func (s PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}
