package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// CreateIntentInput asks for a gateway checkout sized to the amount
// currently due on the order.
type CreateIntentInput struct {
	OrderIdentifier string  `json:"order_id" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	UserID          uuid.UUID
}

// CreateIntentResult is what the browser checkout needs.
type CreateIntentResult struct {
	PaymentID       uuid.UUID `json:"payment_id"`
	PaymentNumber   string    `json:"payment_number"`
	OrderID         uuid.UUID `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	RazorpayOrderID string    `json:"razorpay_order_id"`
	Key             string    `json:"key"`
}

// VerifyInput is the checkout callback payload.
type VerifyInput struct {
	GatewayOrderID   string     `json:"razorpay_order_id" validate:"required"`
	GatewayPaymentID string     `json:"razorpay_payment_id" validate:"required"`
	Signature        string     `json:"razorpay_signature" validate:"required"`
	PaymentID        *uuid.UUID `json:"payment_id"`
}

// VerifyResult reports the applied state after verification.
type VerifyResult struct {
	OrderID       uuid.UUID           `json:"order_id"`
	PaymentID     uuid.UUID           `json:"payment_id"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	VerifiedAt    time.Time           `json:"verified_at"`
}

// ProcessInput is the legacy combined endpoint: intent lookup plus
// verification in one call.
type ProcessInput struct {
	OrderIdentifier  string `json:"order_id" validate:"required"`
	GatewayOrderID   string `json:"razorpay_order_id" validate:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature        string `json:"razorpay_signature" validate:"required"`
}

// webhookEvent is the slice of the gateway's webhook body the engine reads.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID               string `json:"id"`
				OrderID          string `json:"order_id"`
				Status           string `json:"status"`
				ErrorDescription string `json:"error_description"`
			} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity struct {
				ID      string `json:"id"`
				Receipt string `json:"receipt"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}
