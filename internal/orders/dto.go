package orders

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

// ItemInput is one requested order line. Exactly one of ProductID/ServiceID
// must be set, matching Type.
type ItemInput struct {
	Type             string                `json:"type" validate:"required,oneof=rental service"`
	ProductID        *uuid.UUID            `json:"product_id"`
	ServiceID        *uuid.UUID            `json:"service_id"`
	Quantity         int                   `json:"quantity" validate:"omitempty,gte=1,lte=20"`
	Price            *float64              `json:"price" validate:"omitempty,gte=0"`
	Duration         int                   `json:"duration"`
	IsMonthlyPayment bool                  `json:"is_monthly_payment"`
	MonthlyPrice     *float64              `json:"monthly_price" validate:"omitempty,gte=0"`
	MonthlyTenure    int                   `json:"monthly_tenure"`
	SecurityDeposit  *float64              `json:"security_deposit" validate:"omitempty,gte=0"`
	BookingDetails   *types.BookingDetails `json:"booking_details"`
}

// UnmarshalJSON accepts the legacy acId/ac_id keys as aliases for product_id.
func (i *ItemInput) UnmarshalJSON(data []byte) error {
	type plain ItemInput
	aux := struct {
		*plain
		ACIDCamel *uuid.UUID `json:"acId"`
		ACIDSnake *uuid.UUID `json:"ac_id"`
	}{plain: (*plain)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if i.ProductID == nil {
		if aux.ACIDCamel != nil {
			i.ProductID = aux.ACIDCamel
		} else {
			i.ProductID = aux.ACIDSnake
		}
	}
	return nil
}

// CustomerInfo is the contact snapshot stored on the order.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// CreateInput is the order creation payload. Client-supplied monetary fields
// are cross-checked, never trusted.
type CreateInput struct {
	OrderNumber               *string             `json:"order_id"`
	Items                     []ItemInput         `json:"items" validate:"required,min=1,dive"`
	PaymentOption             enums.PaymentOption `json:"payment_option" validate:"required"`
	CouponCode                *string             `json:"coupon_code"`
	Customer                  *CustomerInfo       `json:"customer_info"`
	PriorityServiceScheduling bool                `json:"priority_service_scheduling"`
	AdvanceAmount             *float64            `json:"advance_amount"`
	RemainingAmount           *float64            `json:"remaining_amount"`
	Total                     *float64            `json:"total"`
	FinalTotal                *float64            `json:"final_total"`

	UserID uuid.UUID `json:"-"`
}

// CancelInput carries a cancellation request.
type CancelInput struct {
	Identifier string
	Reason     string
	ActorID    uuid.UUID
	ActorRole  enums.UserRole
}

// CreateResult is the creation response payload.
type CreateResult struct {
	Order *models.Order `json:"order"`
}
