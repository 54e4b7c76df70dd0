package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rentkart/rentkart-backend/api/responses"
	"github.com/rentkart/rentkart-backend/api/validators"
	couponsvc "github.com/rentkart/rentkart-backend/internal/coupons"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

type validateCouponRequest struct {
	Code       string  `json:"code" validate:"required"`
	OrderTotal float64 `json:"order_total" validate:"required,gt=0"`

	Items []struct {
		Kind     string `json:"type"`
		Category string `json:"category"`
		Duration int    `json:"duration"`
	} `json:"items"`
}

// couponSummary is the validate response projection; internal bookkeeping
// like usage counts stays off the wire.
type couponSummary struct {
	Code        string           `json:"code"`
	Title       string           `json:"title"`
	Type        enums.CouponType `json:"type"`
	Value       float64          `json:"value"`
	MinAmount   float64          `json:"min_amount"`
	MaxDiscount *float64         `json:"max_discount,omitempty"`
	ValidUntil  time.Time        `json:"valid_until"`
}

// ValidateCoupon dry-runs the evaluator against the caller's cart.
func ValidateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body validateCouponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := couponsvc.ValidateInput{
			Code:       strings.TrimSpace(body.Code),
			OrderTotal: body.OrderTotal,
			UserID:     userID,
		}
		for _, item := range body.Items {
			entry := couponsvc.ValidationItem{
				Category: item.Category,
				Duration: item.Duration,
			}
			if raw := strings.TrimSpace(item.Kind); raw != "" {
				kind, err := enums.ParseOrderItemKind(raw)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item type"))
					return
				}
				entry.Kind = kind
			}
			input.Items = append(input.Items, entry)
		}

		result, err := svc.Validate(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "coupon valid", map[string]any{
			"coupon": couponSummary{
				Code:        result.Coupon.Code,
				Title:       result.Coupon.Title,
				Type:        result.Coupon.Type,
				Value:       result.Coupon.Value,
				MinAmount:   result.Coupon.MinAmount,
				MaxDiscount: result.Coupon.MaxDiscount,
				ValidUntil:  result.Coupon.ValidUntil,
			},
			"discount_amount": result.DiscountAmount,
		})
	}
}

// ListAvailableCoupons shows coupons the caller can still redeem.
func ListAvailableCoupons(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := couponsvc.ListFilter{
			UserID:   userID,
			Category: validators.SanitizeString(r.URL.Query().Get("category"), 100),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("min_amount")); raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil || amount < 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "min_amount must be a non-negative number"))
				return
			}
			filter.MinAmount = amount
		}

		coupons, err := svc.ListAvailable(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "coupons", coupons)
	}
}

func AdminListCoupons(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coupons, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "coupons", coupons)
	}
}

func CreateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input couponsvc.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "coupon created", coupon)
	}
}

func UpdateCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input couponsvc.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "coupon updated", coupon)
	}
}

func DeleteCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "coupon deleted", nil)
	}
}
