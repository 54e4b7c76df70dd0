package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/api/middleware"
	couponsvc "github.com/rentkart/rentkart-backend/internal/coupons"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

type stubCouponService struct {
	result *couponsvc.ValidationResult
}

func (s *stubCouponService) Validate(ctx context.Context, input couponsvc.ValidateInput) (*couponsvc.ValidationResult, error) {
	return s.result, nil
}

func (s *stubCouponService) ListAvailable(ctx context.Context, filter couponsvc.ListFilter) ([]models.Coupon, error) {
	return nil, nil
}

func (s *stubCouponService) Redeem(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, userID, orderID uuid.UUID, discountAmount float64) error {
	return nil
}

func (s *stubCouponService) Create(ctx context.Context, input couponsvc.CreateInput) (*models.Coupon, error) {
	return nil, nil
}

func (s *stubCouponService) Update(ctx context.Context, id uuid.UUID, input couponsvc.UpdateInput) (*models.Coupon, error) {
	return nil, nil
}

func (s *stubCouponService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubCouponService) List(ctx context.Context) ([]models.Coupon, error) { return nil, nil }

func TestValidateCouponRespondsWithSummary(t *testing.T) {
	maxDiscount := 300.0
	usageLimit := 50
	svc := &stubCouponService{result: &couponsvc.ValidationResult{
		Coupon: &models.Coupon{
			ID:          uuid.New(),
			Code:        "WELCOME10",
			Title:       "Welcome offer",
			Type:        enums.CouponTypePercentage,
			Value:       10,
			MinAmount:   500,
			MaxDiscount: &maxDiscount,
			ValidUntil:  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			UsageLimit:  &usageLimit,
			UsageCount:  7,
		},
		DiscountAmount: 120,
	}}

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/coupons/validate",
		strings.NewReader(`{"code":"WELCOME10","order_total":1200}`))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))

	rec := httptest.NewRecorder()
	ValidateCoupon(svc, logg)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Coupon         map[string]any `json:"coupon"`
			DiscountAmount float64        `json:"discount_amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if envelope.Data.Coupon["code"] != "WELCOME10" {
		t.Errorf("code = %v, want WELCOME10", envelope.Data.Coupon["code"])
	}
	if envelope.Data.DiscountAmount != 120 {
		t.Errorf("discount_amount = %v, want 120", envelope.Data.DiscountAmount)
	}
	for _, internal := range []string{"usage_count", "usage_limit", "user_limit", "id", "is_active"} {
		if _, ok := envelope.Data.Coupon[internal]; ok {
			t.Errorf("coupon summary leaks internal field %q", internal)
		}
	}
}
