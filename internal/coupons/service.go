package coupons

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/money"
	"github.com/rentkart/rentkart-backend/pkg/db"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

// ValidationItem is the slice of an order line the evaluator needs:
// what kind of line it is, its category, and (for rentals) its tenure.
type ValidationItem struct {
	Kind     enums.OrderItemKind
	Category string
	Duration int
}

// ValidateInput carries one applicability question to the evaluator.
type ValidateInput struct {
	Code       string
	OrderTotal float64
	UserID     uuid.UUID
	Items      []ValidationItem
}

// ValidationResult is the approved discount plus the coupon summary the
// client renders.
type ValidationResult struct {
	Coupon         *models.Coupon
	DiscountAmount float64
}

// ListFilter narrows the available-coupons listing. Zero values match all.
type ListFilter struct {
	UserID    uuid.UUID
	Category  string
	MinAmount float64
}

// CreateInput is the admin payload for a new coupon.
type CreateInput struct {
	Code                 string           `json:"code" validate:"required,min=2,max=64"`
	Title                string           `json:"title" validate:"required"`
	Description          *string          `json:"description"`
	Type                 enums.CouponType `json:"type" validate:"required"`
	Value                float64          `json:"value" validate:"required,gt=0"`
	MinAmount            float64          `json:"min_amount" validate:"gte=0"`
	MaxDiscount          *float64         `json:"max_discount" validate:"omitempty,gt=0"`
	ValidFrom            time.Time        `json:"valid_from" validate:"required"`
	ValidUntil           time.Time        `json:"valid_until" validate:"required"`
	UsageLimit           *int             `json:"usage_limit" validate:"omitempty,gt=0"`
	UserLimit            *int             `json:"user_limit" validate:"omitempty,gt=0"`
	ApplicableCategories []string         `json:"applicable_categories"`
	ApplicableDurations  []int64          `json:"applicable_durations"`
	IsActive             *bool            `json:"is_active"`
}

// UpdateInput is a partial admin edit. Nil fields are untouched.
type UpdateInput struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Value                *float64   `json:"value" validate:"omitempty,gt=0"`
	MinAmount            *float64   `json:"min_amount" validate:"omitempty,gte=0"`
	MaxDiscount          *float64   `json:"max_discount" validate:"omitempty,gt=0"`
	ValidFrom            *time.Time `json:"valid_from"`
	ValidUntil           *time.Time `json:"valid_until"`
	UsageLimit           *int       `json:"usage_limit" validate:"omitempty,gt=0"`
	UserLimit            *int       `json:"user_limit" validate:"omitempty,gt=0"`
	ApplicableCategories []string   `json:"applicable_categories"`
	ApplicableDurations  []int64    `json:"applicable_durations"`
	IsActive             *bool      `json:"is_active"`
}

// Service evaluates, lists, redeems, and administers coupons.
type Service interface {
	Validate(ctx context.Context, input ValidateInput) (*ValidationResult, error)
	ListAvailable(ctx context.Context, filter ListFilter) ([]models.Coupon, error)
	// Redeem records one usage inside the caller's transaction. The global
	// counter increment is conditional on the usage limit so concurrent
	// checkouts cannot over-redeem.
	Redeem(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, userID, orderID uuid.UUID, discountAmount float64) error
	Create(ctx context.Context, input CreateInput) (*models.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Coupon, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the coupon service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupons repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) Validate(ctx context.Context, input ValidateInput) (*ValidationResult, error) {
	if input.Code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code required")
	}
	if input.OrderTotal < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order total cannot be negative")
	}

	coupon, err := s.repo.FindByCode(ctx, input.Code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeCouponNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load coupon")
	}

	if err := s.checkApplicability(ctx, coupon, input); err != nil {
		return nil, err
	}

	return &ValidationResult{
		Coupon:         coupon,
		DiscountAmount: discountFor(coupon, input.OrderTotal),
	}, nil
}

// checkApplicability runs the rejection checks in their fixed order; the
// first failure wins.
func (s *service) checkApplicability(ctx context.Context, coupon *models.Coupon, input ValidateInput) error {
	now := s.now()

	if !coupon.IsActive {
		return pkgerrors.New(pkgerrors.CodeCouponNotFound, "coupon not found")
	}
	if now.Before(coupon.ValidFrom) {
		return pkgerrors.New(pkgerrors.CodeCouponInvalidDate, "coupon is not valid yet")
	}
	if now.After(coupon.ValidUntil) {
		return pkgerrors.New(pkgerrors.CodeCouponExpired, "coupon has expired")
	}
	if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
		return pkgerrors.New(pkgerrors.CodeCouponUsageLimit, "coupon usage limit reached")
	}
	if input.OrderTotal < coupon.MinAmount {
		return pkgerrors.New(pkgerrors.CodeCouponMinAmount,
			fmt.Sprintf("minimum order amount of %.2f not met", coupon.MinAmount))
	}
	if coupon.UserLimit != nil && input.UserID != uuid.Nil {
		used, err := s.repo.CountUsageByUser(ctx, coupon.ID, input.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count coupon usage")
		}
		if used >= int64(*coupon.UserLimit) {
			return pkgerrors.New(pkgerrors.CodeCouponUserLimit, "coupon usage limit reached for this user")
		}
	}
	if len(coupon.ApplicableCategories) > 0 && !anyCategoryMatches(coupon.ApplicableCategories, input.Items) {
		return pkgerrors.New(pkgerrors.CodeCouponBadCategory, "coupon does not apply to these categories")
	}
	if len(coupon.ApplicableDurations) > 0 && !anyDurationMatches(coupon.ApplicableDurations, input.Items) {
		return pkgerrors.New(pkgerrors.CodeCouponBadDuration, "coupon does not apply to these rental durations")
	}
	return nil
}

func discountFor(coupon *models.Coupon, orderTotal float64) float64 {
	var discount float64
	switch coupon.Type {
	case enums.CouponTypePercentage:
		discount = money.Percent(orderTotal, coupon.Value)
		if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
			discount = *coupon.MaxDiscount
		}
	case enums.CouponTypeFixed:
		discount = coupon.Value
		if discount > orderTotal {
			discount = orderTotal
		}
	}
	return money.Round(discount)
}

func anyCategoryMatches(allowed []string, items []ValidationItem) bool {
	for _, item := range items {
		for _, cat := range allowed {
			if item.Category == cat {
				return true
			}
		}
	}
	return false
}

func anyDurationMatches(allowed []int64, items []ValidationItem) bool {
	for _, item := range items {
		if item.Kind != enums.OrderItemKindRental {
			continue
		}
		for _, d := range allowed {
			if int64(item.Duration) == d {
				return true
			}
		}
	}
	return false
}

func (s *service) ListAvailable(ctx context.Context, filter ListFilter) ([]models.Coupon, error) {
	all, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list coupons")
	}

	now := s.now()
	out := make([]models.Coupon, 0, len(all))
	for _, coupon := range all {
		if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
			continue
		}
		if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
			continue
		}
		if filter.MinAmount > 0 && coupon.MinAmount > filter.MinAmount {
			continue
		}
		if filter.Category != "" && len(coupon.ApplicableCategories) > 0 &&
			!anyCategoryMatches(coupon.ApplicableCategories, []ValidationItem{{Category: filter.Category}}) {
			continue
		}
		if coupon.UserLimit != nil && filter.UserID != uuid.Nil {
			used, err := s.repo.CountUsageByUser(ctx, coupon.ID, filter.UserID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count coupon usage")
			}
			if used >= int64(*coupon.UserLimit) {
				continue
			}
		}
		out = append(out, coupon)
	}
	return out, nil
}

func (s *service) Redeem(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, userID, orderID uuid.UUID, discountAmount float64) error {
	repo := s.repo.WithTx(tx)

	ok, err := repo.IncrementUsage(ctx, coupon.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment coupon usage")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeCouponUsageLimit, "coupon usage limit reached")
	}

	usage := &models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         userID,
		OrderID:        orderID,
		DiscountAmount: money.Round(discountAmount),
		UsedAt:         s.now(),
	}
	if err := repo.CreateUsage(ctx, usage); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record coupon usage")
	}
	return nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Coupon, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon type must be percentage or fixed")
	}
	if input.Type == enums.CouponTypePercentage && input.Value > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage value cannot exceed 100")
	}
	if !input.ValidUntil.After(input.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_until must be after valid_from")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	coupon := &models.Coupon{
		Code:                 input.Code,
		Title:                input.Title,
		Description:          input.Description,
		Type:                 input.Type,
		Value:                input.Value,
		MinAmount:            money.Round(input.MinAmount),
		MaxDiscount:          input.MaxDiscount,
		ValidFrom:            input.ValidFrom,
		ValidUntil:           input.ValidUntil,
		UsageLimit:           input.UsageLimit,
		UserLimit:            input.UserLimit,
		ApplicableCategories: pq.StringArray(input.ApplicableCategories),
		ApplicableDurations:  pq.Int64Array(input.ApplicableDurations),
		IsActive:             active,
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateCode, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create coupon")
	}
	return coupon, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Coupon, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load coupon")
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Value != nil {
		updates["value"] = *input.Value
	}
	if input.MinAmount != nil {
		updates["min_amount"] = money.Round(*input.MinAmount)
	}
	if input.MaxDiscount != nil {
		updates["max_discount"] = *input.MaxDiscount
	}
	if input.ValidFrom != nil {
		updates["valid_from"] = *input.ValidFrom
	}
	if input.ValidUntil != nil {
		updates["valid_until"] = *input.ValidUntil
	}
	if input.UsageLimit != nil {
		updates["usage_limit"] = *input.UsageLimit
	}
	if input.UserLimit != nil {
		updates["user_limit"] = *input.UserLimit
	}
	if input.ApplicableCategories != nil {
		updates["applicable_categories"] = pq.StringArray(input.ApplicableCategories)
	}
	if input.ApplicableDurations != nil {
		updates["applicable_durations"] = pq.Int64Array(input.ApplicableDurations)
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update coupon")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load coupon")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete coupon")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list coupons")
	}
	return coupons, nil
}
