package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/redis"
)

// Defaults seeded the first time the settings row is read.
const (
	DefaultInstantPaymentDiscount = 10.0
	DefaultAdvancePaymentDiscount = 5.0
	DefaultAdvancePaymentAmount   = 500.0
)

const cacheTTL = 30 * time.Second

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// UpdateInput carries a partial settings change. Nil fields are left
// untouched.
type UpdateInput struct {
	InstantPaymentDiscount *float64 `json:"instant_payment_discount" validate:"omitempty,gte=0,lte=100"`
	AdvancePaymentDiscount *float64 `json:"advance_payment_discount" validate:"omitempty,gte=0,lte=100"`
	AdvancePaymentAmount   *float64 `json:"advance_payment_amount" validate:"omitempty,gte=1,lte=10000"`
	UpdatedBy              uuid.UUID
}

// Service exposes the marketplace settings singleton.
type Service interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, input UpdateInput) (*models.Settings, error)
}

type service struct {
	repo  Repository
	cache cache
	logg  *logger.Logger
}

// NewService builds the settings service. The cache is optional; a nil cache
// reads through to the database on every call.
func NewService(repo Repository, c cache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: c, logg: logg}, nil
}

func (s *service) Get(ctx context.Context) (*models.Settings, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, s.cacheKey()); err == nil {
			var out models.Settings
			if jsonErr := json.Unmarshal([]byte(cached), &out); jsonErr == nil {
				return &out, nil
			}
		} else if !redis.IsNil(err) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "settings cache read failed")
		}
	}

	row, err := s.repo.Get(ctx)
	if err == gorm.ErrRecordNotFound {
		row = &models.Settings{
			ID:                     models.SettingsRowID,
			InstantPaymentDiscount: DefaultInstantPaymentDiscount,
			AdvancePaymentDiscount: DefaultAdvancePaymentDiscount,
			AdvancePaymentAmount:   DefaultAdvancePaymentAmount,
		}
		if createErr := s.repo.Create(ctx, row); createErr != nil {
			// Another request may have seeded the row first.
			row, err = s.repo.Get(ctx)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load settings")
			}
		}
	} else if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load settings")
	}

	s.fillCache(ctx, row)
	return row, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Settings, error) {
	updates := map[string]any{}
	if input.InstantPaymentDiscount != nil {
		if *input.InstantPaymentDiscount < 0 || *input.InstantPaymentDiscount > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "instant payment discount must be between 0 and 100")
		}
		updates["instant_payment_discount"] = *input.InstantPaymentDiscount
	}
	if input.AdvancePaymentDiscount != nil {
		if *input.AdvancePaymentDiscount < 0 || *input.AdvancePaymentDiscount > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "advance payment discount must be between 0 and 100")
		}
		updates["advance_payment_discount"] = *input.AdvancePaymentDiscount
	}
	if input.AdvancePaymentAmount != nil {
		if *input.AdvancePaymentAmount < 1 || *input.AdvancePaymentAmount > 10000 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "advance payment amount must be between 1 and 10000")
		}
		updates["advance_payment_amount"] = *input.AdvancePaymentAmount
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no settings fields provided")
	}
	if input.UpdatedBy != uuid.Nil {
		updates["updated_by"] = input.UpdatedBy
	}

	// Ensure the row exists before a partial update.
	if _, err := s.Get(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update settings")
	}

	s.invalidate(ctx)
	return s.Get(ctx)
}

func (s *service) cacheKey() string {
	if s.cache == nil {
		return ""
	}
	return s.cache.CacheKey("settings")
}

func (s *service) fillCache(ctx context.Context, row *models.Settings) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), string(raw), cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "settings cache write failed")
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cacheKey()); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "settings cache invalidation failed")
	}
}
