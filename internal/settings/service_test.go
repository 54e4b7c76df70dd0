package settings

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

type stubRepo struct {
	row     *models.Settings
	created *models.Settings
	updates map[string]any
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Get(ctx context.Context) (*models.Settings, error) {
	if s.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.row
	return &copied, nil
}

func (s *stubRepo) Create(ctx context.Context, row *models.Settings) error {
	s.created = row
	s.row = row
	return nil
}

func (s *stubRepo) Update(ctx context.Context, updates map[string]any) error {
	s.updates = updates
	if v, ok := updates["instant_payment_discount"].(float64); ok {
		s.row.InstantPaymentDiscount = v
	}
	if v, ok := updates["advance_payment_discount"].(float64); ok {
		s.row.AdvancePaymentDiscount = v
	}
	if v, ok := updates["advance_payment_amount"].(float64); ok {
		s.row.AdvancePaymentAmount = v
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func floatPtr(v float64) *float64 { return &v }

func TestGetSeedsDefaults(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	row, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if repo.created == nil {
		t.Fatal("expected defaults to be seeded")
	}
	if row.InstantPaymentDiscount != DefaultInstantPaymentDiscount {
		t.Errorf("instant discount = %v, want %v", row.InstantPaymentDiscount, DefaultInstantPaymentDiscount)
	}
	if row.AdvancePaymentAmount != DefaultAdvancePaymentAmount {
		t.Errorf("advance amount = %v, want %v", row.AdvancePaymentAmount, DefaultAdvancePaymentAmount)
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	repo := &stubRepo{row: &models.Settings{
		ID:                     models.SettingsRowID,
		InstantPaymentDiscount: 10,
		AdvancePaymentDiscount: 5,
		AdvancePaymentAmount:   500,
	}}
	svc, err := NewService(repo, nil, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	row, err := svc.Update(context.Background(), UpdateInput{
		InstantPaymentDiscount: floatPtr(15),
		UpdatedBy:              uuid.New(),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if row.InstantPaymentDiscount != 15 {
		t.Errorf("instant discount = %v, want 15", row.InstantPaymentDiscount)
	}
	if row.AdvancePaymentDiscount != 5 {
		t.Errorf("advance discount changed unexpectedly: %v", row.AdvancePaymentDiscount)
	}
	if _, ok := repo.updates["advance_payment_amount"]; ok {
		t.Error("advance amount should not be in the update set")
	}
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	repo := &stubRepo{row: &models.Settings{ID: models.SettingsRowID}}
	svc, _ := NewService(repo, nil, testLogger())

	_, err := svc.Update(context.Background(), UpdateInput{UpdatedBy: uuid.New()})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty patch, got %v", err)
	}
	if repo.updates != nil {
		t.Error("no update should reach the repository")
	}
}

func TestUpdateRejectsOutOfRange(t *testing.T) {
	repo := &stubRepo{row: &models.Settings{ID: models.SettingsRowID}}
	svc, _ := NewService(repo, nil, testLogger())

	cases := []UpdateInput{
		{InstantPaymentDiscount: floatPtr(101)},
		{AdvancePaymentDiscount: floatPtr(-1)},
		{AdvancePaymentAmount: floatPtr(0)},
		{AdvancePaymentAmount: floatPtr(10001)},
	}
	for i, input := range cases {
		_, err := svc.Update(context.Background(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}
