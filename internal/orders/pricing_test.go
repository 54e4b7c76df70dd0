package orders

import (
	"testing"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

func testPricing() types.DurationPricing {
	return types.DurationPricing{
		Months3: 1000, Months6: 1800, Months9: 2500,
		Months11: 3000, Months12: 3200, Months24: 5800,
	}
}

func testSettings() *models.Settings {
	return &models.Settings{
		ID:                     models.SettingsRowID,
		InstantPaymentDiscount: 10,
		AdvancePaymentDiscount: 5,
		AdvancePaymentAmount:   500,
	}
}

func testProduct(category enums.ProductCategory) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Category: category,
		Brand:    "Voltas",
		Model:    "Vertis Elite",
		Pricing:  testPricing(),
		Status:   enums.ProductStatusAvailable,
	}
}

func catalogWith(products ...*models.Product) catalog {
	cat := catalog{
		products: map[uuid.UUID]*models.Product{},
		services: map[uuid.UUID]*models.HomeService{},
	}
	for _, p := range products {
		cat.products[p.ID] = p
	}
	return cat
}

func rentalInput(productID uuid.UUID, duration int, price float64) ItemInput {
	return ItemInput{
		Type:      "rental",
		ProductID: &productID,
		Duration:  duration,
		Price:     &price,
	}
}

func TestQuotePayNowDiscount(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	input := CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
	}

	q, err := buildQuote(input, catalogWith(product), testSettings())
	if err != nil {
		t.Fatalf("buildQuote: %v", err)
	}
	if q.total != 1000 {
		t.Errorf("total = %v, want 1000", q.total)
	}
	if q.paymentDiscount != 100 {
		t.Errorf("payment discount = %v, want 100", q.paymentDiscount)
	}
}

func TestQuotePayLaterNoDiscount(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	input := CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 6, 1800)},
		PaymentOption: enums.PaymentOptionPayLater,
	}

	q, err := buildQuote(input, catalogWith(product), testSettings())
	if err != nil {
		t.Fatalf("buildQuote: %v", err)
	}
	if q.paymentDiscount != 0 {
		t.Errorf("payment discount = %v, want 0", q.paymentDiscount)
	}
}

func TestQuoteAddsACInstallationCharge(t *testing.T) {
	product := testProduct(enums.ProductCategoryAC)
	product.InstallationCharge = 499

	input := CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayLater,
	}
	q, err := buildQuote(input, catalogWith(product), testSettings())
	if err != nil {
		t.Fatalf("buildQuote: %v", err)
	}
	if q.total != 1499 {
		t.Errorf("total = %v, want 1499", q.total)
	}
	if q.items[0].InstallationCharge != 499 {
		t.Errorf("installation charge = %v, want 499", q.items[0].InstallationCharge)
	}
}

func TestQuoteMonthlyPlanFirstMonthPlusDeposit(t *testing.T) {
	product := testProduct(enums.ProductCategoryWashingMachine)
	product.MonthlyPlan = &types.MonthlyPlan{MonthlyPrice: 599, SecurityDeposit: 2000}

	price := 599.0
	deposit := 2000.0
	input := CreateInput{
		Items: []ItemInput{{
			Type:             "rental",
			ProductID:        &product.ID,
			IsMonthlyPayment: true,
			MonthlyTenure:    12,
			MonthlyPrice:     &price,
			SecurityDeposit:  &deposit,
		}},
		PaymentOption: enums.PaymentOptionPayLater,
	}

	q, err := buildQuote(input, catalogWith(product), testSettings())
	if err != nil {
		t.Fatalf("buildQuote: %v", err)
	}
	// First month plus deposit, never monthlyPrice x tenure.
	if q.total != 2599 {
		t.Errorf("total = %v, want 2599", q.total)
	}
}

func TestQuoteMonthlyPlanTamperRejected(t *testing.T) {
	product := testProduct(enums.ProductCategoryWashingMachine)
	product.MonthlyPlan = &types.MonthlyPlan{MonthlyPrice: 599, SecurityDeposit: 2000}

	price := 1.0
	deposit := 2000.0
	input := CreateInput{
		Items: []ItemInput{{
			Type:             "rental",
			ProductID:        &product.ID,
			IsMonthlyPayment: true,
			MonthlyTenure:    12,
			MonthlyPrice:     &price,
			SecurityDeposit:  &deposit,
		}},
		PaymentOption: enums.PaymentOptionPayLater,
	}

	_, err := buildQuote(input, catalogWith(product), testSettings())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteRejectsUnknownDuration(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	input := CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 7, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
	}
	_, err := buildQuote(input, catalogWith(product), testSettings())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteRejectsPriceMismatch(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	input := CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 900)},
		PaymentOption: enums.PaymentOptionPayNow,
	}
	_, err := buildQuote(input, catalogWith(product), testSettings())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteRejectsUnavailableProduct(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	product.Status = enums.ProductStatusRentedOut
	input := CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
	}
	_, err := buildQuote(input, catalogWith(product), testSettings())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuoteServiceItemUsesCatalogFallback(t *testing.T) {
	svc := &models.HomeService{
		ID:       uuid.New(),
		Name:     "AC Deep Clean",
		Category: enums.ProductCategoryAC,
		Price:    799,
		IsActive: true,
	}
	cat := catalog{
		products: map[uuid.UUID]*models.Product{},
		services: map[uuid.UUID]*models.HomeService{svc.ID: svc},
	}
	input := CreateInput{
		Items:         []ItemInput{{Type: "service", ServiceID: &svc.ID}},
		PaymentOption: enums.PaymentOptionPayLater,
	}

	q, err := buildQuote(input, cat, testSettings())
	if err != nil {
		t.Fatalf("buildQuote: %v", err)
	}
	if q.total != 799 {
		t.Errorf("total = %v, want 799", q.total)
	}
}
