package orders

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/internal/money"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

// catalog holds the already-resolved products and services a quote needs,
// keyed by id.
type catalog struct {
	products map[uuid.UUID]*models.Product
	services map[uuid.UUID]*models.HomeService
}

// quote is the priced form of an order before coupon and persistence.
type quote struct {
	items           []models.OrderItem
	total           float64
	paymentDiscount float64
}

// buildQuote validates every line against the live catalog and computes the
// pre-coupon totals. Any failure aborts before persistence.
func buildQuote(input CreateInput, cat catalog, settings *models.Settings) (*quote, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	q := &quote{}
	for i, item := range input.Items {
		switch item.Type {
		case "rental":
			priced, err := priceRentalItem(i, item, cat)
			if err != nil {
				return nil, err
			}
			q.items = append(q.items, *priced)
			q.total += priced.Price*float64(priced.Quantity) + priced.InstallationCharge
		case "service":
			priced, err := priceServiceItem(i, item, cat)
			if err != nil {
				return nil, err
			}
			q.items = append(q.items, *priced)
			q.total += priced.Price * float64(priced.Quantity)
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: type must be rental or service", i))
		}
	}
	q.total = money.Round(q.total)

	switch input.PaymentOption {
	case enums.PaymentOptionPayNow:
		q.paymentDiscount = money.Percent(q.total, settings.InstantPaymentDiscount)
	case enums.PaymentOptionPayAdvance:
		q.paymentDiscount = money.Percent(q.total, settings.AdvancePaymentDiscount)
	case enums.PaymentOptionPayLater:
		q.paymentDiscount = 0
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment option")
	}

	return q, nil
}

func priceRentalItem(idx int, item ItemInput, cat catalog) (*models.OrderItem, error) {
	if item.ProductID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("item %d: product id required for rental items", idx))
	}
	product, ok := cat.products[*item.ProductID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("item %d: product not found", idx))
	}
	if product.Status != enums.ProductStatusAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("item %d: product is not available for rent", idx))
	}

	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	out := &models.OrderItem{
		Kind:      enums.OrderItemKindRental,
		ProductID: &product.ID,
		Name:      product.Brand + " " + product.Model,
		Category:  string(product.Category),
		Quantity:  qty,
	}
	if product.Category == enums.ProductCategoryAC {
		out.InstallationCharge = money.Round(product.InstallationCharge)
	}

	if item.IsMonthlyPayment {
		if product.MonthlyPlan == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: product has no monthly plan", idx))
		}
		tenure, err := enums.ParseRentalDuration(item.MonthlyTenure)
		if err != nil || tenure.Months() < 3 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: invalid monthly tenure", idx))
		}
		if item.MonthlyPrice == nil || !money.WithinTolerance(*item.MonthlyPrice, product.MonthlyPlan.MonthlyPrice) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: monthly price does not match the product plan", idx))
		}
		if item.SecurityDeposit == nil || !money.WithinTolerance(*item.SecurityDeposit, product.MonthlyPlan.SecurityDeposit) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("item %d: security deposit does not match the product plan", idx))
		}

		// Pay-monthly collects the first month plus the deposit up front,
		// never monthlyPrice multiplied by tenure.
		out.IsMonthlyPayment = true
		out.MonthlyPrice = money.Round(product.MonthlyPlan.MonthlyPrice)
		out.MonthlyTenure = tenure.Months()
		out.SecurityDeposit = money.Round(product.MonthlyPlan.SecurityDeposit)
		out.Duration = tenure.Months()
		out.Price = money.Round(product.MonthlyPlan.MonthlyPrice + product.MonthlyPlan.SecurityDeposit)
		return out, nil
	}

	duration, err := enums.ParseRentalDuration(item.Duration)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("item %d: rental duration must be one of 3, 6, 9, 11, 12, 24 months", idx))
	}
	configured, ok := product.Pricing.PriceFor(duration)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("item %d: product has no price for a %d month rental", idx, duration.Months()))
	}
	if item.Price != nil && !money.WithinTolerance(*item.Price, configured) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("item %d: price does not match the product price for this duration", idx))
	}

	out.Duration = duration.Months()
	out.Price = money.Round(configured)
	return out, nil
}

func priceServiceItem(idx int, item ItemInput, cat catalog) (*models.OrderItem, error) {
	if item.ServiceID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("item %d: service id required for service items", idx))
	}
	svc, ok := cat.services[*item.ServiceID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound,
			fmt.Sprintf("item %d: service not found", idx))
	}
	if !svc.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("item %d: service is not currently offered", idx))
	}

	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	// The client price is accepted as-is for service lines; the catalog price
	// is only a fallback when none is supplied.
	price := svc.Price
	if item.Price != nil {
		price = *item.Price
	}
	validated, err := money.ValidateAndRound(price)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("item %d: invalid service price", idx))
	}

	return &models.OrderItem{
		Kind:           enums.OrderItemKindService,
		ServiceID:      &svc.ID,
		Name:           svc.Name,
		Category:       string(svc.Category),
		Quantity:       qty,
		Price:          validated,
		BookingDetails: item.BookingDetails,
	}, nil
}
