package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/coupons"
	"github.com/rentkart/rentkart-backend/internal/money"
	"github.com/rentkart/rentkart-backend/pkg/db"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

const orderNumberAttempts = 3

// allowedTransitions maps each order status to the admin-driven states it can
// move to. Cancellation is handled separately by Cancel.
var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:    {enums.OrderStatusConfirmed},
	enums.OrderStatusConfirmed:  {enums.OrderStatusProcessing},
	enums.OrderStatusProcessing: {enums.OrderStatusShipped},
	enums.OrderStatusShipped:    {enums.OrderStatusDelivered},
	enums.OrderStatusDelivered:  {enums.OrderStatusCompleted},
}

// Service implements order creation, lookup, fulfillment progression, and
// cancellation.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	// Resolve finds an order by its internal uuid or its human-readable
	// order number, in that order.
	Resolve(ctx context.Context, identifier string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error)
	ListAll(ctx context.Context, status enums.OrderStatus, params pagination.Params) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, identifier string, next enums.OrderStatus) (*models.Order, error)
	Cancel(ctx context.Context, input CancelInput) (*models.Order, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	products productCatalog
	services serviceCatalog
	settings settingsProvider
	coupons  couponEvaluator
	bookings bookingWriter
	notify   notifier
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the orders service with its collaborators.
func NewService(
	repo Repository,
	tx txRunner,
	products productCatalog,
	services serviceCatalog,
	settings settingsProvider,
	coupons couponEvaluator,
	bookings bookingWriter,
	notify notifier,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil || services == nil {
		return nil, fmt.Errorf("catalog dependencies required")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings provider required")
	}
	if coupons == nil {
		return nil, fmt.Errorf("coupon evaluator required")
	}
	if bookings == nil {
		return nil, fmt.Errorf("booking writer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		products: products,
		services: services,
		settings: settings,
		coupons:  coupons,
		bookings: bookings,
		notify:   notify,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.PaymentOption.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment option")
	}
	if input.PaymentOption != enums.PaymentOptionPayAdvance {
		if input.AdvanceAmount != nil || input.RemainingAmount != nil || input.PriorityServiceScheduling {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				"advance payment fields are only valid with the payAdvance option")
		}
	}

	cat, err := s.resolveCatalog(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	q, err := buildQuote(input, cat, settings)
	if err != nil {
		return nil, err
	}
	if input.Total != nil && !money.WithinTolerance(*input.Total, q.total) {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"client_total":   *input.Total,
			"computed_total": q.total,
		}), "client order total discarded")
	}

	var coupon *models.Coupon
	var couponDiscount float64
	if input.CouponCode != nil && *input.CouponCode != "" {
		res, err := s.coupons.Validate(ctx, coupons.ValidateInput{
			Code:       *input.CouponCode,
			OrderTotal: q.total,
			UserID:     input.UserID,
			Items:      validationItems(q.items),
		})
		if err != nil {
			return nil, err
		}
		coupon = res.Coupon
		couponDiscount = res.DiscountAmount
	}

	finalTotal := money.Round(q.total - q.paymentDiscount - couponDiscount)
	if finalTotal < 0 {
		finalTotal = 0
	}
	if input.FinalTotal != nil && !money.WithinTolerance(*input.FinalTotal, finalTotal) {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"client_final_total":   *input.FinalTotal,
			"computed_final_total": finalTotal,
		}), "client final total discarded")
	}

	var advanceAmount, remainingAmount float64
	if input.PaymentOption == enums.PaymentOptionPayAdvance {
		if !input.PriorityServiceScheduling {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				"priority service scheduling is required for advance payment orders")
		}
		advanceAmount = money.Round(settings.AdvancePaymentAmount)
		if input.AdvanceAmount != nil && !money.WithinTolerance(*input.AdvanceAmount, advanceAmount) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("advance amount must be %.2f", advanceAmount))
		}
		remainingAmount = money.Round(finalTotal - advanceAmount)
		if remainingAmount < 0 {
			remainingAmount = 0
		}
	}

	order := &models.Order{
		UserID:                    input.UserID,
		Total:                     q.total,
		PaymentDiscount:           q.paymentDiscount,
		CouponDiscount:            couponDiscount,
		Discount:                  money.Round(q.paymentDiscount + couponDiscount),
		FinalTotal:                finalTotal,
		PaymentOption:             input.PaymentOption,
		PaymentStatus:             enums.OrderPaymentStatusPending,
		Status:                    enums.OrderStatusPending,
		AdvanceAmount:             advanceAmount,
		RemainingAmount:           remainingAmount,
		PriorityServiceScheduling: input.PriorityServiceScheduling,
		Items:                     q.items,
	}
	if coupon != nil {
		order.CouponCode = &coupon.Code
	}
	if input.Customer != nil {
		order.CustomerName = input.Customer.Name
		order.CustomerEmail = input.Customer.Email
		order.CustomerPhone = input.Customer.Phone
	}

	if err := s.persistOrder(ctx, order, input.OrderNumber, coupon, couponDiscount); err != nil {
		return nil, err
	}

	// Post-commit side effects are best effort: the order is already real.
	s.synthesizeBookings(ctx, order)
	if s.notify != nil {
		s.notify.OrderCreated(ctx, order)
	}

	return &CreateResult{Order: order}, nil
}

// persistOrder writes the order and any coupon redemption atomically,
// retrying number generation when two orders race for the same sequence slot.
func (s *service) persistOrder(ctx context.Context, order *models.Order, clientNumber *string, coupon *models.Coupon, discount float64) error {
	clientSupplied := clientNumber != nil && *clientNumber != ""

	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		if clientSupplied {
			order.OrderNumber = *clientNumber
		} else {
			number, err := s.nextOrderNumber(ctx)
			if err != nil {
				return err
			}
			order.OrderNumber = number
		}

		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			if err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
				return err
			}
			if coupon != nil {
				return s.coupons.Redeem(ctx, tx, coupon, order.UserID, order.ID, discount)
			}
			return nil
		})
		if err == nil {
			return nil
		}
		if db.IsUniqueViolation(err, "orders_order_number") || db.IsUniqueViolation(err, "") {
			if clientSupplied {
				return pkgerrors.New(pkgerrors.CodeOrderIDTaken, "order id already exists")
			}
			order.ID = uuid.Nil
			continue
		}
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}
	return pkgerrors.New(pkgerrors.CodeInternal, "could not allocate an order number")
}

func (s *service) nextOrderNumber(ctx context.Context) (string, error) {
	year := s.now().Year()
	count, err := s.repo.CountForYear(ctx, year)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count orders")
	}
	return fmt.Sprintf("ORD-%d-%04d", year, count+1), nil
}

func (s *service) resolveCatalog(ctx context.Context, items []ItemInput) (catalog, error) {
	var productIDs, serviceIDs []uuid.UUID
	for _, item := range items {
		if item.Type == "rental" && item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
		if item.Type == "service" && item.ServiceID != nil {
			serviceIDs = append(serviceIDs, *item.ServiceID)
		}
	}

	cat := catalog{
		products: map[uuid.UUID]*models.Product{},
		services: map[uuid.UUID]*models.HomeService{},
	}
	if len(productIDs) > 0 {
		rows, err := s.products.FindByIDs(ctx, productIDs)
		if err != nil {
			return cat, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
		}
		for i := range rows {
			cat.products[rows[i].ID] = &rows[i]
		}
	}
	if len(serviceIDs) > 0 {
		rows, err := s.services.FindByIDs(ctx, serviceIDs)
		if err != nil {
			return cat, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load services")
		}
		for i := range rows {
			cat.services[rows[i].ID] = &rows[i]
		}
	}
	return cat, nil
}

func validationItems(items []models.OrderItem) []coupons.ValidationItem {
	out := make([]coupons.ValidationItem, 0, len(items))
	for _, item := range items {
		out = append(out, coupons.ValidationItem{
			Kind:     item.Kind,
			Category: item.Category,
			Duration: item.Duration,
		})
	}
	return out
}

// synthesizeBookings creates one ServiceBooking per service line. Failures
// are logged per item and never abort the already-persisted order.
func (s *service) synthesizeBookings(ctx context.Context, order *models.Order) {
	for _, item := range order.Items {
		if item.Kind != enums.OrderItemKindService || item.ServiceID == nil {
			continue
		}
		booking := &models.ServiceBooking{
			OrderID:   order.ID,
			ServiceID: *item.ServiceID,
			UserID:    order.UserID,
			Status:    enums.BookingStatusPending,
			Priority:  order.PriorityServiceScheduling,
		}
		if item.BookingDetails != nil {
			booking.PreferredDate = item.BookingDetails.PreferredDate
			booking.PreferredTime = item.BookingDetails.PreferredTime
			booking.Address = item.BookingDetails.Address
			if item.BookingDetails.Description != "" {
				desc := item.BookingDetails.Description
				booking.Description = &desc
			}
		}
		if err := s.bookings.Create(ctx, booking); err != nil {
			s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()),
				"service booking synthesis failed", err)
		}
	}
}

func (s *service) Resolve(ctx context.Context, identifier string) (*models.Order, error) {
	if identifier == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order identifier required")
	}

	if id, err := uuid.Parse(identifier); err == nil {
		order, err := s.repo.FindByID(ctx, id)
		if err == nil {
			return order, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
	}

	order, err := s.repo.FindByOrderNumber(ctx, identifier)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return order, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error) {
	rows, next, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return rows, next, nil
}

func (s *service) ListAll(ctx context.Context, status enums.OrderStatus, params pagination.Params) ([]models.Order, string, error) {
	rows, next, err := s.repo.ListAll(ctx, status, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return rows, next, nil
}

func (s *service) UpdateStatus(ctx context.Context, identifier string, next enums.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	if next == enums.OrderStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "use the cancellation endpoint to cancel an order")
	}

	order, err := s.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if order.Status == next {
		return order, nil
	}
	if !transitionAllowed(order.Status, next) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	if err := s.repo.Update(ctx, order.ID, map[string]any{"status": next}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	order.Status = next
	return order, nil
}

func transitionAllowed(from, to enums.OrderStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

func (s *service) Cancel(ctx context.Context, input CancelInput) (*models.Order, error) {
	if input.Reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cancellation reason required")
	}

	order, err := s.Resolve(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}
	if input.ActorRole != enums.UserRoleAdmin && order.UserID != input.ActorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	switch order.Status {
	case enums.OrderStatusDelivered:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot cancel a delivered order")
	case enums.OrderStatusCompleted:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot cancel a completed order")
	case enums.OrderStatusCancelled:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is already cancelled")
	}

	now := s.now()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Update(ctx, order.ID, map[string]any{
			"status":        enums.OrderStatusCancelled,
			"cancel_reason": input.Reason,
			"cancelled_by":  input.ActorID,
			"cancelled_at":  now,
		}); err != nil {
			return err
		}
		return s.bookings.CancelByOrder(ctx, order.ID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancel order")
	}

	order.Status = enums.OrderStatusCancelled
	order.CancelReason = &input.Reason
	order.CancelledBy = &input.ActorID
	order.CancelledAt = &now

	// Product reverts run after the cancellation commits; a product another
	// order has since re-rented is skipped by the conditional update.
	var revertErrs error
	for _, item := range order.Items {
		if item.Kind != enums.OrderItemKindRental || item.ProductID == nil {
			continue
		}
		if _, err := s.products.SetStatusIf(ctx, *item.ProductID,
			enums.ProductStatusRentedOut, enums.ProductStatusAvailable); err != nil {
			revertErrs = multierr.Append(revertErrs, err)
		}
	}
	if revertErrs != nil {
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()),
			"product status revert failed", revertErrs)
	}

	if s.notify != nil {
		s.notify.OrderCancelled(ctx, order, input.Reason)
	}
	return order, nil
}
