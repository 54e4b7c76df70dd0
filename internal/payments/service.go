package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/money"
	"github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/pkg/config"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/metrics"
	"github.com/rentkart/rentkart-backend/pkg/razorpay"
)

// Service is the payment reconciliation engine. Verify, HandleWebhook, and
// Process all funnel through one applyPaymentSuccess transition so a payment
// can never credit an order twice.
type Service interface {
	CreateIntent(ctx context.Context, input CreateIntentInput) (*CreateIntentResult, error)
	Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) error
	Process(ctx context.Context, input ProcessInput) (*VerifyResult, error)
	ListByOrder(ctx context.Context, orderIdentifier string, userID uuid.UUID, isAdmin bool) ([]models.Payment, error)
}

type service struct {
	repo     Repository
	orders   orders.Repository
	resolver orderResolver
	tx       txRunner
	gw       gateway
	products productFlipper
	notify   notifier
	cfg      config.RazorpayConfig
	metrics  *metrics.PaymentMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the reconciliation engine. The gateway may be nil when
// credentials are not configured; intent creation then fails per request
// with a configuration error instead of at startup.
func NewService(
	repo Repository,
	orderRepo orders.Repository,
	resolver orderResolver,
	tx txRunner,
	gw gateway,
	products productFlipper,
	notify notifier,
	cfg config.RazorpayConfig,
	m *metrics.PaymentMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("order resolver required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		orders:   orderRepo,
		resolver: resolver,
		tx:       tx,
		gw:       gw,
		products: products,
		notify:   notify,
		cfg:      cfg,
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) CreateIntent(ctx context.Context, input CreateIntentInput) (*CreateIntentResult, error) {
	if s.gw == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "payment gateway is not configured")
	}

	order, err := s.resolver.Resolve(ctx, input.OrderIdentifier)
	if err != nil {
		return nil, err
	}
	if input.UserID != uuid.Nil && order.UserID != input.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	if order.PaymentStatus == enums.OrderPaymentStatusPaid || order.Status == enums.OrderStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeOrderPaid, "order is already paid")
	}

	expected := s.amountDue(order)
	if !money.WithinTolerance(input.Amount, expected) {
		s.metrics.IncIntent("amount_mismatch")
		return nil, pkgerrors.New(pkgerrors.CodeAmountMismatch, "amount does not match the amount due").
			WithDetails(map[string]any{
				"expected_amount":  expected,
				"requested_amount": input.Amount,
			})
	}

	paise, err := money.ToPaise(expected)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		PaymentNumber: newPaymentNumber(),
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        money.Round(expected),
		Currency:      "INR",
		Gateway:       "razorpay",
		Status:        enums.PaymentStatusPending,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment")
	}

	gwOrder, err := s.gw.CreateOrder(ctx, razorpay.CreateOrderRequest{
		Amount:   paise,
		Currency: payment.Currency,
		Receipt:  order.OrderNumber,
		Notes:    map[string]string{"payment_number": payment.PaymentNumber},
	})
	if err != nil {
		if _, failErr := s.repo.MarkFailedIf(ctx, payment.ID, "gateway order creation failed"); failErr != nil {
			s.logg.Error(ctx, "mark payment failed", failErr)
		}
		s.metrics.IncIntent("gateway_error")
		return nil, pkgerrors.Wrap(pkgerrors.CodeGateway, err, "payment gateway rejected the order")
	}

	if err := s.repo.Update(ctx, payment.ID, map[string]any{"gateway_order_id": gwOrder.ID}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "attach gateway order")
	}

	s.metrics.IncIntent("created")
	return &CreateIntentResult{
		PaymentID:       payment.ID,
		PaymentNumber:   payment.PaymentNumber,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		RazorpayOrderID: gwOrder.ID,
		Key:             s.gw.KeyID(),
	}, nil
}

// amountDue picks the expected charge from order state: the advance for a
// payAdvance order that has not paid it yet, the remainder once it has, the
// full total otherwise.
func (s *service) amountDue(order *models.Order) float64 {
	if order.PaymentOption == enums.PaymentOptionPayAdvance {
		if order.PaymentStatus == enums.OrderPaymentStatusAdvancePaid {
			return order.RemainingAmount
		}
		return order.AdvanceAmount
	}
	return order.FinalTotal
}

func (s *service) Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error) {
	payment, err := s.lookupPayment(ctx, input)
	if err != nil {
		return nil, err
	}

	if payment.Status == enums.PaymentStatusCompleted {
		s.metrics.IncReplay()
		return s.verifyResult(payment), nil
	}

	if !razorpay.VerifyPaymentSignature(input.GatewayOrderID, input.GatewayPaymentID, input.Signature, s.cfg.KeySecret) {
		if _, failErr := s.repo.MarkFailedIf(ctx, payment.ID, "signature mismatch"); failErr != nil {
			s.logg.Error(ctx, "mark payment failed", failErr)
		}
		s.metrics.IncFailed("signature_mismatch")
		s.alertFailure(ctx, payment, "signature mismatch")
		return nil, pkgerrors.New(pkgerrors.CodeSigMismatch, "payment signature verification failed")
	}

	// Secondary gateway check. The signature is the primary trust anchor, so
	// a transient fetch failure does not block the transition; a definitive
	// not-captured answer does.
	if s.gw != nil {
		gwPayment, fetchErr := s.gw.FetchPayment(ctx, input.GatewayPaymentID)
		if fetchErr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", fetchErr.Error()),
				"gateway payment fetch failed, honoring signature")
		} else if !gwPayment.Captured() {
			if _, failErr := s.repo.MarkFailedIf(ctx, payment.ID, "payment not captured"); failErr != nil {
				s.logg.Error(ctx, "mark payment failed", failErr)
			}
			s.metrics.IncFailed("not_captured")
			return nil, pkgerrors.New(pkgerrors.CodeNotCaptured, "payment was not captured by the gateway")
		}
	}

	if err := s.applyPaymentSuccess(ctx, payment, input.GatewayPaymentID, input.Signature, "verify"); err != nil {
		return nil, err
	}
	return s.verifyResult(payment), nil
}

func (s *service) lookupPayment(ctx context.Context, input VerifyInput) (*models.Payment, error) {
	var payment *models.Payment
	var err error
	if input.PaymentID != nil {
		payment, err = s.repo.FindByID(ctx, *input.PaymentID)
	} else {
		payment, err = s.repo.FindByGatewayOrderID(ctx, input.GatewayOrderID)
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load payment")
	}
	return payment, nil
}

func (s *service) verifyResult(payment *models.Payment) *VerifyResult {
	verifiedAt := s.now()
	if payment.PaidAt != nil {
		verifiedAt = *payment.PaidAt
	}
	return &VerifyResult{
		OrderID:       payment.OrderID,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
		VerifiedAt:    verifiedAt,
	}
}

// applyPaymentSuccess is the single linearization point. The conditional
// Pending to Completed update decides the winner; every follow-on side
// effect is skipped when the update did not happen.
func (s *service) applyPaymentSuccess(ctx context.Context, payment *models.Payment, transactionID, signature, source string) error {
	order, err := s.orders.FindByID(ctx, payment.OrderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	paidAt := s.now()
	applied := false
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.repo.WithTx(tx).MarkCompletedIf(ctx, payment.ID, transactionID, signature, paidAt)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		applied = true
		return s.orders.WithTx(tx).Update(ctx, order.ID, orderUpdatesFor(order, payment))
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply payment")
	}
	if !applied {
		s.metrics.IncReplay()
		payment.Status = enums.PaymentStatusCompleted
		return nil
	}

	payment.Status = enums.PaymentStatusCompleted
	payment.PaidAt = &paidAt
	payment.TransactionID = &transactionID
	s.metrics.IncCompleted(source)

	// Product flips lose gracefully when another order got there first.
	for _, item := range order.Items {
		if item.Kind != enums.OrderItemKindRental || item.ProductID == nil {
			continue
		}
		flipped, flipErr := s.products.SetStatusIf(ctx, *item.ProductID,
			enums.ProductStatusAvailable, enums.ProductStatusRentedOut)
		if flipErr != nil {
			s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()),
				"product status propagation failed", flipErr)
		} else if !flipped {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"order_id":   order.ID.String(),
				"product_id": item.ProductID.String(),
			}), "product already rented out, order needs manual reconciliation")
		}
	}

	if s.notify != nil {
		s.notify.PaymentReceived(ctx, order, payment)
	}
	return nil
}

// orderUpdatesFor derives the order transition for a completed payment. A
// payAdvance order paying its advance moves to advance_paid; everything else
// is a full settlement.
func orderUpdatesFor(order *models.Order, payment *models.Payment) map[string]any {
	if order.PaymentOption == enums.PaymentOptionPayAdvance &&
		order.PaymentStatus != enums.OrderPaymentStatusAdvancePaid &&
		money.WithinTolerance(payment.Amount, order.AdvanceAmount) {
		updates := map[string]any{"payment_status": enums.OrderPaymentStatusAdvancePaid}
		if order.RemainingAmount <= 0 {
			updates["payment_status"] = enums.OrderPaymentStatusPaid
			updates["status"] = enums.OrderStatusConfirmed
		} else if order.Status == enums.OrderStatusPending {
			updates["status"] = enums.OrderStatusConfirmed
		}
		return updates
	}

	updates := map[string]any{"payment_status": enums.OrderPaymentStatusPaid}
	if order.Status == enums.OrderStatusPending {
		updates["status"] = enums.OrderStatusConfirmed
	}
	return updates
}

func (s *service) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !razorpay.VerifyWebhookSignature(body, signature, s.cfg.EffectiveWebhookSecret()) {
		s.metrics.IncFailed("webhook_signature")
		return pkgerrors.New(pkgerrors.CodeSigMismatch, "webhook signature verification failed")
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "malformed webhook payload")
	}

	entity := event.Payload.Payment.Entity
	switch event.Event {
	case "payment.captured", "payment.authorized":
		payment, err := s.repo.FindByGatewayOrderID(ctx, entity.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				s.logg.Warn(s.logg.WithField(ctx, "gateway_order_id", entity.OrderID),
					"webhook for unknown payment")
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load payment")
		}
		if payment.Status == enums.PaymentStatusCompleted {
			s.metrics.IncReplay()
			return nil
		}
		return s.applyPaymentSuccess(ctx, payment, entity.ID, "", "webhook")

	case "payment.failed":
		payment, err := s.repo.FindByGatewayOrderID(ctx, entity.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load payment")
		}
		reason := entity.ErrorDescription
		if reason == "" {
			reason = "payment failed at gateway"
		}
		marked, err := s.repo.MarkFailedIf(ctx, payment.ID, reason)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark payment failed")
		}
		if marked {
			s.metrics.IncFailed("gateway_reported")
			s.alertFailure(ctx, payment, reason)
		}
		return nil
	}

	// Unrecognized events are acknowledged without processing.
	return nil
}

func (s *service) Process(ctx context.Context, input ProcessInput) (*VerifyResult, error) {
	order, err := s.resolver.Resolve(ctx, input.OrderIdentifier)
	if err != nil {
		return nil, err
	}

	result, err := s.Verify(ctx, VerifyInput{
		GatewayOrderID:   input.GatewayOrderID,
		GatewayPaymentID: input.GatewayPaymentID,
		Signature:        input.Signature,
	})
	if err != nil {
		return nil, err
	}
	if result.OrderID != order.ID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment does not belong to this order")
	}
	return result, nil
}

func (s *service) ListByOrder(ctx context.Context, orderIdentifier string, userID uuid.UUID, isAdmin bool) ([]models.Payment, error) {
	order, err := s.resolver.Resolve(ctx, orderIdentifier)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	out, err := s.repo.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list payments")
	}
	return out, nil
}

func (s *service) alertFailure(ctx context.Context, payment *models.Payment, reason string) {
	if s.notify == nil {
		return
	}
	order, err := s.orders.FindByID(ctx, payment.OrderID)
	if err != nil {
		s.logg.Error(ctx, "load order for failure alert", err)
		return
	}
	s.notify.PaymentFailed(ctx, order, payment, reason)
}

func newPaymentNumber() string {
	return "PAY-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}
