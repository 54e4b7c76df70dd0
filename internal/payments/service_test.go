package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/orders"
	"github.com/rentkart/rentkart-backend/pkg/config"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
	"github.com/rentkart/rentkart-backend/pkg/razorpay"
)

const testSecret = "test_key_secret"

type stubPaymentRepo struct {
	payments map[uuid.UUID]*models.Payment
	byGwID   map[string]*models.Payment
}

func newStubPaymentRepo(payments ...*models.Payment) *stubPaymentRepo {
	s := &stubPaymentRepo{
		payments: map[uuid.UUID]*models.Payment{},
		byGwID:   map[string]*models.Payment{},
	}
	for _, p := range payments {
		s.add(p)
	}
	return s
}

func (s *stubPaymentRepo) add(p *models.Payment) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.payments[p.ID] = p
	if p.GatewayOrderID != nil {
		s.byGwID[*p.GatewayOrderID] = p
	}
}

func (s *stubPaymentRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	s.add(payment)
	return nil
}

func (s *stubPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	if p, ok := s.payments[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPaymentRepo) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Payment, error) {
	if p, ok := s.byGwID[gatewayOrderID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPaymentRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubPaymentRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	p := s.payments[id]
	if v, ok := updates["gateway_order_id"].(string); ok {
		p.GatewayOrderID = &v
		s.byGwID[v] = p
	}
	return nil
}

func (s *stubPaymentRepo) MarkCompletedIf(ctx context.Context, id uuid.UUID, transactionID, signature string, paidAt time.Time) (bool, error) {
	p, ok := s.payments[id]
	if !ok || p.Status != enums.PaymentStatusPending {
		return false, nil
	}
	p.Status = enums.PaymentStatusCompleted
	p.TransactionID = &transactionID
	p.Signature = &signature
	p.PaidAt = &paidAt
	return true, nil
}

func (s *stubPaymentRepo) MarkFailedIf(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	p, ok := s.payments[id]
	if !ok || p.Status != enums.PaymentStatusPending {
		return false, nil
	}
	p.Status = enums.PaymentStatusFailed
	p.FailureReason = &reason
	return true, nil
}

type stubOrderRepo struct {
	rows    map[uuid.UUID]*models.Order
	updates []map[string]any
}

func newStubOrderRepo(rows ...*models.Order) *stubOrderRepo {
	s := &stubOrderRepo{rows: map[uuid.UUID]*models.Order{}}
	for _, o := range rows {
		s.rows[o.ID] = o
	}
	return s
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) orders.Repository           { return s }
func (s *stubOrderRepo) Create(ctx context.Context, o *models.Order) error { return nil }

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := s.rows[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	for _, o := range s.rows {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error) {
	return nil, "", nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context, status enums.OrderStatus, params pagination.Params) ([]models.Order, string, error) {
	return nil, "", nil
}

func (s *stubOrderRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = append(s.updates, updates)
	o := s.rows[id]
	if v, ok := updates["payment_status"].(enums.OrderPaymentStatus); ok {
		o.PaymentStatus = v
	}
	if v, ok := updates["status"].(enums.OrderStatus); ok {
		o.Status = v
	}
	return nil
}

func (s *stubOrderRepo) CountForYear(ctx context.Context, year int) (int64, error) { return 0, nil }

type stubResolver struct{ repo *stubOrderRepo }

func (s *stubResolver) Resolve(ctx context.Context, identifier string) (*models.Order, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		if o, ok := s.repo.rows[id]; ok {
			return o, nil
		}
	}
	o, err := s.repo.FindByOrderNumber(ctx, identifier)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return o, nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

type stubGateway struct {
	order      *razorpay.Order
	orderErr   error
	payment    *razorpay.Payment
	paymentErr error
}

func (s *stubGateway) KeyID() string { return "rzp_test_key" }

func (s *stubGateway) CreateOrder(ctx context.Context, req razorpay.CreateOrderRequest) (*razorpay.Order, error) {
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	if s.order != nil {
		return s.order, nil
	}
	return &razorpay.Order{ID: "order_gw1", Amount: req.Amount, Currency: req.Currency}, nil
}

func (s *stubGateway) FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error) {
	if s.paymentErr != nil {
		return nil, s.paymentErr
	}
	if s.payment != nil {
		return s.payment, nil
	}
	return &razorpay.Payment{ID: paymentID, Status: "captured"}, nil
}

type stubFlipper struct {
	flips []uuid.UUID
}

func (s *stubFlipper) SetStatusIf(ctx context.Context, id uuid.UUID, expected, next enums.ProductStatus) (bool, error) {
	s.flips = append(s.flips, id)
	return true, nil
}

type recordingNotifier struct {
	received int
	failed   int
}

func (n *recordingNotifier) PaymentReceived(ctx context.Context, order *models.Order, payment *models.Payment) {
	n.received++
}

func (n *recordingNotifier) PaymentFailed(ctx context.Context, order *models.Order, payment *models.Payment, reason string) {
	n.failed++
}

type fixture struct {
	svc      Service
	payments *stubPaymentRepo
	orders   *stubOrderRepo
	gw       *stubGateway
	flipper  *stubFlipper
	notify   *recordingNotifier
}

func newFixture(t *testing.T, orderRows []*models.Order, paymentRows []*models.Payment) *fixture {
	t.Helper()
	paymentRepo := newStubPaymentRepo(paymentRows...)
	orderRepo := newStubOrderRepo(orderRows...)
	gw := &stubGateway{}
	flipper := &stubFlipper{}
	notify := &recordingNotifier{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(
		paymentRepo, orderRepo, &stubResolver{repo: orderRepo}, stubTx{},
		gw, flipper, notify,
		config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: testSecret},
		nil, logg,
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return &fixture{svc: svc, payments: paymentRepo, orders: orderRepo, gw: gw, flipper: flipper, notify: notify}
}

func pendingOrder() *models.Order {
	productID := uuid.New()
	return &models.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-2026-0001",
		UserID:        uuid.New(),
		FinalTotal:    900,
		PaymentOption: enums.PaymentOptionPayNow,
		PaymentStatus: enums.OrderPaymentStatusPending,
		Status:        enums.OrderStatusPending,
		Items: []models.OrderItem{
			{Kind: enums.OrderItemKindRental, ProductID: &productID},
		},
	}
}

func gwID(v string) *string { return &v }

func TestCreateIntentHappyPath(t *testing.T) {
	order := pendingOrder()
	f := newFixture(t, []*models.Order{order}, nil)

	res, err := f.svc.CreateIntent(context.Background(), CreateIntentInput{
		OrderIdentifier: order.OrderNumber,
		Amount:          900,
	})
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if res.RazorpayOrderID != "order_gw1" || res.Key != "rzp_test_key" {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Amount != 900 || res.Currency != "INR" {
		t.Errorf("amount=%v currency=%s, want 900/INR", res.Amount, res.Currency)
	}

	stored := f.payments.byGwID["order_gw1"]
	if stored == nil || stored.Status != enums.PaymentStatusPending {
		t.Fatal("payment not stored as pending with gateway order id")
	}
}

func TestCreateIntentAmountMismatch(t *testing.T) {
	order := pendingOrder()
	f := newFixture(t, []*models.Order{order}, nil)

	_, err := f.svc.CreateIntent(context.Background(), CreateIntentInput{
		OrderIdentifier: order.OrderNumber,
		Amount:          850,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeAmountMismatch {
		t.Fatalf("expected amount mismatch, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["expected_amount"] != 900.0 || details["requested_amount"] != 850.0 {
		t.Errorf("mismatch details missing both values: %v", typed.Details())
	}
}

func TestCreateIntentAlreadyPaid(t *testing.T) {
	order := pendingOrder()
	order.PaymentStatus = enums.OrderPaymentStatusPaid
	f := newFixture(t, []*models.Order{order}, nil)

	_, err := f.svc.CreateIntent(context.Background(), CreateIntentInput{
		OrderIdentifier: order.ID.String(),
		Amount:          900,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeOrderPaid {
		t.Fatalf("expected already-paid error, got %v", err)
	}
}

func TestCreateIntentAdvanceAmountDue(t *testing.T) {
	order := pendingOrder()
	order.PaymentOption = enums.PaymentOptionPayAdvance
	order.AdvanceAmount = 500
	order.RemainingAmount = 400
	f := newFixture(t, []*models.Order{order}, nil)

	if _, err := f.svc.CreateIntent(context.Background(), CreateIntentInput{
		OrderIdentifier: order.OrderNumber,
		Amount:          500,
	}); err != nil {
		t.Fatalf("advance intent: %v", err)
	}

	order.PaymentStatus = enums.OrderPaymentStatusAdvancePaid
	if _, err := f.svc.CreateIntent(context.Background(), CreateIntentInput{
		OrderIdentifier: order.OrderNumber,
		Amount:          400,
	}); err != nil {
		t.Fatalf("remaining intent: %v", err)
	}
}

func TestCreateIntentGatewayFailureMarksPaymentFailed(t *testing.T) {
	order := pendingOrder()
	f := newFixture(t, []*models.Order{order}, nil)
	f.gw.orderErr = errors.New("gateway down")

	_, err := f.svc.CreateIntent(context.Background(), CreateIntentInput{
		OrderIdentifier: order.OrderNumber,
		Amount:          900,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeGateway {
		t.Fatalf("expected gateway error, got %v", err)
	}
	for _, p := range f.payments.payments {
		if p.Status != enums.PaymentStatusFailed {
			t.Errorf("payment status = %s, want Failed", p.Status)
		}
	}
}

func TestVerifyHappyPath(t *testing.T) {
	order := pendingOrder()
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST1",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         900,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})

	sig := razorpay.SignPayment("order_gw1", "pay_abc", testSecret)
	res, err := f.svc.Verify(context.Background(), VerifyInput{
		GatewayOrderID:   "order_gw1",
		GatewayPaymentID: "pay_abc",
		Signature:        sig,
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if res.PaymentStatus != enums.PaymentStatusCompleted {
		t.Errorf("payment status = %s, want Completed", res.PaymentStatus)
	}
	if order.PaymentStatus != enums.OrderPaymentStatusPaid || order.Status != enums.OrderStatusConfirmed {
		t.Errorf("order not settled: payment=%s status=%s", order.PaymentStatus, order.Status)
	}
	if len(f.flipper.flips) != 1 {
		t.Errorf("product flips = %d, want 1", len(f.flipper.flips))
	}
	if f.notify.received != 1 {
		t.Errorf("payment notifications = %d, want 1", f.notify.received)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	order := pendingOrder()
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST2",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         900,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})

	_, err := f.svc.Verify(context.Background(), VerifyInput{
		GatewayOrderID:   "order_gw1",
		GatewayPaymentID: "pay_abc",
		Signature:        "deadbeef",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeSigMismatch {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
	if payment.Status != enums.PaymentStatusFailed {
		t.Errorf("payment status = %s, want Failed", payment.Status)
	}
	if order.PaymentStatus != enums.OrderPaymentStatusPending || order.Status != enums.OrderStatusPending {
		t.Error("order must be unchanged after a tampered signature")
	}
	if f.notify.failed != 1 {
		t.Errorf("failure alerts = %d, want 1", f.notify.failed)
	}
}

func TestVerifyIdempotent(t *testing.T) {
	order := pendingOrder()
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST3",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         900,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})

	sig := razorpay.SignPayment("order_gw1", "pay_abc", testSecret)
	input := VerifyInput{GatewayOrderID: "order_gw1", GatewayPaymentID: "pay_abc", Signature: sig}

	if _, err := f.svc.Verify(context.Background(), input); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if _, err := f.svc.Verify(context.Background(), input); err != nil {
		t.Fatalf("second verify: %v", err)
	}

	if len(f.flipper.flips) != 1 {
		t.Errorf("product flips = %d, want exactly 1 after replay", len(f.flipper.flips))
	}
	if f.notify.received != 1 {
		t.Errorf("payment notifications = %d, want exactly 1 after replay", f.notify.received)
	}
	if len(f.orders.updates) != 1 {
		t.Errorf("order updates = %d, want exactly 1 after replay", len(f.orders.updates))
	}
}

func TestVerifyNotCaptured(t *testing.T) {
	order := pendingOrder()
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST4",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         900,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})
	f.gw.payment = &razorpay.Payment{ID: "pay_abc", Status: "failed"}

	sig := razorpay.SignPayment("order_gw1", "pay_abc", testSecret)
	_, err := f.svc.Verify(context.Background(), VerifyInput{
		GatewayOrderID:   "order_gw1",
		GatewayPaymentID: "pay_abc",
		Signature:        sig,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotCaptured {
		t.Fatalf("expected not-captured error, got %v", err)
	}
}

func TestVerifyHonorsSignatureOnFetchFailure(t *testing.T) {
	order := pendingOrder()
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST5",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         900,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})
	f.gw.paymentErr = errors.New("timeout")

	sig := razorpay.SignPayment("order_gw1", "pay_abc", testSecret)
	res, err := f.svc.Verify(context.Background(), VerifyInput{
		GatewayOrderID:   "order_gw1",
		GatewayPaymentID: "pay_abc",
		Signature:        sig,
	})
	if err != nil {
		t.Fatalf("Verify should honor signature when fetch fails: %v", err)
	}
	if res.PaymentStatus != enums.PaymentStatusCompleted {
		t.Errorf("payment status = %s, want Completed", res.PaymentStatus)
	}
}

func TestVerifyAdvancePayment(t *testing.T) {
	order := pendingOrder()
	order.PaymentOption = enums.PaymentOptionPayAdvance
	order.AdvanceAmount = 500
	order.RemainingAmount = 400
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST6",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         500,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})

	sig := razorpay.SignPayment("order_gw1", "pay_abc", testSecret)
	if _, err := f.svc.Verify(context.Background(), VerifyInput{
		GatewayOrderID:   "order_gw1",
		GatewayPaymentID: "pay_abc",
		Signature:        sig,
	}); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if order.PaymentStatus != enums.OrderPaymentStatusAdvancePaid {
		t.Errorf("payment status = %s, want advance_paid", order.PaymentStatus)
	}
	if order.Status != enums.OrderStatusConfirmed {
		t.Errorf("status = %s, want confirmed", order.Status)
	}
}

func webhookBody(event, paymentID, gatewayOrderID string) []byte {
	body := map[string]any{
		"event": event,
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":       paymentID,
					"order_id": gatewayOrderID,
					"status":   "captured",
				},
			},
		},
	}
	raw, _ := json.Marshal(body)
	return raw
}

func TestWebhookAppliesOnce(t *testing.T) {
	order := pendingOrder()
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST7",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         900,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})

	body := webhookBody("payment.captured", "pay_abc", "order_gw1")
	sig := webhookSig(body, testSecret)

	if err := f.svc.HandleWebhook(context.Background(), body, sig); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := f.svc.HandleWebhook(context.Background(), body, sig); err != nil {
		t.Fatalf("replayed delivery must be a no-op success: %v", err)
	}
	if len(f.flipper.flips) != 1 {
		t.Errorf("product flips = %d, want exactly 1", len(f.flipper.flips))
	}
	if order.PaymentStatus != enums.OrderPaymentStatusPaid {
		t.Errorf("order payment status = %s, want paid", order.PaymentStatus)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	order := pendingOrder()
	f := newFixture(t, []*models.Order{order}, nil)

	body := webhookBody("payment.captured", "pay_abc", "order_gw1")
	err := f.svc.HandleWebhook(context.Background(), body, "bogus")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeSigMismatch {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
}

func TestWebhookPaymentFailed(t *testing.T) {
	order := pendingOrder()
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST8",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         900,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})

	body := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_abc","order_id":"order_gw1","error_description":"card declined"}}}}`)
	sig := webhookSig(body, testSecret)

	if err := f.svc.HandleWebhook(context.Background(), body, sig); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	if payment.Status != enums.PaymentStatusFailed {
		t.Errorf("payment status = %s, want Failed", payment.Status)
	}
	if payment.FailureReason == nil || *payment.FailureReason != "card declined" {
		t.Error("gateway failure reason not recorded")
	}
	if f.notify.failed != 1 {
		t.Errorf("failure alerts = %d, want 1", f.notify.failed)
	}

	// Replay stays silent.
	if err := f.svc.HandleWebhook(context.Background(), body, sig); err != nil {
		t.Fatalf("replayed failure: %v", err)
	}
	if f.notify.failed != 1 {
		t.Errorf("failure alerts after replay = %d, want 1", f.notify.failed)
	}
}

func TestProcessLegacyEndpoint(t *testing.T) {
	order := pendingOrder()
	payment := &models.Payment{
		PaymentNumber:  "PAY-TEST9",
		OrderID:        order.ID,
		UserID:         order.UserID,
		Amount:         900,
		Status:         enums.PaymentStatusPending,
		GatewayOrderID: gwID("order_gw1"),
	}
	f := newFixture(t, []*models.Order{order}, []*models.Payment{payment})

	sig := razorpay.SignPayment("order_gw1", "pay_abc", testSecret)
	res, err := f.svc.Process(context.Background(), ProcessInput{
		OrderIdentifier:  order.OrderNumber,
		GatewayOrderID:   "order_gw1",
		GatewayPaymentID: "pay_abc",
		Signature:        sig,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.OrderID != order.ID {
		t.Error("result not tied to the resolved order")
	}
}

func webhookSig(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
