package orders

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/internal/coupons"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

type stubOrderRepo struct {
	orders   map[uuid.UUID]*models.Order
	byNumber map[string]*models.Order
	updates  map[string]any
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:   map[uuid.UUID]*models.Order{},
		byNumber: map[string]*models.Order{},
	}
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if _, exists := s.byNumber[order.OrderNumber]; exists {
		return duplicateErr{}
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders[order.ID] = order
	s.byNumber[order.OrderNumber] = order
	return nil
}

type duplicateErr struct{}

func (duplicateErr) Error() string { return `duplicate key value violates unique constraint "orders_order_number_key"` }

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if o, ok := s.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	if o, ok := s.byNumber[orderNumber]; ok {
		return o, nil
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
	s.updates = updates
	if o, ok := s.orders[id]; ok {
		if v, ok := updates["status"].(enums.OrderStatus); ok {
			o.Status = v
		}
	}
	return nil
}

func (s *stubOrderRepo) CountForYear(ctx context.Context, year int) (int64, error) {
	return int64(len(s.orders)), nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

type stubProducts struct {
	rows    map[uuid.UUID]models.Product
	reverts []uuid.UUID
}

func (s *stubProducts) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := s.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProducts) SetStatusIf(ctx context.Context, id uuid.UUID, expected, next enums.ProductStatus) (bool, error) {
	s.reverts = append(s.reverts, id)
	return true, nil
}

type stubServices struct {
	rows map[uuid.UUID]models.HomeService
}

func (s *stubServices) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.HomeService, error) {
	var out []models.HomeService
	for _, id := range ids {
		if svc, ok := s.rows[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

type stubSettings struct{ row models.Settings }

func (s *stubSettings) Get(ctx context.Context) (*models.Settings, error) {
	copied := s.row
	return &copied, nil
}

type stubCoupons struct {
	result   *coupons.ValidationResult
	err      error
	redeemed int
}

func (s *stubCoupons) Validate(ctx context.Context, input coupons.ValidateInput) (*coupons.ValidationResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubCoupons) Redeem(ctx context.Context, tx *gorm.DB, coupon *models.Coupon, userID, orderID uuid.UUID, discountAmount float64) error {
	s.redeemed++
	return nil
}

type stubBookings struct {
	created   []*models.ServiceBooking
	cancelled []uuid.UUID
}

func (s *stubBookings) Create(ctx context.Context, booking *models.ServiceBooking) error {
	s.created = append(s.created, booking)
	return nil
}

func (s *stubBookings) CancelByOrder(ctx context.Context, orderID uuid.UUID) error {
	s.cancelled = append(s.cancelled, orderID)
	return nil
}

type fixture struct {
	svc      Service
	repo     *stubOrderRepo
	products *stubProducts
	bookings *stubBookings
	coupons  *stubCoupons
}

func newFixture(t *testing.T, products ...*models.Product) *fixture {
	t.Helper()
	prodStub := &stubProducts{rows: map[uuid.UUID]models.Product{}}
	for _, p := range products {
		prodStub.rows[p.ID] = *p
	}
	repo := newStubOrderRepo()
	bookings := &stubBookings{}
	couponStub := &stubCoupons{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	svc, err := NewService(
		repo, stubTx{}, prodStub, &stubServices{rows: map[uuid.UUID]models.HomeService{}},
		&stubSettings{row: *testSettings()}, couponStub, bookings, nil, logg,
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return &fixture{svc: svc, repo: repo, products: prodStub, bookings: bookings, coupons: couponStub}
}

func TestCreatePayNowScenario(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	f := newFixture(t, product)

	res, err := f.svc.Create(context.Background(), CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
		UserID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	order := res.Order
	if order.Total != 1000 || order.PaymentDiscount != 100 || order.FinalTotal != 900 {
		t.Errorf("total=%v discount=%v final=%v, want 1000/100/900",
			order.Total, order.PaymentDiscount, order.FinalTotal)
	}
	if order.Status != enums.OrderStatusPending {
		t.Errorf("status = %s, want pending", order.Status)
	}
	if order.PaymentStatus != enums.OrderPaymentStatusPending {
		t.Errorf("payment status = %s, want pending", order.PaymentStatus)
	}
	if order.OrderNumber == "" {
		t.Error("expected a generated order number")
	}
}

func TestCreatePayAdvanceSplit(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	f := newFixture(t, product)

	res, err := f.svc.Create(context.Background(), CreateInput{
		Items:                     []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption:             enums.PaymentOptionPayAdvance,
		PriorityServiceScheduling: true,
		UserID:                    uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	order := res.Order
	if order.PaymentDiscount != 50 {
		t.Errorf("payment discount = %v, want 50", order.PaymentDiscount)
	}
	if order.FinalTotal != 950 {
		t.Errorf("final total = %v, want 950", order.FinalTotal)
	}
	if order.AdvanceAmount != 500 || order.RemainingAmount != 450 {
		t.Errorf("advance=%v remaining=%v, want 500/450", order.AdvanceAmount, order.RemainingAmount)
	}
}

func TestCreateRejectsAdvanceFieldsOnPayNow(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	f := newFixture(t, product)

	advance := 500.0
	_, err := f.svc.Create(context.Background(), CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
		AdvanceAmount: &advance,
		UserID:        uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsAdvanceWithoutPriority(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	f := newFixture(t, product)

	_, err := f.svc.Create(context.Background(), CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayAdvance,
		UserID:        uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateComputedFinalTotalWins(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	f := newFixture(t, product)

	clientFinal := 1.0
	res, err := f.svc.Create(context.Background(), CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
		FinalTotal:    &clientFinal,
		UserID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Order.FinalTotal != 900 {
		t.Errorf("final total = %v, want computed 900", res.Order.FinalTotal)
	}
}

func TestCreateCouponRejectionAbortsOrder(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	f := newFixture(t, product)
	f.coupons.err = pkgerrors.New(pkgerrors.CodeCouponExpired, "coupon has expired")

	code := "OLD"
	_, err := f.svc.Create(context.Background(), CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
		CouponCode:    &code,
		UserID:        uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeCouponExpired {
		t.Fatalf("expected coupon rejection, got %v", err)
	}
	if len(f.repo.orders) != 0 {
		t.Error("no order should be persisted when the coupon fails")
	}
}

func TestCreateRedeemsCouponAtomically(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	f := newFixture(t, product)
	coupon := &models.Coupon{ID: uuid.New(), Code: "WELCOME10"}
	f.coupons.result = &coupons.ValidationResult{Coupon: coupon, DiscountAmount: 100}

	code := "WELCOME10"
	res, err := f.svc.Create(context.Background(), CreateInput{
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
		CouponCode:    &code,
		UserID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.coupons.redeemed != 1 {
		t.Errorf("redeem calls = %d, want 1", f.coupons.redeemed)
	}
	if res.Order.FinalTotal != 800 {
		t.Errorf("final total = %v, want 800", res.Order.FinalTotal)
	}
	if res.Order.CouponCode == nil || *res.Order.CouponCode != "WELCOME10" {
		t.Error("coupon code not recorded on order")
	}
}

func TestCreateClientOrderNumberDuplicate(t *testing.T) {
	product := testProduct(enums.ProductCategoryRefrigerator)
	f := newFixture(t, product)
	f.repo.byNumber["ORD-2026-0001"] = &models.Order{}

	number := "ORD-2026-0001"
	_, err := f.svc.Create(context.Background(), CreateInput{
		OrderNumber:   &number,
		Items:         []ItemInput{rentalInput(product.ID, 3, 1000)},
		PaymentOption: enums.PaymentOptionPayNow,
		UserID:        uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeOrderIDTaken {
		t.Fatalf("expected duplicate order id error, got %v", err)
	}
}

func TestCreateSynthesizesServiceBookings(t *testing.T) {
	f := newFixture(t)
	svcRow := models.HomeService{
		ID:       uuid.New(),
		Name:     "AC Installation",
		Category: enums.ProductCategoryAC,
		Price:    599,
		IsActive: true,
	}
	f.svc.(*service).services = &stubServices{rows: map[uuid.UUID]models.HomeService{svcRow.ID: svcRow}}

	res, err := f.svc.Create(context.Background(), CreateInput{
		Items:         []ItemInput{{Type: "service", ServiceID: &svcRow.ID}},
		PaymentOption: enums.PaymentOptionPayNow,
		UserID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(f.bookings.created) != 1 {
		t.Fatalf("bookings created = %d, want 1", len(f.bookings.created))
	}
	if f.bookings.created[0].OrderID != res.Order.ID {
		t.Error("booking not linked to the new order")
	}
}

func TestCancelDeliveredOrderRejected(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	order := &models.Order{ID: uuid.New(), OrderNumber: "ORD-2026-0009", UserID: userID, Status: enums.OrderStatusDelivered}
	f.repo.orders[order.ID] = order
	f.repo.byNumber[order.OrderNumber] = order

	_, err := f.svc.Cancel(context.Background(), CancelInput{
		Identifier: order.OrderNumber,
		Reason:     "changed my mind",
		ActorID:    userID,
		ActorRole:  enums.UserRoleCustomer,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCancelForeignOrderForbidden(t *testing.T) {
	f := newFixture(t)
	order := &models.Order{ID: uuid.New(), OrderNumber: "ORD-2026-0010", UserID: uuid.New(), Status: enums.OrderStatusPending}
	f.repo.orders[order.ID] = order
	f.repo.byNumber[order.OrderNumber] = order

	_, err := f.svc.Cancel(context.Background(), CancelInput{
		Identifier: order.ID.String(),
		Reason:     "not mine",
		ActorID:    uuid.New(),
		ActorRole:  enums.UserRoleCustomer,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCancelCascades(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	productID := uuid.New()
	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-2026-0011",
		UserID:      userID,
		Status:      enums.OrderStatusConfirmed,
		Items: []models.OrderItem{
			{Kind: enums.OrderItemKindRental, ProductID: &productID},
		},
	}
	f.repo.orders[order.ID] = order
	f.repo.byNumber[order.OrderNumber] = order

	cancelled, err := f.svc.Cancel(context.Background(), CancelInput{
		Identifier: order.ID.String(),
		Reason:     "moving cities",
		ActorID:    userID,
		ActorRole:  enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != enums.OrderStatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
	if len(f.bookings.cancelled) != 1 {
		t.Errorf("booking cascade calls = %d, want 1", len(f.bookings.cancelled))
	}
	if len(f.products.reverts) != 1 || f.products.reverts[0] != productID {
		t.Error("product status revert not attempted")
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newFixture(t)
	order := &models.Order{ID: uuid.New(), OrderNumber: "ORD-2026-0012", Status: enums.OrderStatusConfirmed}
	f.repo.orders[order.ID] = order
	f.repo.byNumber[order.OrderNumber] = order

	if _, err := f.svc.UpdateStatus(context.Background(), order.OrderNumber, enums.OrderStatusProcessing); err != nil {
		t.Fatalf("confirmed -> processing: %v", err)
	}

	_, err := f.svc.UpdateStatus(context.Background(), order.OrderNumber, enums.OrderStatusDelivered)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("processing -> delivered should be rejected, got %v", err)
	}
}

func TestResolveByEitherIdentifier(t *testing.T) {
	f := newFixture(t)
	order := &models.Order{ID: uuid.New(), OrderNumber: "ORD-2026-0013"}
	f.repo.orders[order.ID] = order
	f.repo.byNumber[order.OrderNumber] = order

	byID, err := f.svc.Resolve(context.Background(), order.ID.String())
	if err != nil || byID.ID != order.ID {
		t.Fatalf("resolve by uuid failed: %v", err)
	}
	byNumber, err := f.svc.Resolve(context.Background(), order.OrderNumber)
	if err != nil || byNumber.ID != order.ID {
		t.Fatalf("resolve by order number failed: %v", err)
	}
	if _, err := f.svc.Resolve(context.Background(), "ORD-0000-0000"); pkgerrors.As(err) == nil {
		t.Fatal("expected not found for unknown identifier")
	}
}
