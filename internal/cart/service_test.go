package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/types"
)

type stubCartRepo struct {
	items map[uuid.UUID]*models.CartItem
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: map[uuid.UUID]*models.CartItem{}}
}

func (s *stubCartRepo) Create(ctx context.Context, item *models.CartItem) error {
	item.ID = uuid.New()
	s.items[item.ID] = item
	return nil
}

func (s *stubCartRepo) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	if item, ok := s.items[itemID]; ok && item.UserID == userID {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) FindByTarget(ctx context.Context, userID uuid.UUID, productID, serviceID *uuid.UUID) (*models.CartItem, error) {
	for _, item := range s.items {
		if item.UserID != userID {
			continue
		}
		if productID != nil && item.ProductID != nil && *item.ProductID == *productID {
			return item, nil
		}
		if serviceID != nil && item.ServiceID != nil && *item.ServiceID == *serviceID {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubCartRepo) Update(ctx context.Context, userID, itemID uuid.UUID, updates map[string]any) (bool, error) {
	item, ok := s.items[itemID]
	if !ok || item.UserID != userID {
		return false, nil
	}
	if v, ok := updates["quantity"].(int); ok {
		item.Quantity = v
	}
	if v, ok := updates["duration"].(int); ok {
		item.Duration = v
	}
	if v, ok := updates["is_monthly_payment"].(bool); ok {
		item.IsMonthlyPayment = v
	}
	if v, ok := updates["booking_details"].(*types.BookingDetails); ok {
		item.BookingDetails = v
	}
	return true, nil
}

func (s *stubCartRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	item, ok := s.items[itemID]
	if !ok || item.UserID != userID {
		return false, nil
	}
	delete(s.items, itemID)
	return true, nil
}

func (s *stubCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	for id, item := range s.items {
		if item.UserID == userID {
			delete(s.items, id)
		}
	}
	return nil
}

type stubProducts struct {
	rows map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.rows[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProducts) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := s.rows[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type stubServices struct {
	rows map[uuid.UUID]*models.HomeService
}

func (s *stubServices) FindByID(ctx context.Context, id uuid.UUID) (*models.HomeService, error) {
	if svc, ok := s.rows[id]; ok {
		return svc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubServices) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.HomeService, error) {
	var out []models.HomeService
	for _, id := range ids {
		if svc, ok := s.rows[id]; ok {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func testProduct() *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Category: enums.ProductCategoryAC,
		Brand:    "Voltas",
		Model:    "Vertis Elite",
		Pricing: types.DurationPricing{
			Months3: 1500, Months6: 1250, Months9: 1100,
			Months11: 1000, Months12: 950, Months24: 800,
		},
		Status: enums.ProductStatusAvailable,
	}
}

func newTestService(t *testing.T, repo *stubCartRepo, products *stubProducts, services *stubServices) Service {
	t.Helper()
	if products == nil {
		products = &stubProducts{rows: map[uuid.UUID]*models.Product{}}
	}
	if services == nil {
		services = &stubServices{rows: map[uuid.UUID]*models.HomeService{}}
	}
	svc, err := NewService(repo, products, services)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAddRentalItem(t *testing.T) {
	repo := newStubCartRepo()
	product := testProduct()
	svc := newTestService(t, repo, &stubProducts{rows: map[uuid.UUID]*models.Product{product.ID: product}}, nil)
	userID := uuid.New()

	item, err := svc.Add(context.Background(), userID, AddInput{
		Kind: "rental", ProductID: &product.ID, Duration: 6,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if item.Kind != enums.OrderItemKindRental || item.Quantity != 1 || item.Duration != 6 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	repo := newStubCartRepo()
	product := testProduct()
	svc := newTestService(t, repo, &stubProducts{rows: map[uuid.UUID]*models.Product{product.ID: product}}, nil)
	userID := uuid.New()

	input := AddInput{Kind: "rental", ProductID: &product.ID, Duration: 6}
	if _, err := svc.Add(context.Background(), userID, input); err != nil {
		t.Fatalf("first add: %v", err)
	}
	item, err := svc.Add(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if item.Quantity != 2 {
		t.Errorf("quantity = %d, want 2 after merge", item.Quantity)
	}
	if len(repo.items) != 1 {
		t.Errorf("cart lines = %d, want 1", len(repo.items))
	}
}

func TestAddRejectsUnknownDuration(t *testing.T) {
	repo := newStubCartRepo()
	product := testProduct()
	svc := newTestService(t, repo, &stubProducts{rows: map[uuid.UUID]*models.Product{product.ID: product}}, nil)

	_, err := svc.Add(context.Background(), uuid.New(), AddInput{
		Kind: "rental", ProductID: &product.ID, Duration: 7,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddMonthlyRequiresPlan(t *testing.T) {
	repo := newStubCartRepo()
	product := testProduct()
	svc := newTestService(t, repo, &stubProducts{rows: map[uuid.UUID]*models.Product{product.ID: product}}, nil)

	_, err := svc.Add(context.Background(), uuid.New(), AddInput{
		Kind: "rental", ProductID: &product.ID, IsMonthly: true,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	product.MonthlyPlan = &types.MonthlyPlan{MonthlyPrice: 599, SecurityDeposit: 2000}
	if _, err := svc.Add(context.Background(), uuid.New(), AddInput{
		Kind: "rental", ProductID: &product.ID, IsMonthly: true,
	}); err != nil {
		t.Fatalf("monthly add with plan: %v", err)
	}
}

func TestAddInactiveServiceRejected(t *testing.T) {
	repo := newStubCartRepo()
	inactive := &models.HomeService{ID: uuid.New(), Name: "AC Repair", Price: 499, IsActive: false}
	svc := newTestService(t, repo, nil, &stubServices{rows: map[uuid.UUID]*models.HomeService{inactive.ID: inactive}})

	_, err := svc.Add(context.Background(), uuid.New(), AddInput{
		Kind: "service", ServiceID: &inactive.ID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListJoinsCatalog(t *testing.T) {
	repo := newStubCartRepo()
	product := testProduct()
	active := &models.HomeService{ID: uuid.New(), Name: "Deep Clean", Price: 999, IsActive: true}
	svc := newTestService(t, repo,
		&stubProducts{rows: map[uuid.UUID]*models.Product{product.ID: product}},
		&stubServices{rows: map[uuid.UUID]*models.HomeService{active.ID: active}})
	userID := uuid.New()

	if _, err := svc.Add(context.Background(), userID, AddInput{Kind: "rental", ProductID: &product.ID, Duration: 12}); err != nil {
		t.Fatalf("add rental: %v", err)
	}
	if _, err := svc.Add(context.Background(), userID, AddInput{Kind: "service", ServiceID: &active.ID}); err != nil {
		t.Fatalf("add service: %v", err)
	}

	entries, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for _, entry := range entries {
		switch entry.Item.Kind {
		case enums.OrderItemKindRental:
			if entry.Product == nil || entry.Product.Brand != "Voltas" {
				t.Error("rental entry missing product")
			}
		case enums.OrderItemKindService:
			if entry.Service == nil || entry.Service.Name != "Deep Clean" {
				t.Error("service entry missing catalog record")
			}
		}
	}
}

func TestRemoveUnknownItem(t *testing.T) {
	svc := newTestService(t, newStubCartRepo(), nil, nil)

	err := svc.Remove(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
