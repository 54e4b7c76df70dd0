package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	"github.com/rentkart/rentkart-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  total REAL NOT NULL,
  product_discount REAL NOT NULL DEFAULT 0,
  payment_discount REAL NOT NULL DEFAULT 0,
  coupon_discount REAL NOT NULL DEFAULT 0,
  discount REAL NOT NULL DEFAULT 0,
  final_total REAL NOT NULL,
  payment_option TEXT NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'pending',
  status TEXT NOT NULL DEFAULT 'pending',
  coupon_code TEXT,
  advance_amount REAL NOT NULL DEFAULT 0,
  remaining_amount REAL NOT NULL DEFAULT 0,
  priority_service_scheduling INTEGER NOT NULL DEFAULT 0,
  customer_name TEXT,
  customer_email TEXT,
  customer_phone TEXT,
  cancel_reason TEXT,
  cancelled_by TEXT,
  cancelled_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  product_id TEXT,
  service_id TEXT,
  name TEXT NOT NULL,
  category TEXT,
  quantity INTEGER NOT NULL DEFAULT 1,
  price REAL NOT NULL,
  duration INTEGER,
  is_monthly_payment INTEGER NOT NULL DEFAULT 0,
  monthly_price REAL NOT NULL DEFAULT 0,
  monthly_tenure INTEGER NOT NULL DEFAULT 0,
  security_deposit REAL NOT NULL DEFAULT 0,
  installation_charge REAL NOT NULL DEFAULT 0,
  booking_details TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, number string, created time.Time, status enums.OrderStatus) *models.Order {
	t.Helper()

	productID := uuid.New()
	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   number,
		UserID:        userID,
		Total:         1200,
		FinalTotal:    1080,
		Discount:      120,
		PaymentOption: enums.PaymentOptionPayNow,
		Status:        status,
		PaymentStatus: enums.OrderPaymentStatusPending,
		Items: []models.OrderItem{
			{
				ID:        uuid.New(),
				Kind:      enums.OrderItemKindRental,
				ProductID: &productID,
				Name:      "LG Refrigerator 260L",
				Category:  "Refrigerator",
				Quantity:  1,
				Price:     1200,
				Duration:  6,
			},
		},
		CreatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestOrdersRepoFindByOrderNumberPreloadsItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	created := createTestOrder(t, db, userID, "ORD-2025-000123", time.Now().UTC(), enums.OrderStatusPending)

	found, err := repo.FindByOrderNumber(ctx, "ORD-2025-000123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "LG Refrigerator 260L", found.Items[0].Name)

	_, err = repo.FindByOrderNumber(ctx, "ORD-2025-999999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrdersRepoListByUserPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createTestOrder(t, db, userID, "ORD-2025-00010"+string(rune('0'+i)), base.Add(time.Duration(i)*time.Hour), enums.OrderStatusPending)
	}
	createTestOrder(t, db, uuid.New(), "ORD-2025-000200", base, enums.OrderStatusPending)

	page, next, err := repo.ListByUser(ctx, userID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.NotEmpty(t, next)
	assert.Equal(t, "ORD-2025-000102", page[0].OrderNumber)

	rest, next, err := repo.ListByUser(ctx, userID, pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Empty(t, next)
	assert.Equal(t, "ORD-2025-000100", rest[0].OrderNumber)
}

func TestOrdersRepoListAllFiltersByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	createTestOrder(t, db, uuid.New(), "ORD-2025-000301", base, enums.OrderStatusPending)
	createTestOrder(t, db, uuid.New(), "ORD-2025-000302", base.Add(time.Hour), enums.OrderStatusCancelled)

	cancelled, _, err := repo.ListAll(ctx, enums.OrderStatusCancelled, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, "ORD-2025-000302", cancelled[0].OrderNumber)

	all, _, err := repo.ListAll(ctx, "", pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrdersRepoUpdateWritesSelectedColumns(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := createTestOrder(t, db, uuid.New(), "ORD-2025-000400", time.Now().UTC(), enums.OrderStatusPending)

	require.NoError(t, repo.Update(ctx, order.ID, map[string]any{
		"status":         enums.OrderStatusConfirmed,
		"payment_status": enums.OrderPaymentStatusPaid,
	}))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, found.Status)
	assert.Equal(t, enums.OrderPaymentStatusPaid, found.PaymentStatus)
	assert.Equal(t, 1080.0, found.FinalTotal)
}
