package bookings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// Repository persists service bookings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.ServiceBooking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceBooking, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.ServiceBooking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ServiceBooking, error)
	ListAll(ctx context.Context, status enums.BookingStatus) ([]models.ServiceBooking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error
	CancelByOrder(ctx context.Context, orderID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bookings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, booking *models.ServiceBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceBooking, error) {
	var booking models.ServiceBooking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.ServiceBooking, error) {
	var out []models.ServiceBooking
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ServiceBooking, error) {
	var out []models.ServiceBooking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ListAll(ctx context.Context, status enums.BookingStatus) ([]models.ServiceBooking, error) {
	q := r.db.WithContext(ctx).Model(&models.ServiceBooking{}).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.ServiceBooking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.ServiceBooking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) CancelByOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ServiceBooking{}).
		Where("order_id = ? AND status NOT IN ?", orderID,
			[]enums.BookingStatus{enums.BookingStatusCompleted, enums.BookingStatusCancelled}).
		Update("status", enums.BookingStatusCancelled).Error
}
