package homeservices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// Repository persists the home-service catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.HomeService, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.HomeService, error)
	List(ctx context.Context, category enums.ProductCategory, activeOnly bool) ([]models.HomeService, error)
	Create(ctx context.Context, svc *models.HomeService) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a home-services repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.HomeService, error) {
	var svc models.HomeService
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.HomeService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.HomeService
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) List(ctx context.Context, category enums.ProductCategory, activeOnly bool) ([]models.HomeService, error) {
	q := r.db.WithContext(ctx).Model(&models.HomeService{}).Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if activeOnly {
		q = q.Where("is_active = TRUE")
	}
	var out []models.HomeService
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Create(ctx context.Context, svc *models.HomeService) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.HomeService{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.HomeService{}).Error
}
