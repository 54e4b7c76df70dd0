package bookings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

// Service exposes booking reads and admin status progression.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ServiceBooking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ServiceBooking, error)
	ListAll(ctx context.Context, status enums.BookingStatus) ([]models.ServiceBooking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) (*models.ServiceBooking, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the bookings service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.ServiceBooking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load booking")
	}
	return booking, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.ServiceBooking, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bookings")
	}
	return out, nil
}

func (s *service) ListAll(ctx context.Context, status enums.BookingStatus) ([]models.ServiceBooking, error) {
	out, err := s.repo.ListAll(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list bookings")
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) (*models.ServiceBooking, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown booking status")
	}
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == enums.BookingStatusCancelled || booking.Status == enums.BookingStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking is already finalized")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update booking status")
	}
	booking.Status = status
	return booking, nil
}
