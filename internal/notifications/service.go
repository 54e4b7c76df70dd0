package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

// Sender delivers a rendered message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type userDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service sends transactional email for order and payment lifecycle events.
// Delivery is asynchronous and best effort: a failed send is logged, never
// surfaced to the caller.
type Service struct {
	sender      Sender
	users       userDirectory
	adminEmail  string
	logg        *logger.Logger
	sendTimeout time.Duration
	wg          sync.WaitGroup
}

// NewService wires the notification service. A nil sender degrades every
// event to a log line, which keeps local development free of SMTP setup.
func NewService(sender Sender, users userDirectory, adminEmail string, logg *logger.Logger) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user directory required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{
		sender:      sender,
		users:       users,
		adminEmail:  adminEmail,
		logg:        logg,
		sendTimeout: 15 * time.Second,
	}, nil
}

// OrderCreated emails the customer an order summary.
func (s *Service) OrderCreated(ctx context.Context, order *models.Order) {
	user, ok := s.recipient(ctx, order)
	if !ok {
		return
	}
	subject, body := orderCreatedEmail(order, user)
	s.dispatch(ctx, user.Email, subject, body)
}

// OrderCancelled emails the customer a cancellation notice.
func (s *Service) OrderCancelled(ctx context.Context, order *models.Order, reason string) {
	user, ok := s.recipient(ctx, order)
	if !ok {
		return
	}
	subject, body := orderCancelledEmail(order, user, reason)
	s.dispatch(ctx, user.Email, subject, body)
}

// PaymentReceived emails the customer a payment confirmation.
func (s *Service) PaymentReceived(ctx context.Context, order *models.Order, payment *models.Payment) {
	user, ok := s.recipient(ctx, order)
	if !ok {
		return
	}
	subject, body := paymentReceivedEmail(order, user, payment)
	s.dispatch(ctx, user.Email, subject, body)
}

// PaymentFailed alerts the operations inbox about a failed or rejected
// payment. Customers see the failure in the checkout flow already.
func (s *Service) PaymentFailed(ctx context.Context, order *models.Order, payment *models.Payment, reason string) {
	if s.adminEmail == "" {
		s.logg.Warn(s.logg.WithOrderID(ctx, order.ID.String()),
			"payment failure alert skipped, no admin email configured")
		return
	}
	subject, body := paymentFailedEmail(order, payment, reason)
	s.dispatch(ctx, s.adminEmail, subject, body)
}

// Flush waits for in-flight sends. Called on shutdown.
func (s *Service) Flush() {
	s.wg.Wait()
}

func (s *Service) recipient(ctx context.Context, order *models.Order) (*models.User, bool) {
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()), "resolve notification recipient", err)
		return nil, false
	}
	if order.CustomerEmail != "" && order.CustomerEmail != user.Email {
		clone := *user
		clone.Email = order.CustomerEmail
		return &clone, true
	}
	return user, true
}

func (s *Service) dispatch(ctx context.Context, to, subject, body string) {
	if s.sender == nil {
		s.logg.Info(s.logg.WithField(ctx, "subject", subject), "email delivery disabled, skipping")
		return
	}

	// Outlive the request but not the process.
	detached := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		sendCtx, cancel := context.WithTimeout(detached, s.sendTimeout)
		defer cancel()
		if err := s.sender.Send(sendCtx, to, subject, body); err != nil {
			s.logg.Error(s.logg.WithField(detached, "subject", subject), "send notification email", err)
		}
	}()
}
