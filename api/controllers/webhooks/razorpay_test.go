package webhooks

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	paymentsvc "github.com/rentkart/rentkart-backend/internal/payments"
	"github.com/rentkart/rentkart-backend/pkg/db/models"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

type stubPaymentsService struct {
	webhookErr error
}

func (s *stubPaymentsService) CreateIntent(ctx context.Context, input paymentsvc.CreateIntentInput) (*paymentsvc.CreateIntentResult, error) {
	return &paymentsvc.CreateIntentResult{}, nil
}

func (s *stubPaymentsService) Verify(ctx context.Context, input paymentsvc.VerifyInput) (*paymentsvc.VerifyResult, error) {
	return &paymentsvc.VerifyResult{}, nil
}

func (s *stubPaymentsService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	return s.webhookErr
}

func (s *stubPaymentsService) Process(ctx context.Context, input paymentsvc.ProcessInput) (*paymentsvc.VerifyResult, error) {
	return &paymentsvc.VerifyResult{}, nil
}

func (s *stubPaymentsService) ListByOrder(ctx context.Context, orderIdentifier string, userID uuid.UUID, isAdmin bool) ([]models.Payment, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func postWebhook(t *testing.T, svc paymentsvc.Service) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/razorpay", strings.NewReader(`{"event":"payment.captured"}`))
	req.Header.Set("X-Razorpay-Signature", "sig")
	rec := httptest.NewRecorder()
	Razorpay(svc, testLogger())(rec, req)
	return rec
}

func TestRazorpayWebhookRejectsBadSignature(t *testing.T) {
	svc := &stubPaymentsService{
		webhookErr: pkgerrors.New(pkgerrors.CodeSigMismatch, "webhook signature verification failed"),
	}

	rec := postWebhook(t, svc)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRazorpayWebhookAcksAfterSignaturePasses(t *testing.T) {
	cases := map[string]error{
		"clean":            nil,
		"downstream error": pkgerrors.New(pkgerrors.CodeInternal, "load payment"),
		"malformed body":   pkgerrors.New(pkgerrors.CodeValidation, "malformed webhook payload"),
	}
	for name, webhookErr := range cases {
		rec := postWebhook(t, &stubPaymentsService{webhookErr: webhookErr})
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", name, rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), `"success":true`) {
			t.Errorf("%s: body = %s, want success envelope", name, rec.Body.String())
		}
	}
}
