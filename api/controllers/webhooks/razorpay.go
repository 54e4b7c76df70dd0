package webhooks

import (
	"io"
	"net/http"

	"github.com/rentkart/rentkart-backend/api/responses"
	paymentsvc "github.com/rentkart/rentkart-backend/internal/payments"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
	"github.com/rentkart/rentkart-backend/pkg/logger"
)

const razorpaySignatureHeader = "X-Razorpay-Signature"

// Razorpay ingests gateway webhook events. The raw body is verified against
// the webhook secret before any state changes; replays return 200 without
// re-applying.
func Razorpay(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read webhook body"))
			return
		}

		if err := svc.HandleWebhook(ctx, body, r.Header.Get(razorpaySignatureHeader)); err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeSigMismatch {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			// Once the signature passed, acknowledge so the gateway stops
			// retrying; the failure is recoverable from logs.
			logg.Error(ctx, "webhook processing failed after signature verification", err)
		}

		responses.WriteSuccess(w, "webhook processed", nil)
	}
}
