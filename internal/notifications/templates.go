package notifications

import (
	"fmt"
	"strings"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
)

func orderCreatedEmail(order *models.Order, user *models.User) (string, string) {
	subject := fmt.Sprintf("Order %s received", order.OrderNumber)

	var rows strings.Builder
	for _, item := range order.Items {
		label := item.Name
		if item.Kind == enums.OrderItemKindRental && item.Duration > 0 {
			label = fmt.Sprintf("%s (%d months)", item.Name, item.Duration)
		}
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px;border:1px solid #ddd;">%s</td><td style="padding:8px;border:1px solid #ddd;">%d</td><td style="padding:8px;border:1px solid #ddd;">&#8377;%.2f</td></tr>`,
			label, item.Quantity, item.Price))
	}

	paymentLine := fmt.Sprintf("Amount payable: &#8377;%.2f", order.FinalTotal)
	if order.PaymentOption == enums.PaymentOptionPayAdvance {
		paymentLine = fmt.Sprintf("Advance payable now: &#8377;%.2f (remaining &#8377;%.2f on delivery)",
			order.AdvanceAmount, order.RemainingAmount)
	}

	body := fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;">
<h2>Thanks for your order, %s</h2>
<p>We received order <strong>%s</strong> and will confirm it once payment completes.</p>
<table style="border-collapse:collapse;width:100%%;">
<tr style="background:#f0f0f0;"><th style="padding:8px;border:1px solid #ddd;text-align:left;">Item</th><th style="padding:8px;border:1px solid #ddd;text-align:left;">Qty</th><th style="padding:8px;border:1px solid #ddd;text-align:left;">Price</th></tr>
%s
</table>
<p><strong>%s</strong></p>
<p>The Rentkart team</p>
</body></html>`, user.Name, order.OrderNumber, rows.String(), paymentLine)

	return subject, body
}

func orderCancelledEmail(order *models.Order, user *models.User, reason string) (string, string) {
	subject := fmt.Sprintf("Order %s cancelled", order.OrderNumber)
	body := fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;">
<h2>Order cancelled</h2>
<p>Hi %s, your order <strong>%s</strong> has been cancelled.</p>
<p>Reason: %s</p>
<p>If a payment was captured for this order our team will reach out about the refund.</p>
<p>The Rentkart team</p>
</body></html>`, user.Name, order.OrderNumber, reason)
	return subject, body
}

func paymentReceivedEmail(order *models.Order, user *models.User, payment *models.Payment) (string, string) {
	subject := fmt.Sprintf("Payment received for order %s", order.OrderNumber)
	body := fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;">
<h2>Payment confirmed</h2>
<p>Hi %s, we received &#8377;%.2f against order <strong>%s</strong> (reference %s).</p>
<p>Your order is confirmed and will be processed shortly.</p>
<p>The Rentkart team</p>
</body></html>`, user.Name, payment.Amount, order.OrderNumber, payment.PaymentNumber)
	return subject, body
}

func paymentFailedEmail(order *models.Order, payment *models.Payment, reason string) (string, string) {
	subject := fmt.Sprintf("Payment failed for order %s", order.OrderNumber)
	body := fmt.Sprintf(`<html><body style="font-family:Arial,sans-serif;">
<h2>Payment failure</h2>
<p>Payment %s for order <strong>%s</strong> failed.</p>
<p>Amount: &#8377;%.2f</p>
<p>Reason: %s</p>
</body></html>`, payment.PaymentNumber, order.OrderNumber, payment.Amount, reason)
	return subject, body
}
