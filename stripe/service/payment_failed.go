package service

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"

	"github.com/adalertio/accounts-api/mailer"
	"github.com/adalertio/accounts-api/stripe/domain"
)

// sendPaymentFailedNotification emails the owning user about a failed
// payment. Failures here are logged and swallowed: the state transition has
// already been recorded and the webhook must still be acknowledged.
func (s *StripeWebhookService) sendPaymentFailedNotification(ctx context.Context, subscription *domain.Subscription, invoice *stripe.Invoice) {
	l := s.loggerProvider(ctx)

	if subscription.User == nil {
		l.Warningf("subscription %s has no user reference, skipping payment-failed email", subscription.ID)
		return
	}

	user, err := s.usersDAL.GetUser(ctx, subscription.User.ID)
	if err != nil {
		l.Errorf("failed to load user %s for payment-failed email: %s", subscription.User.ID, err)
		return
	}

	email := user.PrimaryEmail()
	if email == "" {
		l.Warningf("user %s has no email, skipping payment-failed email", user.ID)
		return
	}

	body := "Your most recent subscription payment failed. Please update your payment details to keep your account active."

	if invoice != nil && invoice.AmountDue > 0 {
		body = fmt.Sprintf(
			"Your subscription payment of %s (invoice %s) failed. Please update your payment details to keep your account active.",
			mailer.FormatAmount(invoice.AmountDue, string(invoice.Currency)),
			invoice.Number,
		)
	}

	mailConfig, err := s.newMailer()
	if err != nil {
		l.Errorf("payment-failed email not sent: %s", err)
		return
	}

	notification := &mailer.SimpleNotification{
		Subject:   "Your adAlert.io payment failed",
		Preheader: "Action required: update your payment details",
		Body:      body,
	}

	if err := mailConfig.SendSimpleNotification(notification, email); err != nil {
		l.Errorf("failed to send payment-failed email to %s: %s", email, err)
	}
}
