package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v74"

	"github.com/adalertio/accounts-api/stripe/dal"
	"github.com/adalertio/accounts-api/stripe/domain"
)

// HandleEvent verifies the webhook signature and applies the corresponding
// subscription state transition. Exactly one handler runs per event type;
// unknown types are logged and ignored.
func (s *StripeWebhookService) HandleEvent(ctx context.Context, body []byte, signature string) error {
	l := s.loggerProvider(ctx)

	event, err := s.stripeClient.ConstructEvent(body, signature)
	if err != nil {
		return err
	}

	l.SetLabels(map[string]string{
		"eventType": event.Type,
		"eventID":   event.ID,
	})

	l.Infof("stripe webhook event: %s", event.Type)

	switch event.Type {
	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return err
		}

		return s.handleInvoicePaymentFailed(ctx, &invoice)
	case "customer.subscription.updated":
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			return err
		}

		return s.handleSubscriptionUpdated(ctx, &subscription)
	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return err
		}

		return s.handleInvoicePaymentSucceeded(ctx, &invoice)
	case "customer.subscription.deleted":
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			return err
		}

		return s.handleSubscriptionDeleted(ctx, &subscription)
	default:
		l.Warningf("unhandled stripe webhook event type: %s", event.Type)
		return nil
	}
}

// lookupSubscription resolves the owning subscription doc through the stored
// stripe subscription id. A missing doc is not an error: webhooks never
// create documents, they only mutate existing ones.
func (s *StripeWebhookService) lookupSubscription(ctx context.Context, stripeSubscriptionID string) (*domain.Subscription, error) {
	if stripeSubscriptionID == "" {
		return nil, nil
	}

	subscription, err := s.billingDAL.GetSubscriptionByStripeID(ctx, stripeSubscriptionID)
	if err != nil {
		if errors.Is(err, dal.ErrSubscriptionNotFound) {
			s.loggerProvider(ctx).Warningf("no subscription document for stripe subscription %s, skipping", stripeSubscriptionID)
			return nil, nil
		}

		return nil, err
	}

	return subscription, nil
}

func invoiceSubscriptionID(invoice *stripe.Invoice) string {
	if invoice.Subscription == nil {
		return ""
	}

	return invoice.Subscription.ID
}

func (s *StripeWebhookService) handleInvoicePaymentFailed(ctx context.Context, invoice *stripe.Invoice) error {
	subscription, err := s.lookupSubscription(ctx, invoiceSubscriptionID(invoice))
	if err != nil || subscription == nil {
		return err
	}

	if err := s.billingDAL.MarkSubscriptionPaymentFailed(ctx, subscription.ID, time.Now().UTC(), false); err != nil {
		return err
	}

	s.sendPaymentFailedNotification(ctx, subscription, invoice)

	return nil
}

func (s *StripeWebhookService) handleSubscriptionUpdated(ctx context.Context, stripeSub *stripe.Subscription) error {
	l := s.loggerProvider(ctx)

	switch stripeSub.Status {
	case stripe.SubscriptionStatusPastDue:
		subscription, err := s.lookupSubscription(ctx, stripeSub.ID)
		if err != nil || subscription == nil {
			return err
		}

		if err := s.billingDAL.MarkSubscriptionPaymentFailed(ctx, subscription.ID, time.Now().UTC(), true); err != nil {
			return err
		}

		s.sendPaymentFailedNotification(ctx, subscription, nil)

		return nil
	case stripe.SubscriptionStatusActive:
		subscription, err := s.lookupSubscription(ctx, stripeSub.ID)
		if err != nil || subscription == nil {
			return err
		}

		return s.billingDAL.MarkSubscriptionPaying(ctx, subscription.ID)
	default:
		l.Infof("ignoring subscription update with status %s", stripeSub.Status)
		return nil
	}
}

func (s *StripeWebhookService) handleInvoicePaymentSucceeded(ctx context.Context, invoice *stripe.Invoice) error {
	subscription, err := s.lookupSubscription(ctx, invoiceSubscriptionID(invoice))
	if err != nil || subscription == nil {
		return err
	}

	return s.billingDAL.MarkSubscriptionPaying(ctx, subscription.ID)
}

func (s *StripeWebhookService) handleSubscriptionDeleted(ctx context.Context, stripeSub *stripe.Subscription) error {
	subscription, err := s.lookupSubscription(ctx, stripeSub.ID)
	if err != nil || subscription == nil {
		return err
	}

	return s.billingDAL.SetSubscriptionStatus(ctx, subscription.ID, domain.StatusCanceled)
}
