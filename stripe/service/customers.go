package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/adalertio/accounts-api/common"
	"github.com/adalertio/accounts-api/stripe/dal"
	"github.com/adalertio/accounts-api/stripe/domain"
)

// customerKeyNamespace scopes the deterministic idempotency keys derived
// from user ids, so concurrent create requests for the same user collapse
// into at most one Stripe customer.
var customerKeyNamespace = uuid.MustParse("9f2d3c74-1b36-4c67-a2e1-5b8a67c1d9aa")

func customerIdempotencyKey(userID string) string {
	return uuid.NewSHA1(customerKeyNamespace, []byte("customer:"+userID)).String()
}

// isTestModeCustomerID reports whether a stored customer id looks like a
// sandbox leftover: it has the customer id shape but does not match the
// customer found in live mode.
func isTestModeCustomerID(storedID, liveID string) bool {
	return storedID != "" && strings.HasPrefix(storedID, "cus_") && storedID != liveID
}

// FindOrCreateLiveCustomer resolves the user's live-mode Stripe customer,
// creating one when none exists. A customer found by email is returned as is;
// a duplicate is never created. Dry runs neither call the Stripe create API
// nor write to Firestore.
func (s *BillingService) FindOrCreateLiveCustomer(ctx context.Context, userIDOrEmail string, dryRun, createSubscription bool) (*domain.CustomerResult, error) {
	log := s.loggerProvider(ctx)

	user, err := s.resolveUser(ctx, userIDOrEmail)
	if err != nil {
		return nil, err
	}

	email := user.PrimaryEmail()

	customer, err := s.stripeClient.FindCustomerByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if customer != nil {
		return &domain.CustomerResult{
			Success:    true,
			CustomerID: customer.ID,
			Created:    false,
			Message:    "live customer already exists, refusing to create a duplicate",
		}, nil
	}

	if dryRun {
		return &domain.CustomerResult{
			Success: true,
			Created: false,
			Message: "dry run: no live customer found, would create one",
		}, nil
	}

	userRef := s.usersDAL.GetRef(ctx, user.ID)

	// Prior test-mode ids ride along as metadata for traceability.
	metadata := map[string]string{
		"firestore_user_id": user.ID,
	}

	subscription, err := s.billingDAL.GetSubscriptionForUser(ctx, userRef)
	if err != nil && !errors.Is(err, dal.ErrSubscriptionNotFound) {
		return nil, err
	}

	if subscription != nil && subscription.StripeCustomerID != "" {
		metadata["test_customer_id"] = subscription.StripeCustomerID
	}

	customer, err = s.stripeClient.CreateCustomer(ctx, email, user.Name, customerIdempotencyKey(user.ID), metadata)
	if err != nil {
		return nil, err
	}

	log.Infof("created live stripe customer %s for user %s", customer.ID, user.ID)

	link := dal.CustomerLink{
		UserRef:          userRef,
		StripeCustomerID: customer.ID,
	}

	if subscription != nil {
		link.SubscriptionDocID = subscription.ID
	}

	paymentMethod, err := s.billingDAL.GetDefaultPaymentMethodForUser(ctx, userRef)
	if err != nil && !errors.Is(err, dal.ErrPaymentMethodNotFound) {
		return nil, err
	}

	if paymentMethod != nil {
		link.PaymentMethodDocID = paymentMethod.ID
	}

	if company, err := s.billingDAL.GetCompanyForAdmin(ctx, userRef); err == nil {
		link.CompanyDocID = company.ID
	} else if !errors.Is(err, dal.ErrCompanyNotFound) {
		return nil, err
	}

	if createSubscription {
		priceID := common.GetEnv("STRIPE_PRICE_ID", "")

		switch {
		case priceID == "":
			log.Warningf("createSubscription requested but STRIPE_PRICE_ID is not set")
		case paymentMethod == nil || paymentMethod.StripePaymentMethodID == "":
			log.Warningf("createSubscription requested but user %s has no default payment method", user.ID)
		default:
			stripeSub, err := s.stripeClient.CreateSubscription(ctx, customer.ID, priceID, paymentMethod.StripePaymentMethodID)
			if err != nil {
				return nil, err
			}

			link.StripeSubscriptionID = stripeSub.ID
		}
	}

	if err := s.billingDAL.CommitCustomerLink(ctx, link); err != nil {
		return nil, err
	}

	return &domain.CustomerResult{
		Success:    true,
		CustomerID: customer.ID,
		Created:    true,
		Message:    "created live customer",
	}, nil
}

// MigrationReadiness reports the flags an operator reviews before running
// the id migration. It never mutates Stripe or Firestore.
func (s *BillingService) MigrationReadiness(ctx context.Context, userIDOrEmail string) (*domain.ReadinessReport, error) {
	user, err := s.resolveUser(ctx, userIDOrEmail)
	if err != nil {
		return nil, err
	}

	report := &domain.ReadinessReport{}

	userRef := s.usersDAL.GetRef(ctx, user.ID)

	subscription, err := s.billingDAL.GetSubscriptionForUser(ctx, userRef)
	if err != nil && !errors.Is(err, dal.ErrSubscriptionNotFound) {
		return nil, err
	}

	customer, err := s.stripeClient.FindCustomerByEmail(ctx, user.PrimaryEmail())
	if err != nil {
		return nil, err
	}

	if customer != nil {
		report.LiveCustomerExists = true
		report.LiveCustomerID = customer.ID

		liveSub, err := s.stripeClient.FindActiveSubscription(ctx, customer.ID)
		if err != nil {
			return nil, err
		}

		report.LiveSubscriptionExists = liveSub != nil
	}

	if subscription != nil {
		report.HasTestCustomerID = isTestModeCustomerID(subscription.StripeCustomerID, report.LiveCustomerID)
	}

	if _, err := s.billingDAL.GetDefaultPaymentMethodForUser(ctx, userRef); err == nil {
		report.DefaultPaymentMethodExists = true
	} else if !errors.Is(err, dal.ErrPaymentMethodNotFound) {
		return nil, err
	}

	return report, nil
}
