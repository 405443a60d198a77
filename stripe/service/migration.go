package service

import (
	"context"
	"errors"

	"github.com/adalertio/accounts-api/stripe/dal"
	"github.com/adalertio/accounts-api/stripe/domain"
)

// MigrateStripeIDs replaces the test-mode ids stored on the user's
// subscription document with the ids of the corresponding live-mode
// customer. The overwrite spans the subscription and payment-method docs in
// one atomic batch; a dry run computes the same diff without applying it.
func (s *BillingService) MigrateStripeIDs(ctx context.Context, userIDOrEmail string, dryRun bool) (*domain.MigrationResult, error) {
	log := s.loggerProvider(ctx)

	result := &domain.MigrationResult{
		Warnings: make([]string, 0),
		DryRun:   dryRun,
	}

	user, err := s.resolveUser(ctx, userIDOrEmail)
	if err != nil {
		return nil, err
	}

	userRef := s.usersDAL.GetRef(ctx, user.ID)

	subscription, err := s.billingDAL.GetSubscriptionForUser(ctx, userRef)
	if err != nil {
		if errors.Is(err, dal.ErrSubscriptionNotFound) {
			result.Warnings = append(result.Warnings, "user has no subscription document, nothing to migrate")
			return result, nil
		}

		return nil, err
	}

	result.OldCustomerID = subscription.StripeCustomerID
	result.OldSubscriptionID = subscription.StripeSubscriptionID

	customer, err := s.stripeClient.FindCustomerByEmail(ctx, user.PrimaryEmail())
	if err != nil {
		return nil, err
	}

	if customer == nil {
		result.Warnings = append(result.Warnings, "no live customer found for email, run create-live-customer first")
		return result, nil
	}

	result.NewCustomerID = customer.ID

	if !isTestModeCustomerID(subscription.StripeCustomerID, customer.ID) && subscription.StripeCustomerID != "" {
		result.Warnings = append(result.Warnings, "stored customer id already matches live mode")
	}

	liveSub, err := s.stripeClient.FindActiveSubscription(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	if liveSub != nil {
		result.NewSubscriptionID = liveSub.ID
	} else {
		result.Warnings = append(result.Warnings, "live customer has no active subscription, subscription id left untouched")
	}

	write := dal.MigrationWrite{
		SubscriptionDocID:    subscription.ID,
		StripeCustomerID:     customer.ID,
		StripeSubscriptionID: result.NewSubscriptionID,
	}

	livePM, err := s.stripeClient.FindDefaultPaymentMethod(ctx, customer)
	if err != nil {
		return nil, err
	}

	if livePM != nil {
		result.PaymentMethodID = livePM.ID

		paymentMethod, err := s.billingDAL.GetDefaultPaymentMethodForUser(ctx, userRef)
		if err == nil {
			write.PaymentMethodDocID = paymentMethod.ID
			write.StripePaymentMethodID = livePM.ID
		} else if !errors.Is(err, dal.ErrPaymentMethodNotFound) {
			return nil, err
		}
	} else {
		result.Warnings = append(result.Warnings, "live customer has no default payment method")
	}

	if dryRun {
		result.Success = true
		return result, nil
	}

	if err := s.billingDAL.CommitMigration(ctx, write); err != nil {
		return nil, err
	}

	log.Infof("migrated stripe ids for user %s: customer %s -> %s, subscription %s -> %s",
		user.ID, result.OldCustomerID, result.NewCustomerID, result.OldSubscriptionID, result.NewSubscriptionID)

	result.Success = true

	return result, nil
}
