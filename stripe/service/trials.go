package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/adalertio/accounts-api/stripe/domain"
)

const trialSweepConcurrency = 10

// ExpireTrials moves every trial-new subscription whose trial window has
// elapsed to trial-ended. Per-document failures are collected; a partial
// sweep still reports its counts.
func (s *BillingService) ExpireTrials(ctx context.Context) (*domain.TrialSweepResult, error) {
	log := s.loggerProvider(ctx)

	subscriptions, err := s.billingDAL.ListExpiredTrials(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	result := &domain.TrialSweepResult{
		Scanned: len(subscriptions),
	}

	var (
		mu      sync.Mutex
		merr    *multierror.Error
		expired int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(trialSweepConcurrency)

	for _, subscription := range subscriptions {
		subscription := subscription

		g.Go(func() error {
			if err := s.billingDAL.SetSubscriptionStatus(gctx, subscription.ID, domain.StatusTrialEnded); err != nil {
				mu.Lock()
				merr = multierror.Append(merr, fmt.Errorf("subscription %s: %w", subscription.ID, err))
				mu.Unlock()

				return nil
			}

			mu.Lock()
			expired++
			mu.Unlock()

			return nil
		})
	}

	// Goroutines never return errors; Wait only serves as the barrier.
	_ = g.Wait()

	result.Expired = expired

	if merr != nil {
		for _, e := range merr.Errors {
			result.Errors = append(result.Errors, e.Error())
		}

		log.Errorf("trial sweep finished with %d failures: %s", len(merr.Errors), merr)
	}

	log.Infof("trial sweep: scanned %d, expired %d", result.Scanned, result.Expired)

	return result, nil
}
