package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/stripe/domain"
)

type BillingService struct {
	mock.Mock
}

type mockConstructorTestingTNewBillingService interface {
	mock.TestingT
	Cleanup(func())
}

// NewBillingService creates a new instance of BillingService. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewBillingService(t mockConstructorTestingTNewBillingService) *BillingService {
	m := &BillingService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *BillingService) FindOrCreateLiveCustomer(ctx context.Context, userIDOrEmail string, dryRun, createSubscription bool) (*domain.CustomerResult, error) {
	args := m.Called(ctx, userIDOrEmail, dryRun, createSubscription)

	var res *domain.CustomerResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.CustomerResult)
	}

	return res, args.Error(1)
}

func (m *BillingService) MigrationReadiness(ctx context.Context, userIDOrEmail string) (*domain.ReadinessReport, error) {
	args := m.Called(ctx, userIDOrEmail)

	var res *domain.ReadinessReport
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.ReadinessReport)
	}

	return res, args.Error(1)
}

func (m *BillingService) MigrateStripeIDs(ctx context.Context, userIDOrEmail string, dryRun bool) (*domain.MigrationResult, error) {
	args := m.Called(ctx, userIDOrEmail, dryRun)

	var res *domain.MigrationResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.MigrationResult)
	}

	return res, args.Error(1)
}

func (m *BillingService) ExpireTrials(ctx context.Context) (*domain.TrialSweepResult, error) {
	args := m.Called(ctx)

	var res *domain.TrialSweepResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.TrialSweepResult)
	}

	return res, args.Error(1)
}
