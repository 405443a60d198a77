package iface

import (
	"context"

	"github.com/adalertio/accounts-api/stripe/domain"
)

//go:generate mockery --output=./mocks --all
type BillingService interface {
	FindOrCreateLiveCustomer(ctx context.Context, userIDOrEmail string, dryRun, createSubscription bool) (*domain.CustomerResult, error)
	MigrationReadiness(ctx context.Context, userIDOrEmail string) (*domain.ReadinessReport, error)
	MigrateStripeIDs(ctx context.Context, userIDOrEmail string, dryRun bool) (*domain.MigrationResult, error)
	ExpireTrials(ctx context.Context) (*domain.TrialSweepResult, error)
}

type WebhookService interface {
	HandleEvent(ctx context.Context, body []byte, signature string) error
}
