package dal

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/adalertio/accounts-api/stripe/domain"
)

// CustomerLink is the mapping recorded after a live customer is found or
// created. Doc ids left empty mean the corresponding document does not
// exist; a missing subscription doc is created inside the same batch.
type CustomerLink struct {
	UserRef              *firestore.DocumentRef
	SubscriptionDocID    string
	PaymentMethodDocID   string
	CompanyDocID         string
	StripeCustomerID     string
	StripeSubscriptionID string
}

// MigrationWrite is the atomic overwrite applied by the id migration.
// StripeSubscriptionID and the payment method pair are optional; empty
// values leave the stored fields untouched.
type MigrationWrite struct {
	SubscriptionDocID     string
	StripeCustomerID      string
	StripeSubscriptionID  string
	PaymentMethodDocID    string
	StripePaymentMethodID string
}

//go:generate mockery --output=./mocks --all
type IBillingFirestore interface {
	GetSubscriptionRef(ctx context.Context, docID string) *firestore.DocumentRef
	GetSubscriptionForUser(ctx context.Context, userRef *firestore.DocumentRef) (*domain.Subscription, error)
	GetSubscriptionByStripeID(ctx context.Context, stripeSubscriptionID string) (*domain.Subscription, error)
	ListExpiredTrials(ctx context.Context, now time.Time) ([]*domain.Subscription, error)
	SetSubscriptionStatus(ctx context.Context, docID string, status domain.SubscriptionStatus) error
	MarkSubscriptionPaymentFailed(ctx context.Context, docID string, at time.Time, pastDue bool) error
	MarkSubscriptionPaying(ctx context.Context, docID string) error
	GetDefaultPaymentMethodForUser(ctx context.Context, userRef *firestore.DocumentRef) (*domain.PaymentMethod, error)
	GetCompanyForAdmin(ctx context.Context, adminRef *firestore.DocumentRef) (*domain.Company, error)
	CommitCustomerLink(ctx context.Context, link CustomerLink) error
	CommitMigration(ctx context.Context, write MigrationWrite) error
}
