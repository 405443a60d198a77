package mocks

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/stripe/dal"
	"github.com/adalertio/accounts-api/stripe/domain"
)

type IBillingFirestore struct {
	mock.Mock
}

type mockConstructorTestingTNewIBillingFirestore interface {
	mock.TestingT
	Cleanup(func())
}

// NewIBillingFirestore creates a new instance of IBillingFirestore. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewIBillingFirestore(t mockConstructorTestingTNewIBillingFirestore) *IBillingFirestore {
	m := &IBillingFirestore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *IBillingFirestore) GetSubscriptionRef(ctx context.Context, docID string) *firestore.DocumentRef {
	args := m.Called(ctx, docID)

	var ref *firestore.DocumentRef
	if args.Get(0) != nil {
		ref = args.Get(0).(*firestore.DocumentRef)
	}

	return ref
}

func (m *IBillingFirestore) GetSubscriptionForUser(ctx context.Context, userRef *firestore.DocumentRef) (*domain.Subscription, error) {
	args := m.Called(ctx, userRef)

	var subscription *domain.Subscription
	if args.Get(0) != nil {
		subscription = args.Get(0).(*domain.Subscription)
	}

	return subscription, args.Error(1)
}

func (m *IBillingFirestore) GetSubscriptionByStripeID(ctx context.Context, stripeSubscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, stripeSubscriptionID)

	var subscription *domain.Subscription
	if args.Get(0) != nil {
		subscription = args.Get(0).(*domain.Subscription)
	}

	return subscription, args.Error(1)
}

func (m *IBillingFirestore) ListExpiredTrials(ctx context.Context, now time.Time) ([]*domain.Subscription, error) {
	args := m.Called(ctx, now)

	var subscriptions []*domain.Subscription
	if args.Get(0) != nil {
		subscriptions = args.Get(0).([]*domain.Subscription)
	}

	return subscriptions, args.Error(1)
}

func (m *IBillingFirestore) SetSubscriptionStatus(ctx context.Context, docID string, status domain.SubscriptionStatus) error {
	args := m.Called(ctx, docID, status)
	return args.Error(0)
}

func (m *IBillingFirestore) MarkSubscriptionPaymentFailed(ctx context.Context, docID string, at time.Time, pastDue bool) error {
	args := m.Called(ctx, docID, at, pastDue)
	return args.Error(0)
}

func (m *IBillingFirestore) MarkSubscriptionPaying(ctx context.Context, docID string) error {
	args := m.Called(ctx, docID)
	return args.Error(0)
}

func (m *IBillingFirestore) GetDefaultPaymentMethodForUser(ctx context.Context, userRef *firestore.DocumentRef) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, userRef)

	var paymentMethod *domain.PaymentMethod
	if args.Get(0) != nil {
		paymentMethod = args.Get(0).(*domain.PaymentMethod)
	}

	return paymentMethod, args.Error(1)
}

func (m *IBillingFirestore) GetCompanyForAdmin(ctx context.Context, adminRef *firestore.DocumentRef) (*domain.Company, error) {
	args := m.Called(ctx, adminRef)

	var company *domain.Company
	if args.Get(0) != nil {
		company = args.Get(0).(*domain.Company)
	}

	return company, args.Error(1)
}

func (m *IBillingFirestore) CommitCustomerLink(ctx context.Context, link dal.CustomerLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *IBillingFirestore) CommitMigration(ctx context.Context, write dal.MigrationWrite) error {
	args := m.Called(ctx, write)
	return args.Error(0)
}
