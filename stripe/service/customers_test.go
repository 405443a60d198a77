package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v74"

	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/stripe/dal"
	dalMocks "github.com/adalertio/accounts-api/stripe/dal/mocks"
	"github.com/adalertio/accounts-api/stripe/domain"
	userDAL "github.com/adalertio/accounts-api/user/dal"
	userDALMocks "github.com/adalertio/accounts-api/user/dal/mocks"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

func newTestBillingService(api *fakeStripeAPI, billingDAL *dalMocks.IBillingFirestore, usersDAL *userDALMocks.Users) *BillingService {
	return &BillingService{
		loggerProvider: logger.FromContext,
		stripeClient:   api,
		billingDAL:     billingDAL,
		usersDAL:       usersDAL,
	}
}

func TestBillingService_FindOrCreateLiveCustomer_dryRunNeverCreatesNorWrites(t *testing.T) {
	user := &userDomain.User{ID: "user-1", Email: "a@b.com"}

	tests := []struct {
		name     string
		customer *stripe.Customer
	}{
		{name: "live customer exists", customer: &stripe.Customer{ID: "cus_live1"}},
		{name: "no live customer", customer: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeStripeAPI{customer: tt.customer}

			billingDAL := dalMocks.NewIBillingFirestore(t)

			usersDAL := userDALMocks.NewUsers(t)
			usersDAL.On("GetUserByEmail", mock.Anything, "a@b.com").Return(user, nil)

			s := newTestBillingService(api, billingDAL, usersDAL)

			res, err := s.FindOrCreateLiveCustomer(context.Background(), "a@b.com", true, false)

			assert.NoError(t, err)
			assert.True(t, res.Success)
			assert.False(t, res.Created)
			assert.Zero(t, api.customerCreates)
			billingDAL.AssertNotCalled(t, "CommitCustomerLink", mock.Anything, mock.Anything)
		})
	}
}

func TestBillingService_FindOrCreateLiveCustomer_refusesDuplicate(t *testing.T) {
	user := &userDomain.User{ID: "user-1", Email: "a@b.com"}

	api := &fakeStripeAPI{customer: &stripe.Customer{ID: "cus_live1"}}

	billingDAL := dalMocks.NewIBillingFirestore(t)

	usersDAL := userDALMocks.NewUsers(t)
	usersDAL.On("GetUserByEmail", mock.Anything, "a@b.com").Return(user, nil)

	s := newTestBillingService(api, billingDAL, usersDAL)

	res, err := s.FindOrCreateLiveCustomer(context.Background(), "a@b.com", false, false)

	assert.NoError(t, err)
	assert.Equal(t, "cus_live1", res.CustomerID)
	assert.False(t, res.Created)
	assert.Zero(t, api.customerCreates)
}

func TestBillingService_FindOrCreateLiveCustomer_createsAndLinks(t *testing.T) {
	user := &userDomain.User{ID: "user-1", Email: "a@b.com", Name: "Ada"}
	subscription := &domain.Subscription{ID: "doc-1", StripeCustomerID: "cus_test1"}

	api := &fakeStripeAPI{}

	billingDAL := dalMocks.NewIBillingFirestore(t)
	billingDAL.On("GetSubscriptionForUser", mock.Anything, mock.Anything).Return(subscription, nil)
	billingDAL.On("GetDefaultPaymentMethodForUser", mock.Anything, mock.Anything).Return(nil, dal.ErrPaymentMethodNotFound)
	billingDAL.On("GetCompanyForAdmin", mock.Anything, mock.Anything).Return(nil, dal.ErrCompanyNotFound)
	billingDAL.On("CommitCustomerLink", mock.Anything, mock.MatchedBy(func(link dal.CustomerLink) bool {
		return link.SubscriptionDocID == "doc-1" && link.StripeCustomerID == "cus_new" && link.StripeSubscriptionID == ""
	})).Return(nil)

	usersDAL := userDALMocks.NewUsers(t)
	usersDAL.On("GetUser", mock.Anything, "user-1").Return(user, nil)
	usersDAL.On("GetRef", mock.Anything, "user-1").Return(nil)

	s := newTestBillingService(api, billingDAL, usersDAL)

	res, err := s.FindOrCreateLiveCustomer(context.Background(), "user-1", false, false)

	assert.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "cus_new", res.CustomerID)
	assert.Equal(t, 1, api.customerCreates)
	assert.Zero(t, api.subCreates)
}

func TestBillingService_MigrationReadiness(t *testing.T) {
	user := &userDomain.User{ID: "user-1", Email: "a@b.com"}
	subscription := &domain.Subscription{ID: "doc-1", StripeCustomerID: "cus_test1"}

	api := &fakeStripeAPI{
		customer:  &stripe.Customer{ID: "cus_live1"},
		activeSub: &stripe.Subscription{ID: "sub_live1"},
	}

	billingDAL := dalMocks.NewIBillingFirestore(t)
	billingDAL.On("GetSubscriptionForUser", mock.Anything, mock.Anything).Return(subscription, nil)
	billingDAL.On("GetDefaultPaymentMethodForUser", mock.Anything, mock.Anything).Return(&domain.PaymentMethod{ID: "pm-doc-1"}, nil)

	usersDAL := userDALMocks.NewUsers(t)
	usersDAL.On("GetUserByEmail", mock.Anything, "a@b.com").Return(user, nil)
	usersDAL.On("GetRef", mock.Anything, "user-1").Return(nil)

	s := newTestBillingService(api, billingDAL, usersDAL)

	report, err := s.MigrationReadiness(context.Background(), "a@b.com")

	assert.NoError(t, err)
	assert.True(t, report.HasTestCustomerID)
	assert.True(t, report.LiveCustomerExists)
	assert.True(t, report.LiveSubscriptionExists)
	assert.True(t, report.DefaultPaymentMethodExists)
	assert.Equal(t, "cus_live1", report.LiveCustomerID)
}

func TestBillingService_resolveUser_unknown(t *testing.T) {
	usersDAL := userDALMocks.NewUsers(t)
	usersDAL.On("GetUserByEmail", mock.Anything, "ghost@b.com").Return(nil, userDAL.ErrUserNotFound)

	s := newTestBillingService(&fakeStripeAPI{}, dalMocks.NewIBillingFirestore(t), usersDAL)

	_, err := s.FindOrCreateLiveCustomer(context.Background(), "ghost@b.com", true, false)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIsTestModeCustomerID(t *testing.T) {
	assert.True(t, isTestModeCustomerID("cus_test1", "cus_live1"))
	assert.False(t, isTestModeCustomerID("cus_live1", "cus_live1"))
	assert.False(t, isTestModeCustomerID("", "cus_live1"))
	assert.False(t, isTestModeCustomerID("not-a-stripe-id", "cus_live1"))
}

func TestCustomerIdempotencyKey_deterministic(t *testing.T) {
	assert.Equal(t, customerIdempotencyKey("user-1"), customerIdempotencyKey("user-1"))
	assert.NotEqual(t, customerIdempotencyKey("user-1"), customerIdempotencyKey("user-2"))
}
