package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v74"

	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/mailer"
	"github.com/adalertio/accounts-api/stripe/dal"
	dalMocks "github.com/adalertio/accounts-api/stripe/dal/mocks"
	"github.com/adalertio/accounts-api/stripe/domain"
	userDALMocks "github.com/adalertio/accounts-api/user/dal/mocks"
)

type fakeStripeAPI struct {
	customer        *stripe.Customer
	activeSub       *stripe.Subscription
	defaultPM       *stripe.PaymentMethod
	event           *stripe.Event
	eventErr        error
	customerCreates int
	subCreates      int
}

func (f *fakeStripeAPI) FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error) {
	return f.customer, nil
}

func (f *fakeStripeAPI) CreateCustomer(ctx context.Context, email, name, idempotencyKey string, metadata map[string]string) (*stripe.Customer, error) {
	f.customerCreates++
	return &stripe.Customer{ID: "cus_new", Email: email}, nil
}

func (f *fakeStripeAPI) FindActiveSubscription(ctx context.Context, customerID string) (*stripe.Subscription, error) {
	return f.activeSub, nil
}

func (f *fakeStripeAPI) FindDefaultPaymentMethod(ctx context.Context, customer *stripe.Customer) (*stripe.PaymentMethod, error) {
	return f.defaultPM, nil
}

func (f *fakeStripeAPI) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*stripe.Subscription, error) {
	f.subCreates++
	return &stripe.Subscription{ID: "sub_new"}, nil
}

func (f *fakeStripeAPI) CancelSubscription(ctx context.Context, subscriptionID string) error {
	return nil
}

func (f *fakeStripeAPI) ConstructEvent(body []byte, signature string) (*stripe.Event, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}

	return f.event, nil
}

func newTestWebhookService(api *fakeStripeAPI, billingDAL *dalMocks.IBillingFirestore, usersDAL *userDALMocks.Users) *StripeWebhookService {
	return &StripeWebhookService{
		loggerProvider: logger.FromContext,
		stripeClient:   api,
		billingDAL:     billingDAL,
		usersDAL:       usersDAL,
		newMailer: func() (*mailer.SendGridConfig, error) {
			return nil, mailer.ErrMissingAPIKey
		},
	}
}

func stripeEvent(t *testing.T, eventType string, payload interface{}) *stripe.Event {
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	return &stripe.Event{
		ID:   "evt_1",
		Type: eventType,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestStripeWebhookService_HandleEvent_invalidSignatureNeverDispatches(t *testing.T) {
	api := &fakeStripeAPI{
		eventErr: fmt.Errorf("%w: bad signature", ErrInvalidSignature),
	}

	// No expectations set: any DAL call fails the test.
	billingDAL := dalMocks.NewIBillingFirestore(t)

	s := newTestWebhookService(api, billingDAL, userDALMocks.NewUsers(t))

	err := s.HandleEvent(context.Background(), []byte(`{}`), "t=1,v1=bad")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	billingDAL.AssertNotCalled(t, "GetSubscriptionByStripeID", mock.Anything, mock.Anything)
	billingDAL.AssertNotCalled(t, "MarkSubscriptionPaymentFailed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStripeWebhookService_HandleEvent_missingDocIsNotAnError(t *testing.T) {
	api := &fakeStripeAPI{
		event: stripeEvent(t, "invoice.payment_succeeded", map[string]interface{}{
			"subscription": map[string]interface{}{"id": "sub_missing"},
		}),
	}

	billingDAL := dalMocks.NewIBillingFirestore(t)
	billingDAL.On("GetSubscriptionByStripeID", mock.Anything, "sub_missing").Return(nil, dal.ErrSubscriptionNotFound)

	s := newTestWebhookService(api, billingDAL, userDALMocks.NewUsers(t))

	err := s.HandleEvent(context.Background(), []byte(`{}`), "sig")

	assert.NoError(t, err)
	billingDAL.AssertNotCalled(t, "MarkSubscriptionPaying", mock.Anything, mock.Anything)
	billingDAL.AssertNotCalled(t, "SetSubscriptionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestStripeWebhookService_HandleEvent_paymentSucceededIsIdempotent(t *testing.T) {
	subscription := &domain.Subscription{
		ID:                   "doc-1",
		StripeSubscriptionID: "sub_1",
		Status:               domain.StatusPaying,
	}

	api := &fakeStripeAPI{
		event: stripeEvent(t, "invoice.payment_succeeded", map[string]interface{}{
			"subscription": map[string]interface{}{"id": "sub_1"},
		}),
	}

	billingDAL := dalMocks.NewIBillingFirestore(t)
	billingDAL.On("GetSubscriptionByStripeID", mock.Anything, "sub_1").Return(subscription, nil)
	// The transition re-applies paying and clears failure timestamps even
	// when the subscription already pays.
	billingDAL.On("MarkSubscriptionPaying", mock.Anything, "doc-1").Return(nil)

	s := newTestWebhookService(api, billingDAL, userDALMocks.NewUsers(t))

	assert.NoError(t, s.HandleEvent(context.Background(), []byte(`{}`), "sig"))
}

func TestStripeWebhookService_HandleEvent_paymentFailed(t *testing.T) {
	subscription := &domain.Subscription{
		ID:                   "doc-1",
		StripeSubscriptionID: "sub_1",
		Status:               domain.StatusPaying,
	}

	api := &fakeStripeAPI{
		event: stripeEvent(t, "invoice.payment_failed", map[string]interface{}{
			"subscription": map[string]interface{}{"id": "sub_1"},
			"amount_due":   4900,
			"currency":     "usd",
		}),
	}

	billingDAL := dalMocks.NewIBillingFirestore(t)
	billingDAL.On("GetSubscriptionByStripeID", mock.Anything, "sub_1").Return(subscription, nil)
	billingDAL.On("MarkSubscriptionPaymentFailed", mock.Anything, "doc-1", mock.Anything, false).Return(nil)

	// Email send fails (no mailer credentials); the event must still
	// succeed.
	s := newTestWebhookService(api, billingDAL, userDALMocks.NewUsers(t))

	assert.NoError(t, s.HandleEvent(context.Background(), []byte(`{}`), "sig"))
}

func TestStripeWebhookService_HandleEvent_subscriptionUpdated(t *testing.T) {
	subscription := &domain.Subscription{
		ID:                   "doc-1",
		StripeSubscriptionID: "sub_1",
		Status:               domain.StatusPaymentFailed,
	}

	tests := []struct {
		name   string
		status string
		on     func(billingDAL *dalMocks.IBillingFirestore)
	}{
		{
			name:   "past_due marks payment failed",
			status: "past_due",
			on: func(billingDAL *dalMocks.IBillingFirestore) {
				billingDAL.On("GetSubscriptionByStripeID", mock.Anything, "sub_1").Return(subscription, nil)
				billingDAL.On("MarkSubscriptionPaymentFailed", mock.Anything, "doc-1", mock.Anything, true).Return(nil)
			},
		},
		{
			name:   "active recovers to paying",
			status: "active",
			on: func(billingDAL *dalMocks.IBillingFirestore) {
				billingDAL.On("GetSubscriptionByStripeID", mock.Anything, "sub_1").Return(subscription, nil)
				billingDAL.On("MarkSubscriptionPaying", mock.Anything, "doc-1").Return(nil)
			},
		},
		{
			name:   "other statuses are ignored",
			status: "incomplete",
			on:     func(billingDAL *dalMocks.IBillingFirestore) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeStripeAPI{
				event: stripeEvent(t, "customer.subscription.updated", map[string]interface{}{
					"id":     "sub_1",
					"status": tt.status,
				}),
			}

			billingDAL := dalMocks.NewIBillingFirestore(t)
			tt.on(billingDAL)

			s := newTestWebhookService(api, billingDAL, userDALMocks.NewUsers(t))

			assert.NoError(t, s.HandleEvent(context.Background(), []byte(`{}`), "sig"))
		})
	}
}

func TestStripeWebhookService_HandleEvent_subscriptionDeleted(t *testing.T) {
	subscription := &domain.Subscription{
		ID:                   "doc-1",
		StripeSubscriptionID: "sub_1",
		Status:               domain.StatusPaying,
	}

	api := &fakeStripeAPI{
		event: stripeEvent(t, "customer.subscription.deleted", map[string]interface{}{
			"id": "sub_1",
		}),
	}

	billingDAL := dalMocks.NewIBillingFirestore(t)
	billingDAL.On("GetSubscriptionByStripeID", mock.Anything, "sub_1").Return(subscription, nil)
	billingDAL.On("SetSubscriptionStatus", mock.Anything, "doc-1", domain.StatusCanceled).Return(nil)

	s := newTestWebhookService(api, billingDAL, userDALMocks.NewUsers(t))

	assert.NoError(t, s.HandleEvent(context.Background(), []byte(`{}`), "sig"))
}

func TestStripeWebhookService_HandleEvent_unknownTypeIsNoop(t *testing.T) {
	api := &fakeStripeAPI{
		event: stripeEvent(t, "charge.refunded", map[string]interface{}{}),
	}

	billingDAL := dalMocks.NewIBillingFirestore(t)

	s := newTestWebhookService(api, billingDAL, userDALMocks.NewUsers(t))

	assert.NoError(t, s.HandleEvent(context.Background(), []byte(`{}`), "sig"))
}

func TestStripeWebhookService_HandleEvent_dalFailurePropagates(t *testing.T) {
	api := &fakeStripeAPI{
		event: stripeEvent(t, "invoice.payment_succeeded", map[string]interface{}{
			"subscription": map[string]interface{}{"id": "sub_1"},
		}),
	}

	billingDAL := dalMocks.NewIBillingFirestore(t)
	billingDAL.On("GetSubscriptionByStripeID", mock.Anything, "sub_1").Return(nil, errors.New("firestore down"))

	s := newTestWebhookService(api, billingDAL, userDALMocks.NewUsers(t))

	assert.Error(t, s.HandleEvent(context.Background(), []byte(`{}`), "sig"))
}
