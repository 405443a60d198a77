package service

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/adalertio/accounts-api/common"
)

// API is the slice of the Stripe surface the billing services depend on.
type API interface {
	FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error)
	CreateCustomer(ctx context.Context, email, name, idempotencyKey string, metadata map[string]string) (*stripe.Customer, error)
	FindActiveSubscription(ctx context.Context, customerID string) (*stripe.Subscription, error)
	FindDefaultPaymentMethod(ctx context.Context, customer *stripe.Customer) (*stripe.PaymentMethod, error)
	CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*stripe.Subscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
	ConstructEvent(body []byte, signature string) (*stripe.Event, error)
}

type Client struct {
	*client.API
	webhookSignKey string
}

// NewStripeClient initializes a Stripe client from the environment.
func NewStripeClient() (*Client, error) {
	apiKey := common.GetEnv("STRIPE_SECRET_KEY", "")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	var stripeClient client.API

	stripeClient.Init(apiKey, nil)

	return &Client{
		&stripeClient,
		common.GetEnv("STRIPE_WEBHOOK_SIGNING_SECRET", ""),
	}, nil
}

// FindCustomerByEmail returns the first customer with the given email, or
// nil when none exists.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*stripe.Customer, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Filters.AddFilter("limit", "", "1")

	iter := c.Customers.List(params)
	for iter.Next() {
		return iter.Customer(), nil
	}

	return nil, iter.Err()
}

func (c *Client) CreateCustomer(ctx context.Context, email, name, idempotencyKey string, metadata map[string]string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx

	if name != "" {
		params.Name = stripe.String(name)
	}

	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}

	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	return c.Customers.New(params)
}

// FindActiveSubscription returns the customer's active subscription, or nil
// when there is none.
func (c *Client) FindActiveSubscription(ctx context.Context, customerID string) (*stripe.Subscription, error) {
	params := activeSubscriptionParams(ctx, customerID)

	iter := c.Subscriptions.List(params)
	for iter.Next() {
		return iter.Subscription(), nil
	}

	return nil, iter.Err()
}

func activeSubscriptionParams(ctx context.Context, customerID string) *stripe.SubscriptionListParams {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Context = ctx
	params.Filters.AddFilter("limit", "", "1")

	return params
}

// FindDefaultPaymentMethod prefers the customer's invoice-settings default
// and falls back to the first attached card.
func (c *Client) FindDefaultPaymentMethod(ctx context.Context, customer *stripe.Customer) (*stripe.PaymentMethod, error) {
	if customer.InvoiceSettings != nil && customer.InvoiceSettings.DefaultPaymentMethod != nil {
		return customer.InvoiceSettings.DefaultPaymentMethod, nil
	}

	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customer.ID),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}
	params.Context = ctx
	params.Filters.AddFilter("limit", "", "1")

	iter := c.PaymentMethods.List(params)
	for iter.Next() {
		return iter.PaymentMethod(), nil
	}

	return nil, iter.Err()
}

func (c *Client) CreateSubscription(ctx context.Context, customerID, priceID, paymentMethodID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}
	params.Context = ctx

	if paymentMethodID != "" {
		params.DefaultPaymentMethod = stripe.String(paymentMethodID)
	}

	return c.Subscriptions.New(params)
}

func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx

	_, err := c.Subscriptions.Cancel(subscriptionID, params)

	return err
}

// ConstructEvent verifies the webhook signature and decodes the event.
func (c *Client) ConstructEvent(body []byte, signature string) (*stripe.Event, error) {
	if c.webhookSignKey == "" {
		return nil, ErrMissingSigningSecret
	}

	event, err := webhook.ConstructEventWithOptions(body, signature, c.webhookSignKey, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	return &event, nil
}
