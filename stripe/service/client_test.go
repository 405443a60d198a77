package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveSubscriptionParams(t *testing.T) {
	params := activeSubscriptionParams(context.Background(), "cus_live1")

	require.NotNil(t, params.Customer)
	assert.Equal(t, "cus_live1", *params.Customer)
	require.NotNil(t, params.Status)
	assert.Equal(t, "active", *params.Status)
}

func TestClient_ConstructEvent_missingSigningSecret(t *testing.T) {
	c := &Client{webhookSignKey: ""}

	_, err := c.ConstructEvent([]byte(`{}`), "t=1,v1=abc")

	assert.ErrorIs(t, err, ErrMissingSigningSecret)
}

func TestNewStripeClient_missingAPIKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")

	_, err := NewStripeClient()

	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
