package mailchimp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriberHash(t *testing.T) {
	// Mailchimp documents the member id as md5 of the lowercased address.
	assert.Equal(t, "62eeb292278cc15f5817cb78f7790b08", SubscriberHash("Urist.McVankab@freddiesjokes.com"))
	assert.Equal(t, SubscriberHash("USER@EXAMPLE.COM"), SubscriberHash("user@example.com"))
}

func TestNewService_missingCredentials(t *testing.T) {
	t.Setenv("MAILCHIMP_API_KEY", "")
	t.Setenv("MAILCHIMP_AUDIENCE_ID", "")

	_, err := NewService()
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	t.Setenv("MAILCHIMP_API_KEY", "abc123-us21")

	_, err = NewService()
	assert.ErrorIs(t, err, ErrMissingAudienceID)
}

func TestNewService_datacenterSuffix(t *testing.T) {
	t.Setenv("MAILCHIMP_API_KEY", "abc123-us21")
	t.Setenv("MAILCHIMP_AUDIENCE_ID", "list-1")

	s, err := NewService()
	assert.NoError(t, err)
	assert.Equal(t, "https://us21.api.mailchimp.com/3.0", s.baseURL)

	t.Setenv("MAILCHIMP_API_KEY", "nodatacenter")

	_, err = NewService()
	assert.ErrorIs(t, err, ErrInvalidAPIKey)
}

func TestNewService_requestTimeout(t *testing.T) {
	t.Setenv("MAILCHIMP_API_KEY", "abc123-us21")
	t.Setenv("MAILCHIMP_AUDIENCE_ID", "list-1")

	s, err := NewService()
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, s.client.Timeout)

	t.Setenv("MAILCHIMP_TIMEOUT", "5s")

	s, err = NewService()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.client.Timeout)
}
