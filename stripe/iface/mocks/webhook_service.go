package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type WebhookService struct {
	mock.Mock
}

type mockConstructorTestingTNewWebhookService interface {
	mock.TestingT
	Cleanup(func())
}

// NewWebhookService creates a new instance of WebhookService. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewWebhookService(t mockConstructorTestingTNewWebhookService) *WebhookService {
	m := &WebhookService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *WebhookService) HandleEvent(ctx context.Context, body []byte, signature string) error {
	args := m.Called(ctx, body, signature)
	return args.Error(0)
}
