package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/contact/domain"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

type ContactSync struct {
	mock.Mock
}

type mockConstructorTestingTNewContactSync interface {
	mock.TestingT
	Cleanup(func())
}

// NewContactSync creates a new instance of ContactSync. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewContactSync(t mockConstructorTestingTNewContactSync) *ContactSync {
	m := &ContactSync{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *ContactSync) CreateContacts(ctx context.Context, userID, email, name string) (*domain.SyncResult, error) {
	args := m.Called(ctx, userID, email, name)

	var res *domain.SyncResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.SyncResult)
	}

	return res, args.Error(1)
}

func (m *ContactSync) RemoveContacts(ctx context.Context, ids userDomain.ContactIDs) (*domain.RemovalResult, error) {
	args := m.Called(ctx, ids)

	var res *domain.RemovalResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.RemovalResult)
	}

	return res, args.Error(1)
}
