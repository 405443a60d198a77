package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/user/domain"
)

type UserService struct {
	mock.Mock
}

type mockConstructorTestingTNewUserService interface {
	mock.TestingT
	Cleanup(func())
}

// NewUserService creates a new instance of UserService. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewUserService(t mockConstructorTestingTNewUserService) *UserService {
	m := &UserService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *UserService) ListAllUsers(ctx context.Context) (*domain.UserListing, error) {
	args := m.Called(ctx)

	var listing *domain.UserListing
	if args.Get(0) != nil {
		listing = args.Get(0).(*domain.UserListing)
	}

	return listing, args.Error(1)
}
