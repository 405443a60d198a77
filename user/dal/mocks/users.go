package mocks

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/user/domain"
)

type Users struct {
	mock.Mock
}

type mockConstructorTestingTNewUsers interface {
	mock.TestingT
	Cleanup(func())
}

// NewUsers creates a new instance of Users. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewUsers(t mockConstructorTestingTNewUsers) *Users {
	m := &Users{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Users) GetRef(ctx context.Context, userID string) *firestore.DocumentRef {
	args := m.Called(ctx, userID)

	var ref *firestore.DocumentRef
	if args.Get(0) != nil {
		ref = args.Get(0).(*firestore.DocumentRef)
	}

	return ref
}

func (m *Users) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)

	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}

	return user, args.Error(1)
}

func (m *Users) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)

	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}

	return user, args.Error(1)
}

func (m *Users) GetManagedUsers(ctx context.Context, adminRef *firestore.DocumentRef) ([]*domain.User, error) {
	args := m.Called(ctx, adminRef)

	var users []*domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*domain.User)
	}

	return users, args.Error(1)
}

func (m *Users) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)

	var users []*domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]*domain.User)
	}

	return users, args.Error(1)
}

func (m *Users) UpdateContactIDs(ctx context.Context, userID string, ids domain.ContactIDs) error {
	args := m.Called(ctx, userID, ids)
	return args.Error(0)
}
