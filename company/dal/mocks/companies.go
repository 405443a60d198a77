package mocks

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/company/domain"
)

type Companies struct {
	mock.Mock
}

type mockConstructorTestingTNewCompanies interface {
	mock.TestingT
	Cleanup(func())
}

// NewCompanies creates a new instance of Companies. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewCompanies(t mockConstructorTestingTNewCompanies) *Companies {
	m := &Companies{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Companies) GetRef(ctx context.Context, companyID string) *firestore.DocumentRef {
	args := m.Called(ctx, companyID)

	var ref *firestore.DocumentRef
	if args.Get(0) != nil {
		ref = args.Get(0).(*firestore.DocumentRef)
	}

	return ref
}

func (m *Companies) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)

	var company *domain.Company
	if args.Get(0) != nil {
		company = args.Get(0).(*domain.Company)
	}

	return company, args.Error(1)
}

func (m *Companies) ListUserOwnedRefs(ctx context.Context, userRef *firestore.DocumentRef) ([]*firestore.DocumentRef, error) {
	args := m.Called(ctx, userRef)

	var refs []*firestore.DocumentRef
	if args.Get(0) != nil {
		refs = args.Get(0).([]*firestore.DocumentRef)
	}

	return refs, args.Error(1)
}

func (m *Companies) DeleteRefs(ctx context.Context, refs []*firestore.DocumentRef) error {
	args := m.Called(ctx, refs)
	return args.Error(0)
}
