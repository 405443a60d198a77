package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adalertio/accounts-api/company/domain"
)

type CompanyService struct {
	mock.Mock
}

type mockConstructorTestingTNewCompanyService interface {
	mock.TestingT
	Cleanup(func())
}

// NewCompanyService creates a new instance of CompanyService. It also
// registers a testing interface on the mock and a cleanup function to assert
// the mocks expectations.
func NewCompanyService(t mockConstructorTestingTNewCompanyService) *CompanyService {
	m := &CompanyService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *CompanyService) DeleteCompany(ctx context.Context, companyID string) (*domain.CascadeResult, error) {
	args := m.Called(ctx, companyID)

	var result *domain.CascadeResult
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.CascadeResult)
	}

	return result, args.Error(1)
}
