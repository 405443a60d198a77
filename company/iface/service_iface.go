package iface

import (
	"context"

	"github.com/adalertio/accounts-api/company/domain"
)

//go:generate mockery --output=../mocks --all
type CompanyService interface {
	DeleteCompany(ctx context.Context, companyID string) (*domain.CascadeResult, error)
}
