package dal

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/adalertio/accounts-api/company/domain"
)

//go:generate mockery --output=./mocks --all
type Companies interface {
	GetRef(ctx context.Context, companyID string) *firestore.DocumentRef
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	ListUserOwnedRefs(ctx context.Context, userRef *firestore.DocumentRef) ([]*firestore.DocumentRef, error)
	DeleteRefs(ctx context.Context, refs []*firestore.DocumentRef) error
}
