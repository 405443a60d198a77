package dal

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/adalertio/accounts-api/user/domain"
)

//go:generate mockery --output=./mocks --all
type Users interface {
	GetRef(ctx context.Context, userID string) *firestore.DocumentRef
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetManagedUsers(ctx context.Context, adminRef *firestore.DocumentRef) ([]*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateContactIDs(ctx context.Context, userID string, ids domain.ContactIDs) error
}
