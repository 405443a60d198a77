package iface

import (
	"context"

	"github.com/adalertio/accounts-api/contact/domain"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

//go:generate mockery --output=../mocks --all
type ContactSync interface {
	CreateContacts(ctx context.Context, userID, email, name string) (*domain.SyncResult, error)
	RemoveContacts(ctx context.Context, ids userDomain.ContactIDs) (*domain.RemovalResult, error)
}
