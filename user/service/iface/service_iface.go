package iface

import (
	"context"

	"github.com/adalertio/accounts-api/user/domain"
)

//go:generate mockery --output=../mocks --all
type UserService interface {
	ListAllUsers(ctx context.Context) (*domain.UserListing, error)
}
