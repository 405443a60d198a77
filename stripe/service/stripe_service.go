package service

import (
	"context"
	"errors"
	"strings"

	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/stripe/dal"
	userDAL "github.com/adalertio/accounts-api/user/dal"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

type BillingService struct {
	loggerProvider logger.Provider
	*connection.Connection
	stripeClient API
	billingDAL   dal.IBillingFirestore
	usersDAL     userDAL.Users
}

func NewBillingService(loggerProvider logger.Provider, conn *connection.Connection, stripeClient API) *BillingService {
	return &BillingService{
		loggerProvider,
		conn,
		stripeClient,
		dal.NewBillingFirestoreWithClient(conn.Firestore),
		userDAL.NewUsersFirestoreWithClient(conn.Firestore),
	}
}

// resolveUser accepts either a user document id or an email address. Ids are
// tried first; the email lookup covers both the current and the legacy email
// field.
func (s *BillingService) resolveUser(ctx context.Context, userIDOrEmail string) (*userDomain.User, error) {
	if userIDOrEmail == "" {
		return nil, ErrUserNotFound
	}

	if !strings.Contains(userIDOrEmail, "@") {
		user, err := s.usersDAL.GetUser(ctx, userIDOrEmail)
		if err == nil {
			return user, nil
		}

		if !errors.Is(err, userDAL.ErrUserNotFound) {
			return nil, err
		}
	}

	user, err := s.usersDAL.GetUserByEmail(ctx, userIDOrEmail)
	if err != nil {
		if errors.Is(err, userDAL.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}
