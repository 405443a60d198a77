package service

import (
	"context"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"

	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/user/dal"
	"github.com/adalertio/accounts-api/user/domain"
)

type UserService struct {
	loggerProvider logger.Provider
	conn           *connection.Connection
	usersDAL       dal.Users
}

func NewUserService(loggerProvider logger.Provider, conn *connection.Connection) *UserService {
	return &UserService{
		loggerProvider,
		conn,
		dal.NewUsersFirestoreWithClient(conn.Firestore),
	}
}

// ListAllUsers merges the Firebase Auth user base with the Firestore users
// collection. The two diverge when signup or deletion only half-completed;
// the admin tooling uses the combined listing to spot the drift.
func (s *UserService) ListAllUsers(ctx context.Context) (*domain.UserListing, error) {
	log := s.loggerProvider(ctx)

	authUsers, err := s.listAuthUsers(ctx)
	if err != nil {
		return nil, err
	}

	fsUsers, err := s.usersDAL.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	log.Infof("list-users: %d auth records, %d firestore docs", len(authUsers), len(fsUsers))

	return &domain.UserListing{
		AuthUsers:      authUsers,
		FirestoreUsers: fsUsers,
		Total:          countDistinctUsers(authUsers, fsUsers),
	}, nil
}

func (s *UserService) listAuthUsers(ctx context.Context) ([]domain.AuthUser, error) {
	authUsers := make([]domain.AuthUser, 0)

	iter := s.conn.Auth(ctx).Users(ctx, "")

	for {
		record, err := iter.Next()
		if err == iterator.Done {
			break
		}

		if err != nil {
			return nil, err
		}

		authUsers = append(authUsers, toAuthUser(record))
	}

	return authUsers, nil
}

func toAuthUser(record *auth.ExportedUserRecord) domain.AuthUser {
	authUser := domain.AuthUser{
		UID:      record.UID,
		Email:    record.Email,
		Name:     record.DisplayName,
		Disabled: record.Disabled,
	}

	if record.UserMetadata != nil {
		if record.UserMetadata.CreationTimestamp > 0 {
			authUser.Created = time.UnixMilli(record.UserMetadata.CreationTimestamp).UTC()
		}

		if record.UserMetadata.LastLogInTimestamp > 0 {
			authUser.LastSignIn = time.UnixMilli(record.UserMetadata.LastLogInTimestamp).UTC()
		}
	}

	return authUser
}

// countDistinctUsers unions the two sources on lowercased email. Records
// without an email are counted individually.
func countDistinctUsers(authUsers []domain.AuthUser, fsUsers []*domain.User) int {
	emails := make(map[string]struct{})

	total := 0

	for _, u := range authUsers {
		email := strings.ToLower(u.Email)
		if email == "" {
			total++
			continue
		}

		emails[email] = struct{}{}
	}

	for _, u := range fsUsers {
		email := strings.ToLower(u.PrimaryEmail())
		if email == "" {
			total++
			continue
		}

		emails[email] = struct{}{}
	}

	return total + len(emails)
}
