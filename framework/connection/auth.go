package connection

import (
	"context"
	"errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"github.com/adalertio/accounts-api/common"
	"github.com/adalertio/accounts-api/logger"
)

var (
	ErrAuthInitialization = errors.New("firebase auth initialization error")
)

type AuthClient struct {
	authClient *auth.Client
}

func NewAuth(ctx context.Context, log *logger.Logging) (*AuthClient, error) {
	logger := log.Logger(ctx)

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: common.ProjectID})
	if err != nil {
		logger.Errorf("%s: %s", ErrAuthInitialization, err)
		return nil, ErrAuthInitialization
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Errorf("%s: %s", ErrAuthInitialization, err)
		return nil, ErrAuthInitialization
	}

	return &AuthClient{
		authClient,
	}, nil
}
