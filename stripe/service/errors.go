package service

import "errors"

var (
	ErrMissingAPIKey        = errors.New("stripe: STRIPE_SECRET_KEY is not set")
	ErrMissingSigningSecret = errors.New("stripe: STRIPE_WEBHOOK_SIGNING_SECRET is not set")
	ErrInvalidSignature     = errors.New("stripe: invalid webhook signature")
	ErrUserNotFound         = errors.New("stripe: user not found")
)
