package dal

import "errors"

var (
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrCompanyNotFound       = errors.New("company not found")
	ErrInvalidDocID          = errors.New("invalid document id")
)
