package service

import (
	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/mailer"
	"github.com/adalertio/accounts-api/stripe/dal"
	userDAL "github.com/adalertio/accounts-api/user/dal"
)

// mailerProvider defers the SendGrid config read to send time, so a missing
// mail credential degrades to a logged error instead of disabling webhooks.
type mailerProvider func() (*mailer.SendGridConfig, error)

type StripeWebhookService struct {
	loggerProvider logger.Provider
	*connection.Connection
	stripeClient API
	billingDAL   dal.IBillingFirestore
	usersDAL     userDAL.Users
	newMailer    mailerProvider
}

func NewStripeWebhookService(loggerProvider logger.Provider, conn *connection.Connection, stripeClient API) *StripeWebhookService {
	return &StripeWebhookService{
		loggerProvider,
		conn,
		stripeClient,
		dal.NewBillingFirestoreWithClient(conn.Firestore),
		userDAL.NewUsersFirestoreWithClient(conn.Firestore),
		mailer.NewConfig,
	}
}
