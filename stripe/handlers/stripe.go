package handlers

import (
	"net/http"

	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/framework/web"
	"github.com/adalertio/accounts-api/logger"
	"github.com/adalertio/accounts-api/stripe/iface"
	"github.com/adalertio/accounts-api/stripe/service"
)

type Stripe struct {
	loggerProvider logger.Provider
	service        iface.BillingService
	webhookService iface.WebhookService

	// initErr is set when the Stripe credentials are absent. Endpoints
	// that talk to Stripe then answer with a configuration error instead
	// of the whole process refusing to start. The trial sweep only
	// touches Firestore and stays available.
	initErr error
}

// NewStripe creates new stripe package handlers
func NewStripe(loggerProvider logger.Provider, conn *connection.Connection) *Stripe {
	stripeClient, err := service.NewStripeClient()
	if err != nil {
		return &Stripe{
			loggerProvider: loggerProvider,
			service:        service.NewBillingService(loggerProvider, conn, nil),
			initErr:        err,
		}
	}

	return &Stripe{
		loggerProvider: loggerProvider,
		service:        service.NewBillingService(loggerProvider, conn, stripeClient),
		webhookService: service.NewStripeWebhookService(loggerProvider, conn, stripeClient),
	}
}

func (h *Stripe) checkInit() error {
	if h.initErr != nil {
		return web.NewRequestError(h.initErr, http.StatusInternalServerError)
	}

	return nil
}
