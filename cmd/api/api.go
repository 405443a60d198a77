package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	companyHandlers "github.com/adalertio/accounts-api/company/handlers"
	contactHandlers "github.com/adalertio/accounts-api/contact/handlers"
	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/framework/mid"
	"github.com/adalertio/accounts-api/framework/web"
	"github.com/adalertio/accounts-api/logger"
	stripeHandlers "github.com/adalertio/accounts-api/stripe/handlers"
	userHandlers "github.com/adalertio/accounts-api/user/handlers"
)

// API constructs an api with the needed functionality.
type API struct {
	shutdown chan os.Signal
	log      *logger.Logging
	conn     *connection.Connection
}

func NewAPI(shutdown chan os.Signal, logging *logger.Logging, conn *connection.Connection) *API {
	return &API{
		shutdown,
		logging,
		conn,
	}
}

// Build builds the api endpoints with the needed middlewares, and returns http.Handler interface.
func (a *API) Build() http.Handler {
	loggerProvider := logger.FromContext

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(a.shutdown, a.conn, mid.Logger(), mid.Errors(), mid.Panics(), mid.Sentry())

	contacts := contactHandlers.NewContacts(loggerProvider, a.conn)
	stripe := stripeHandlers.NewStripe(loggerProvider, a.conn)
	users := userHandlers.NewUsers(loggerProvider, a.conn)
	companies := companyHandlers.NewCompanies(loggerProvider, a.conn)

	app.Get("/health", healthCheck)

	contactsGroup := web.NewGroup(app, "/api/contacts")
	contactsGroup.Post("/create", contacts.CreateContacts)
	contactsGroup.Delete("/remove", contacts.RemoveContacts)

	billingGroup := web.NewGroup(app, "/api/billing")
	billingGroup.Post("/create-live-customer", stripe.CreateLiveCustomer)
	billingGroup.Get("/create-live-customer", stripe.MigrationReadiness)
	billingGroup.Post("/migrate-stripe-ids", stripe.MigrateStripeIDs)
	billingGroup.Post("/webhooks", stripe.WebhookHandler)

	adminGroup := web.NewGroup(app, "/api/admin")
	adminGroup.Get("/list-users", users.ListUsers)
	adminGroup.Delete("/companies/:companyID", companies.DeleteCompany)

	tasksGroup := web.NewGroup(app, "/tasks")
	tasksGroup.Post("/billing/expire-trials", stripe.ExpireTrials)

	return app
}

func healthCheck(ctx *gin.Context) error {
	return web.Respond(ctx, nil, http.StatusOK)
}
