package service

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/adalertio/accounts-api/company/dal"
	"github.com/adalertio/accounts-api/company/domain"
	contactIface "github.com/adalertio/accounts-api/contact/iface"
	contactService "github.com/adalertio/accounts-api/contact/service"
	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/logger"
	stripeDAL "github.com/adalertio/accounts-api/stripe/dal"
	stripeService "github.com/adalertio/accounts-api/stripe/service"
	userDAL "github.com/adalertio/accounts-api/user/dal"
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

// authAPI is the slice of the firebase auth client the cascade needs.
type authAPI interface {
	DeleteUser(ctx context.Context, uid string) error
}

// CompanyService removes a company account and everything keyed to it. Every
// external step is best-effort; only the Firestore batch delete is fatal.
type CompanyService struct {
	loggerProvider logger.Provider
	*connection.Connection
	companiesDAL dal.Companies
	usersDAL     userDAL.Users
	billingDAL   stripeDAL.IBillingFirestore
	contactSync  contactIface.ContactSync

	// auth and newStripe are indirections over clients whose credentials
	// may be absent; a failed construction degrades to a collected error.
	auth      func(ctx context.Context) authAPI
	newStripe func() (stripeService.API, error)
}

func NewCompanyService(loggerProvider logger.Provider, conn *connection.Connection) *CompanyService {
	return &CompanyService{
		loggerProvider: loggerProvider,
		Connection:     conn,
		companiesDAL:   dal.NewCompaniesFirestoreWithClient(conn.Firestore),
		usersDAL:       userDAL.NewUsersFirestoreWithClient(conn.Firestore),
		billingDAL:     stripeDAL.NewBillingFirestoreWithClient(conn.Firestore),
		contactSync:    contactService.NewContactService(loggerProvider, conn),
		auth: func(ctx context.Context) authAPI {
			return conn.Auth(ctx)
		},
		newStripe: func() (stripeService.API, error) {
			return stripeService.NewStripeClient()
		},
	}
}

// DeleteCompany cascades the account delete across marketing providers,
// firebase auth, Stripe and Firestore. Provider failures are collected on
// the result; the Firestore delete either commits or fails the operation.
func (s *CompanyService) DeleteCompany(ctx context.Context, companyID string) (*domain.CascadeResult, error) {
	log := s.loggerProvider(ctx)

	company, err := s.companiesDAL.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := &domain.CascadeResult{
		CompanyID: companyID,
		Errors:    make([]string, 0),
	}

	users := s.collectAccountUsers(ctx, company, result)

	for _, user := range users {
		s.removeMarketingContacts(ctx, user, result)

		if err := s.auth(ctx).DeleteUser(ctx, user.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("delete auth user %s: %s", user.ID, err))
		} else {
			result.AuthUsersDeleted++
		}
	}

	if company.Admin != nil {
		s.cancelStripeSubscription(ctx, company.Admin, result)
	}

	refs := make([]*firestore.DocumentRef, 0, len(users)+1)

	for _, user := range users {
		userRef := s.usersDAL.GetRef(ctx, user.ID)

		owned, err := s.companiesDAL.ListUserOwnedRefs(ctx, userRef)
		if err != nil {
			return nil, err
		}

		refs = append(refs, owned...)
		refs = append(refs, userRef)
	}

	refs = append(refs, s.companiesDAL.GetRef(ctx, companyID))

	if err := s.companiesDAL.DeleteRefs(ctx, refs); err != nil {
		return nil, err
	}

	result.UsersDeleted = len(users)
	result.DocsDeleted = len(refs)
	result.Success = true

	log.Infof("deleted company %s: %d users, %d docs, %d provider errors",
		companyID, result.UsersDeleted, result.DocsDeleted, len(result.Errors))

	return result, nil
}

func (s *CompanyService) collectAccountUsers(ctx context.Context, company *domain.Company, result *domain.CascadeResult) []*userDomain.User {
	if company.Admin == nil {
		result.Errors = append(result.Errors, "company has no admin reference")
		return nil
	}

	var users []*userDomain.User

	admin, err := s.usersDAL.GetUser(ctx, company.Admin.ID)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("load admin %s: %s", company.Admin.ID, err))
	} else {
		users = append(users, admin)
	}

	managed, err := s.usersDAL.GetManagedUsers(ctx, company.Admin)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("list managed users: %s", err))
	} else {
		users = append(users, managed...)
	}

	return users
}

func (s *CompanyService) removeMarketingContacts(ctx context.Context, user *userDomain.User, result *domain.CascadeResult) {
	if user.ContactIDs == nil || user.ContactIDs.Empty() {
		return
	}

	removal, err := s.contactSync.RemoveContacts(ctx, *user.ContactIDs)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("remove contacts for %s: %s", user.ID, err))
		return
	}

	result.Errors = append(result.Errors, removal.Errors...)

	if removal.Success {
		result.ContactsRemoved++
	}
}

func (s *CompanyService) cancelStripeSubscription(ctx context.Context, adminRef *firestore.DocumentRef, result *domain.CascadeResult) {
	subscription, err := s.billingDAL.GetSubscriptionForUser(ctx, adminRef)
	if err != nil {
		if !errors.Is(err, stripeDAL.ErrSubscriptionNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("load subscription: %s", err))
		}

		return
	}

	if subscription.StripeSubscriptionID == "" {
		return
	}

	api, err := s.newStripe()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("stripe: %s", err))
		return
	}

	if err := api.CancelSubscription(ctx, subscription.StripeSubscriptionID); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cancel subscription %s: %s", subscription.StripeSubscriptionID, err))
		return
	}

	result.SubscriptionCanceled = true
}
