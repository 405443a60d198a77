package domain

import (
	"cloud.google.com/go/firestore"
)

// Company mirrors a document in the companies collection. Field names match
// the legacy Firestore documents byte-for-byte.
type Company struct {
	ID               string                 `firestore:"-" json:"id"`
	Name             string                 `firestore:"Company Name,omitempty" json:"name,omitempty"`
	Admin            *firestore.DocumentRef `firestore:"Company Admin,omitempty" json:"-"`
	StripeCustomerID string                 `firestore:"Stripe Customer Id,omitempty" json:"stripeCustomerId,omitempty"`
}

// CascadeResult reports what the account delete removed and which
// best-effort steps failed along the way.
type CascadeResult struct {
	CompanyID            string   `json:"companyId"`
	UsersDeleted         int      `json:"usersDeleted"`
	AuthUsersDeleted     int      `json:"authUsersDeleted"`
	ContactsRemoved      int      `json:"contactsRemoved"`
	SubscriptionCanceled bool     `json:"subscriptionCanceled"`
	DocsDeleted          int      `json:"docsDeleted"`
	Errors               []string `json:"errors"`
	Success              bool     `json:"success"`
}
