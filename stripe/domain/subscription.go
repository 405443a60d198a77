package domain

import (
	"time"

	"cloud.google.com/go/firestore"
)

// SubscriptionStatus is the billing state machine position of an account.
type SubscriptionStatus string

const (
	StatusTrialNew      SubscriptionStatus = "trial-new"
	StatusTrialEnded    SubscriptionStatus = "trial-ended"
	StatusPaying        SubscriptionStatus = "paying"
	StatusPaymentFailed SubscriptionStatus = "payment-failed"
	StatusCanceled      SubscriptionStatus = "canceled"
)

// Subscription mirrors a document in the subscriptions collection. Field
// names carry spaces for compatibility with the data written by the legacy
// platform and must not be renamed.
type Subscription struct {
	ID                   string                 `firestore:"-" json:"id"`
	User                 *firestore.DocumentRef `firestore:"User,omitempty" json:"-"`
	StripeCustomerID     string                 `firestore:"Stripe Customer Id,omitempty" json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string                 `firestore:"Stripe Subscription Id,omitempty" json:"stripeSubscriptionId,omitempty"`
	Status               SubscriptionStatus     `firestore:"Subscription Status" json:"status"`
	TrialEndDate         *time.Time             `firestore:"Trial End Date,omitempty" json:"trialEndDate,omitempty"`
	PaymentFailedAt      *time.Time             `firestore:"Payment Failed At,omitempty" json:"paymentFailedAt,omitempty"`
	PaymentPastDueAt     *time.Time             `firestore:"Payment Past Due At,omitempty" json:"paymentPastDueAt,omitempty"`
	DateCreated          time.Time              `firestore:"Date Created,omitempty" json:"dateCreated,omitempty"`
}

// PaymentMethod mirrors a document in the paymentMethods collection.
type PaymentMethod struct {
	ID                    string                 `firestore:"-" json:"id"`
	User                  *firestore.DocumentRef `firestore:"User,omitempty" json:"-"`
	StripePaymentMethodID string                 `firestore:"Stripe Payment Method Id,omitempty" json:"stripePaymentMethodId,omitempty"`
	IsDefault             bool                   `firestore:"Is Default" json:"isDefault"`
	CardBrand             string                 `firestore:"Card Brand,omitempty" json:"cardBrand,omitempty"`
	CardLast4             string                 `firestore:"Card Last 4,omitempty" json:"cardLast4,omitempty"`
	CardExpMonth          int64                  `firestore:"Card Exp Month,omitempty" json:"cardExpMonth,omitempty"`
	CardExpYear           int64                  `firestore:"Card Exp Year,omitempty" json:"cardExpYear,omitempty"`
}

// Company mirrors a document in the companies collection.
type Company struct {
	ID               string                 `firestore:"-" json:"id"`
	Name             string                 `firestore:"Company Name,omitempty" json:"name,omitempty"`
	Admin            *firestore.DocumentRef `firestore:"Company Admin,omitempty" json:"-"`
	StripeCustomerID string                 `firestore:"Stripe Customer Id,omitempty" json:"stripeCustomerId,omitempty"`
}
