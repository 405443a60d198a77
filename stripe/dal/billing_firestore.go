package dal

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/stripe/domain"
)

const (
	subscriptionsCollection  = "subscriptions"
	paymentMethodsCollection = "paymentMethods"
	companiesCollection      = "companies"

	fieldUser                  = "User"
	fieldStripeCustomerID      = "Stripe Customer Id"
	fieldStripeSubscriptionID  = "Stripe Subscription Id"
	fieldSubscriptionStatus    = "Subscription Status"
	fieldTrialEndDate          = "Trial End Date"
	fieldPaymentFailedAt       = "Payment Failed At"
	fieldPaymentPastDueAt      = "Payment Past Due At"
	fieldIsDefault             = "Is Default"
	fieldStripePaymentMethodID = "Stripe Payment Method Id"
	fieldDateCreated           = "Date Created"
)

// BillingFirestore is used to interact with the billing documents stored on
// Firestore.
type BillingFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

// NewBillingFirestore returns a new BillingFirestore instance with given project id.
func NewBillingFirestore(ctx context.Context, projectID string) (*BillingFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewBillingFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewBillingFirestoreWithClient returns a new BillingFirestore using given client.
func NewBillingFirestoreWithClient(fun connection.FirestoreFromContextFun) *BillingFirestore {
	return &BillingFirestore{
		firestoreClientFun: fun,
	}
}

func (d *BillingFirestore) GetSubscriptionRef(ctx context.Context, docID string) *firestore.DocumentRef {
	return d.firestoreClientFun(ctx).Collection(subscriptionsCollection).Doc(docID)
}

func (d *BillingFirestore) GetSubscriptionForUser(ctx context.Context, userRef *firestore.DocumentRef) (*domain.Subscription, error) {
	docSnaps, err := d.firestoreClientFun(ctx).Collection(subscriptionsCollection).
		Where(fieldUser, "==", userRef).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	if len(docSnaps) == 0 {
		return nil, ErrSubscriptionNotFound
	}

	return toSubscription(docSnaps[0])
}

// GetSubscriptionByStripeID resolves a subscription document through the
// secondary index on the stored stripe subscription id, never by doc id.
func (d *BillingFirestore) GetSubscriptionByStripeID(ctx context.Context, stripeSubscriptionID string) (*domain.Subscription, error) {
	docSnaps, err := d.firestoreClientFun(ctx).Collection(subscriptionsCollection).
		Where(fieldStripeSubscriptionID, "==", stripeSubscriptionID).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	if len(docSnaps) == 0 {
		return nil, ErrSubscriptionNotFound
	}

	return toSubscription(docSnaps[0])
}

func (d *BillingFirestore) ListExpiredTrials(ctx context.Context, now time.Time) ([]*domain.Subscription, error) {
	docSnaps, err := d.firestoreClientFun(ctx).Collection(subscriptionsCollection).
		Where(fieldSubscriptionStatus, "==", string(domain.StatusTrialNew)).
		Where(fieldTrialEndDate, "<", now).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	subscriptions := make([]*domain.Subscription, 0, len(docSnaps))

	for _, docSnap := range docSnaps {
		subscription, err := toSubscription(docSnap)
		if err != nil {
			return nil, err
		}

		subscriptions = append(subscriptions, subscription)
	}

	return subscriptions, nil
}

func (d *BillingFirestore) SetSubscriptionStatus(ctx context.Context, docID string, status domain.SubscriptionStatus) error {
	if docID == "" {
		return ErrInvalidDocID
	}

	_, err := d.GetSubscriptionRef(ctx, docID).Update(ctx, []firestore.Update{
		{FieldPath: []string{fieldSubscriptionStatus}, Value: string(status)},
	})

	return mapNotFound(err, ErrSubscriptionNotFound)
}

func (d *BillingFirestore) MarkSubscriptionPaymentFailed(ctx context.Context, docID string, at time.Time, pastDue bool) error {
	if docID == "" {
		return ErrInvalidDocID
	}

	updates := []firestore.Update{
		{FieldPath: []string{fieldSubscriptionStatus}, Value: string(domain.StatusPaymentFailed)},
	}

	if pastDue {
		updates = append(updates, firestore.Update{FieldPath: []string{fieldPaymentPastDueAt}, Value: at})
	} else {
		updates = append(updates, firestore.Update{FieldPath: []string{fieldPaymentFailedAt}, Value: at})
	}

	_, err := d.GetSubscriptionRef(ctx, docID).Update(ctx, updates)

	return mapNotFound(err, ErrSubscriptionNotFound)
}

// MarkSubscriptionPaying flips the status to paying and deletes stale
// failure timestamps. Re-applying it to an already paying subscription is a
// no-op in effect.
func (d *BillingFirestore) MarkSubscriptionPaying(ctx context.Context, docID string) error {
	if docID == "" {
		return ErrInvalidDocID
	}

	_, err := d.GetSubscriptionRef(ctx, docID).Update(ctx, []firestore.Update{
		{FieldPath: []string{fieldSubscriptionStatus}, Value: string(domain.StatusPaying)},
		{FieldPath: []string{fieldPaymentFailedAt}, Value: firestore.Delete},
		{FieldPath: []string{fieldPaymentPastDueAt}, Value: firestore.Delete},
	})

	return mapNotFound(err, ErrSubscriptionNotFound)
}

func (d *BillingFirestore) GetDefaultPaymentMethodForUser(ctx context.Context, userRef *firestore.DocumentRef) (*domain.PaymentMethod, error) {
	docSnaps, err := d.firestoreClientFun(ctx).Collection(paymentMethodsCollection).
		Where(fieldUser, "==", userRef).
		Where(fieldIsDefault, "==", true).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	if len(docSnaps) == 0 {
		return nil, ErrPaymentMethodNotFound
	}

	var paymentMethod domain.PaymentMethod

	if err := docSnaps[0].DataTo(&paymentMethod); err != nil {
		return nil, err
	}

	paymentMethod.ID = docSnaps[0].Ref.ID

	return &paymentMethod, nil
}

func (d *BillingFirestore) GetCompanyForAdmin(ctx context.Context, adminRef *firestore.DocumentRef) (*domain.Company, error) {
	docSnaps, err := d.firestoreClientFun(ctx).Collection(companiesCollection).
		Where("Company Admin", "==", adminRef).
		Limit(1).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	if len(docSnaps) == 0 {
		return nil, ErrCompanyNotFound
	}

	var company domain.Company

	if err := docSnaps[0].DataTo(&company); err != nil {
		return nil, err
	}

	company.ID = docSnaps[0].Ref.ID

	return &company, nil
}

// CommitCustomerLink records the live customer mapping across the
// subscription, payment method and company docs in one atomic batch. When
// the user has no subscription doc yet one is created with a fresh trial.
func (d *BillingFirestore) CommitCustomerLink(ctx context.Context, link CustomerLink) error {
	fs := d.firestoreClientFun(ctx)
	batch := fs.Batch()

	customerUpdates := []firestore.Update{
		{FieldPath: []string{fieldStripeCustomerID}, Value: link.StripeCustomerID},
	}

	if link.StripeSubscriptionID != "" {
		customerUpdates = append(customerUpdates, firestore.Update{
			FieldPath: []string{fieldStripeSubscriptionID},
			Value:     link.StripeSubscriptionID,
		})
	}

	if link.SubscriptionDocID != "" {
		batch.Update(d.GetSubscriptionRef(ctx, link.SubscriptionDocID), customerUpdates)
	} else {
		doc := map[string]interface{}{
			fieldUser:               link.UserRef,
			fieldStripeCustomerID:   link.StripeCustomerID,
			fieldSubscriptionStatus: string(domain.StatusTrialNew),
			fieldDateCreated:        time.Now().UTC(),
		}

		if link.StripeSubscriptionID != "" {
			doc[fieldStripeSubscriptionID] = link.StripeSubscriptionID
		}

		batch.Create(fs.Collection(subscriptionsCollection).NewDoc(), doc)
	}

	if link.PaymentMethodDocID != "" {
		batch.Update(fs.Collection(paymentMethodsCollection).Doc(link.PaymentMethodDocID), []firestore.Update{
			{FieldPath: []string{fieldStripeCustomerID}, Value: link.StripeCustomerID},
		})
	}

	if link.CompanyDocID != "" {
		batch.Update(fs.Collection(companiesCollection).Doc(link.CompanyDocID), []firestore.Update{
			{FieldPath: []string{fieldStripeCustomerID}, Value: link.StripeCustomerID},
		})
	}

	_, err := batch.Commit(ctx)

	return err
}

// CommitMigration overwrites the stored stripe ids atomically. The
// subscription id field is only written when a live subscription was found;
// Firestore rejects undefined values and an absent field stays absent.
func (d *BillingFirestore) CommitMigration(ctx context.Context, write MigrationWrite) error {
	if write.SubscriptionDocID == "" {
		return ErrInvalidDocID
	}

	fs := d.firestoreClientFun(ctx)
	batch := fs.Batch()

	updates := []firestore.Update{
		{FieldPath: []string{fieldStripeCustomerID}, Value: write.StripeCustomerID},
	}

	if write.StripeSubscriptionID != "" {
		updates = append(updates, firestore.Update{
			FieldPath: []string{fieldStripeSubscriptionID},
			Value:     write.StripeSubscriptionID,
		})
	}

	batch.Update(d.GetSubscriptionRef(ctx, write.SubscriptionDocID), updates)

	if write.PaymentMethodDocID != "" && write.StripePaymentMethodID != "" {
		batch.Update(fs.Collection(paymentMethodsCollection).Doc(write.PaymentMethodDocID), []firestore.Update{
			{FieldPath: []string{fieldStripePaymentMethodID}, Value: write.StripePaymentMethodID},
		})
	}

	_, err := batch.Commit(ctx)

	return err
}

func toSubscription(docSnap *firestore.DocumentSnapshot) (*domain.Subscription, error) {
	var subscription domain.Subscription

	if err := docSnap.DataTo(&subscription); err != nil {
		return nil, err
	}

	subscription.ID = docSnap.Ref.ID

	return &subscription, nil
}

func mapNotFound(err, sentinel error) error {
	if err != nil && status.Code(err) == codes.NotFound {
		return sentinel
	}

	return err
}
