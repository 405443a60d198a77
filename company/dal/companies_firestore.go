package dal

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adalertio/accounts-api/company/domain"
	"github.com/adalertio/accounts-api/framework/connection"
)

const (
	companiesCollection      = "companies"
	subscriptionsCollection  = "subscriptions"
	paymentMethodsCollection = "paymentMethods"
	tokensCollection         = "tokens"
	invitationsCollection    = "invitations"

	fieldUser = "User"

	// Firestore caps a single WriteBatch at 500 operations.
	maxBatchWrites = 500
)

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrInvalidCompanyID = errors.New("invalid company id")
)

// userOwnedCollections are the collections swept per user in the account
// cascade, besides the user document itself.
var userOwnedCollections = []string{
	subscriptionsCollection,
	paymentMethodsCollection,
	tokensCollection,
	invitationsCollection,
}

// CompaniesFirestore is used to interact with the company documents stored
// on Firestore.
type CompaniesFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

// NewCompaniesFirestore returns a new CompaniesFirestore instance with given project id.
func NewCompaniesFirestore(ctx context.Context, projectID string) (*CompaniesFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewCompaniesFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewCompaniesFirestoreWithClient returns a new CompaniesFirestore using given client.
func NewCompaniesFirestoreWithClient(fun connection.FirestoreFromContextFun) *CompaniesFirestore {
	return &CompaniesFirestore{
		firestoreClientFun: fun,
	}
}

func (d *CompaniesFirestore) GetRef(ctx context.Context, companyID string) *firestore.DocumentRef {
	return d.firestoreClientFun(ctx).Collection(companiesCollection).Doc(companyID)
}

func (d *CompaniesFirestore) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	if companyID == "" {
		return nil, ErrInvalidCompanyID
	}

	docSnap, err := d.GetRef(ctx, companyID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrCompanyNotFound
		}

		return nil, err
	}

	return toCompany(docSnap)
}

// ListUserOwnedRefs collects the refs of every auxiliary document keyed to
// the given user, across the collections the account cascade removes.
func (d *CompaniesFirestore) ListUserOwnedRefs(ctx context.Context, userRef *firestore.DocumentRef) ([]*firestore.DocumentRef, error) {
	fs := d.firestoreClientFun(ctx)

	var refs []*firestore.DocumentRef

	for _, collection := range userOwnedCollections {
		iter := fs.Collection(collection).
			Where(fieldUser, "==", userRef).
			Select().
			Documents(ctx)

		for {
			docSnap, err := iter.Next()
			if err == iterator.Done {
				break
			}

			if err != nil {
				return nil, err
			}

			refs = append(refs, docSnap.Ref)
		}
	}

	return refs, nil
}

// DeleteRefs removes the given documents in WriteBatches, chunked to stay
// under the Firestore batch limit.
func (d *CompaniesFirestore) DeleteRefs(ctx context.Context, refs []*firestore.DocumentRef) error {
	fs := d.firestoreClientFun(ctx)

	for start := 0; start < len(refs); start += maxBatchWrites {
		end := start + maxBatchWrites
		if end > len(refs) {
			end = len(refs)
		}

		batch := fs.Batch()

		for _, ref := range refs[start:end] {
			batch.Delete(ref)
		}

		if _, err := batch.Commit(ctx); err != nil {
			return err
		}
	}

	return nil
}

func toCompany(docSnap *firestore.DocumentSnapshot) (*domain.Company, error) {
	var company domain.Company

	if err := docSnap.DataTo(&company); err != nil {
		return nil, err
	}

	company.ID = docSnap.Ref.ID

	return &company, nil
}
