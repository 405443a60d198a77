package dal

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adalertio/accounts-api/framework/connection"
	"github.com/adalertio/accounts-api/user/domain"
)

const (
	usersCollection = "users"

	fieldEmail        = "Email"
	fieldLegacyEmail  = "User Email"
	fieldCompanyAdmin = "Company Admin"
	fieldContactIDs   = "Contact Ids"
)

// UsersFirestore is used to interact with the canonical user records stored
// on Firestore.
type UsersFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

// NewUsersFirestore returns a new UsersFirestore instance with given project id.
func NewUsersFirestore(ctx context.Context, projectID string) (*UsersFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewUsersFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

// NewUsersFirestoreWithClient returns a new UsersFirestore using given client.
func NewUsersFirestoreWithClient(fun connection.FirestoreFromContextFun) *UsersFirestore {
	return &UsersFirestore{
		firestoreClientFun: fun,
	}
}

func (d *UsersFirestore) GetRef(ctx context.Context, userID string) *firestore.DocumentRef {
	return d.firestoreClientFun(ctx).Collection(usersCollection).Doc(userID)
}

// GetUser returns the user document with the given id.
func (d *UsersFirestore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	docSnap, err := d.GetRef(ctx, userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return toUser(docSnap)
}

// GetUserByEmail looks a user up by email. Older documents carry the email
// under the legacy "User Email" field, so both field names are tried.
func (d *UsersFirestore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	fs := d.firestoreClientFun(ctx)

	for _, field := range []string{fieldEmail, fieldLegacyEmail} {
		docSnaps, err := fs.Collection(usersCollection).
			Where(field, "==", email).
			Limit(1).
			Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}

		if len(docSnaps) > 0 {
			return toUser(docSnaps[0])
		}
	}

	return nil, ErrUserNotFound
}

// GetManagedUsers returns every user whose "Company Admin" reference points
// at the given admin.
func (d *UsersFirestore) GetManagedUsers(ctx context.Context, adminRef *firestore.DocumentRef) ([]*domain.User, error) {
	docSnaps, err := d.firestoreClientFun(ctx).Collection(usersCollection).
		Where(fieldCompanyAdmin, "==", adminRef).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(docSnaps))

	for _, docSnap := range docSnaps {
		user, err := toUser(docSnap)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, nil
}

// ListUsers returns every user document. Used by the admin reconciliation
// tooling only.
func (d *UsersFirestore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	docSnaps, err := d.firestoreClientFun(ctx).Collection(usersCollection).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(docSnaps))

	for _, docSnap := range docSnaps {
		user, err := toUser(docSnap)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, nil
}

// UpdateContactIDs merges the non-empty provider ids into the user's
// "Contact Ids" map. Absent ids are never written; Firestore rejects
// undefined values and a missing entry is meaningful (sync never happened).
func (d *UsersFirestore) UpdateContactIDs(ctx context.Context, userID string, ids domain.ContactIDs) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	var updates []firestore.Update

	if ids.Mailchimp != "" {
		updates = append(updates, firestore.Update{
			FieldPath: []string{fieldContactIDs, "Mailchimp"},
			Value:     ids.Mailchimp,
		})
	}

	if ids.SendGrid != "" {
		updates = append(updates, firestore.Update{
			FieldPath: []string{fieldContactIDs, "SendGrid"},
			Value:     ids.SendGrid,
		})
	}

	if ids.PipeDrive != "" {
		updates = append(updates, firestore.Update{
			FieldPath: []string{fieldContactIDs, "PipeDrive"},
			Value:     ids.PipeDrive,
		})
	}

	if len(updates) == 0 {
		return nil
	}

	if _, err := d.GetRef(ctx, userID).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrUserNotFound
		}

		return err
	}

	return nil
}

func toUser(docSnap *firestore.DocumentSnapshot) (*domain.User, error) {
	var user domain.User

	if err := docSnap.DataTo(&user); err != nil {
		return nil, err
	}

	user.ID = docSnap.Ref.ID

	return &user, nil
}
