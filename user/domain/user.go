package domain

import (
	"time"

	"cloud.google.com/go/firestore"
)

// UserType distinguishes company admins from the managers they invite.
type UserType string

const (
	UserTypeAdmin   UserType = "Admin"
	UserTypeManager UserType = "Manager"
)

// ContactIDs maps each marketing provider to its opaque contact identifier.
// SendGrid's create call only returns an async job id, so the user's email
// address is stored there as the durable handle instead.
type ContactIDs struct {
	Mailchimp string `firestore:"Mailchimp,omitempty" json:"mailchimp,omitempty"`
	SendGrid  string `firestore:"SendGrid,omitempty" json:"sendGrid,omitempty"`
	PipeDrive string `firestore:"PipeDrive,omitempty" json:"pipeDrive,omitempty"`
}

// Empty reports whether no provider id is present.
func (c ContactIDs) Empty() bool {
	return c.Mailchimp == "" && c.SendGrid == "" && c.PipeDrive == ""
}

// User is the canonical identity record. Field names match the legacy
// Firestore documents byte-for-byte and must not be renamed.
type User struct {
	ID           string                 `firestore:"-" json:"id"`
	Name         string                 `firestore:"Name" json:"name"`
	Email        string                 `firestore:"Email" json:"email"`
	LegacyEmail  string                 `firestore:"User Email,omitempty" json:"-"`
	UserType     UserType               `firestore:"User Type" json:"userType"`
	CompanyAdmin *firestore.DocumentRef `firestore:"Company Admin" json:"-"`
	ContactIDs   *ContactIDs            `firestore:"Contact Ids,omitempty" json:"contactIds,omitempty"`
	DateCreated  time.Time              `firestore:"Date Created,omitempty" json:"dateCreated,omitempty"`
}

// PrimaryEmail returns the user's email, falling back to the legacy
// "User Email" field still present on older documents.
func (u *User) PrimaryEmail() string {
	if u.Email != "" {
		return u.Email
	}

	return u.LegacyEmail
}

// IsCompanyAdmin reports whether this user owns the company account.
func (u *User) IsCompanyAdmin() bool {
	return u.UserType == UserTypeAdmin
}
