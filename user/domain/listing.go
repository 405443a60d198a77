package domain

import "time"

// AuthUser is the slim view of a Firebase Auth record exposed by the
// admin reconciliation endpoint.
type AuthUser struct {
	UID        string    `json:"uid"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name,omitempty"`
	Disabled   bool      `json:"disabled"`
	Created    time.Time `json:"created,omitempty"`
	LastSignIn time.Time `json:"lastSignIn,omitempty"`
}

// UserListing aggregates the identity-provider and document-store views of
// the user base. Total counts distinct users across both sources, matching
// on lowercased email.
type UserListing struct {
	AuthUsers      []AuthUser `json:"authUsers"`
	FirestoreUsers []*User    `json:"firestoreUsers"`
	Total          int        `json:"total"`
}
