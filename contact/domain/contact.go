package domain

import (
	userDomain "github.com/adalertio/accounts-api/user/domain"
)

// SyncResult is the outcome of a best-effort contact creation fan-out.
// Success means at least one provider yielded an id.
type SyncResult struct {
	ContactIDs userDomain.ContactIDs `json:"contactIds"`
	Errors     []string              `json:"errors"`
	Success    bool                  `json:"success"`
}

// RemovalFlags records, per provider, whether a contact was removed.
type RemovalFlags struct {
	Mailchimp bool `json:"mailchimp"`
	SendGrid  bool `json:"sendGrid"`
	PipeDrive bool `json:"pipeDrive"`
}

// RemovalResult is the outcome of a best-effort contact removal fan-out.
type RemovalResult struct {
	RemovalResults RemovalFlags `json:"removalResults"`
	Errors         []string     `json:"errors"`
	Success        bool         `json:"success"`
}
