package domain

// CustomerResult is the outcome of a live-customer lookup or creation.
type CustomerResult struct {
	Success    bool   `json:"success"`
	CustomerID string `json:"customerId,omitempty"`
	Created    bool   `json:"created"`
	Message    string `json:"message,omitempty"`
}

// ReadinessReport describes whether an account is ready for the test-mode
// to live-mode migration. It never reflects a mutation.
type ReadinessReport struct {
	HasTestCustomerID          bool   `json:"hasTestCustomerId"`
	LiveCustomerExists         bool   `json:"liveCustomerExists"`
	LiveSubscriptionExists     bool   `json:"liveSubscriptionExists"`
	DefaultPaymentMethodExists bool   `json:"defaultPaymentMethodExists"`
	LiveCustomerID             string `json:"liveCustomerId,omitempty"`
}

// MigrationResult is the diff computed (and, outside dry runs, applied) by
// the stripe id migration.
type MigrationResult struct {
	Success           bool     `json:"success"`
	OldCustomerID     string   `json:"oldCustomerId,omitempty"`
	NewCustomerID     string   `json:"newCustomerId,omitempty"`
	OldSubscriptionID string   `json:"oldSubscriptionId,omitempty"`
	NewSubscriptionID string   `json:"newSubscriptionId,omitempty"`
	PaymentMethodID   string   `json:"paymentMethodId,omitempty"`
	Warnings          []string `json:"warnings"`
	DryRun            bool     `json:"dryRun"`
}

// TrialSweepResult reports a trial expiry sweep.
type TrialSweepResult struct {
	Expired int      `json:"expired"`
	Scanned int      `json:"scanned"`
	Errors  []string `json:"errors,omitempty"`
}
