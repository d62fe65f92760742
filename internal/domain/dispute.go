package domain

import "github.com/shopspring/decimal"

// DisputeType classifies a flagged billing item. One billing item can carry
// disputes of several types in the same month.
type DisputeType string

const (
	DisputeNewAccount  DisputeType = "NEW_ACCOUNT"
	DisputeZero        DisputeType = "ZERO"
	DisputeChargeback  DisputeType = "CHARGEBACK"
	DisputeCanceled    DisputeType = "CANCELED"
	DisputeChangedRate DisputeType = "CHANGED_RATE"
	DisputeMonthsHeld  DisputeType = "MONTHS_HELD"
)

// CanceledRoute is the three-way bucket for CANCELED disputes, driven by the
// master record's routing flag.
type CanceledRoute string

const (
	CanceledRoutePlain  CanceledRoute = "CANCELED"
	CanceledRouteZMap   CanceledRoute = "ZMAP"
	CanceledRouteNonMRC CanceledRoute = "NON_MRC_BILLING"
)

// Dispute is a single flagged record for human review. Disputes are created
// by the detector and never mutated afterwards.
type Dispute struct {
	ID             string          `json:"id"`
	Type           DisputeType     `json:"type"`
	BillingItem    string          `json:"billing_item"`
	AccountName    string          `json:"account_name"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	ActualAmount   decimal.Decimal `json:"actual_amount"`
	Difference     decimal.Decimal `json:"difference"`
	Explanation    string          `json:"explanation"`

	// Route is set for CANCELED disputes only.
	Route CanceledRoute `json:"route,omitempty"`

	// Rows lists every statement row involved in the dispute. A chargeback
	// includes all rows sharing the billing item, not just the negative one.
	Rows []CarrierStatementRow `json:"rows,omitempty"`
}
