package domain

import "github.com/shopspring/decimal"

// ProviderENA is the alternate-provider label applied to starred Zayo
// accounts. Rows carrying it are bucketed separately on seller statements.
const ProviderENA = "ENA"

// CarrierStatementRow is one extracted line from a carrier's monthly
// commission statement. Extractors own all carrier-specific parsing; the
// core consumes these rows read-only.
type CarrierStatementRow struct {
	State            string          `json:"state"`
	AccountName      string          `json:"account_name"`
	AccountNumber    string          `json:"account_number"`
	BillingItem      string          `json:"billing_item"`
	InvoiceTotal     decimal.Decimal `json:"invoice_total"`
	CommissionAmount decimal.Decimal `json:"commission_amount"` // negative = chargeback
	Provider         string          `json:"provider"`
	CarrierName      string          `json:"carrier_name"`
	BillDescription  string          `json:"bill_description,omitempty"`
	BillPeriod       string          `json:"bill_period,omitempty"`

	// Carrier-reported payment status and the calendar months the
	// commission has been held for. Empty when the carrier does not
	// report them.
	PaymentStatus string   `json:"payment_status,omitempty"`
	HeldMonths    []string `json:"held_months,omitempty"`
}

// MatchedRow is a carrier statement row joined to its master record, with
// the commission amount already split across role codes.
//
// Invariant: the RoleSplits values (integer cents) always sum to the
// commission amount rounded to cents, including for negative amounts.
type MatchedRow struct {
	Row    CarrierStatementRow `json:"row"`
	Master MasterRecord        `json:"master"`

	// Provider is the effective provider after the ENA override; it can
	// differ from both the row's and the master record's provider.
	Provider        string           `json:"provider"`
	ExpectedPercent decimal.Decimal  `json:"expected_percent"`
	RoleSplits      map[string]int64 `json:"role_splits"`
}

// SplitTotalCents sums the role splits in integer cents.
func (m MatchedRow) SplitTotalCents() int64 {
	var total int64
	for _, cents := range m.RoleSplits {
		total += cents
	}
	return total
}

// Warning is a recovered row-level data-quality issue. Warnings are
// attached to the month's report instead of aborting the run.
type Warning struct {
	Code        string `json:"code"`
	BillingItem string `json:"billing_item,omitempty"`
	Message     string `json:"message"`
}

const (
	WarnBlankBillingItem = "BLANK_BILLING_ITEM"
	WarnBadCurrency      = "BAD_CURRENCY"
	WarnMissingColumn    = "MISSING_COLUMN"
)
