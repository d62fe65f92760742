package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// RoutingFlag controls which bucket a canceled/missing billing item is
// reported under. Anything other than MRC billing routes to the non-MRC
// bucket; ZMap entries have their own lane.
type RoutingFlag string

const (
	RoutingNormal RoutingFlag = "NORMAL"
	RoutingZMap   RoutingFlag = "ZMAP"
	RoutingNonMRC RoutingFlag = "NON_MRC"
)

// RoleCodePlaceholder marks master rows whose role codes were never filled in.
const RoleCodePlaceholder = "N/A"

// MasterRecord is one entry of the internal compensation key. Records are
// loaded once per processing run and never mutated afterwards.
type MasterRecord struct {
	BillingItem     string          `json:"billing_item"`
	AccountName     string          `json:"account_name"`
	State           string          `json:"state"`
	Provider        string          `json:"provider"`
	RoleCodes       []string        `json:"role_codes"`
	ExpectedPercent decimal.Decimal `json:"expected_percent"`
	VPNotes         string          `json:"vp_notes,omitempty"`
	Routing         RoutingFlag     `json:"routing"`
}

// HasPlaceholderRoles reports whether the record's role codes are the
// "N/A" sentinel left by placeholder rows in the compensation key.
func (m MasterRecord) HasPlaceholderRoles() bool {
	for _, code := range m.RoleCodes {
		if !strings.EqualFold(strings.TrimSpace(code), RoleCodePlaceholder) {
			return false
		}
	}
	return len(m.RoleCodes) > 0
}

// NormalizeBillingItem produces the canonical join key for a billing item:
// uppercase with every non-alphanumeric rune removed. Both sides of the
// master/carrier join must go through this function or matches silently fail.
func NormalizeBillingItem(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
