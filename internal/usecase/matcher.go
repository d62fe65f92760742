package usecase

import (
	"fmt"
	"strings"

	"commission-reconciler/internal/domain"
)

// zayoCarrierName identifies the one carrier whose starred accounts route
// through the alternate provider.
const zayoCarrierName = "ZAYO"

// MatchResult holds one matching pass over a batch of carrier rows.
type MatchResult struct {
	Matched   []domain.MatchedRow
	Unmatched []domain.CarrierStatementRow
	Warnings  []domain.Warning
}

// Match joins carrier statement rows to the master index by normalized
// billing item and splits each matched row's commission across its role
// codes.
//
// Rows with a blank billing item are warned about and dropped entirely;
// with no key there is nothing to report a dispute against. Rows that miss
// the index go to Unmatched and become new-account dispute candidates.
func Match(rows []domain.CarrierStatementRow, index map[string]domain.MasterRecord, table domain.RoleTable) MatchResult {
	var res MatchResult
	for _, row := range rows {
		key := domain.NormalizeBillingItem(row.BillingItem)
		if key == "" {
			res.Warnings = append(res.Warnings, domain.Warning{
				Code:    domain.WarnBlankBillingItem,
				Message: fmt.Sprintf("row for account %q (%s) has no billing item; excluded from matching and disputes", row.AccountName, row.CarrierName),
			})
			continue
		}

		master, ok := index[key]
		if !ok {
			res.Unmatched = append(res.Unmatched, row)
			continue
		}

		matched := domain.MatchedRow{
			Row:             row,
			Master:          master,
			Provider:        effectiveProvider(row, master),
			ExpectedPercent: master.ExpectedPercent,
			RoleSplits:      SplitCommission(row.CommissionAmount, master.RoleCodes, table),
		}
		res.Matched = append(res.Matched, matched)
	}
	return res
}

// effectiveProvider applies the starred-account override: Zayo rows whose
// account name carries the leading "*" marker bill through ENA. The marker
// comes from upstream extraction verbatim; it is preserved, not interpreted,
// and it must be applied before dispute detection runs.
func effectiveProvider(row domain.CarrierStatementRow, master domain.MasterRecord) string {
	if strings.EqualFold(strings.TrimSpace(row.CarrierName), zayoCarrierName) &&
		strings.HasPrefix(strings.TrimSpace(row.AccountName), "*") {
		return domain.ProviderENA
	}
	return master.Provider
}
