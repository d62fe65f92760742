package usecase

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"commission-reconciler/internal/domain"
)

// enaBucketSuffix keeps ENA rows from merging with non-ENA rows that happen
// to share a billing item.
const enaBucketSuffix = "|ENA"

// AggregateStatements builds one seller statement per fixed role group from
// a full month's matched rows. Call it exactly once per month, after the
// last carrier's rows have been ingested; statements are rebuilt whole, not
// patched.
//
// A row contributes to a group only when the group's role shares for it sum
// non-zero, and a single row can contribute to several groups at once, each
// with its own share. Per item, OtgComp accumulates the row's full
// commission while SellerComp accumulates only the group's share.
func AggregateStatements(matched []domain.MatchedRow) []domain.SellerStatement {
	statements := make([]domain.SellerStatement, 0, len(domain.SellerRoleGroups))
	for _, group := range domain.SellerRoleGroups {
		statements = append(statements, buildGroupStatement(group, matched))
	}
	return statements
}

func buildGroupStatement(group domain.RoleGroup, matched []domain.MatchedRow) domain.SellerStatement {
	items := make(map[string]*domain.SellerStatementItem)

	for _, m := range matched {
		var shareCents int64
		for _, role := range group.Roles {
			shareCents += m.RoleSplits[role]
		}
		if shareCents == 0 {
			continue
		}

		ena := m.Provider == domain.ProviderENA
		key := domain.NormalizeBillingItem(m.Row.BillingItem)
		if ena {
			key += enaBucketSuffix
		}

		item, ok := items[key]
		if !ok {
			item = &domain.SellerStatementItem{
				BillingItem: m.Row.BillingItem,
				AccountName: m.Row.AccountName,
				Provider:    m.Provider,
				ENA:         ena,
				OtgComp:     decimal.Zero,
				SellerComp:  decimal.Zero,
			}
			items[key] = item
		}
		item.OtgComp = item.OtgComp.Add(m.Row.CommissionAmount)
		item.SellerComp = item.SellerComp.Add(CentsToAmount(shareCents))
	}

	statement := domain.SellerStatement{
		Group:           group.Name,
		Items:           make([]domain.SellerStatementItem, 0, len(items)),
		TotalOtgComp:    decimal.Zero,
		TotalSellerComp: decimal.Zero,
	}
	for _, item := range items {
		statement.Items = append(statement.Items, *item)
	}
	sort.Slice(statement.Items, func(i, j int) bool {
		a, b := statement.Items[i], statement.Items[j]
		if p := strings.Compare(strings.ToLower(a.Provider), strings.ToLower(b.Provider)); p != 0 {
			return p < 0
		}
		if n := strings.Compare(strings.ToLower(a.AccountName), strings.ToLower(b.AccountName)); n != 0 {
			return n < 0
		}
		return strings.ToLower(a.BillingItem) < strings.ToLower(b.BillingItem)
	})

	// Totals are the sum of the line items, never recomputed from the rows,
	// so they cannot drift from what the statement shows.
	for _, item := range statement.Items {
		statement.TotalOtgComp = statement.TotalOtgComp.Add(item.OtgComp)
		statement.TotalSellerComp = statement.TotalSellerComp.Add(item.SellerComp)
	}
	return statement
}
