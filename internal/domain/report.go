package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// MonthSummary holds the high-level statistics of one processing month.
type MonthSummary struct {
	Month           string              `json:"month"`
	RowsProcessed   int                 `json:"rows_processed"`
	RowsMatched     int                 `json:"rows_matched"`
	RowsUnmatched   int                 `json:"rows_unmatched"`
	DisputesByType  map[DisputeType]int `json:"disputes_by_type"`
	TotalCommission decimal.Decimal     `json:"total_commission"`
	TotalSellerComp decimal.Decimal     `json:"total_seller_comp"`
}

// String renders the summary as the one-paragraph text handed to reporting.
func (s MonthSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "month %s: %d rows processed (%d matched, %d unmatched), commission %s, seller comp %s",
		s.Month, s.RowsProcessed, s.RowsMatched, s.RowsUnmatched,
		s.TotalCommission.StringFixed(2), s.TotalSellerComp.StringFixed(2))

	if len(s.DisputesByType) > 0 {
		types := make([]string, 0, len(s.DisputesByType))
		for t := range s.DisputesByType {
			types = append(types, string(t))
		}
		sort.Strings(types)
		parts := make([]string, 0, len(types))
		for _, t := range types {
			parts = append(parts, fmt.Sprintf("%s=%d", t, s.DisputesByType[DisputeType(t)]))
		}
		fmt.Fprintf(&b, "; disputes: %s", strings.Join(parts, " "))
	}
	return b.String()
}

// MonthReport is the complete output of one month's reconciliation run.
type MonthReport struct {
	Summary    MonthSummary          `json:"summary"`
	Matched    []MatchedRow          `json:"matched"`
	Unmatched  []CarrierStatementRow `json:"unmatched"`
	Disputes   []Dispute             `json:"disputes"`
	Statements []SellerStatement     `json:"statements"`
	Warnings   []Warning             `json:"warnings,omitempty"`
}
