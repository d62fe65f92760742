package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"commission-reconciler/internal/domain"
)

// DetectorConfig carries the business thresholds the classifiers use. Both
// values are deployment-tunable; never inline them at call sites.
type DetectorConfig struct {
	// ZeroTolerance catches commissions that display as $0.00, including
	// sub-cent values, not just exact zero.
	ZeroTolerance decimal.Decimal
	// RateChangeThreshold is the dollar movement in a billing item's
	// monthly total that triggers a CHANGED_RATE dispute.
	RateChangeThreshold decimal.Decimal
}

// DefaultDetectorConfig returns the thresholds the business runs with today.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ZeroTolerance:       decimal.RequireFromString("0.005"),
		RateChangeThreshold: decimal.NewFromInt(50),
	}
}

// DetectInput is everything a detection pass may need. PriorMatched is the
// previous processing month's reconciled output, supplied explicitly by the
// caller; there is no hidden cross-run state.
type DetectInput struct {
	Matched      []domain.MatchedRow
	Unmatched    []domain.CarrierStatementRow
	Index        map[string]domain.MasterRecord
	PriorMatched []domain.MatchedRow
	HavePrior    bool
}

// DisputeDetector classifies statement rows into dispute categories. The six
// classifiers are independent: a billing item can appear in several dispute
// types in the same month, and a classifier that cannot resolve its inputs
// skips its check with a logged diagnostic rather than failing the pass.
type DisputeDetector struct {
	cfg DetectorConfig
	log *logrus.Logger
}

func NewDisputeDetector(cfg DetectorConfig, log *logrus.Logger) *DisputeDetector {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DisputeDetector{cfg: cfg, log: log}
}

// Detect runs all classifiers and returns their disputes in a deterministic
// order. Disputes are best-effort enrichment; nothing here affects matching
// or splitting correctness.
func (d *DisputeDetector) Detect(in DetectInput) []domain.Dispute {
	var disputes []domain.Dispute
	disputes = append(disputes, d.detectNewAccounts(in.Unmatched)...)
	disputes = append(disputes, d.detectZero(in.Matched)...)
	disputes = append(disputes, d.detectChargebacks(in.Matched)...)
	disputes = append(disputes, d.detectCanceled(in.Index, in.Matched, in.Unmatched)...)
	disputes = append(disputes, d.detectRateChanges(in.Matched, in.PriorMatched, in.HavePrior)...)
	disputes = append(disputes, d.detectHeldMonths(in.Matched, in.PriorMatched)...)
	return disputes
}

// disputeID derives a stable ID from the dispute's identity so repeated runs
// over identical inputs produce identical output.
func disputeID(t domain.DisputeType, key, qualifier string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(string(t)+"|"+key+"|"+qualifier)).String()
}

// detectNewAccounts flags billing items present on carrier statements but
// absent from the compensation key.
func (d *DisputeDetector) detectNewAccounts(unmatched []domain.CarrierStatementRow) []domain.Dispute {
	groups, order := groupRowsByKey(unmatched)

	disputes := make([]domain.Dispute, 0, len(order))
	for _, key := range order {
		rows := groups[key]
		total := sumRowCommission(rows)
		disputes = append(disputes, domain.Dispute{
			ID:             disputeID(domain.DisputeNewAccount, key, ""),
			Type:           domain.DisputeNewAccount,
			BillingItem:    rows[0].BillingItem,
			AccountName:    rows[0].AccountName,
			ExpectedAmount: decimal.Zero,
			ActualAmount:   total,
			Difference:     total,
			Explanation:    fmt.Sprintf("billing item not found in compensation key; %d row(s) totaling %s", len(rows), total.StringFixed(2)),
			Rows:           rows,
		})
	}
	return disputes
}

// detectZero flags matched rows whose commission displays as $0.00 after
// rounding, including sub-cent amounts within the configured tolerance.
func (d *DisputeDetector) detectZero(matched []domain.MatchedRow) []domain.Dispute {
	var disputes []domain.Dispute
	for _, m := range matched {
		if m.Row.CommissionAmount.Abs().GreaterThanOrEqual(d.cfg.ZeroTolerance) {
			continue
		}
		expected := expectedCommission(m)
		disputes = append(disputes, domain.Dispute{
			ID:             disputeID(domain.DisputeZero, domain.NormalizeBillingItem(m.Row.BillingItem), m.Row.AccountNumber),
			Type:           domain.DisputeZero,
			BillingItem:    m.Row.BillingItem,
			AccountName:    m.Row.AccountName,
			ExpectedAmount: expected,
			ActualAmount:   m.Row.CommissionAmount,
			Difference:     m.Row.CommissionAmount.Sub(expected),
			Explanation:    fmt.Sprintf("commission of %s displays as $0.00", m.Row.CommissionAmount.String()),
			Rows:           []domain.CarrierStatementRow{m.Row},
		})
	}
	return disputes
}

// detectChargebacks flags billing items carrying any negative commission.
// The dispute includes every row sharing the billing item in the month so a
// reviewer sees the chargeback next to the payments it claws back.
func (d *DisputeDetector) detectChargebacks(matched []domain.MatchedRow) []domain.Dispute {
	groups, order := groupMatchedByKey(matched)

	var disputes []domain.Dispute
	for _, key := range order {
		rows := groups[key]
		var negatives int
		negativeTotal := decimal.Zero
		positiveTotal := decimal.Zero
		for _, m := range rows {
			if m.Row.CommissionAmount.IsNegative() {
				negatives++
				negativeTotal = negativeTotal.Add(m.Row.CommissionAmount)
			} else {
				positiveTotal = positiveTotal.Add(m.Row.CommissionAmount)
			}
		}
		if negatives == 0 {
			continue
		}

		all := make([]domain.CarrierStatementRow, 0, len(rows))
		for _, m := range rows {
			all = append(all, m.Row)
		}
		disputes = append(disputes, domain.Dispute{
			ID:             disputeID(domain.DisputeChargeback, key, ""),
			Type:           domain.DisputeChargeback,
			BillingItem:    rows[0].Row.BillingItem,
			AccountName:    rows[0].Row.AccountName,
			ExpectedAmount: positiveTotal,
			ActualAmount:   positiveTotal.Add(negativeTotal),
			Difference:     negativeTotal,
			Explanation:    fmt.Sprintf("%d of %d rows carry negative commission totaling %s", negatives, len(rows), negativeTotal.StringFixed(2)),
			Rows:           all,
		})
	}
	return disputes
}

// detectCanceled flags compensation-key entries with no statement row this
// month. The master routing flag splits the result three ways: ZMap route,
// non-MRC billing, or the plain canceled bucket.
func (d *DisputeDetector) detectCanceled(index map[string]domain.MasterRecord, matched []domain.MatchedRow, unmatched []domain.CarrierStatementRow) []domain.Dispute {
	seen := make(map[string]bool, len(matched)+len(unmatched))
	for _, m := range matched {
		seen[domain.NormalizeBillingItem(m.Row.BillingItem)] = true
	}
	for _, row := range unmatched {
		seen[domain.NormalizeBillingItem(row.BillingItem)] = true
	}

	keys := make([]string, 0, len(index))
	for key := range index {
		if !seen[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	disputes := make([]domain.Dispute, 0, len(keys))
	for _, key := range keys {
		rec := index[key]
		route := domain.CanceledRoutePlain
		switch rec.Routing {
		case domain.RoutingZMap:
			route = domain.CanceledRouteZMap
		case domain.RoutingNonMRC:
			route = domain.CanceledRouteNonMRC
		}
		disputes = append(disputes, domain.Dispute{
			ID:             disputeID(domain.DisputeCanceled, key, string(route)),
			Type:           domain.DisputeCanceled,
			BillingItem:    rec.BillingItem,
			AccountName:    rec.AccountName,
			ExpectedAmount: decimal.Zero,
			ActualAmount:   decimal.Zero,
			Difference:     decimal.Zero,
			Route:          route,
			Explanation:    "billing item in compensation key but absent from every carrier statement this month",
		})
	}
	return disputes
}

// detectRateChanges compares each billing item's monthly commission total
// against the previous month and flags moves beyond the threshold. Without
// the previous month's output the check is skipped, not failed.
func (d *DisputeDetector) detectRateChanges(matched, prior []domain.MatchedRow, havePrior bool) []domain.Dispute {
	if !havePrior {
		d.log.WithFields(logrus.Fields{
			"check": string(domain.DisputeChangedRate),
		}).Warn("previous month's matched rows unavailable; skipping rate-change detection")
		return nil
	}

	current := totalsByKey(matched)
	previous := totalsByKey(prior)

	keys := make([]string, 0, len(current))
	for key := range current {
		if _, ok := previous[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var disputes []domain.Dispute
	for _, key := range keys {
		diff := current[key].Sub(previous[key])
		if diff.Abs().LessThanOrEqual(d.cfg.RateChangeThreshold) {
			continue
		}
		item, account := rowIdentity(matched, key)
		disputes = append(disputes, domain.Dispute{
			ID:             disputeID(domain.DisputeChangedRate, key, ""),
			Type:           domain.DisputeChangedRate,
			BillingItem:    item,
			AccountName:    account,
			ExpectedAmount: previous[key],
			ActualAmount:   current[key],
			Difference:     diff,
			Explanation:    fmt.Sprintf("monthly total moved from %s to %s", previous[key].StringFixed(2), current[key].StringFixed(2)),
		})
	}
	return disputes
}

// detectHeldMonths flags billing items whose carrier reports the commission
// as not paid. Held months accumulate across runs: the caller supplies
// historical matched rows and their month lists merge with the current ones.
func (d *DisputeDetector) detectHeldMonths(matched, prior []domain.MatchedRow) []domain.Dispute {
	groups, order := groupMatchedByKey(matched)

	priorMonths := make(map[string][]string)
	for _, m := range prior {
		key := domain.NormalizeBillingItem(m.Row.BillingItem)
		priorMonths[key] = append(priorMonths[key], m.Row.HeldMonths...)
	}

	var disputes []domain.Dispute
	for _, key := range order {
		rows := groups[key]
		held := decimal.Zero
		var months []string
		var flagged bool
		for _, m := range rows {
			if !reportedNotPaid(m.Row.PaymentStatus) {
				continue
			}
			flagged = true
			held = held.Add(m.Row.CommissionAmount)
			months = append(months, m.Row.HeldMonths...)
		}
		if !flagged {
			continue
		}
		months = dedupeInOrder(append(months, priorMonths[key]...))

		disputes = append(disputes, domain.Dispute{
			ID:             disputeID(domain.DisputeMonthsHeld, key, ""),
			Type:           domain.DisputeMonthsHeld,
			BillingItem:    rows[0].Row.BillingItem,
			AccountName:    rows[0].Row.AccountName,
			ExpectedAmount: held,
			ActualAmount:   decimal.Zero,
			Difference:     held.Neg(),
			Explanation:    fmt.Sprintf("commission of %s held unpaid; months held: %s", held.StringFixed(2), strings.Join(months, ", ")),
		})
	}
	return disputes
}

// reportedNotPaid interprets the carrier's free-form paid flag. Only an
// explicit not-paid value is evidence of holding; a blank flag means the
// carrier does not report one.
func reportedNotPaid(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "", "PAID", "YES", "Y":
		return false
	}
	return true
}

// expectedCommission derives what a matched row should have paid from its
// invoice total and the master record's expected percentage.
func expectedCommission(m domain.MatchedRow) decimal.Decimal {
	if m.ExpectedPercent.IsZero() || m.Row.InvoiceTotal.IsZero() {
		return decimal.Zero
	}
	return m.Row.InvoiceTotal.Mul(m.ExpectedPercent).DivRound(oneHundred, 2)
}

func groupRowsByKey(rows []domain.CarrierStatementRow) (map[string][]domain.CarrierStatementRow, []string) {
	groups := make(map[string][]domain.CarrierStatementRow)
	var order []string
	for _, row := range rows {
		key := domain.NormalizeBillingItem(row.BillingItem)
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}
	return groups, order
}

func groupMatchedByKey(matched []domain.MatchedRow) (map[string][]domain.MatchedRow, []string) {
	groups := make(map[string][]domain.MatchedRow)
	var order []string
	for _, m := range matched {
		key := domain.NormalizeBillingItem(m.Row.BillingItem)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}
	return groups, order
}

func totalsByKey(matched []domain.MatchedRow) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, m := range matched {
		key := domain.NormalizeBillingItem(m.Row.BillingItem)
		totals[key] = totals[key].Add(m.Row.CommissionAmount)
	}
	return totals
}

func rowIdentity(matched []domain.MatchedRow, key string) (billingItem, accountName string) {
	for _, m := range matched {
		if domain.NormalizeBillingItem(m.Row.BillingItem) == key {
			return m.Row.BillingItem, m.Row.AccountName
		}
	}
	return key, ""
}

func sumRowCommission(rows []domain.CarrierStatementRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.CommissionAmount)
	}
	return total
}

func dedupeInOrder(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
