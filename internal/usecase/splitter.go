package usecase

import (
	"github.com/shopspring/decimal"

	"commission-reconciler/internal/domain"
)

// microAmountCents is the absolute cents value at or below which a
// commission is treated as rounding noise and routed entirely to the
// catch-all role.
const microAmountCents = 3

var oneHundred = decimal.NewFromInt(100)

// ToCents converts a currency amount to integer cents, rounding half away
// from zero. This is the only rounding rule the splitter uses.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(oneHundred).Round(0).IntPart()
}

// CentsToAmount converts integer cents back to a two-decimal currency value.
func CentsToAmount(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// SplitCommission allocates a commission amount across the record's role
// codes in integer cents.
//
// Each role's share is rounded independently, which can drift the sum by a
// cent per role; the remainder against the original amount is credited to
// the catch-all role unconditionally, so the returned buckets always sum to
// the amount in cents exactly. Zero buckets are dropped from the result.
func SplitCommission(amount decimal.Decimal, roleCodes []string, table domain.RoleTable) map[string]int64 {
	amountCents := ToCents(amount)
	buckets := make(map[string]int64)

	if amountCents >= -microAmountCents && amountCents <= microAmountCents {
		if amountCents != 0 {
			buckets[domain.CatchAllRole] = amountCents
		}
		return buckets
	}

	centsDec := decimal.NewFromInt(amountCents)
	var allocated int64
	for _, code := range roleCodes {
		role := table.Resolve(code)
		if role.Percent.IsZero() {
			continue
		}
		share := centsDec.Mul(role.Percent).DivRound(oneHundred, 0).IntPart()
		buckets[role.Bucket] += share
		allocated += share
	}

	// Tie-out: the catch-all absorbs whatever independent per-role rounding
	// left over. Runs even when the remainder is zero.
	remainder := amountCents - allocated
	buckets[domain.CatchAllRole] += remainder

	for bucket, cents := range buckets {
		if cents == 0 {
			delete(buckets, bucket)
		}
	}
	return buckets
}
