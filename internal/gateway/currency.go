package gateway

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCurrency parses the currency strings carriers put in statements:
// "$1,234.56", "1234.56", "-123.45" and the accounting-style "(123.45)"
// for negative amounts. An empty cell parses as zero.
func ParseCurrency(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not parse currency value %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
