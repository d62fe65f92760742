package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CatchAllRole absorbs rounding remainders, HA-code shares and any share
// that cannot be assigned to a recognized output role.
const CatchAllRole = "OTG"

// RoleKind tags how a raw role code was resolved.
type RoleKind int

const (
	// RoleKindBase is a plain role code looked up at its table percentage.
	RoleKindBase RoleKind = iota
	// RoleKindOverridden is a suffixed code (e.g. RD2-05): the base role
	// at an overridden percentage distinct from the table default.
	RoleKindOverridden
	// RoleKindCatchAll is an HA-style code whose share accumulates into
	// the catch-all bucket regardless of its own percentage.
	RoleKindCatchAll
)

// ResolvedRole is the closed variant a raw role code resolves to. Bucket is
// where the computed share is credited; Percent is the share percentage.
type ResolvedRole struct {
	Kind    RoleKind
	Bucket  string
	Percent decimal.Decimal
}

var (
	catchAllCodeRe = regexp.MustCompile(`^HA\d+$`)
	overrideCodeRe = regexp.MustCompile(`^([A-Z]+\d*)-(\d+)$`)
)

// RoleTable maps role codes to share percentages and knows which roles are
// recognized statement outputs. Build it once per run from configuration and
// pass it in; there is no module-level table.
type RoleTable struct {
	percents map[string]decimal.Decimal
	output   map[string]bool
}

// NewRoleTable builds a role table from default percentages and the set of
// recognized output roles. The catch-all role is always an output role.
func NewRoleTable(percents map[string]decimal.Decimal, outputRoles []string) RoleTable {
	t := RoleTable{
		percents: make(map[string]decimal.Decimal, len(percents)),
		output:   make(map[string]bool, len(outputRoles)+1),
	}
	for code, pct := range percents {
		t.percents[strings.ToUpper(strings.TrimSpace(code))] = pct
	}
	for _, role := range outputRoles {
		t.output[strings.ToUpper(strings.TrimSpace(role))] = true
	}
	t.output[CatchAllRole] = true
	return t
}

// Resolve classifies a raw role code into its variant. Unknown codes and
// codes outside the output set credit the catch-all bucket; their percentage
// (zero for unknown codes) still applies.
func (t RoleTable) Resolve(raw string) ResolvedRole {
	code := strings.ToUpper(strings.TrimSpace(raw))

	if catchAllCodeRe.MatchString(code) {
		return ResolvedRole{
			Kind:    RoleKindCatchAll,
			Bucket:  CatchAllRole,
			Percent: t.percents[code],
		}
	}

	if m := overrideCodeRe.FindStringSubmatch(code); m != nil {
		base := m[1]
		pct, err := decimal.NewFromString(m[2])
		if err != nil {
			pct = decimal.Zero
		}
		bucket := base
		if !t.output[base] {
			bucket = CatchAllRole
		}
		return ResolvedRole{Kind: RoleKindOverridden, Bucket: bucket, Percent: pct}
	}

	bucket := code
	if !t.output[code] {
		bucket = CatchAllRole
	}
	return ResolvedRole{Kind: RoleKindBase, Bucket: bucket, Percent: t.percents[code]}
}

// Percent returns the table percentage for a role code.
func (t RoleTable) Percent(code string) decimal.Decimal {
	return t.percents[strings.ToUpper(strings.TrimSpace(code))]
}
