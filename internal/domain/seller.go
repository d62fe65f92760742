package domain

import "github.com/shopspring/decimal"

// RoleGroup is a fixed pairing of role codes that produces one seller-facing
// statement.
type RoleGroup struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// SellerRoleGroups are the statement groups, in output order. The grouping
// is fixed by the compensation plan, not configurable per run.
var SellerRoleGroups = []RoleGroup{
	{Name: "RD1/2", Roles: []string{"RD1", "RD2"}},
	{Name: "RD3/4", Roles: []string{"RD3", "RD4"}},
	{Name: "RM1/2", Roles: []string{"RM1", "RM2"}},
	{Name: "RM3/4", Roles: []string{"RM3", "RM4"}},
	{Name: "OVR/RD5", Roles: []string{"OVR", "RD5"}},
	{Name: "OTG", Roles: []string{CatchAllRole}},
}

// SellerStatementItem is one line of a seller statement: all rows for a
// billing item (ENA rows bucketed apart) collapsed into one entry.
//
// OtgComp and SellerComp intentionally measure different things: OtgComp is
// the full commission the rows carried, SellerComp only this group's share.
type SellerStatementItem struct {
	BillingItem string          `json:"billing_item"`
	AccountName string          `json:"account_name"`
	Provider    string          `json:"provider"`
	ENA         bool            `json:"ena,omitempty"`
	OtgComp     decimal.Decimal `json:"otg_comp"`
	SellerComp  decimal.Decimal `json:"seller_comp"`
}

// SellerStatement is the monthly statement for one role group. It is rebuilt
// in full on every run, never patched incrementally.
type SellerStatement struct {
	Group           string                `json:"group"`
	Items           []SellerStatementItem `json:"items"`
	TotalOtgComp    decimal.Decimal       `json:"total_otg_comp"`
	TotalSellerComp decimal.Decimal       `json:"total_seller_comp"`
}
