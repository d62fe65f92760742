package gateway

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commission-reconciler/internal/domain"
)

func TestFileRepository_SnapshotRoundTrip(t *testing.T) {
	repo := newTestRepository()
	path := filepath.Join(t.TempDir(), "matched_2026-06.json")

	rows := []domain.MatchedRow{
		{
			Row: domain.CarrierStatementRow{
				BillingItem:      "ABC123",
				AccountName:      "Acme Fiber",
				CommissionAmount: decimal.RequireFromString("100.00"),
				HeldMonths:       []string{"2026-05"},
			},
			Master:     domain.MasterRecord{BillingItem: "ABC123", RoleCodes: []string{"RD1"}},
			Provider:   "Lumen",
			RoleSplits: map[string]int64{"RD1": 2000, "OTG": 8000},
		},
	}

	require.NoError(t, repo.WriteMatchedRows(context.Background(), path, rows))

	loaded, err := repo.GetPriorMonthMatches(context.Background(), path)
	assert.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "ABC123", loaded[0].Row.BillingItem)
	assert.True(t, loaded[0].Row.CommissionAmount.Equal(rows[0].Row.CommissionAmount))
	assert.Equal(t, rows[0].RoleSplits, loaded[0].RoleSplits)
	assert.Equal(t, []string{"2026-05"}, loaded[0].Row.HeldMonths)
}

func TestFileRepository_GetPriorMonthMatches_Missing(t *testing.T) {
	repo := newTestRepository()
	_, err := repo.GetPriorMonthMatches(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
