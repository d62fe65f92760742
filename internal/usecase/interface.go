package usecase

import (
	"context"

	"commission-reconciler/internal/domain"
)

// ReconciliationRepository defines the interface for loading the data a
// reconciliation run consumes. The usecase layer depends on this interface,
// not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go ReconciliationRepository
type ReconciliationRepository interface {
	// GetMasterRecords loads the compensation key for the run.
	GetMasterRecords(ctx context.Context, path string) ([]domain.MasterRecord, error)
	// GetCarrierRows loads one carrier's extracted statement rows.
	GetCarrierRows(ctx context.Context, path string) ([]domain.CarrierStatementRow, error)
	// GetPriorMonthMatches loads the previous processing month's matched
	// rows for the cross-month dispute checks.
	GetPriorMonthMatches(ctx context.Context, path string) ([]domain.MatchedRow, error)
}
