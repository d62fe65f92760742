package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"commission-reconciler/internal/domain"
	"commission-reconciler/internal/usecase"
	mock_usecase "commission-reconciler/internal/usecase/mocks"
)

const (
	testMasterPath  = "/data/master.csv"
	testCarrierPath = "/data/lumen_2026-07.csv"
	testPriorPath   = "/data/matched_2026-06.json"
)

func newTestUseCase(repo usecase.ReconciliationRepository) *usecase.ReconciliationUseCase {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return usecase.NewReconciliationUseCase(repo, testRoleTable(), usecase.DefaultDetectorConfig(), logger)
}

func testMasterRecords() []domain.MasterRecord {
	return []domain.MasterRecord{
		{BillingItem: "ABC123", AccountName: "Acme Fiber", Provider: "Lumen", RoleCodes: []string{"RD1", "RD2-05"}},
		{BillingItem: "GONE01", AccountName: "Lapsed Co", Provider: "Lumen", RoleCodes: []string{"RD1"}, Routing: domain.RoutingNonMRC},
	}
}

func testCarrierRows() []domain.CarrierStatementRow {
	return []domain.CarrierStatementRow{
		{BillingItem: "ABC123", AccountName: "Acme Fiber", CarrierName: "Lumen", CommissionAmount: decimal.RequireFromString("100.00")},
		{BillingItem: "NEW001", AccountName: "Fresh Co", CarrierName: "Lumen", CommissionAmount: decimal.RequireFromString("12.00")},
	}
}

func TestReconciliationUseCase_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockReconciliationRepository(ctrl)
	repo.EXPECT().GetMasterRecords(gomock.Any(), testMasterPath).Return(testMasterRecords(), nil)
	repo.EXPECT().GetCarrierRows(gomock.Any(), testCarrierPath).Return(testCarrierRows(), nil)
	repo.EXPECT().GetPriorMonthMatches(gomock.Any(), testPriorPath).
		Return([]domain.MatchedRow{matchedRow("ABC123", "Acme Fiber", "220.00")}, nil)

	uc := newTestUseCase(repo)
	report, err := uc.Reconcile(context.Background(), "2026-07", testMasterPath, []string{testCarrierPath}, testPriorPath)

	assert.NoError(t, err)
	assert.NotNil(t, report)

	assert.Equal(t, 2, report.Summary.RowsProcessed)
	assert.Equal(t, 1, report.Summary.RowsMatched)
	assert.Equal(t, 1, report.Summary.RowsUnmatched)
	assert.Equal(t, "100", report.Summary.TotalCommission.String())

	// The matched row ties out.
	assert.Len(t, report.Matched, 1)
	m := report.Matched[0]
	assert.Equal(t, usecase.ToCents(m.Row.CommissionAmount), m.SplitTotalCents())

	// One new account, one canceled (non-MRC), one rate change (220 -> 100).
	assert.Equal(t, 1, report.Summary.DisputesByType[domain.DisputeNewAccount])
	assert.Equal(t, 1, report.Summary.DisputesByType[domain.DisputeCanceled])
	assert.Equal(t, 1, report.Summary.DisputesByType[domain.DisputeChangedRate])

	canceled := disputesOfType(report.Disputes, domain.DisputeCanceled)
	assert.Len(t, canceled, 1)
	assert.Equal(t, domain.CanceledRouteNonMRC, canceled[0].Route)

	// Statements cover every role group and their totals hold.
	assert.Len(t, report.Statements, len(domain.SellerRoleGroups))
	rd12 := statementByGroup(report.Statements, "RD1/2")
	assert.Equal(t, "25", rd12.TotalSellerComp.String())

	// Summary text is regenerable from the report alone.
	assert.Contains(t, report.Summary.String(), "2 rows processed")
	assert.Contains(t, report.Summary.String(), "NEW_ACCOUNT=1")
}

func TestReconciliationUseCase_EmptyMasterIndexIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockReconciliationRepository(ctrl)
	repo.EXPECT().GetMasterRecords(gomock.Any(), testMasterPath).Return(nil, nil)

	uc := newTestUseCase(repo)
	report, err := uc.Reconcile(context.Background(), "2026-07", testMasterPath, []string{testCarrierPath}, "")

	assert.ErrorIs(t, err, usecase.ErrEmptyMasterIndex)
	assert.Nil(t, report)
}

func TestReconciliationUseCase_RepositoryErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *mock_usecase.MockReconciliationRepository)
	}{
		{
			name: "master load failure",
			setup: func(repo *mock_usecase.MockReconciliationRepository) {
				repo.EXPECT().GetMasterRecords(gomock.Any(), testMasterPath).
					Return(nil, errors.New("failed to read master file"))
			},
		},
		{
			name: "carrier load failure",
			setup: func(repo *mock_usecase.MockReconciliationRepository) {
				repo.EXPECT().GetMasterRecords(gomock.Any(), testMasterPath).Return(testMasterRecords(), nil)
				repo.EXPECT().GetCarrierRows(gomock.Any(), testCarrierPath).
					Return(nil, errors.New("failed to read statement"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mock_usecase.NewMockReconciliationRepository(ctrl)
			tt.setup(repo)

			uc := newTestUseCase(repo)
			report, err := uc.Reconcile(context.Background(), "2026-07", testMasterPath, []string{testCarrierPath}, "")

			assert.Error(t, err)
			assert.Nil(t, report)
		})
	}
}

// A failing prior-month load degrades the cross-month checks instead of
// failing the run.
func TestReconciliationUseCase_PriorMonthFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockReconciliationRepository(ctrl)
	repo.EXPECT().GetMasterRecords(gomock.Any(), testMasterPath).Return(testMasterRecords(), nil)
	repo.EXPECT().GetCarrierRows(gomock.Any(), testCarrierPath).Return(testCarrierRows(), nil)
	repo.EXPECT().GetPriorMonthMatches(gomock.Any(), testPriorPath).
		Return(nil, errors.New("snapshot missing"))

	uc := newTestUseCase(repo)
	report, err := uc.Reconcile(context.Background(), "2026-07", testMasterPath, []string{testCarrierPath}, testPriorPath)

	assert.NoError(t, err)
	assert.NotNil(t, report)
	assert.Zero(t, report.Summary.DisputesByType[domain.DisputeChangedRate])
}

// Identical inputs must produce byte-identical reports: no randomness, no
// wall-clock dependence anywhere in the pipeline.
func TestReconciliationUseCase_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_usecase.NewMockReconciliationRepository(ctrl)
	repo.EXPECT().GetMasterRecords(gomock.Any(), testMasterPath).Return(testMasterRecords(), nil).Times(2)
	repo.EXPECT().GetCarrierRows(gomock.Any(), testCarrierPath).Return(testCarrierRows(), nil).Times(2)
	repo.EXPECT().GetPriorMonthMatches(gomock.Any(), testPriorPath).
		Return([]domain.MatchedRow{matchedRow("ABC123", "Acme Fiber", "220.00")}, nil).Times(2)

	uc := newTestUseCase(repo)

	first, err := uc.Reconcile(context.Background(), "2026-07", testMasterPath, []string{testCarrierPath}, testPriorPath)
	assert.NoError(t, err)
	second, err := uc.Reconcile(context.Background(), "2026-07", testMasterPath, []string{testCarrierPath}, testPriorPath)
	assert.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	assert.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	assert.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}
