package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"commission-reconciler/internal/domain"
)

// ErrEmptyMasterIndex means no usable compensation-key entries were loaded.
// Matching cannot proceed: every row would silently classify as a new
// account, so the whole month fails instead.
var ErrEmptyMasterIndex = errors.New("master index is empty; no matches possible")

// ReconciliationUseCase orchestrates one processing month: build the master
// index, ingest each carrier's rows, detect disputes, then build seller
// statements once all carriers are in.
type ReconciliationUseCase struct {
	repo     ReconciliationRepository
	table    domain.RoleTable
	detector *DisputeDetector
	log      *logrus.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo ReconciliationRepository, table domain.RoleTable, detectorCfg DetectorConfig, log *logrus.Logger) *ReconciliationUseCase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ReconciliationUseCase{
		repo:     repo,
		table:    table,
		detector: NewDisputeDetector(detectorCfg, log),
		log:      log,
	}
}

// Ingest is phase one of the two-phase API: match one carrier's rows
// against the index. The orchestrator calls it once per carrier and must
// not build statements until every carrier for the month has been ingested.
func (uc *ReconciliationUseCase) Ingest(rows []domain.CarrierStatementRow, index map[string]domain.MasterRecord) MatchResult {
	return Match(rows, index, uc.table)
}

// Reconcile runs the full pipeline for one processing month. priorPath may
// be empty; the cross-month dispute checks then degrade per their failure
// semantics instead of failing the run.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, month, masterPath string, carrierPaths []string, priorPath string) (*domain.MonthReport, error) {
	records, err := uc.repo.GetMasterRecords(ctx, masterPath)
	if err != nil {
		return nil, fmt.Errorf("could not load master records: %w", err)
	}

	index := BuildMasterIndex(records)
	if len(index) == 0 {
		return nil, ErrEmptyMasterIndex
	}

	report := &domain.MonthReport{
		Summary: domain.MonthSummary{
			Month:          month,
			DisputesByType: make(map[domain.DisputeType]int),
		},
		Matched:   make([]domain.MatchedRow, 0),
		Unmatched: make([]domain.CarrierStatementRow, 0),
	}

	// Phase one: ingest per carrier.
	for _, path := range carrierPaths {
		rows, err := uc.repo.GetCarrierRows(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("could not load carrier rows from %s: %w", path, err)
		}
		res := uc.Ingest(rows, index)
		report.Matched = append(report.Matched, res.Matched...)
		report.Unmatched = append(report.Unmatched, res.Unmatched...)
		report.Warnings = append(report.Warnings, res.Warnings...)
		report.Summary.RowsProcessed += len(rows)
	}

	prior, havePrior := uc.loadPriorMonth(ctx, priorPath)
	report.Disputes = uc.detector.Detect(DetectInput{
		Matched:      report.Matched,
		Unmatched:    report.Unmatched,
		Index:        index,
		PriorMatched: prior,
		HavePrior:    havePrior,
	})

	// Phase two: one statement build over the whole month.
	report.Statements = AggregateStatements(report.Matched)

	summarize(report)
	return report, nil
}

// loadPriorMonth fetches the previous month's matched rows. Absent or
// unreadable prior data degrades the cross-month checks rather than failing
// the month.
func (uc *ReconciliationUseCase) loadPriorMonth(ctx context.Context, path string) ([]domain.MatchedRow, bool) {
	if path == "" {
		return nil, false
	}
	prior, err := uc.repo.GetPriorMonthMatches(ctx, path)
	if err != nil {
		uc.log.WithFields(logrus.Fields{
			"path": path,
		}).WithError(err).Warn("could not load prior month's matched rows")
		return nil, false
	}
	return prior, true
}

// summarize fills the report's rollup counters from its own line data.
func summarize(report *domain.MonthReport) {
	s := &report.Summary
	s.RowsMatched = len(report.Matched)
	s.RowsUnmatched = len(report.Unmatched)
	s.TotalCommission = decimal.Zero
	for _, m := range report.Matched {
		s.TotalCommission = s.TotalCommission.Add(m.Row.CommissionAmount)
	}
	s.TotalSellerComp = decimal.Zero
	for _, st := range report.Statements {
		if st.Group == domain.CatchAllRole {
			continue
		}
		s.TotalSellerComp = s.TotalSellerComp.Add(st.TotalSellerComp)
	}
	for _, d := range report.Disputes {
		s.DisputesByType[d.Type]++
	}
}
