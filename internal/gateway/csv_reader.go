package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"commission-reconciler/internal/domain"
)

// FileRepository implements the ReconciliationRepository interface over
// local files: CSV for the master export, CSV or XLSX for carrier
// statements, JSON snapshots for prior-month matched rows.
type FileRepository struct {
	log *logrus.Logger
}

// NewFileRepository creates a new repository instance.
func NewFileRepository(log *logrus.Logger) *FileRepository {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileRepository{log: log}
}

// Master export column headers. BillingItem and RoleCodes are required; a
// file missing either yields an empty record set rather than an error, and
// the caller treats the resulting empty index as fatal for the month.
const (
	colBillingItem     = "billing_item"
	colAccountName     = "account_name"
	colState           = "state"
	colProvider        = "provider"
	colRoleCodes       = "role_codes"
	colExpectedPercent = "expected_percent"
	colVPNotes         = "vp_notes"
	colRouting         = "routing"
)

// Carrier statement column headers.
const (
	colAccountNumber   = "account_number"
	colInvoiceTotal    = "invoice_total"
	colCommission      = "commission_amount"
	colCarrierName     = "carrier_name"
	colBillDescription = "bill_description"
	colBillPeriod      = "bill_period"
	colPaymentStatus   = "payment_status"
	colHeldMonths      = "held_months"
)

// GetMasterRecords reads and parses the compensation-key CSV export.
func (r *FileRepository) GetMasterRecords(ctx context.Context, path string) ([]domain.MasterRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open master file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	cols := headerIndex(header)
	if _, ok := cols[colBillingItem]; !ok {
		r.log.WithField("path", path).Warn("master file has no billing_item column; returning no records")
		return nil, nil
	}
	if _, ok := cols[colRoleCodes]; !ok {
		r.log.WithField("path", path).Warn("master file has no role_codes column; returning no records")
		return nil, nil
	}

	var records []domain.MasterRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		expected := decimal.Zero
		if raw := cell(record, cols, colExpectedPercent); raw != "" {
			expected, err = decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
			if err != nil {
				r.log.WithFields(logrus.Fields{
					"path":  path,
					"value": raw,
				}).Warn("unparseable expected percent; using zero")
				expected = decimal.Zero
			}
		}

		records = append(records, domain.MasterRecord{
			BillingItem:     cell(record, cols, colBillingItem),
			AccountName:     cell(record, cols, colAccountName),
			State:           cell(record, cols, colState),
			Provider:        cell(record, cols, colProvider),
			RoleCodes:       splitList(cell(record, cols, colRoleCodes)),
			ExpectedPercent: expected,
			VPNotes:         cell(record, cols, colVPNotes),
			Routing:         parseRoutingFlag(cell(record, cols, colRouting)),
		})
	}
	return records, nil
}

// GetCarrierRows reads one carrier statement file, dispatching on extension:
// .xlsx goes through the spreadsheet reader, everything else is CSV.
func (r *FileRepository) GetCarrierRows(ctx context.Context, path string) ([]domain.CarrierStatementRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return r.getCarrierRowsXLSX(ctx, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open carrier statement file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	var raw [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		raw = append(raw, record)
	}
	return r.parseStatementRows(path, raw)
}

// parseStatementRows converts raw sheet/CSV cells into statement rows. Rows
// with unparseable money are logged and skipped so one bad row never aborts
// a whole month.
func (r *FileRepository) parseStatementRows(path string, raw [][]string) ([]domain.CarrierStatementRow, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("statement file %s is empty", path)
	}
	cols := headerIndex(raw[0])

	var rows []domain.CarrierStatementRow
	for _, record := range raw[1:] {
		invoice, err := ParseCurrency(cell(record, cols, colInvoiceTotal))
		if err != nil {
			r.logBadRow(path, record, cols, err)
			continue
		}
		commission, err := ParseCurrency(cell(record, cols, colCommission))
		if err != nil {
			r.logBadRow(path, record, cols, err)
			continue
		}

		rows = append(rows, domain.CarrierStatementRow{
			State:            cell(record, cols, colState),
			AccountName:      cell(record, cols, colAccountName),
			AccountNumber:    cell(record, cols, colAccountNumber),
			BillingItem:      cell(record, cols, colBillingItem),
			InvoiceTotal:     invoice,
			CommissionAmount: commission,
			Provider:         cell(record, cols, colProvider),
			CarrierName:      cell(record, cols, colCarrierName),
			BillDescription:  cell(record, cols, colBillDescription),
			BillPeriod:       cell(record, cols, colBillPeriod),
			PaymentStatus:    cell(record, cols, colPaymentStatus),
			HeldMonths:       splitList(cell(record, cols, colHeldMonths)),
		})
	}
	return rows, nil
}

func (r *FileRepository) logBadRow(path string, record []string, cols map[string]int, err error) {
	r.log.WithFields(logrus.Fields{
		"path":         path,
		"billing_item": cell(record, cols, colBillingItem),
	}).WithError(err).Warn("skipping statement row with unparseable currency")
}

// headerIndex maps normalized header names to their column positions.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		cols[key] = i
	}
	return cols
}

func cell(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// splitList splits multi-value cells (role codes, held months) on the
// separators the upstream exports use.
func splitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseRoutingFlag maps the master export's billing-type cell to a routing
// flag: ZMap rows have their own lane, and anything other than MRC billing
// routes non-MRC. Blank cells mean normal MRC billing.
func parseRoutingFlag(raw string) domain.RoutingFlag {
	val := strings.ToUpper(strings.TrimSpace(raw))
	val = strings.ReplaceAll(val, "-", "")
	switch val {
	case "", "MRC", "NORMAL":
		return domain.RoutingNormal
	case "ZMAP":
		return domain.RoutingZMap
	default:
		return domain.RoutingNonMRC
	}
}
