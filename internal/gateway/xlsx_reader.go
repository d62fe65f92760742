package gateway

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"commission-reconciler/internal/domain"
)

// getCarrierRowsXLSX reads a carrier statement workbook. The first sheet is
// assumed to hold the normalized statement layout; carrier-specific column
// gymnastics belong to the upstream extractors, not here.
func (r *FileRepository) getCarrierRowsXLSX(ctx context.Context, path string) ([]domain.CarrierStatementRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open carrier statement workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q from %s: %w", sheets[0], path, err)
	}
	return r.parseStatementRows(path, raw)
}
