package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"commission-reconciler/internal/domain"
)

// GetPriorMonthMatches loads a previous month's matched rows from a JSON
// snapshot written by WriteMatchedRows.
func (r *FileRepository) GetPriorMonthMatches(ctx context.Context, path string) ([]domain.MatchedRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prior month snapshot %s: %w", path, err)
	}

	var rows []domain.MatchedRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode prior month snapshot %s: %w", path, err)
	}
	return rows, nil
}

// WriteMatchedRows persists a month's matched rows so the next month's run
// can feed them to the cross-month dispute checks.
func (r *FileRepository) WriteMatchedRows(ctx context.Context, path string, rows []domain.MatchedRow) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode matched rows: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}
