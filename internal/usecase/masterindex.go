package usecase

import "commission-reconciler/internal/domain"

// BuildMasterIndex builds the billing-item lookup the matcher joins against.
// Records with a blank billing item are skipped. On duplicate keys the
// incumbent wins unless its role codes are the N/A placeholder and the
// newcomer's are not.
//
// An empty result is not an error here; the caller decides whether an empty
// index is fatal for the run.
func BuildMasterIndex(records []domain.MasterRecord) map[string]domain.MasterRecord {
	index := make(map[string]domain.MasterRecord, len(records))
	for _, rec := range records {
		key := domain.NormalizeBillingItem(rec.BillingItem)
		if key == "" {
			continue
		}
		existing, ok := index[key]
		if ok && !(existing.HasPlaceholderRoles() && !rec.HasPlaceholderRoles()) {
			continue
		}
		index[key] = rec
	}
	return index
}
