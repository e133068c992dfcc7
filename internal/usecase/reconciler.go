package usecase

import (
	"sort"

	"courtcast-service/internal/domain/entity"
)

// ReconcileResult is the outcome of merging a freshly extracted batch
// into the persisted history.
type ReconcileResult struct {
	// Merged is the post-merge ledger, newest first
	Merged []*entity.BookingAlert
	// NewIDs are ids present in the batch but not in history
	NewIDs []string
	// Upserts counts distinct batch ids applied (inserted or replaced)
	Upserts int
}

// Reconcile combines the persisted history with a batch of candidate
// records. For any id present in both, the batch record wins by
// wholesale replacement. Ids only in history are retained unchanged.
// The merge is idempotent: offering the same batch twice against the
// same history yields identical output.
func Reconcile(history, batch []*entity.BookingAlert) ReconcileResult {
	byID := make(map[string]*entity.BookingAlert, len(history)+len(batch))
	order := make([]string, 0, len(history)+len(batch))

	for _, alert := range history {
		if _, ok := byID[alert.ID]; ok {
			continue
		}
		byID[alert.ID] = alert
		order = append(order, alert.ID)
	}

	var newIDs []string
	applied := make(map[string]bool, len(batch))
	for _, alert := range batch {
		if _, exists := byID[alert.ID]; !exists {
			order = append(order, alert.ID)
			newIDs = append(newIDs, alert.ID)
		}
		byID[alert.ID] = alert
		applied[alert.ID] = true
	}

	merged := make([]*entity.BookingAlert, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	return ReconcileResult{
		Merged:  merged,
		NewIDs:  newIDs,
		Upserts: len(applied),
	}
}
