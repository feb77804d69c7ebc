package application

import (
	"context"
	"fmt"
	"time"

	"certwatch/internal/domain"
	"certwatch/internal/ports"
)

// Reconciler computes which of a member's expirations need a notification
// this run. Repeated runs against unchanged documents and an unchanged
// ledger produce an empty ToNotify set.
type Reconciler struct {
	Ledger     ports.NotificationLedger
	DateFormat string

	// Dedupe controls the ledger filter. When false every expired,
	// numbered document is returned on every run (and nothing is ever
	// recorded), matching the always-resend variant.
	Dedupe bool
}

// NewReconciler creates a deduplicating reconciler
func NewReconciler(ledger ports.NotificationLedger, dateFormat string) *Reconciler {
	return &Reconciler{
		Ledger:     ledger,
		DateFormat: dateFormat,
		Dedupe:     true,
	}
}

// ReconcileResult holds the partitioned outcome for one crew member
type ReconcileResult struct {
	// ToNotify are expired, numbered documents with no ledger entry,
	// in the member's original document order
	ToNotify []domain.Document

	// Untrackable are expired documents without a document number.
	// They are reported but can never be notified or recorded.
	Untrackable []domain.Document
}

// Reconcile classifies the member's documents and filters already-notified
// expirations through the ledger. A ledger read failure aborts the whole
// member: assuming "not notified" on a flaky store would double-send.
func (r *Reconciler) Reconcile(ctx context.Context, member domain.CrewMember, ref time.Time) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	for _, doc := range member.Documents {
		if domain.Classify(doc, ref, r.DateFormat) != domain.StatusExpired {
			continue
		}
		if !doc.Trackable() {
			result.Untrackable = append(result.Untrackable, doc)
			continue
		}
		if r.Dedupe {
			key := domain.NotificationKey(doc.Number)
			notified, err := r.Ledger.HasNotified(ctx, member.ID, key)
			if err != nil {
				return nil, fmt.Errorf("ledger check for %s/%s: %w", member.ID, key, err)
			}
			if notified {
				continue
			}
		}
		result.ToNotify = append(result.ToNotify, doc)
	}

	return result, nil
}
