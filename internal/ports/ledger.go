package ports

import (
	"context"
	"time"
)

// NotificationLedger is the durable record of which expirations have
// already triggered a sent notification.
//
// HasNotified must report storage failures as errors so callers can skip
// the member instead of assuming "not notified" and double-sending.
// An absent entry is the common case, not an error.
type NotificationLedger interface {
	HasNotified(ctx context.Context, crewID, notificationKey string) (bool, error)

	// RecordNotified is an idempotent upsert; writing the same key twice
	// has the same effect as writing it once
	RecordNotified(ctx context.Context, crewID, notificationKey string, at time.Time) error
}
