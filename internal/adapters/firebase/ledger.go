package firebase

import (
	"context"
	"fmt"
	"time"
)

// Ledger entries live under each member's own node, so all reads and
// writes for a member stay inside that member's subtree:
//
//	<crewPath>/<crewID>/notification_log/<notificationKey> = "2025-08-28"
const notificationLogNode = "notification_log"

// ledgerValueFormat is the stored recording date
const ledgerValueFormat = "2006-01-02"

// HasNotified checks whether a ledger entry exists for the key. A read
// failure is surfaced as an error, never as "not notified".
func (s *Store) HasNotified(ctx context.Context, crewID, notificationKey string) (bool, error) {
	var value any
	ref := s.client.NewRef(notificationLogPath(s.crewPath, crewID, notificationKey))
	if err := ref.Get(ctx, &value); err != nil {
		return false, fmt.Errorf("failed to read notification log %s/%s: %w", crewID, notificationKey, err)
	}
	return value != nil, nil
}

// RecordNotified upserts the ledger entry with the recording date.
// Writing the same key twice leaves the same effective state.
func (s *Store) RecordNotified(ctx context.Context, crewID, notificationKey string, at time.Time) error {
	ref := s.client.NewRef(notificationLogPath(s.crewPath, crewID, notificationKey))
	if err := ref.Set(ctx, at.Format(ledgerValueFormat)); err != nil {
		return fmt.Errorf("failed to write notification log %s/%s: %w", crewID, notificationKey, err)
	}
	return nil
}

func notificationLogPath(crewPath, crewID, notificationKey string) string {
	return crewPath + "/" + crewID + "/" + notificationLogNode + "/" + notificationKey
}
