package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"certwatch/internal/ports"
)

// Ledger implements ports.NotificationLedger on a local SQLite file.
// It is the backend for development and air-gapped runs where the
// Realtime Database should not hold notification state.
type Ledger struct {
	db *sql.DB
}

// Ensure Ledger implements NotificationLedger
var _ ports.NotificationLedger = (*Ledger)(nil)

// Open creates or opens the ledger database at the given path
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	// Pragmas + schema in a single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS notification_log (
			crew_id          TEXT NOT NULL,
			notification_key TEXT NOT NULL,
			recorded_at      TEXT NOT NULL,
			PRIMARY KEY (crew_id, notification_key)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup ledger database: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the underlying database
func (l *Ledger) Close() error {
	return l.db.Close()
}

// HasNotified checks for an existing entry; absence is not an error
func (l *Ledger) HasNotified(ctx context.Context, crewID, notificationKey string) (bool, error) {
	var one int
	err := l.db.QueryRowContext(ctx,
		`SELECT 1 FROM notification_log WHERE crew_id = ? AND notification_key = ?`,
		crewID, notificationKey,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read notification log %s/%s: %w", crewID, notificationKey, err)
	}
	return true, nil
}

// RecordNotified upserts the entry; last write wins
func (l *Ledger) RecordNotified(ctx context.Context, crewID, notificationKey string, at time.Time) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO notification_log (crew_id, notification_key, recorded_at)
		VALUES (?, ?, ?)
	`, crewID, notificationKey, at.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to write notification log %s/%s: %w", crewID, notificationKey, err)
	}
	return nil
}
