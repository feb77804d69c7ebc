package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"certwatch/internal/application"
	"certwatch/internal/domain"
)

// --- fakes ---

type fakeRoster struct {
	members []domain.CrewMember
	err     error
}

func (r *fakeRoster) FetchCrew(context.Context) ([]domain.CrewMember, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.members, nil
}

func (r *fakeRoster) FetchMember(_ context.Context, crewID string) (*domain.CrewMember, error) {
	for _, m := range r.members {
		if m.ID == crewID {
			member := m
			return &member, nil
		}
	}
	return nil, fmt.Errorf("crew member %s: %w", crewID, application.ErrNotFound)
}

type fakeLedger struct {
	entries    map[string]bool // "crewID/key"
	recorded   []string
	failHasFor map[string]bool // crewID → fail reads
	failRecord bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: map[string]bool{}}
}

func (l *fakeLedger) HasNotified(_ context.Context, crewID, key string) (bool, error) {
	if l.failHasFor[crewID] {
		return false, errors.New("storage unavailable")
	}
	return l.entries[crewID+"/"+key], nil
}

func (l *fakeLedger) RecordNotified(_ context.Context, crewID, key string, _ time.Time) error {
	if l.failRecord {
		return errors.New("storage unavailable")
	}
	l.entries[crewID+"/"+key] = true
	l.recorded = append(l.recorded, crewID+"/"+key)
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakeDrafter struct {
	unavailable bool
	err         error
	prompts     []string
}

func (d *fakeDrafter) Draft(_ context.Context, prompt string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.prompts = append(d.prompts, prompt)
	return "Dear crew member, please renew your documents.", nil
}

func (d *fakeDrafter) Available() bool {
	return !d.unavailable
}

// --- helpers ---

var notifyRef = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestNotify(roster *fakeRoster, ledger *fakeLedger, mailer *fakeMailer, drafter *fakeDrafter) *NotifyCommand {
	cmd := NewNotifyCommand(roster, ledger, mailer, drafter)
	cmd.Now = func() time.Time { return notifyRef }
	cmd.Logger = quietLogger()
	return cmd
}

func expiredMember(id, email string) domain.CrewMember {
	return domain.CrewMember{
		ID:    id,
		Email: email,
		Documents: []domain.Document{
			{Title: "Seaman's Book", Number: "A123", ExpiryDate: "01-Jan-2020"},
		},
	}
}

// --- tests ---

func TestNotifySendsAndRecords(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "anita@example.com")}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{}
	drafter := &fakeDrafter{}

	report, err := newTestNotify(roster, ledger, mailer, drafter).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("got %d emails, want 1", len(mailer.sent))
	}
	if mailer.sent[0].to != "anita@example.com" {
		t.Errorf("sent to %q", mailer.sent[0].to)
	}
	if !ledger.entries["crew_001/EXPIRED_A123"] {
		t.Error("ledger entry EXPIRED_A123 not recorded after successful send")
	}
	if got := report.Outcomes[0].Status; got != StatusNotified {
		t.Errorf("outcome = %q, want %q", got, StatusNotified)
	}
	if report.Outcomes[0].Notified != 1 {
		t.Errorf("notified count = %d, want 1", report.Outcomes[0].Notified)
	}
}

func TestNotifySecondRunConverges(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "anita@example.com")}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{}
	drafter := &fakeDrafter{}

	if _, err := newTestNotify(roster, ledger, mailer, drafter).Execute(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := newTestNotify(roster, ledger, mailer, drafter).Execute(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Errorf("got %d emails after two runs, want 1", len(mailer.sent))
	}
	if got := report.Outcomes[0].Status; got != StatusNothingNew {
		t.Errorf("second-run outcome = %q, want %q", got, StatusNothingNew)
	}
}

func TestNotifyDispatchFailureWritesNoLedger(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "anita@example.com")}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	drafter := &fakeDrafter{}

	report, err := newTestNotify(roster, ledger, mailer, drafter).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ledger.recorded) != 0 {
		t.Errorf("ledger written despite dispatch failure: %v", ledger.recorded)
	}
	if got := report.Outcomes[0].Status; got != StatusFailed {
		t.Errorf("outcome = %q, want %q", got, StatusFailed)
	}

	// The batch is retried wholesale on the next run once dispatch works
	mailer.err = nil
	report, err = newTestNotify(roster, ledger, mailer, drafter).Execute(context.Background())
	if err != nil {
		t.Fatalf("retry run: %v", err)
	}
	if len(mailer.sent) != 1 || report.Outcomes[0].Status != StatusNotified {
		t.Errorf("retry run did not resend: sent=%d outcome=%q", len(mailer.sent), report.Outcomes[0].Status)
	}
}

func TestNotifyDraftFailureSkipsSend(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "anita@example.com")}}
	ledger := newFakeLedger()
	mailer := &fakeMailer{}
	drafter := &fakeDrafter{err: errors.New("model overloaded")}

	report, err := newTestNotify(roster, ledger, mailer, drafter).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("email sent despite draft failure")
	}
	if len(ledger.recorded) != 0 {
		t.Error("ledger written despite draft failure")
	}
	if report.Outcomes[0].Status != StatusFailed {
		t.Errorf("outcome = %q, want %q", report.Outcomes[0].Status, StatusFailed)
	}
}

func TestNotifyDrafterUnavailable(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "anita@example.com")}}
	mailer := &fakeMailer{}
	drafter := &fakeDrafter{unavailable: true}

	report, err := newTestNotify(roster, newFakeLedger(), mailer, drafter).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("email sent with unconfigured drafter")
	}
	if report.Outcomes[0].Status != StatusFailed {
		t.Errorf("outcome = %q, want %q", report.Outcomes[0].Status, StatusFailed)
	}
}

func TestNotifyFaultIsolation(t *testing.T) {
	// A ledger failure for crew_001 must not stop crew_002
	roster := &fakeRoster{members: []domain.CrewMember{
		expiredMember("crew_001", "anita@example.com"),
		expiredMember("crew_002", "ravi@example.com"),
	}}
	ledger := newFakeLedger()
	ledger.failHasFor = map[string]bool{"crew_001": true}
	mailer := &fakeMailer{}
	drafter := &fakeDrafter{}

	report, err := newTestNotify(roster, ledger, mailer, drafter).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Outcomes[0].Status != StatusFailed {
		t.Errorf("crew_001 outcome = %q, want %q", report.Outcomes[0].Status, StatusFailed)
	}
	if report.Outcomes[1].Status != StatusNotified {
		t.Errorf("crew_002 outcome = %q, want %q", report.Outcomes[1].Status, StatusNotified)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].to != "ravi@example.com" {
		t.Errorf("sent = %+v, want exactly ravi@example.com", mailer.sent)
	}
	if len(report.Failures()) != 1 {
		t.Errorf("failures = %d, want 1", len(report.Failures()))
	}
}

func TestNotifySkipsMemberWithoutEmail(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "")}}
	mailer := &fakeMailer{}

	report, err := newTestNotify(roster, newFakeLedger(), mailer, &fakeDrafter{}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("email sent to member without address")
	}
	if report.Outcomes[0].Status != StatusSkippedNoEmail {
		t.Errorf("outcome = %q, want %q", report.Outcomes[0].Status, StatusSkippedNoEmail)
	}

	// Classification still lands in the analysis report
	if _, ok := report.Analysis["no-email-found-for-crew_001"]; !ok {
		t.Error("member without email missing from analysis report")
	}
}

func TestNotifyUntrackableNeverNotified(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{{
		ID:    "crew_001",
		Email: "anita@example.com",
		Documents: []domain.Document{
			{Title: "Old Cert", ExpiryDate: "01-Jan-2020"}, // expired, no number
		},
	}}}
	mailer := &fakeMailer{}

	report, err := newTestNotify(roster, newFakeLedger(), mailer, &fakeDrafter{}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("untrackable document triggered an email")
	}
	outcome := report.Outcomes[0]
	if outcome.Status != StatusNothingNew || outcome.Untrackable != 1 {
		t.Errorf("outcome = %+v, want nothing-new with 1 untrackable", outcome)
	}
	// It still shows up as expired in the analysis report
	breakdown := report.Analysis["anita@example.com"]
	if len(breakdown.Expired) != 1 {
		t.Errorf("analysis expired = %v, want the untrackable title", breakdown.Expired)
	}
}

func TestNotifyNoDedupe(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "anita@example.com")}}
	ledger := newFakeLedger()
	ledger.entries["crew_001/EXPIRED_A123"] = true // would normally suppress
	mailer := &fakeMailer{}

	cmd := newTestNotify(roster, ledger, mailer, &fakeDrafter{})
	cmd.Dedupe = false

	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Errorf("got %d emails, want 1 (ledger ignored)", len(mailer.sent))
	}
	if len(ledger.recorded) != 0 {
		t.Errorf("ledger written in no-dedupe mode: %v", ledger.recorded)
	}
}

func TestNotifyRecordFailureReported(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "anita@example.com")}}
	ledger := newFakeLedger()
	ledger.failRecord = true
	mailer := &fakeMailer{}

	report, err := newTestNotify(roster, ledger, mailer, &fakeDrafter{}).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The send happened, but the unrecorded batch must be visible as a failure
	if len(mailer.sent) != 1 {
		t.Errorf("got %d emails, want 1", len(mailer.sent))
	}
	if report.Outcomes[0].Status != StatusFailed {
		t.Errorf("outcome = %q, want %q", report.Outcomes[0].Status, StatusFailed)
	}
}

func TestNotifyBulkFetchFailureAbortsRun(t *testing.T) {
	roster := &fakeRoster{err: errors.New("database unreachable")}

	_, err := newTestNotify(roster, newFakeLedger(), &fakeMailer{}, &fakeDrafter{}).Execute(context.Background())
	if err == nil {
		t.Fatal("expected error when bulk fetch fails, got nil")
	}
}

func TestNotifyWritesAnalysisReportFile(t *testing.T) {
	roster := &fakeRoster{members: []domain.CrewMember{expiredMember("crew_001", "anita@example.com")}}
	path := filepath.Join(t.TempDir(), "report.json")

	cmd := newTestNotify(roster, newFakeLedger(), &fakeMailer{}, &fakeDrafter{})
	cmd.ReportFile = path

	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("analysis report not written: %v", err)
	}
}

func TestNotifyValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NotifyCommand)
	}{
		{"missing roster", func(c *NotifyCommand) { c.Roster = nil }},
		{"missing ledger with dedupe", func(c *NotifyCommand) { c.Ledger = nil }},
		{"missing mailer", func(c *NotifyCommand) { c.Mailer = nil }},
		{"missing drafter", func(c *NotifyCommand) { c.Drafter = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestNotify(&fakeRoster{}, newFakeLedger(), &fakeMailer{}, &fakeDrafter{})
			tt.mutate(cmd)
			if err := cmd.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	// Dedupe off makes the ledger optional
	cmd := newTestNotify(&fakeRoster{}, nil, &fakeMailer{}, &fakeDrafter{})
	cmd.Dedupe = false
	if err := cmd.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
