package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"certwatch/internal/application"
	"certwatch/internal/domain"
	"certwatch/internal/ports"
)

// MemberStatus is the per-member outcome of a notify run
type MemberStatus string

const (
	StatusNotified       MemberStatus = "notified"
	StatusNothingNew     MemberStatus = "no new expirations"
	StatusSkippedNoEmail MemberStatus = "skipped: no email address"
	StatusSkippedNoDocs  MemberStatus = "skipped: no documents"
	StatusFailed         MemberStatus = "failed"
)

// MemberOutcome records how one crew member was handled so an operator can
// audit the run
type MemberOutcome struct {
	CrewID      string
	Name        string
	Email       string
	Status      MemberStatus
	Notified    int // documents included in a successfully sent email
	Untrackable int // expired documents with no number to track
	Err         error
}

// RunReport aggregates a whole notify run
type RunReport struct {
	Outcomes []MemberOutcome
	Analysis domain.AnalysisReport
}

// Failures returns the outcomes that ended in failure
func (r *RunReport) Failures() []MemberOutcome {
	var failed []MemberOutcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// NotifyCommand runs one best-effort notification pass over the roster
type NotifyCommand struct {
	Roster  ports.RosterStore
	Ledger  ports.NotificationLedger
	Mailer  ports.Mailer
	Drafter ports.Drafter

	DateFormat string
	Subject    string
	ReportFile string // skipped when empty
	Dedupe     bool
	Now        func() time.Time
	Logger     *slog.Logger
}

// NewNotifyCommand creates a notify command with the deduplicating defaults
func NewNotifyCommand(roster ports.RosterStore, ledger ports.NotificationLedger, mailer ports.Mailer, drafter ports.Drafter) *NotifyCommand {
	return &NotifyCommand{
		Roster:     roster,
		Ledger:     ledger,
		Mailer:     mailer,
		Drafter:    drafter,
		DateFormat: domain.DefaultDateFormat,
		Subject:    "Urgent: Action Required on Expired Certifications",
		Dedupe:     true,
		Now:        time.Now,
		Logger:     slog.Default(),
	}
}

// Validate checks that the command has its required collaborators
func (c *NotifyCommand) Validate() error {
	if c.Roster == nil {
		return &application.ValidationError{Field: "roster", Message: "roster store is required"}
	}
	if c.Dedupe && c.Ledger == nil {
		return &application.ValidationError{Field: "ledger", Message: "notification ledger is required when deduplication is on"}
	}
	if c.Mailer == nil {
		return &application.ValidationError{Field: "mailer", Message: "mailer is required"}
	}
	if c.Drafter == nil {
		return &application.ValidationError{Field: "drafter", Message: "drafter is required"}
	}
	return nil
}

// Execute fetches the roster and processes every member. A failure on one
// member never aborts the others; only a failed bulk fetch aborts the run.
func (c *NotifyCommand) Execute(ctx context.Context) (*RunReport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	members, err := c.Roster.FetchCrew(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crew data: %w", err)
	}
	if len(members) == 0 {
		c.Logger.Warn("no crew data found")
	}

	ref := c.Now()
	report := &RunReport{
		Analysis: application.BuildReport(members, ref, c.DateFormat),
	}

	reconciler := &application.Reconciler{
		Ledger:     c.Ledger,
		DateFormat: c.DateFormat,
		Dedupe:     c.Dedupe,
	}

	for _, member := range members {
		outcome := c.processMember(ctx, reconciler, member, ref)
		report.Outcomes = append(report.Outcomes, outcome)
		c.logOutcome(outcome)
	}

	if c.ReportFile != "" {
		if err := application.WriteReport(c.ReportFile, report.Analysis); err != nil {
			c.Logger.Error("failed to save analysis report", "path", c.ReportFile, "error", err)
		}
	}

	return report, nil
}

func (c *NotifyCommand) processMember(ctx context.Context, reconciler *application.Reconciler, member domain.CrewMember, ref time.Time) MemberOutcome {
	outcome := MemberOutcome{
		CrewID: member.ID,
		Name:   member.DisplayName(),
		Email:  member.Email,
	}

	if len(member.Documents) == 0 {
		outcome.Status = StatusSkippedNoDocs
		return outcome
	}

	result, err := reconciler.Reconcile(ctx, member, ref)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}
	outcome.Untrackable = len(result.Untrackable)
	for _, doc := range result.Untrackable {
		c.Logger.Warn("expired document cannot be tracked, skipping notification",
			"crew_id", member.ID, "document", doc.Title)
	}

	if len(result.ToNotify) == 0 {
		outcome.Status = StatusNothingNew
		return outcome
	}
	if member.Email == "" {
		outcome.Status = StatusSkippedNoEmail
		return outcome
	}

	if err := c.notify(ctx, member, result.ToNotify); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	outcome.Notified = len(result.ToNotify)
	if err := c.recordBatch(ctx, member.ID, result.ToNotify, ref); err != nil {
		// The email went out; the unrecorded documents will resend next
		// run, which is the safe side of the invariant to fail on.
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	outcome.Status = StatusNotified
	return outcome
}

// notify drafts and sends the batch email. No ledger entry is written
// unless the send succeeds.
func (c *NotifyCommand) notify(ctx context.Context, member domain.CrewMember, batch []domain.Document) error {
	if !c.Drafter.Available() {
		return fmt.Errorf("drafter: %w", application.ErrNotConfigured)
	}

	prompt := application.ExpiryPrompt(member.DisplayName(), batch)
	body, err := c.Drafter.Draft(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to draft email: %w", err)
	}

	if err := c.Mailer.Send(ctx, member.Email, c.Subject, body); err != nil {
		return &application.DispatchError{CrewID: member.ID, Reason: err.Error()}
	}
	return nil
}

// recordBatch writes one ledger entry per notified document. Dedupe off
// means nothing is ever recorded.
func (c *NotifyCommand) recordBatch(ctx context.Context, crewID string, batch []domain.Document, at time.Time) error {
	if !c.Dedupe {
		return nil
	}
	var firstErr error
	for _, doc := range batch {
		key := domain.NotificationKey(doc.Number)
		if err := c.Ledger.RecordNotified(ctx, crewID, key, at); err != nil {
			c.Logger.Error("failed to record notification", "crew_id", crewID, "key", key, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to record notification %s/%s: %w", crewID, key, err)
			}
		}
	}
	return firstErr
}

func (c *NotifyCommand) logOutcome(o MemberOutcome) {
	switch o.Status {
	case StatusNotified:
		c.Logger.Info("notified crew member", "crew_id", o.CrewID, "email", o.Email, "documents", o.Notified)
	case StatusFailed:
		c.Logger.Error("failed to process crew member", "crew_id", o.CrewID, "error", o.Err)
	default:
		c.Logger.Info("processed crew member", "crew_id", o.CrewID, "status", string(o.Status))
	}
}
