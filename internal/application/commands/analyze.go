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

// AnalyzeCommand classifies every crew member's documents and writes the
// analysis report. With SendStatus it also emails each member a full
// status summary: the always-resend flow with no ledger involvement.
type AnalyzeCommand struct {
	Roster  ports.RosterStore
	Mailer  ports.Mailer  // required only when SendStatus is set
	Drafter ports.Drafter // required only when SendStatus is set

	DateFormat string
	ReportFile string
	SendStatus bool
	Now        func() time.Time
	Logger     *slog.Logger
}

// NewAnalyzeCommand creates an analyze command that only writes the report
func NewAnalyzeCommand(roster ports.RosterStore, reportFile string) *AnalyzeCommand {
	return &AnalyzeCommand{
		Roster:     roster,
		DateFormat: domain.DefaultDateFormat,
		ReportFile: reportFile,
		Now:        time.Now,
		Logger:     slog.Default(),
	}
}

// Validate checks required collaborators for the selected mode
func (c *AnalyzeCommand) Validate() error {
	if c.Roster == nil {
		return &application.ValidationError{Field: "roster", Message: "roster store is required"}
	}
	if c.SendStatus {
		if c.Mailer == nil {
			return &application.ValidationError{Field: "mailer", Message: "mailer is required to send status emails"}
		}
		if c.Drafter == nil {
			return &application.ValidationError{Field: "drafter", Message: "drafter is required to send status emails"}
		}
	}
	return nil
}

// Execute runs the analysis; the report always reflects classification,
// independent of any email outcome.
func (c *AnalyzeCommand) Execute(ctx context.Context) (domain.AnalysisReport, error) {
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
	report := application.BuildReport(members, ref, c.DateFormat)

	if c.SendStatus {
		for _, member := range members {
			c.sendStatusEmail(ctx, member, ref)
		}
	}

	if c.ReportFile != "" {
		if err := application.WriteReport(c.ReportFile, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (c *AnalyzeCommand) sendStatusEmail(ctx context.Context, member domain.CrewMember, ref time.Time) {
	if member.Email == "" {
		c.Logger.Warn("skipping status email, no address", "crew_id", member.ID)
		return
	}
	if len(member.Documents) == 0 {
		c.Logger.Info("skipping status email, no documents to analyze", "crew_id", member.ID)
		return
	}

	var valid, expired, missing []domain.Document
	for _, doc := range member.Documents {
		switch domain.Classify(doc, ref, c.DateFormat) {
		case domain.StatusValid:
			valid = append(valid, doc)
		case domain.StatusExpired:
			expired = append(expired, doc)
		default:
			missing = append(missing, doc)
		}
	}

	subject := "Update on Your Certification Status"
	var prompt string
	switch {
	case len(expired) > 0 || len(missing) > 0:
		subject = "Action Required: Update Your Certification Status"
		prompt = application.StatusPrompt(member.DisplayName(), expired, missing)
	case len(valid) > 0:
		prompt = application.AllValidPrompt(member.DisplayName())
	default:
		return
	}

	body, err := c.Drafter.Draft(ctx, prompt)
	if err != nil {
		c.Logger.Error("failed to draft status email", "crew_id", member.ID, "error", err)
		return
	}
	if err := c.Mailer.Send(ctx, member.Email, subject, body); err != nil {
		c.Logger.Error("failed to send status email", "crew_id", member.ID, "error", err)
		return
	}
	c.Logger.Info("sent status email", "crew_id", member.ID, "email", member.Email)
}
