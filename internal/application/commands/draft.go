package commands

import (
	"context"
	"fmt"
	"time"

	"certwatch/internal/application"
	"certwatch/internal/domain"
	"certwatch/internal/ports"
)

// DraftResult holds a generated email preview for one crew member
type DraftResult struct {
	Member  domain.CrewMember
	Subject string
	Body    string
	Expired []domain.Document
}

// DraftCommand generates the expiry email body for a single crew member
// without sending anything. Useful for reviewing the drafter's output.
type DraftCommand struct {
	Roster  ports.RosterStore
	Drafter ports.Drafter

	CrewID     string
	DateFormat string
	Now        func() time.Time
}

// NewDraftCommand creates a draft command for the given crew member
func NewDraftCommand(roster ports.RosterStore, drafter ports.Drafter, crewID string) *DraftCommand {
	return &DraftCommand{
		Roster:     roster,
		Drafter:    drafter,
		CrewID:     crewID,
		DateFormat: domain.DefaultDateFormat,
		Now:        time.Now,
	}
}

// Validate checks the command inputs
func (c *DraftCommand) Validate() error {
	if c.CrewID == "" {
		return &application.ValidationError{Field: "crewID", Message: "crew ID is required"}
	}
	if c.Roster == nil {
		return &application.ValidationError{Field: "roster", Message: "roster store is required"}
	}
	if c.Drafter == nil {
		return &application.ValidationError{Field: "drafter", Message: "drafter is required"}
	}
	return nil
}

// Execute fetches the member, classifies their documents, and drafts the
// expiry email for whatever is currently expired.
func (c *DraftCommand) Execute(ctx context.Context) (*DraftResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.Drafter.Available() {
		return nil, fmt.Errorf("drafter: %w", application.ErrNotConfigured)
	}

	member, err := c.Roster.FetchMember(ctx, c.CrewID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch crew member %s: %w", c.CrewID, err)
	}

	ref := c.Now()
	var expired []domain.Document
	for _, doc := range member.Documents {
		if domain.Classify(doc, ref, c.DateFormat) == domain.StatusExpired {
			expired = append(expired, doc)
		}
	}
	if len(expired) == 0 {
		return nil, fmt.Errorf("crew member %s has no expired documents", c.CrewID)
	}

	prompt := application.ExpiryPrompt(member.DisplayName(), expired)
	body, err := c.Drafter.Draft(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to draft email: %w", err)
	}

	return &DraftResult{
		Member:  *member,
		Subject: "Urgent: Action Required on Expired Certifications",
		Body:    body,
		Expired: expired,
	}, nil
}
