package application

import (
	"fmt"
	"strings"

	"certwatch/internal/domain"
)

// ExpiryPrompt builds the drafting prompt for a batch of newly expired
// documents, used by the deduplicating notify run.
func ExpiryPrompt(name string, expired []domain.Document) string {
	return fmt.Sprintf(`Write a professional and helpful email to our crew member, %s.
The email must clearly state that some of their documents have expired and require urgent attention.
Maintain a supportive tone and instruct them to contact the crewing department for assistance with renewal.

List the expired documents clearly under a heading 'Urgent: Expired Documents'. Here is the list:
%s`, name, expiredLines(expired))
}

// StatusPrompt builds the drafting prompt for a full status email listing
// expired documents and documents with no expiry on record.
func StatusPrompt(name string, expired, missing []domain.Document) string {
	var missingLines strings.Builder
	for i, d := range missing {
		if i > 0 {
			missingLines.WriteString("\n")
		}
		fmt.Fprintf(&missingLines, "- %s", titleOrUnknown(d))
	}

	return fmt.Sprintf(`Write a professional and helpful email to our crew member, %s.
The email must clearly state the actions required for their documents.
Maintain a supportive tone and instruct them to contact the crewing department for assistance.

If there are expired documents, list them under a heading 'Urgent: Expired Documents'. Here is the list:
%s

If there are documents with missing expiry dates, list them under a heading 'Action Needed: Update Required'. Here is the list:
%s`, name, expiredLines(expired), missingLines.String())
}

// AllValidPrompt builds the drafting prompt for a member whose documents
// are all up to date.
func AllValidPrompt(name string) string {
	return fmt.Sprintf(`Write a brief, professional, and positive email to our crew member, %s.
Acknowledge that a review of their documents shows all their certifications are currently up-to-date.
Thank them for their diligence in maintaining their records.
The tone should be encouraging.`, name)
}

// SummaryLines renders the human-readable one-line-per-document summary
// for a notification batch: title plus expiry date.
func SummaryLines(docs []domain.Document) string {
	return expiredLines(docs)
}

func expiredLines(docs []domain.Document) string {
	var b strings.Builder
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n")
		}
		expiry := d.ExpiryDate
		if expiry == "" {
			expiry = "N/A"
		}
		fmt.Fprintf(&b, "- %s (Expired on %s)", titleOrUnknown(d), expiry)
	}
	return b.String()
}

func titleOrUnknown(d domain.Document) string {
	if d.Title == "" {
		return "Unknown Document"
	}
	return d.Title
}
