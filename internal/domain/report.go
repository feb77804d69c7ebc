package domain

import "time"

// Breakdown groups a member's document titles by classification
type Breakdown struct {
	Valid              []string `json:"valid"`
	Expired            []string `json:"expired"`
	ExpiryNotMentioned []string `json:"expiry_not_mentioned"`
}

// AnalysisReport maps a crew member's report key (email, or a fallback for
// members without one) to their certification breakdown
type AnalysisReport map[string]Breakdown

// ReportKey returns the key a member's breakdown is filed under. Members
// without an email address still appear in the report; they are only
// excluded from notification.
func ReportKey(m CrewMember) string {
	if m.Email != "" {
		return m.Email
	}
	return "no-email-found-for-" + m.ID
}

// BuildBreakdown classifies every document of a member and groups the
// titles. Untitled documents are reported as "N/A".
func BuildBreakdown(m CrewMember, ref time.Time, format string) Breakdown {
	b := Breakdown{
		Valid:              []string{},
		Expired:            []string{},
		ExpiryNotMentioned: []string{},
	}
	for _, doc := range m.Documents {
		title := doc.Title
		if title == "" {
			title = "N/A"
		}
		switch Classify(doc, ref, format) {
		case StatusValid:
			b.Valid = append(b.Valid, title)
		case StatusExpired:
			b.Expired = append(b.Expired, title)
		default:
			b.ExpiryNotMentioned = append(b.ExpiryNotMentioned, title)
		}
	}
	return b
}
