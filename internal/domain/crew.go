package domain

import "sort"

// CrewMember represents one crew profile from the roster store
type CrewMember struct {
	ID        string // roster key, e.g. "crew_0042"
	FirstName string
	Email     string // empty when the profile has no address
	Documents []Document
}

// DisplayName returns the member's first name, falling back to the roster ID
func (m CrewMember) DisplayName() string {
	if m.FirstName != "" {
		return m.FirstName
	}
	return m.ID
}

// Document represents a single certification document
type Document struct {
	Title      string         // e.g. "Seaman's Book"
	Number     string         // unique within the member; may be empty
	ExpiryDate string         // raw date string, e.g. "19-Aug-2025"
	Extra      map[string]any // fields the core does not interpret
}

// Trackable reports whether the document carries a number that can anchor
// a notification ledger entry
func (d Document) Trackable() bool {
	return d.Number != ""
}

// DecodeCrewMember converts a loosely-typed roster record into a CrewMember.
// Non-map entries in the documents list are skipped; unknown fields on a
// document are kept in Extra untouched.
func DecodeCrewMember(id string, raw map[string]any) CrewMember {
	member := CrewMember{ID: id}

	if details, ok := raw["personal_details"].(map[string]any); ok {
		member.FirstName = stringField(details, "first_name")
		member.Email = stringField(details, "email")
	}

	docs, ok := raw["documents"].([]any)
	if !ok {
		return member
	}
	for _, entry := range docs {
		record, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		member.Documents = append(member.Documents, decodeDocument(record))
	}
	return member
}

func decodeDocument(record map[string]any) Document {
	doc := Document{
		Title:      stringField(record, "document_certificate"),
		Number:     stringField(record, "document_number"),
		ExpiryDate: stringField(record, "expiry_date"),
	}
	for k, v := range record {
		switch k {
		case "document_certificate", "document_number", "expiry_date":
		default:
			if doc.Extra == nil {
				doc.Extra = map[string]any{}
			}
			doc.Extra[k] = v
		}
	}
	return doc
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// SortCrewMembers sorts members by roster ID so runs iterate deterministically
func SortCrewMembers(members []CrewMember) {
	sort.Slice(members, func(i, j int) bool {
		return members[i].ID < members[j].ID
	})
}
