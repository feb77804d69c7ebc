package domain

import (
	"strings"
	"time"
)

// Status is the classification of a document against a reference time
type Status int

const (
	StatusUnknown Status = iota // expiry missing or unparseable
	StatusValid
	StatusExpired
)

// String returns the report label for the status
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	default:
		return "expiry_not_mentioned"
	}
}

// DefaultDateFormat matches expiry dates like "19-Aug-2025"
const DefaultDateFormat = "02-Jan-2006"

// Classify determines whether a document is valid, expired, or of unknown
// status at the reference time. A missing, empty, or unparseable expiry
// date yields StatusUnknown, never an error. An expiry equal to the
// reference time counts as valid.
func Classify(doc Document, ref time.Time, format string) Status {
	raw := strings.TrimSpace(doc.ExpiryDate)
	if raw == "" {
		return StatusUnknown
	}
	expiry, err := time.Parse(format, raw)
	if err != nil {
		return StatusUnknown
	}
	if expiry.Before(ref) {
		return StatusExpired
	}
	return StatusValid
}
