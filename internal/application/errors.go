package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("not configured")
	ErrEmptyDraft    = errors.New("drafter returned no usable body")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DispatchError represents a failed email delivery for one crew member
type DispatchError struct {
	CrewID string
	Reason string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch failed for %s: %s", e.CrewID, e.Reason)
}
