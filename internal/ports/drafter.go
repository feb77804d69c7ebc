package ports

import "context"

// Drafter turns a natural-language prompt into an email body.
// A failed draft returns an error and no usable body; callers must skip
// sending rather than deliver a malformed message.
type Drafter interface {
	Draft(ctx context.Context, prompt string) (string, error)

	// Available returns true if the drafter is configured and usable
	Available() bool
}
