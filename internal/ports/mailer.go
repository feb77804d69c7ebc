package ports

import "context"

// Mailer delivers a single email and reports success or failure
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
