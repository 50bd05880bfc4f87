// Package mailer provides the outbound email collaborator used to deliver
// registration verification codes. The auth service depends only on the
// Mailer interface; a failed send never rolls back the registration it
// belongs to.
package mailer

import "context"

// Mailer sends a single plain-text message. Implementations must be safe
// for concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Nop is a Mailer that silently accepts every message. Used in tests and
// in local development where no SMTP server is configured.
type Nop struct{}

// Send implements [Mailer] and always succeeds.
func (Nop) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
