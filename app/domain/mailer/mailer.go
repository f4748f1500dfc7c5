package mailer

import "context"

// Mailer delivers notification emails. Content is owned by the caller;
// implementations only handle transport.
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}
