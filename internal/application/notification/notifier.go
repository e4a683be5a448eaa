// Package notification turns delivered outbox events into emails.
package notification

import "context"

// Email is a single outgoing message. MarkdownBody is rendered to HTML by
// the sending adapter.
type Email struct {
	To           string
	Subject      string
	MarkdownBody string
}

// Notifier delivers emails.
type Notifier interface {
	Send(ctx context.Context, email Email) error
}
