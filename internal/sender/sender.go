// Package sender provides the outbound notification transports.
// Sends are fire-and-forget from the dispatcher's perspective; failures are
// logged by the caller and never abort the remaining destinations.
package sender

import "context"

// EmailSender delivers an HTML notification to one address.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMSSender delivers a plain-text notification to one phone number.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}
