package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends notification emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

// NewResendSender creates a Resend email sender. The from address is used
// for every outgoing message.
func NewResendSender(apiKey, from string, logger *slog.Logger) *ResendSender {
	if logger == nil {
		logger = slog.Default()
	}

	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

// Send sends one HTML email.
func (s *ResendSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	s.logger.Info("Email sent",
		slog.String("email_id", sent.Id),
		slog.String("to", to),
		slog.String("subject", subject),
	)

	return nil
}
