package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends notification texts through the Twilio messages API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *slog.Logger
}

// NewTwilioSender creates a Twilio SMS sender using the given sender number.
func NewTwilioSender(accountSID, authToken, from string, logger *slog.Logger) *TwilioSender {
	if logger == nil {
		logger = slog.Default()
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{
		client: client,
		from:   from,
		logger: logger,
	}
}

// Send sends one SMS. The Twilio SDK does not take a context; the ctx
// parameter exists to satisfy SMSSender and for future cancellation support.
func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}

	sid := ""
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	s.logger.Info("SMS sent",
		slog.String("message_sid", sid),
		slog.String("to", to),
	)

	return nil
}
