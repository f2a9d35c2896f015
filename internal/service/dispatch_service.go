package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hedgecoast/signals/internal/config"
	"github.com/hedgecoast/signals/internal/logger"
	"github.com/hedgecoast/signals/internal/model"
	"github.com/hedgecoast/signals/internal/sender"
)

// AlertMatcher finds the alert rules triggered by a move event.
type AlertMatcher interface {
	Match(ctx context.Context, event model.MoveEvent) ([]model.AlertRule, error)
}

// EntitlementFilter prunes alert rules belonging to users without a
// qualifying subscription.
type EntitlementFilter interface {
	FilterEntitled(ctx context.Context, rules []model.AlertRule) []model.AlertRule
}

// DispatchService runs the end-to-end notification flow for a move event:
// match rules, apply the entitlement policy per channel, dedup destinations,
// render the report and hand the bodies to the channel senders.
type DispatchService struct {
	matcher     AlertMatcher
	entitlement EntitlementFilter
	report      *ReportService
	email       sender.EmailSender
	sms         sender.SMSSender
	policy      config.ChannelPolicy
	subject     string
	logger      *slog.Logger
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(
	matcher AlertMatcher,
	entitlement EntitlementFilter,
	report *ReportService,
	email sender.EmailSender,
	sms sender.SMSSender,
	policy config.ChannelPolicy,
	subject string,
	log *slog.Logger,
) *DispatchService {
	if log == nil {
		log = slog.Default()
	}

	return &DispatchService{
		matcher:     matcher,
		entitlement: entitlement,
		report:      report,
		email:       email,
		sms:         sms,
		policy:      policy,
		subject:     subject,
		logger:      log,
	}
}

// Dispatch notifies every destination subscribed to the event and returns the
// destination sets that were handed to the senders. Sends are best-effort: a
// failed send is logged and the remaining destinations still get theirs.
func (s *DispatchService) Dispatch(ctx context.Context, event model.MoveEvent) (*model.DispatchResult, error) {
	dispatchID := uuid.New().String()
	ctx = logger.WithDispatchID(ctx, dispatchID)
	log := s.logger.With(slog.String("dispatch_id", dispatchID))

	rules, err := s.matcher.Match(ctx, event)
	if err != nil {
		return nil, err
	}

	log.Info("Matched alert rules",
		slog.String("symbol", event.Symbol),
		slog.Int("rules", len(rules)),
	)

	// Entitlement currently gates SMS only. Email stays open to every
	// matched rule so free users keep their email alerts.
	var entitled []model.AlertRule
	if s.policy.GateEmail || s.policy.GateSMS {
		entitled = s.entitlement.FilterEntitled(ctx, rules)
	}

	emailRules := rules
	if s.policy.GateEmail {
		emailRules = entitled
	}
	smsRules := rules
	if s.policy.GateSMS {
		smsRules = entitled
	}

	emails := CollectEmails(emailRules)
	smses := CollectSMSes(smsRules)

	lines := s.report.ComposeReport(event)
	htmlBody := s.report.RenderHTML(lines)
	textBody := s.report.RenderText(lines)

	for _, to := range emails {
		if err := s.email.Send(ctx, to, s.subject, htmlBody); err != nil {
			log.Error("Email send failed",
				slog.String("to", to),
				slog.String("error", err.Error()),
			)
		}
	}

	for _, to := range smses {
		if err := s.sms.Send(ctx, to, textBody); err != nil {
			log.Error("SMS send failed",
				slog.String("to", to),
				slog.String("error", err.Error()),
			)
		}
	}

	log.Info("Dispatch complete",
		slog.Int("emails", len(emails)),
		slog.Int("sms", len(smses)),
	)

	return &model.DispatchResult{
		Emails: emails,
		SMS:    smses,
	}, nil
}
