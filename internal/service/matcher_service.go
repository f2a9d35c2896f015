// Package service provides business logic for the application.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hedgecoast/signals/internal/model"
)

// MatcherAlertRepo provides the alert-rule lookups the matcher needs.
type MatcherAlertRepo interface {
	QueryBySymbolAndSignature(ctx context.Context, symbol string, windowMinutes int, thresholdPercent float64, moveType string) ([]model.AlertRule, error)
	QueryWildcardBySignature(ctx context.Context, windowMinutes int, thresholdPercent float64, moveType string) ([]model.AlertRule, error)
}

// MatcherService finds the alert rules a move event should fire.
type MatcherService struct {
	alerts MatcherAlertRepo
}

// NewMatcherService creates a new matcher service
func NewMatcherService(alerts MatcherAlertRepo) *MatcherService {
	return &MatcherService{alerts: alerts}
}

// Match returns every rule matching the event: rules for the event's symbol
// plus wildcard rules, both restricted to the event's
// (window, threshold, move type) signature. The two sets are concatenated
// without dedup; a user holding both a symbol rule and a wildcard rule is
// matched twice on purpose, destination dedup happens downstream.
// No matches is a normal outcome and yields an empty list.
func (s *MatcherService) Match(ctx context.Context, event model.MoveEvent) ([]model.AlertRule, error) {
	moveType := strings.ToLower(event.MoveType)

	exact, err := s.alerts.QueryBySymbolAndSignature(ctx, event.Symbol, event.WindowMinutes, event.ThresholdPercent, moveType)
	if err != nil {
		return nil, fmt.Errorf("match exact rules: %w", err)
	}

	wildcard, err := s.alerts.QueryWildcardBySignature(ctx, event.WindowMinutes, event.ThresholdPercent, moveType)
	if err != nil {
		return nil, fmt.Errorf("match wildcard rules: %w", err)
	}

	rules := make([]model.AlertRule, 0, len(exact)+len(wildcard))
	rules = append(rules, exact...)
	rules = append(rules, wildcard...)
	return rules, nil
}
