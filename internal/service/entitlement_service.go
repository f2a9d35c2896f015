package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hedgecoast/signals/internal/model"
)

// BillingProvider resolves billing customers and their subscriptions.
// GetCustomerForUser returns (nil, nil) for users with no billing record.
type BillingProvider interface {
	GetCustomerForUser(ctx context.Context, userID string) (*model.BillingCustomer, error)
	GetSubscriptions(ctx context.Context, customerID string) ([]model.BillingSubscription, error)
}

// EntitlementService decides whether a user's subscription tier permits
// gated notifications. Every failure path resolves to "not entitled": a
// billing-provider outage must degrade to skipped notifications, never to a
// failed dispatch.
type EntitlementService struct {
	billing BillingProvider
	logger  *slog.Logger
	now     func() time.Time
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(billing BillingProvider, logger *slog.Logger) *EntitlementService {
	if logger == nil {
		logger = slog.Default()
	}

	return &EntitlementService{
		billing: billing,
		logger:  logger,
		now:     time.Now,
	}
}

// IsEntitled reports whether the user holds at least one subscription on a
// qualifying tier whose period has not yet ended. Fails closed on missing
// customers and on any lookup error.
func (s *EntitlementService) IsEntitled(ctx context.Context, userID string) bool {
	customer, err := s.billing.GetCustomerForUser(ctx, userID)
	if err != nil {
		s.logger.Warn("Billing customer lookup failed, treating as not entitled",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return false
	}
	if customer == nil || customer.CustomerID == "" {
		return false
	}

	subs, err := s.billing.GetSubscriptions(ctx, customer.CustomerID)
	if err != nil {
		s.logger.Warn("Subscription lookup failed, treating as not entitled",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return false
	}

	now := s.now()
	for _, sub := range subs {
		if sub.PeriodEnd.Before(now) {
			continue
		}
		if sub.Tier == model.TierLight || sub.Tier == model.TierPremium {
			return true
		}
	}
	return false
}

// FilterEntitled drops every rule whose user is not entitled, preserving the
// order of the remaining rules. Entitlement is checked at most once per
// distinct user, and the checks for different users run concurrently since
// each one is a round trip to the billing provider. The call returns only
// after every check has finished.
func (s *EntitlementService) FilterEntitled(ctx context.Context, rules []model.AlertRule) []model.AlertRule {
	if len(rules) == 0 {
		return []model.AlertRule{}
	}

	users := make([]string, 0, len(rules))
	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		if _, ok := seen[rule.UserID]; ok {
			continue
		}
		seen[rule.UserID] = struct{}{}
		users = append(users, rule.UserID)
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		entitled = make(map[string]bool, len(users))
	)

	for _, userID := range users {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			ok := s.IsEntitled(ctx, userID)
			mu.Lock()
			entitled[userID] = ok
			mu.Unlock()
		}(userID)
	}
	wg.Wait()

	filtered := make([]model.AlertRule, 0, len(rules))
	for _, rule := range rules {
		if entitled[rule.UserID] {
			filtered = append(filtered, rule)
		}
	}
	return filtered
}
