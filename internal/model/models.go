package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoveType classifies the direction of a detected price move.
type MoveType string

const (
	MoveTypeJump MoveType = "jump"
	MoveTypeDrop MoveType = "drop"
)

// WildcardSymbol matches moves on any symbol when used in an alert rule.
const WildcardSymbol = "*"

// AlertRule represents a user's standing subscription to be notified when a
// detected move matches the rule's signature. Rules are created and validated
// by the alert-management API; this service only reads them.
type AlertRule struct {
	AlertID          string    `db:"alert_id" json:"alert_id"`
	UserID           string    `db:"user_id" json:"user_id"`
	Symbol           string    `db:"symbol" json:"symbol"`
	WindowMinutes    int       `db:"window_minutes" json:"window_minutes"`
	ThresholdPercent float64   `db:"threshold_percent" json:"threshold_percent"`
	MoveType         string    `db:"move_type" json:"move_type"`
	NotifyToEmail    bool      `db:"notification_to_email" json:"notification_to_email"`
	NotifyEmail      string    `db:"notification_email" json:"notification_email"`
	NotifyToSMS      bool      `db:"notification_to_sms" json:"notification_to_sms"`
	NotifySMS        string    `db:"notification_sms" json:"notification_sms"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// IsWildcard reports whether the rule matches any symbol.
func (r AlertRule) IsWildcard() bool {
	return r.Symbol == WildcardSymbol
}

// MatchesSignature reports whether the rule's signature matches the given
// window, threshold and move type. Move type is compared case-insensitively.
func (r AlertRule) MatchesSignature(windowMinutes int, thresholdPercent float64, moveType string) bool {
	return r.WindowMinutes == windowMinutes &&
		r.ThresholdPercent == thresholdPercent &&
		strings.EqualFold(r.MoveType, moveType)
}

// MoveEvent is a detected price swing produced by the upstream move detector.
// Prices keep the precision they arrived with; percentages are plain floats.
type MoveEvent struct {
	Symbol           string          `db:"symbol" json:"symbol"`
	Market           string          `db:"market" json:"market,omitempty"`
	CurrentPrice     decimal.Decimal `db:"current_price" json:"current_price"`
	Epoch            int64           `db:"epoch" json:"epoch"`
	MinDropPercent   float64         `db:"min_drop_percent" json:"min_drop_percent"`
	PriceAtMinDrop   decimal.Decimal `db:"price_at_min_drop" json:"price_at_min_drop"`
	EpochAtMinDrop   int64           `db:"epoch_at_min_drop" json:"epoch_at_min_drop"`
	MaxJumpPercent   float64         `db:"max_jump_percent" json:"max_jump_percent"`
	PriceAtMaxJump   decimal.Decimal `db:"price_at_max_jump" json:"price_at_max_jump"`
	EpochAtMaxJump   int64           `db:"epoch_at_max_jump" json:"epoch_at_max_jump"`
	WindowMinutes    int             `db:"window_minutes" json:"window_size_minutes"`
	ThresholdPercent float64         `db:"threshold_percent" json:"threshold_percent"`
	MoveType         string          `db:"move_type" json:"move_type"`
}

// MoveRecord is a persisted move event as returned by the moves listing,
// with the most recently observed price attached after enrichment.
type MoveRecord struct {
	MoveEvent
	DetectedAt  time.Time       `db:"detected_at" json:"datetime"`
	RecentPrice decimal.Decimal `db:"-" json:"recent_price"`
}

// BillingCustomer is the billing provider's customer record resolved for a
// user. A user without one is not entitled to gated channels.
type BillingCustomer struct {
	CustomerID string
}

// BillingSubscription is a single subscription on a billing customer.
type BillingSubscription struct {
	PeriodEnd time.Time
	Tier      string
}

// Qualifying subscription tiers for notification entitlement.
const (
	TierLight   = "light"
	TierPremium = "premium"
)

// DispatchResult lists the destinations a dispatch actually notified.
// Sends are best-effort, so presence here does not imply delivery.
type DispatchResult struct {
	Emails []string `json:"emails"`
	SMS    []string `json:"sms"`
}
