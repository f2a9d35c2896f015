package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/hedgecoast/signals/internal/model"
	"github.com/jmoiron/sqlx"
)

// AlertRepository reads alert rules persisted by the alert-management API.
// This service never writes rules, so the repository is query-only.
type AlertRepository struct {
	db *sqlx.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// QueryBySymbolAndSignature returns rules for one symbol whose
// (window, threshold, move type) signature matches. Move type is matched
// case-insensitively.
func (r *AlertRepository) QueryBySymbolAndSignature(ctx context.Context, symbol string, windowMinutes int, thresholdPercent float64, moveType string) ([]model.AlertRule, error) {
	var rules []model.AlertRule
	err := r.db.SelectContext(ctx, &rules, `
		SELECT * FROM alerts
		WHERE symbol = $1
		  AND window_minutes = $2
		  AND threshold_percent = $3
		  AND LOWER(move_type) = $4
		ORDER BY created_at
	`, symbol, windowMinutes, thresholdPercent, strings.ToLower(moveType))
	if err != nil {
		return nil, fmt.Errorf("query alerts by symbol: %w", err)
	}
	return rules, nil
}

// QueryWildcardBySignature returns wildcard ("any symbol") rules whose
// signature matches.
func (r *AlertRepository) QueryWildcardBySignature(ctx context.Context, windowMinutes int, thresholdPercent float64, moveType string) ([]model.AlertRule, error) {
	return r.QueryBySymbolAndSignature(ctx, model.WildcardSymbol, windowMinutes, thresholdPercent, moveType)
}

// DistinctSymbols returns every concrete symbol carrying at least one alert
// rule. The wildcard sentinel is excluded; it is not a fetchable symbol.
func (r *AlertRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.SelectContext(ctx, &symbols, `
		SELECT DISTINCT symbol FROM alerts WHERE symbol <> $1 ORDER BY symbol
	`, model.WildcardSymbol)
	if err != nil {
		return nil, fmt.Errorf("distinct alert symbols: %w", err)
	}
	return symbols, nil
}
