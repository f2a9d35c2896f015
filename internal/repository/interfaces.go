package repository

import (
	"context"
	"time"

	"github.com/hedgecoast/signals/internal/model"
)

//go:generate mockery --name=AlertRepositoryInterface --output=../mocks --outpkg=mocks
type AlertRepositoryInterface interface {
	QueryBySymbolAndSignature(ctx context.Context, symbol string, windowMinutes int, thresholdPercent float64, moveType string) ([]model.AlertRule, error)
	QueryWildcardBySignature(ctx context.Context, windowMinutes int, thresholdPercent float64, moveType string) ([]model.AlertRule, error)
	DistinctSymbols(ctx context.Context) ([]string, error)
}

//go:generate mockery --name=MoveRepositoryInterface --output=../mocks --outpkg=mocks
type MoveRepositoryInterface interface {
	ListRecent(ctx context.Context, market, symbol string, from, to time.Time, limit int) ([]model.MoveRecord, error)
}

//go:generate mockery --name=BillingCustomerRepositoryInterface --output=../mocks --outpkg=mocks
type BillingCustomerRepositoryInterface interface {
	GetCustomerID(ctx context.Context, userID string) (string, error)
}
