package handler

import (
	"context"

	"github.com/hedgecoast/signals/internal/model"
)

// DispatchServiceInterface for handler testing
type DispatchServiceInterface interface {
	Dispatch(ctx context.Context, event model.MoveEvent) (*model.DispatchResult, error)
}

// MoveServiceInterface for handler testing
type MoveServiceInterface interface {
	ListRecentMoves(ctx context.Context, market, symbol string) ([]model.MoveRecord, error)
}
