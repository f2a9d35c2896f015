package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hedgecoast/signals/internal/market"
	"github.com/hedgecoast/signals/internal/model"
)

// RecentMovesLimit caps the number of moves returned by the listing.
const RecentMovesLimit = 30

// MoveRepo reads persisted move events.
type MoveRepo interface {
	ListRecent(ctx context.Context, marketName, symbol string, from, to time.Time, limit int) ([]model.MoveRecord, error)
}

// PriceEnricher attaches the latest traded price to move records.
type PriceEnricher interface {
	AttachRecentPrices(ctx context.Context, records []model.MoveRecord, marketName string)
}

// MoveService lists recently detected moves enriched with current prices.
type MoveService struct {
	moveRepo MoveRepo
	prices   PriceEnricher
	now      func() time.Time
}

// NewMoveService creates a new move service
func NewMoveService(moveRepo MoveRepo, prices PriceEnricher) *MoveService {
	return &MoveService{
		moveRepo: moveRepo,
		prices:   prices,
		now:      time.Now,
	}
}

// ListRecentMoves returns the moves detected over the last trading day,
// newest first, with each record's recent_price filled in. For the stock
// market the 24h window slides back past weekends so a Monday morning request
// still covers Friday's session.
func (s *MoveService) ListRecentMoves(ctx context.Context, marketName, symbol string) ([]model.MoveRecord, error) {
	now := s.now()
	from := now.Add(-24 * time.Hour)
	for marketName == market.MarketStock && isWeekend(from) {
		from = from.Add(-24 * time.Hour)
	}

	moves, err := s.moveRepo.ListRecent(ctx, marketName, symbol, from, now, RecentMovesLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent moves: %w", err)
	}

	s.prices.AttachRecentPrices(ctx, moves, marketName)
	return moves, nil
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
