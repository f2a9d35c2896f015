package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/hedgecoast/signals/internal/model"
	"github.com/jmoiron/sqlx"
)

// MoveRepository reads detected move events written by the move detector.
type MoveRepository struct {
	db *sqlx.DB
}

// NewMoveRepository creates a new move repository
func NewMoveRepository(db *sqlx.DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// ListRecent returns detected moves for a market within [from, to], newest
// first, capped at limit. Symbol is an optional filter; empty matches all.
func (r *MoveRepository) ListRecent(ctx context.Context, market, symbol string, from, to time.Time, limit int) ([]model.MoveRecord, error) {
	var moves []model.MoveRecord
	query := `
		SELECT * FROM move_events
		WHERE market = $1
		  AND detected_at BETWEEN $2 AND $3
		  AND ($4 = '' OR symbol = $4)
		ORDER BY detected_at DESC
		LIMIT $5
	`
	err := r.db.SelectContext(ctx, &moves, query, market, from, to, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent moves: %w", err)
	}
	return moves, nil
}
