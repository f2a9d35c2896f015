package handler

import (
	"net/http"

	"github.com/hedgecoast/signals/internal/apperror"
	"github.com/hedgecoast/signals/internal/market"
)

type MoveHandler struct {
	service MoveServiceInterface
}

func NewMoveHandler(service MoveServiceInterface) *MoveHandler {
	return &MoveHandler{service: service}
}

// ListRecent returns the moves detected over the last trading day for a
// market, enriched with each symbol's latest price. Symbol is an optional
// filter.
func (h *MoveHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	marketName := r.URL.Query().Get("market")
	if marketName == "" {
		marketName = market.MarketStock
	}
	if marketName != market.MarketStock && marketName != market.MarketBinance {
		respondError(w, http.StatusBadRequest, "unknown market")
		return
	}

	symbol := r.URL.Query().Get("symbol")

	moves, err := h.service.ListRecentMoves(r.Context(), marketName, symbol)
	if err != nil {
		respondError(w, apperror.GetStatusCode(err), apperror.GetMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, moves)
}
