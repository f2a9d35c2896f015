package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/hedgecoast/signals/internal/apperror"
	"github.com/hedgecoast/signals/internal/model"
)

type NotificationHandler struct {
	service DispatchServiceInterface
}

func NewNotificationHandler(service DispatchServiceInterface) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// moveEventPayload mirrors the detector's wire format. Pointer fields let the
// handler tell a missing key apart from a zero value.
type moveEventPayload struct {
	Symbol           *string          `json:"symbol"`
	Market           string           `json:"market"`
	CurrentPrice     *decimal.Decimal `json:"current_price"`
	Epoch            *int64           `json:"epoch"`
	MinDropPercent   *float64         `json:"min_drop_percent"`
	PriceAtMinDrop   *decimal.Decimal `json:"price_at_min_drop"`
	EpochAtMinDrop   *int64           `json:"epoch_at_min_drop"`
	MaxJumpPercent   *float64         `json:"max_jump_percent"`
	PriceAtMaxJump   *decimal.Decimal `json:"price_at_max_jump"`
	EpochAtMaxJump   *int64           `json:"epoch_at_max_jump"`
	WindowMinutes    *int             `json:"window_size_minutes"`
	ThresholdPercent *float64         `json:"threshold_percent"`
	MoveType         *string          `json:"move_type"`
}

// validate reports the first missing required field, in wire-format order.
func (p *moveEventPayload) validate() *apperror.AppError {
	checks := []struct {
		ok    bool
		field string
	}{
		{p.Symbol != nil, "symbol"},
		{p.CurrentPrice != nil, "current_price"},
		{p.Epoch != nil, "epoch"},
		{p.MinDropPercent != nil, "min_drop_percent"},
		{p.PriceAtMinDrop != nil, "price_at_min_drop"},
		{p.EpochAtMinDrop != nil, "epoch_at_min_drop"},
		{p.MaxJumpPercent != nil, "max_jump_percent"},
		{p.PriceAtMaxJump != nil, "price_at_max_jump"},
		{p.EpochAtMaxJump != nil, "epoch_at_max_jump"},
		{p.WindowMinutes != nil, "window_size_minutes"},
		{p.ThresholdPercent != nil, "threshold_percent"},
		{p.MoveType != nil, "move_type"},
	}

	for _, c := range checks {
		if !c.ok {
			return apperror.ValidationError(c.field, "missing required field")
		}
	}
	return nil
}

func (p *moveEventPayload) toModel() model.MoveEvent {
	return model.MoveEvent{
		Symbol:           *p.Symbol,
		Market:           p.Market,
		CurrentPrice:     *p.CurrentPrice,
		Epoch:            *p.Epoch,
		MinDropPercent:   *p.MinDropPercent,
		PriceAtMinDrop:   *p.PriceAtMinDrop,
		EpochAtMinDrop:   *p.EpochAtMinDrop,
		MaxJumpPercent:   *p.MaxJumpPercent,
		PriceAtMaxJump:   *p.PriceAtMaxJump,
		EpochAtMaxJump:   *p.EpochAtMaxJump,
		WindowMinutes:    *p.WindowMinutes,
		ThresholdPercent: *p.ThresholdPercent,
		MoveType:         *p.MoveType,
	}
}

// DispatchMoveEvent accepts a detected move event and notifies every matched
// destination. The response lists the destinations that were handed to the
// senders.
func (h *NotificationHandler) DispatchMoveEvent(w http.ResponseWriter, r *http.Request) {
	var payload moveEventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if appErr := payload.validate(); appErr != nil {
		respondAppError(w, appErr)
		return
	}

	result, err := h.service.Dispatch(r.Context(), payload.toModel())
	if err != nil {
		respondError(w, apperror.GetStatusCode(err), apperror.GetMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, result)
}
