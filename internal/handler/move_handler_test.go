package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hedgecoast/signals/internal/model"
)

// MockMoveService implements MoveServiceInterface for testing
type MockMoveService struct {
	mock.Mock
}

func (m *MockMoveService) ListRecentMoves(ctx context.Context, market, symbol string) ([]model.MoveRecord, error) {
	args := m.Called(ctx, market, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MoveRecord), args.Error(1)
}

func TestMoveHandler_ListRecent(t *testing.T) {
	t.Parallel()

	mockService := new(MockMoveService)
	mockService.On("ListRecentMoves", mock.Anything, "binance", "BTCUSDT").
		Return([]model.MoveRecord{
			{
				MoveEvent:   model.MoveEvent{Symbol: "BTCUSDT"},
				RecentPrice: decimal.RequireFromString("64250.5"),
			},
		}, nil)

	handler := NewMoveHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/moves?market=binance&symbol=BTCUSDT", nil)
	rec := httptest.NewRecorder()

	handler.ListRecent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var moves []map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&moves))
	require.Len(t, moves, 1)
	assert.Equal(t, "BTCUSDT", moves[0]["symbol"])
	mockService.AssertExpectations(t)
}

func TestMoveHandler_ListRecent_DefaultsToStock(t *testing.T) {
	t.Parallel()

	mockService := new(MockMoveService)
	mockService.On("ListRecentMoves", mock.Anything, "stock", "").
		Return([]model.MoveRecord{}, nil)

	handler := NewMoveHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/moves", nil)
	rec := httptest.NewRecorder()

	handler.ListRecent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestMoveHandler_ListRecent_UnknownMarket(t *testing.T) {
	t.Parallel()

	mockService := new(MockMoveService)
	handler := NewMoveHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/moves?market=forex", nil)
	rec := httptest.NewRecorder()

	handler.ListRecent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "ListRecentMoves")
}

func TestMoveHandler_ListRecent_ServiceError(t *testing.T) {
	t.Parallel()

	mockService := new(MockMoveService)
	mockService.On("ListRecentMoves", mock.Anything, "stock", "").
		Return(nil, errors.New("db down"))

	handler := NewMoveHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/api/moves", nil)
	rec := httptest.NewRecorder()

	handler.ListRecent(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
