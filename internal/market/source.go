// Package market provides clients for upstream latest-price sources.
package market

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Markets this service knows how to quote.
const (
	MarketStock   = "stock"
	MarketBinance = "binance"
)

// PriceSource fetches the most recently observed price for a symbol.
type PriceSource interface {
	GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Router selects the upstream price source by market identifier.
type Router struct {
	sources map[string]PriceSource
}

// NewRouter creates a router over the given market -> source mapping.
func NewRouter(sources map[string]PriceSource) *Router {
	return &Router{sources: sources}
}

// GetLatestPrice fetches the latest price of symbol from the market's source.
func (r *Router) GetLatestPrice(ctx context.Context, symbol, market string) (decimal.Decimal, error) {
	src, ok := r.sources[market]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown market %q", market)
	}
	return src.GetLatestPrice(ctx, symbol)
}
