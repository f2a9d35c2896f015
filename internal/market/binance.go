package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const defaultBinanceBaseURL = "https://api.binance.com"

// BinanceClient fetches the current average price for a trading pair from
// the public Binance avgPrice endpoint. No API key is required.
type BinanceClient struct {
	client  *http.Client
	baseURL string
}

// NewBinanceClient creates a Binance price client.
func NewBinanceClient(timeout time.Duration) *BinanceClient {
	return &BinanceClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: defaultBinanceBaseURL,
	}
}

// binanceAvgPriceResponse carries the price as a string, which keeps the
// upstream precision intact when parsed into a decimal.
type binanceAvgPriceResponse struct {
	Price decimal.Decimal `json:"price"`
}

// GetLatestPrice returns the current average price of a trading pair.
func (c *BinanceClient) GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/api/v3/avgPrice?symbol=%s", c.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching avg price: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body binanceAvgPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding avg price: %w", err)
	}

	return body.Price, nil
}
