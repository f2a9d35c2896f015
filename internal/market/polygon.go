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

const defaultPolygonBaseURL = "https://api.polygon.io"

// PolygonClient fetches the last trade price for a stock symbol from the
// Polygon last-trade endpoint.
type PolygonClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewPolygonClient creates a Polygon price client.
func NewPolygonClient(apiKey string, timeout time.Duration) *PolygonClient {
	return &PolygonClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: defaultPolygonBaseURL,
		apiKey:  apiKey,
	}
}

// polygonLastResponse mirrors the fields we read from the last-trade payload.
type polygonLastResponse struct {
	Last *struct {
		Price decimal.Decimal `json:"price"`
	} `json:"last"`
}

// GetLatestPrice returns the last trade price of a stock symbol.
func (c *PolygonClient) GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/v1/last/stocks/%s?apiKey=%s", c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching last trade: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body polygonLastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decoding last trade: %w", err)
	}
	if body.Last == nil {
		return decimal.Zero, fmt.Errorf("last trade missing for %s", symbol)
	}

	return body.Last.Price, nil
}
