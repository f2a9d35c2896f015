package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hedgecoast/signals/internal/model"
)

// PriceSource returns the latest traded price for a symbol on a market.
type PriceSource interface {
	GetLatestPrice(ctx context.Context, symbol, market string) (decimal.Decimal, error)
}

// PriceAlertRepo exposes the alert symbols whose prices are worth keeping warm.
type PriceAlertRepo interface {
	DistinctSymbols(ctx context.Context) ([]string, error)
}

// PriceService fans out latest-price lookups to the upstream market APIs.
type PriceService struct {
	source    PriceSource
	alertRepo PriceAlertRepo
	logger    *slog.Logger
	batchSize int
}

// NewPriceService creates a new price service
func NewPriceService(source PriceSource, alertRepo PriceAlertRepo, batchSize int, logger *slog.Logger) *PriceService {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = 40
	}

	return &PriceService{
		source:    source,
		alertRepo: alertRepo,
		logger:    logger,
		batchSize: batchSize,
	}
}

// FetchLatestPrices resolves the latest price for every symbol. Lookups run
// concurrently in batches so a long symbol list cannot open an unbounded
// number of upstream connections. A symbol whose lookup fails maps to zero
// rather than failing the whole fan-out. Every returned map has an entry for
// every requested symbol.
func (s *PriceService) FetchLatestPrices(ctx context.Context, symbols []string, market string) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(symbols))
	if len(symbols) == 0 {
		return prices
	}

	var mu sync.Mutex

	for start := 0; start < len(symbols); start += s.batchSize {
		end := start + s.batchSize
		if end > len(symbols) {
			end = len(symbols)
		}

		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			wg.Add(1)
			go func(symbol string) {
				defer wg.Done()

				price, err := s.source.GetLatestPrice(ctx, symbol, market)
				if err != nil {
					s.logger.Warn("Latest price lookup failed",
						slog.String("symbol", symbol),
						slog.String("market", market),
						slog.String("error", err.Error()),
					)
					price = decimal.Zero
				}

				mu.Lock()
				prices[symbol] = price
				mu.Unlock()
			}(symbol)
		}
		wg.Wait()
	}

	return prices
}

// AttachRecentPrices decorates move records with the latest price for their
// symbol. Records whose lookup failed carry a zero price.
func (s *PriceService) AttachRecentPrices(ctx context.Context, records []model.MoveRecord, market string) {
	symbols := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.Symbol]; ok {
			continue
		}
		seen[rec.Symbol] = struct{}{}
		symbols = append(symbols, rec.Symbol)
	}

	prices := s.FetchLatestPrices(ctx, symbols, market)
	for i := range records {
		records[i].RecentPrice = prices[records[i].Symbol]
	}
}

// RefreshAlertSymbols re-fetches prices for every symbol that appears in an
// alert rule. Run on a schedule it keeps the upstream caches warm so that
// dispatch-time fan-outs hit fresh data.
func (s *PriceService) RefreshAlertSymbols(ctx context.Context, market string) error {
	symbols, err := s.alertRepo.DistinctSymbols(ctx)
	if err != nil {
		return err
	}

	prices := s.FetchLatestPrices(ctx, symbols, market)

	failed := 0
	for _, price := range prices {
		if price.IsZero() {
			failed++
		}
	}

	s.logger.Info("Refreshed alert symbol prices",
		slog.String("market", market),
		slog.Int("symbols", len(symbols)),
		slog.Int("failed", failed),
	)
	return nil
}
