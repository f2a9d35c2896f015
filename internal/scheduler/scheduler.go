// Package scheduler provides cron-based scheduling for the price warm refresh.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hedgecoast/signals/internal/market"
)

// PriceRefresher re-fetches latest prices for every symbol carrying an alert.
type PriceRefresher interface {
	RefreshAlertSymbols(ctx context.Context, marketName string) error
}

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a cron expression for when to refresh (e.g., "*/10 * * * *" for every 10 minutes)
	Schedule string
	// Timeout is the maximum duration for one refresh cycle
	Timeout time.Duration
	// Enabled determines if the scheduler should run
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule: "*/10 * * * *",
		Timeout:  2 * time.Minute,
		Enabled:  true,
	}
}

// Scheduler manages the scheduled price refresh job
type Scheduler struct {
	cron      *cron.Cron
	refresher PriceRefresher
	config    Config
	logger    *slog.Logger
	entryID   cron.EntryID
}

// New creates a new Scheduler instance
func New(cfg Config, refresher PriceRefresher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		refresher: refresher,
		config:    cfg,
		logger:    logger,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Scheduler is disabled, skipping start")
		return nil
	}

	// Convert standard cron (5 fields) to cron with seconds (6 fields)
	// Add "0" at the beginning for seconds
	schedule := "0 " + s.config.Schedule

	entryID, err := s.cron.AddFunc(schedule, func() {
		s.runRefreshJob()
	})
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Scheduler started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("timeout", s.config.Timeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping scheduler...")
	return s.cron.Stop()
}

// RunNow triggers an immediate refresh (useful for manual triggers)
func (s *Scheduler) RunNow() {
	go s.runRefreshJob()
}

// runRefreshJob refreshes prices for both markets within one timeout budget
func (s *Scheduler) runRefreshJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Info("Starting scheduled price refresh",
		slog.Time("start_time", startTime),
	)

	for _, marketName := range []string{market.MarketStock, market.MarketBinance} {
		if err := s.refresher.RefreshAlertSymbols(ctx, marketName); err != nil {
			s.logger.Error("Price refresh failed",
				slog.String("market", marketName),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("Price refresh completed",
		slog.Duration("duration", time.Since(startTime)),
	)
}

// GetNextRunTime returns the next scheduled run time
func (s *Scheduler) GetNextRunTime() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	entry := s.cron.Entry(s.entryID)
	return entry.Next
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
