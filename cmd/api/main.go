package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/hedgecoast/signals/internal/billing"
	"github.com/hedgecoast/signals/internal/config"
	"github.com/hedgecoast/signals/internal/handler"
	"github.com/hedgecoast/signals/internal/market"
	"github.com/hedgecoast/signals/internal/repository"
	"github.com/hedgecoast/signals/internal/scheduler"
	"github.com/hedgecoast/signals/internal/sender"
	"github.com/hedgecoast/signals/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		dbURL = "postgres://localhost:5432/signals?sslmode=disable"
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	alertRepo := repository.NewAlertRepository(db)
	moveRepo := repository.NewMoveRepository(db)
	billingRepo := repository.NewBillingCustomerRepository(db)

	// Upstream price sources
	priceRouter := market.NewRouter(map[string]market.PriceSource{
		market.MarketStock:   market.NewPolygonClient(cfg.PolygonAPIKey, cfg.PriceTimeout),
		market.MarketBinance: market.NewBinanceClient(cfg.PriceTimeout),
	})

	// Outbound senders
	emailSender := sender.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, logger)
	smsSender := sender.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)

	// Billing provider
	stripeProvider := billing.NewStripeProvider(cfg.StripeAPIKey, billingRepo)

	// Initialize services
	matcherService := service.NewMatcherService(alertRepo)
	entitlementService := service.NewEntitlementService(stripeProvider, logger)
	priceService := service.NewPriceService(priceRouter, alertRepo, cfg.PriceBatchSize, logger)
	reportService := service.NewReportService()
	dispatchService := service.NewDispatchService(
		matcherService, entitlementService, reportService,
		emailSender, smsSender,
		cfg.Entitlement, cfg.EmailSubject, logger,
	)
	moveService := service.NewMoveService(moveRepo, priceService)

	// Initialize handlers
	notificationHandler := handler.NewNotificationHandler(dispatchService)
	moveHandler := handler.NewMoveHandler(moveService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	// CORS - allow frontend origin from env or default
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Move-event ingestion from the detector
	r.Post("/api/notifications/move-event", notificationHandler.DispatchMoveEvent)

	// Recent moves with latest prices
	r.Get("/api/moves", moveHandler.ListRecent)

	// Initialize and start scheduler for the price warm refresh
	var refreshScheduler *scheduler.Scheduler
	if cfg.RefreshEnabled {
		schedCfg := scheduler.Config{
			Schedule: cfg.RefreshSchedule,
			Timeout:  cfg.RefreshTimeout,
			Enabled:  cfg.RefreshEnabled,
		}
		refreshScheduler = scheduler.New(schedCfg, priceService, logger)
		if err := refreshScheduler.Start(); err != nil {
			logger.Error("Failed to start refresh scheduler", slog.String("error", err.Error()))
		} else {
			logger.Info("Refresh scheduler started",
				slog.String("schedule", cfg.RefreshSchedule),
				slog.Duration("timeout", cfg.RefreshTimeout),
			)
		}
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Create server
	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		// Stop scheduler first
		if refreshScheduler != nil {
			ctx := refreshScheduler.Stop()
			<-ctx.Done()
			logger.Info("Scheduler stopped")
		}

		// Shutdown HTTP server
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
