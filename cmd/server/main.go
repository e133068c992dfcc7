package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtcast-service/internal/infrastructure/config"
	"courtcast-service/internal/infrastructure/persistence"
	"courtcast-service/internal/interface/gmail"
	storeRepo "courtcast-service/internal/interface/repository"
	"courtcast-service/internal/usecase"
	"courtcast-service/pkg/logger"
	"courtcast-service/pkg/metrics"
	"courtcast-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting CourtCast Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up metrics
	appMetrics := metrics.NewMetrics("courtcast")

	// Set up repositories
	alertRepo := storeRepo.NewMongoAlertRepository(db)
	cachedAlerts := storeRepo.NewCachedAlertRepository(alertRepo, cfg.CacheTTL, nil, log)
	subscriptionRepo := storeRepo.NewGormSubscriptionRepository(gormDB)
	pushRepo := storeRepo.NewPushRelayRepository(log, cfg.PushServiceURL, cfg.PushToken)

	// Set up pipeline
	extractor := utils.NewContentExtractor(log)
	dispatcher := usecase.NewNotificationDispatcher(subscriptionRepo, pushRepo, appMetrics, log)
	scanner := gmail.NewGmailScanner(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		cfg.FetchChunkSize,
		log,
	)
	orchestrator := usecase.NewSyncOrchestrator(
		scanner,
		cachedAlerts,
		extractor,
		dispatcher,
		appMetrics,
		log,
		cfg.SyncInterval,
		cfg.LookbackDays,
		cfg.DeepLookbackDays,
		cfg.RetryDelay,
	)

	// Start the sync loop in a goroutine
	go orchestrator.Start(ctx)

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(orchestrator.Status()))
	})
	mux.HandleFunc("/sync", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		deep := r.URL.Query().Get("deep") == "true"
		go orchestrator.TriggerSync(ctx, deep)
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("sync triggered"))
	})
	mux.HandleFunc("/clear", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := cachedAlerts.Clear(r.Context()); err != nil {
			log.Error("Failed to clear alert ledger", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		log.Info("Alert ledger cleared")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("cleared"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the sync loop

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("CourtCast Service stopped")
}
