package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"awardsearch-service/internal/infrastructure/cache"
	"awardsearch-service/internal/infrastructure/config"
	"awardsearch-service/internal/infrastructure/persistence"
	"awardsearch-service/internal/infrastructure/router"
	"awardsearch-service/internal/infrastructure/sched"
	"awardsearch-service/internal/interface/httpapi"
	mongoRepo "awardsearch-service/internal/interface/repository"
	"awardsearch-service/internal/interface/smiles"
	"awardsearch-service/internal/usecase"
	"awardsearch-service/pkg/logger"
	"awardsearch-service/pkg/metrics"
	"awardsearch-service/templates"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Award Search Service")

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

	// Region reference data lives in PostgreSQL; without it the in-code
	// fallback map still covers the known regions
	var gormDB *gorm.DB
	if cfg.PostgresURI != "" {
		gormDB, err = persistence.NewPostgresDB(cfg.PostgresURI)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
	}

	// Optional Redis fetch cache
	var respCache *cache.ResponseCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warn("Redis unavailable, fetch cache disabled", "error", err)
		} else {
			respCache = cache.NewResponseCache(redisClient, cfg.CacheTTL)
		}
	}

	// Metrics
	m := metrics.NewMetrics("awardsearch")

	// Set up repositories
	alertRepository := mongoRepo.NewMongoAlertRepository(db)
	cronJobRepository := mongoRepo.NewMongoCronJobRepository(db)
	preferenceRepository := mongoRepo.NewMongoPreferenceRepository(db)
	historyRepository := mongoRepo.NewMongoFlightSearchRepository(db)
	regionRepository := mongoRepo.NewGormRegionRepository(gormDB)
	notifier := mongoRepo.NewHTTPNotifier(cfg.NotifyEndpoint, cfg.NotifyToken, log)

	// Upstream client
	identity := smiles.NewRandomIdentityProvider(cfg.BearerTokens, cfg.UserAgents)
	client := smiles.NewClient(smiles.ClientOptions{
		SearchURL: cfg.SearchURL,
		TaxURL:    cfg.TaxURL,
		APIKey:    cfg.APIKey,
		Origin:    cfg.EmissionOrigin,
		Timeout:   cfg.FetchTimeout,
	}, identity, respCache, log, m)

	// Search pipeline
	searchService := usecase.NewSearchService(client, usecase.SearchOptions{
		CurrencyCode:      cfg.CurrencyCode,
		ProgramRegion:     cfg.ProgramRegion,
		DefaultMaxResults: cfg.DefaultMaxResults,
	}, log, m)
	queryRouter := router.NewQueryRouter(regionRepository, log)
	messageBuilder := templates.NewMessageBuilder()
	runner := usecase.NewRunner(queryRouter, preferenceRepository, searchService, messageBuilder, historyRepository, log)

	// Dispatch queue for interactive searches
	queue := usecase.NewDispatchQueue(cfg.QueueTick, cfg.QueueCooldown, log, m)
	queue.Start(ctx)

	// Alert engine on its cron scheduler
	scheduler := sched.NewScheduler()
	alertEngine := usecase.NewAlertEngine(runner, alertRepository, cronJobRepository, notifier, scheduler, log, m)
	if err := alertEngine.Reload(ctx); err != nil {
		log.Error("Failed to reload alert schedules", "error", err)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	apiHandler := httpapi.NewHandler(runner, queue, alertEngine, preferenceRepository, notifier, log)
	apiHandler.Register(mux)

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

	scheduler.Stop()
	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Award Search Service stopped")
}
