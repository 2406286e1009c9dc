package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/basketrack/backend/config"
	httpDelivery "github.com/basketrack/backend/internal/delivery/http"
	"github.com/basketrack/backend/internal/domain"
	"github.com/basketrack/backend/internal/infrastructure/cache"
	"github.com/basketrack/backend/internal/infrastructure/cartapi"
	"github.com/basketrack/backend/internal/infrastructure/postgres"
	"github.com/basketrack/backend/internal/pkg/logging"
	"github.com/basketrack/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting basketrack backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cacheType", cfg.Cache.Type))

	// Initialize infrastructure dependencies
	store, err := postgres.NewStore(cfg.Database.URL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer store.Close()

	var matchCache domain.MatchCache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		matchCache = redisCache
	default:
		matchCache = cache.NewMemoryCache()
	}

	cartClient := cartapi.NewClient(cfg.CartAPI.BaseURL, cfg.CartAPI.APIKey, cfg.CartAPI.Timeout, logger)

	// Initialize usecase layer
	matchService := usecase.NewMatchService(store, store, matchCache, usecase.MatchConfig{
		MaxCandidates:     cfg.Matching.MaxCandidates,
		IngredientTimeout: cfg.Matching.IngredientTimeout,
		CacheTTL:          cfg.Cache.TTL,
	}, logger)
	assembler := usecase.NewAssembler(cartClient, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(matchService, assembler, logger)

	// Setup router and server
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server exited")
}
