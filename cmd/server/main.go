package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Tobiscuit/threechicks-admin-api/internal/api"
	"github.com/Tobiscuit/threechicks-admin-api/internal/appsync"
	"github.com/Tobiscuit/threechicks-admin-api/internal/config"
	"github.com/Tobiscuit/threechicks-admin-api/internal/genai"
	"github.com/Tobiscuit/threechicks-admin-api/internal/redisx"
	"github.com/Tobiscuit/threechicks-admin-api/internal/repository/postgres"
	"github.com/Tobiscuit/threechicks-admin-api/internal/service"
	"github.com/Tobiscuit/threechicks-admin-api/internal/shopify"
)

func main() {
	// Populate the environment from .env when present; real env vars win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting admin API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)

	// Redis: inventory mirror plus strategy cache
	rdb := redisx.New(cfg.Redis.Addr)
	defer rdb.Close()
	mirror := redisx.NewMirrorStore(rdb, logger)

	// External clients
	shopifyClient := shopify.NewClient(cfg.Shopify, logger)
	appsyncClient := appsync.NewClient(cfg.AppSync, logger)
	genaiClient := genai.NewClient(cfg.GenAI, logger)

	// Initialize router
	router := api.NewRouter(api.Deps{
		Config:  cfg,
		Repos:   repos,
		Shopify: shopifyClient,
		AppSync: appsyncClient,
		GenAI:   genaiClient,
		Mirror:  mirror,
		Redis:   rdb,
		Logger:  logger,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Draft purge: run once on startup, then every 15 minutes
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go service.RunDraftPurgeLoop(purgeCtx, repos, logger)
	logger.Info("Draft purge job started (runs on startup and every 15 minutes)")

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
