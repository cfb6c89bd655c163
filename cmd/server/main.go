// Package main initializes and starts the BrickStash HTTP server, setting up
// configuration, logging, database connections, repositories, services and
// handlers.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/brickstash/brickstash/internal/auth"
	"github.com/brickstash/brickstash/internal/catalog"
	"github.com/brickstash/brickstash/internal/config"
	"github.com/brickstash/brickstash/internal/db"
	"github.com/brickstash/brickstash/internal/logger"
	"github.com/brickstash/brickstash/internal/repository"
	"github.com/brickstash/brickstash/internal/server/handler/http"
	"github.com/brickstash/brickstash/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// orDefault returns s if non-empty, otherwise def. It stands in for
// cmp.Or, which requires Go 1.22+.
func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Reclaim rows left behind by interrupted deletion cascades.
	db.StartOrphanSweeper(context.Background(), postgresDB, time.Hour, zapLogger)

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	collectionRepo := repository.NewPostgresCollectionRepository(postgresDB)
	setRepo := repository.NewPostgresSetRepository(postgresDB)
	quantityRepo := repository.NewPostgresQuantityRepository(postgresDB)

	// Initialize business-logic services.
	collectionService := service.NewCollectionService(collectionRepo, setRepo, quantityRepo)
	setService := service.NewSetService(collectionRepo, setRepo)
	quantityService := service.NewQuantityService(collectionRepo, setRepo, quantityRepo)

	// Identity-provider token verification and catalog client.
	verifier := auth.NewVerifier(options.JWTSecret)
	catalogClient := catalog.NewClient(options.RebrickableBaseURL, options.RebrickableKey)

	// Create HTTP handlers.
	collectionHandler := &http.CollectionHandler{CollectionService: collectionService}
	setHandler := &http.SetHandler{SetService: setService}
	quantityHandler := &http.QuantityHandler{QuantityService: quantityService}
	searchHandler := &http.SearchHandler{Catalog: catalogClient}
	healthHandler := &http.HealthHandler{DB: postgresDB}

	// Build the router with middleware and routes.
	router := http.NewRouter(collectionHandler, setHandler, quantityHandler,
		searchHandler, healthHandler, verifier, userRepo, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
