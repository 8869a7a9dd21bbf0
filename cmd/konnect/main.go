package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"konnect-service-go/internal/api"
	"konnect-service-go/internal/config"
	"konnect-service-go/internal/database"
	"konnect-service-go/internal/logger"
	"konnect-service-go/internal/seed"
	"konnect-service-go/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	if err := run(cfg, log); err != nil {
		log.Error("Service stopped with errors", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Service has been shut down.")
}

func run(cfg config.Config, log *zap.Logger) (err error) {
	// Connect to the database
	db, err := database.NewDatabase(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, database.Close(db))
	}()
	log.Info("Database connection successful and schema migrated.")

	backend := database.NewBackend(db)

	// Setup context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Seed.Enabled {
		if err := seed.NewSeeder(backend, log, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))).Run(ctx); err != nil {
			log.Warn("Seeding finished with errors", zap.Error(err))
		}
	}

	handler := api.NewAPIHandler(log, store.New(backend))
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     zap.NewStdLog(log.Named("http")),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting web server", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("web server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received, gracefully shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	return <-serveErr
}
