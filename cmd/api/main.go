package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rannielson/analisefinanceiro/internal/api"
	"github.com/Rannielson/analisefinanceiro/internal/application/reconcile"
	"github.com/Rannielson/analisefinanceiro/internal/infrastructure/config"
	"github.com/Rannielson/analisefinanceiro/internal/infrastructure/storage"
	"github.com/Rannielson/analisefinanceiro/internal/observability"
)

func main() {
	configFile := flag.String("config", "", "Configuration file path")
	flag.Parse()

	cfg := config.LoadOrEnv(*configFile)

	logger := observability.NewLogger(cfg.Observability.Logging)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Reconcile: reconcile.Config{
			ReferenceYear: cfg.Reconcile.ReferenceYear,
			Tolerance:     cfg.Reconcile.Tolerance,
		},
	}, store, logger)

	// Run the server in the background so we can wait on signals
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("Received signal, shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
			os.Exit(1)
		}
	}
}
