package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/CoffeePOS_Go/internal/bootstrap"
	"github.com/osse101/CoffeePOS_Go/internal/config"
	"github.com/osse101/CoffeePOS_Go/internal/server"
)

// @title Coffee POS API
// @version 1.0
// @description Point-of-sale backend for a coffee shop: menu, stock, purchases and order hand-over.
// @BasePath /
// @securityDefinitions.basic BasicAuth
func main() {
	if err := run(); err != nil {
		slog.Error("Coffee POS exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	app, err := bootstrap.Assemble(ctx, cfg, store)
	if err != nil {
		_ = store.Close()
		return err
	}

	if cfg.SeedPath != "" {
		if _, err := bootstrap.SyncSeed(ctx, app, cfg.SeedPath); err != nil {
			_ = store.Close()
			return err
		}
	}

	broker, err := bootstrap.InitializeEventSystem(ctx, cfg, app.Bus)
	if err != nil {
		_ = store.Close()
		return err
	}

	srv := server.NewServer(app.ServerOptions(), app.Services())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Hub:    app.Hub,
		Server: srv,
		Broker: broker,
		Store:  store,
	})
	return err
}
