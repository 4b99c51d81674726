// Command setup prepares storage for the configured driver: it creates the
// postgres database when missing, applies migrations and syncs the menu seed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/CoffeePOS_Go/internal/bootstrap"
	"github.com/osse101/CoffeePOS_Go/internal/config"
)

const defaultSeedPath = "configs/seed.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	seedPath := cfg.SeedPath
	if seedPath == "" {
		seedPath = defaultSeedPath
	}
	flag.StringVar(&seedPath, "seed", seedPath, "menu seed file, empty to skip")
	flag.Parse()

	if _, err := bootstrap.SetupLogger(cfg); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	ctx := context.Background()

	if cfg.StorageDriver == config.StorageDriverPostgres {
		if err := ensureDatabase(ctx, cfg); err != nil {
			log.Fatalf("Failed to prepare database: %v", err)
		}
	}

	// opening the store applies migrations
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	if seedPath == "" {
		fmt.Println("Setup completed, seed skipped.")
		return
	}

	app, err := bootstrap.Assemble(ctx, cfg, store)
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}
	result, err := bootstrap.SyncSeed(ctx, app, seedPath)
	if err != nil {
		log.Fatalf("Failed to apply seed: %v", err)
	}

	fmt.Printf("Setup completed: %d ingredients and %d recipes added (%d and %d already present).\n",
		result.IngredientsInserted, result.RecipesInserted, result.IngredientsSkipped, result.RecipesSkipped)
}

// ensureDatabase creates DB_NAME through the server's maintenance database
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	admin := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:     "postgres",
		RawQuery: "sslmode=disable",
	}
	conn, err := pgx.Connect(ctx, admin.String())
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	fmt.Println("Database created successfully.")
	return nil
}
