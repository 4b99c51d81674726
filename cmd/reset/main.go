// Command reset deletes every ingredient, recipe, stock entry, user and order
// from the configured store. Intended for development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/osse101/CoffeePOS_Go/internal/bootstrap"
	"github.com/osse101/CoffeePOS_Go/internal/config"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

func main() {
	confirm := flag.Bool("yes", false, "confirm deleting all data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !*confirm {
		log.Fatalf("Refusing to delete all %s data without -yes", cfg.StorageDriver)
	}
	if cfg.Environment == "production" || cfg.Environment == logger.EnvironmentProduction {
		log.Fatalf("Refusing to reset a %s environment", cfg.Environment)
	}

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	if err := repository.DeleteAll(ctx, store); err != nil {
		log.Fatalf("Reset failed: %v", err)
	}
	fmt.Printf("All data deleted from %s storage.\n", cfg.StorageDriver)
}
