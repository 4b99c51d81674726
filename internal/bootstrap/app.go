// Package bootstrap assembles the service: storage, the in-memory engine
// state loaded from it, the event system and the HTTP server.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CoffeePOS_Go/internal/catalog"
	"github.com/osse101/CoffeePOS_Go/internal/concurrency"
	"github.com/osse101/CoffeePOS_Go/internal/config"
	"github.com/osse101/CoffeePOS_Go/internal/event"
	"github.com/osse101/CoffeePOS_Go/internal/fulfillment"
	"github.com/osse101/CoffeePOS_Go/internal/inventory"
	"github.com/osse101/CoffeePOS_Go/internal/order"
	"github.com/osse101/CoffeePOS_Go/internal/recipe"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
	"github.com/osse101/CoffeePOS_Go/internal/server"
	"github.com/osse101/CoffeePOS_Go/internal/sse"
	"github.com/osse101/CoffeePOS_Go/internal/user"
)

// App owns every long-lived component. The ledger and recipe book are the
// single shared instances handed to everything that needs them.
type App struct {
	Config  *config.Config
	Store   repository.Store
	Bus     *event.MemoryBus
	Catalog *catalog.Catalog
	Book    *recipe.Book
	Ledger  *inventory.Ledger
	Engine  *fulfillment.Engine
	Orders  order.Service
	Users   user.Service
	Hub     *sse.Hub
}

// Assemble wires the services over store and loads its persisted state
func Assemble(ctx context.Context, cfg *config.Config, store repository.Store) (*App, error) {
	bus := event.NewMemoryBus()
	ledger := inventory.NewLedger(store)
	book := recipe.NewBook(store, nil, cfg.MaxRecipes)
	cat := catalog.New(store, book, ledger)

	app := &App{
		Config:  cfg,
		Store:   store,
		Bus:     bus,
		Catalog: cat,
		Book:    book,
		Ledger:  ledger,
		Engine:  fulfillment.NewEngine(book, ledger, bus),
		Orders:  order.NewService(store, concurrency.NewLockManager(), bus),
		Users: user.NewService(store, user.CacheConfig{
			Size: cfg.UserCacheSize,
			TTL:  cfg.UserCacheTTL,
		}, user.DefaultHashCost),
	}

	if err := app.Load(ctx); err != nil {
		return nil, err
	}

	if cfg.HasBootstrapManager() {
		if err := app.Users.EnsureManager(ctx, cfg.BootstrapManagerName, cfg.BootstrapManagerPassword); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedEnsureAdmin, err)
		}
	}

	RegisterEventHandlers(bus)

	app.Hub = sse.NewHub()
	app.Hub.Start()
	sse.NewSubscriber(app.Hub, bus).Subscribe(OrderEventTypes...)

	return app, nil
}

// Load replaces the in-memory catalog, book and ledger with what the store holds
func (a *App) Load(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"ingredients", a.Catalog.Load},
		{"recipes", a.Book.Load},
		{"inventory", a.Ledger.Load},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("%s (%s): %w", ErrMsgFailedLoadState, step.name, err)
		}
	}

	slog.Info(LogMsgStateLoaded,
		"ingredients", len(a.Catalog.List()),
		"recipes", len(a.Book.ListAll()),
		"max_recipes", a.Book.MaxRecipes())
	return nil
}

// Services exposes the app to the HTTP layer
func (a *App) Services() server.Services {
	return server.Services{
		Store:     a.Store,
		Catalog:   a.Catalog,
		Ledger:    a.Ledger,
		Recipes:   a.Book,
		Purchases: a.Engine,
		Orders:    a.Orders,
		Users:     a.Users,

		OrderStream: sse.Handler(a.Hub),
	}
}

// ServerOptions maps the config onto the transport settings
func (a *App) ServerOptions() server.Options {
	return server.Options{
		Port:           a.Config.Port,
		Version:        a.Config.Version,
		TrustedProxies: a.Config.TrustedProxies,
	}
}
