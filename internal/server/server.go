package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/CoffeePOS_Go/internal/fulfillment"
	"github.com/osse101/CoffeePOS_Go/internal/handler"
	"github.com/osse101/CoffeePOS_Go/internal/metrics"
	"github.com/osse101/CoffeePOS_Go/internal/middleware"
	"github.com/osse101/CoffeePOS_Go/internal/order"
	"github.com/osse101/CoffeePOS_Go/internal/user"
)

// Ledger is the read side of stock the handlers need
type Ledger interface {
	handler.StockReader
	handler.AvailabilityChecker
}

// Services bundles everything the routes call into
type Services struct {
	Store     handler.Pinger
	Catalog   handler.IngredientService
	Ledger    Ledger
	Recipes   handler.RecipeService
	Purchases fulfillment.Service
	Orders    order.Service
	Users     user.Service

	// OrderStream serves the live order feed; nil leaves the route out
	OrderStream http.Handler
}

// Options are the transport settings
type Options struct {
	Port           int
	Version        string
	TrustedProxies []string
	MaxRequests    int
}

type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and wraps it in an http.Server
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter wires middleware and routes. Middleware runs in the order it is
// added, outermost first.
func NewRouter(opts Options, svc Services) http.Handler {
	maxRequests := opts.MaxRequests
	if maxRequests <= 0 {
		maxRequests = MaxRequestsPerWindow
	}
	detector := NewSuspiciousActivityDetector(maxRequests)

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware())
	r.Use(requestIDMiddleware)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Store))
	r.Get("/version", handler.HandleVersion(opts.Version))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	ingredients := handler.NewIngredientHandler(svc.Catalog)
	inventory := handler.NewInventoryHandler(svc.Ledger, svc.Catalog)
	recipes := handler.NewRecipeHandler(svc.Recipes, svc.Ledger)
	purchases := handler.NewPurchaseHandler(svc.Purchases)
	orders := handler.NewOrderHandler(svc.Orders)
	users := handler.NewUserHandler(svc.Users)

	onAuthFailure := func(req *http.Request) {
		detector.RecordFailedAuth(extractIP(req, opts.TrustedProxies))
	}

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(middleware.Authenticate(svc.Users, onAuthFailure))

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredients.HandleList)
			r.Post("/", ingredients.HandleCreate)
			r.Get("/{name}", ingredients.HandleGet)
			r.Put("/{name}", ingredients.HandleRename)
			r.Delete("/{name}", ingredients.HandleDelete)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventory.HandleList)
			r.Get("/text", inventory.HandleText)
			r.Post("/restock", inventory.HandleRestock)
			r.Put("/{name}", inventory.HandleSet)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.HandleMenu)
			r.Post("/", recipes.HandleCreate)
			r.Get("/{name}", recipes.HandleGet)
			r.Put("/{name}", recipes.HandleUpdate)
			r.Delete("/{name}", recipes.HandleDelete)
		})

		r.Post("/purchases", purchases.HandlePurchase)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.HandleList)
			if svc.OrderStream != nil {
				r.Get("/stream", handler.HandleStream(svc.OrderStream))
			}
			r.Get("/{id}", orders.HandleGet)
			r.Post("/{id}/complete", orders.HandleComplete)
			r.Post("/{id}/pickup", orders.HandlePickUp)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.HandleRegister)
			r.Get("/me", users.HandleMe)
		})
	})

	return r
}

// Start serves until Stop is called. A graceful stop is not an error.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
