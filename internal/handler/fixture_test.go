package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/catalog"
	"github.com/osse101/CoffeePOS_Go/internal/concurrency"
	"github.com/osse101/CoffeePOS_Go/internal/database/memory"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/event"
	"github.com/osse101/CoffeePOS_Go/internal/fulfillment"
	"github.com/osse101/CoffeePOS_Go/internal/inventory"
	"github.com/osse101/CoffeePOS_Go/internal/order"
	"github.com/osse101/CoffeePOS_Go/internal/recipe"
	"github.com/osse101/CoffeePOS_Go/internal/user"
)

var (
	anonymous = domain.Anonymous()
	alice     = domain.Caller{UserID: "u-alice", Name: "alice", Role: domain.RoleCustomer, Authenticated: true}
	bob       = domain.Caller{UserID: "u-bob", Name: "bob", Role: domain.RoleCustomer, Authenticated: true}
	barista   = domain.Caller{UserID: "u-staff", Name: "barista", Role: domain.RoleStaff, Authenticated: true}
	boss      = domain.Caller{UserID: "u-boss", Name: "boss", Role: domain.RoleManager, Authenticated: true}
)

type fixture struct {
	store   *memory.Store
	catalog *catalog.Catalog
	book    *recipe.Book
	ledger  *inventory.Ledger
	router  chi.Router
}

// newFixture wires the real services over the in-memory store. Coffee and
// Milk are stocked with 10 each and a Latte needs one of each for 50.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.New()
	ledger := inventory.NewLedger(store)
	book := recipe.NewBook(store, nil, domain.DefaultMaxRecipes)
	cat := catalog.New(store, book, ledger)

	for _, name := range []domain.IngredientName{"Coffee", "Milk"} {
		_, err := cat.Create(ctx, barista, name, 10)
		require.NoError(t, err)
	}
	_, err := book.Create(ctx, boss, domain.Recipe{
		Name:         "Latte",
		Price:        50,
		Requirements: domain.Requirements{"Coffee": 1, "Milk": 1},
	})
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	f := &fixture{store: store, catalog: cat, book: book, ledger: ledger}

	ingredients := NewIngredientHandler(cat)
	inv := NewInventoryHandler(ledger, cat)
	recipes := NewRecipeHandler(book, ledger)
	purchases := NewPurchaseHandler(fulfillment.NewEngine(book, ledger, bus))
	orders := NewOrderHandler(order.NewService(store, concurrency.NewLockManager(), bus))
	users := NewUserHandler(user.NewService(store, user.DefaultCacheConfig(), bcrypt.MinCost))

	r := chi.NewRouter()
	r.Get("/ingredients", ingredients.HandleList)
	r.Post("/ingredients", ingredients.HandleCreate)
	r.Get("/ingredients/{name}", ingredients.HandleGet)
	r.Put("/ingredients/{name}", ingredients.HandleRename)
	r.Delete("/ingredients/{name}", ingredients.HandleDelete)
	r.Get("/inventory", inv.HandleList)
	r.Get("/inventory/text", inv.HandleText)
	r.Post("/inventory/restock", inv.HandleRestock)
	r.Put("/inventory/{name}", inv.HandleSet)
	r.Get("/recipes", recipes.HandleMenu)
	r.Post("/recipes", recipes.HandleCreate)
	r.Get("/recipes/{name}", recipes.HandleGet)
	r.Put("/recipes/{name}", recipes.HandleUpdate)
	r.Delete("/recipes/{name}", recipes.HandleDelete)
	r.Post("/purchases", purchases.HandlePurchase)
	r.Get("/orders", orders.HandleList)
	r.Get("/orders/{id}", orders.HandleGet)
	r.Post("/orders/{id}/complete", orders.HandleComplete)
	r.Post("/orders/{id}/pickup", orders.HandlePickUp)
	r.Post("/users", users.HandleRegister)
	r.Get("/users/me", users.HandleMe)
	f.router = r

	return f
}

// do sends a request as caller and returns the recorder
func (f *fixture) do(t *testing.T, caller domain.Caller, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(access.WithCaller(req.Context(), caller))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// purchase settles a Latte for caller and returns the order id
func (f *fixture) purchase(t *testing.T, caller domain.Caller) string {
	t.Helper()
	w := f.do(t, caller, http.MethodPost, "/purchases", PurchaseRequest{Recipe: "Latte", AmountPaid: 50})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[PurchaseResponse](t, w)
	require.NotNil(t, resp.Order)
	return resp.Order.ID
}
