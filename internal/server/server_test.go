package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

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

type credentials struct{ name, password string }

var (
	owner    = credentials{"owner", "owner-pass-1"}
	customer = credentials{"carol", "carol-pass-1"}
	barista  = credentials{"bert", "bert-pass-1"}
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newTestRouterWithStream(t, nil)
}

func newTestRouterWithStream(t *testing.T, stream http.Handler) http.Handler {
	t.Helper()
	store := memory.New()
	ledger := inventory.NewLedger(store)
	book := recipe.NewBook(store, nil, domain.DefaultMaxRecipes)
	cat := catalog.New(store, book, ledger)
	bus := event.NewMemoryBus()
	users := user.NewService(store, user.DefaultCacheConfig(), bcrypt.MinCost)
	require.NoError(t, users.EnsureManager(t.Context(), owner.name, owner.password))

	return NewRouter(Options{Version: "test"}, Services{
		Store:     store,
		Catalog:   cat,
		Ledger:    ledger,
		Recipes:   book,
		Purchases: fulfillment.NewEngine(book, ledger, bus),
		Orders:    order.NewService(store, concurrency.NewLockManager(), bus),
		Users:     users,

		OrderStream: stream,
	})
}

func call(t *testing.T, h http.Handler, as *credentials, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if as != nil {
		req.SetBasicAuth(as.name, as.password)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicEndpoints(t *testing.T) {
	h := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		rec := call(t, h, nil, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_SwaggerUIIsPublic(t *testing.T) {
	h := newTestRouter(t)

	rec := call(t, h, nil, http.MethodGet, "/swagger/index.html", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "swagger-ui")
}

func TestRouter_WrongPasswordIsChallenged(t *testing.T) {
	h := newTestRouter(t)

	rec := call(t, h, &credentials{owner.name, "wrong-password"}, http.MethodGet, APIPrefix+"/recipes", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	rec = call(t, h, nil, http.MethodGet, APIPrefix+"/recipes", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "anonymous callers are refused by the access guard")
}

func TestRouter_CoffeeShopDay(t *testing.T) {
	h := newTestRouter(t)
	api := func(path string) string { return APIPrefix + path }

	// accounts
	rec := call(t, h, nil, http.MethodPost, api("/users"), map[string]string{"name": customer.name, "password": customer.password})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = call(t, h, &owner, http.MethodPost, api("/users"), map[string]string{"name": barista.name, "password": barista.password, "role": "staff"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// stock and menu
	for _, name := range []string{"Coffee", "Milk"} {
		rec = call(t, h, &barista, http.MethodPost, api("/ingredients"), map[string]any{"name": name, "initial_stock": 1})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec = call(t, h, &owner, http.MethodPost, api("/recipes"), map[string]any{
		"name": "cafe latte", "price": 50, "requirements": map[string]int{"Coffee": 1, "Milk": 1},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(t, h, &customer, http.MethodGet, api("/recipes"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"display_name":"Cafe Latte"`)

	// buy, then run out
	rec = call(t, h, &customer, http.MethodPost, api("/purchases"), map[string]any{"recipe": "cafe latte", "amount_paid": 60})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var receipt struct {
		Change int          `json:"change"`
		Order  domain.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, 10, receipt.Change)

	rec = call(t, h, &customer, http.MethodPost, api("/purchases"), map[string]any{"recipe": "cafe latte", "amount_paid": 60})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"change":60`)

	rec = call(t, h, &customer, http.MethodGet, api("/inventory/text"), nil)
	assert.Equal(t, "Coffee: 0\nMilk: 0\n", rec.Body.String())

	// restock and hand over
	rec = call(t, h, &barista, http.MethodPost, api("/inventory/restock"), map[string]any{"deltas": map[string]int{"Coffee": 5, "Milk": 5}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	id := receipt.Order.ID
	rec = call(t, h, &barista, http.MethodPost, api("/orders/"+id+"/complete"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = call(t, h, &customer, http.MethodPost, api("/orders/"+id+"/pickup"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, &customer, http.MethodGet, api("/orders"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"picked_up":true`)

	// removing Milk strips it from the recipe
	rec = call(t, h, &barista, http.MethodDelete, api("/ingredients/Milk"), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"recipes_updated":["cafe latte"]`)
}

func TestRouter_OrderStream(t *testing.T) {
	t.Run("absent without a feed", func(t *testing.T) {
		rec := call(t, newTestRouter(t), &owner, http.MethodGet, APIPrefix+"/orders/stream", nil)
		assert.NotEqual(t, http.StatusOK, rec.Code)
	})

	feed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("event: connected\n\n"))
	})
	h := newTestRouterWithStream(t, feed)
	require.Equal(t, http.StatusCreated, call(t, h, nil, http.MethodPost, APIPrefix+"/users",
		map[string]string{"name": customer.name, "password": customer.password}).Code)

	rec := call(t, h, &customer, http.MethodGet, APIPrefix+"/orders/stream", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(t, h, &owner, http.MethodGet, APIPrefix+"/orders/stream", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "connected")
}
