package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoffeePOS_Go/internal/catalog"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

func TestIngredientHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		caller     domain.Caller
		body       any
		wantStatus int
		wantBody   string
	}{
		{"staff creates", barista, CreateIngredientRequest{Name: "Sugar", InitialStock: 5}, http.StatusCreated, `"name":"Sugar"`},
		{"manager creates with no stock", boss, CreateIngredientRequest{Name: "Cocoa"}, http.StatusCreated, `"name":"Cocoa"`},
		{"duplicate", barista, CreateIngredientRequest{Name: "Coffee", InitialStock: 1}, http.StatusConflict, "already exists"},
		{"customer forbidden", alice, CreateIngredientRequest{Name: "Sugar"}, http.StatusForbidden, ErrMsgForbidden},
		{"anonymous unauthenticated", anonymous, CreateIngredientRequest{Name: "Sugar"}, http.StatusUnauthorized, ErrMsgAuthRequired},
		{"blank name", barista, CreateIngredientRequest{Name: "   "}, http.StatusBadRequest, `"name":"This field is required"`},
		{"negative stock", barista, CreateIngredientRequest{Name: "Sugar", InitialStock: -1}, http.StatusBadRequest, `"initial_stock"`},
		{"malformed body", barista, "{", http.StatusBadRequest, ErrMsgInvalidRequest},
		{"unknown field", barista, `{"name":"Sugar","color":"white"}`, http.StatusBadRequest, ErrMsgInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w := f.do(t, tt.caller, http.MethodPost, "/ingredients", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestIngredientHandler_CreateSetsInitialStock(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, barista, http.MethodPost, "/ingredients", CreateIngredientRequest{Name: "Sugar", InitialStock: 7})
	require.Equal(t, http.StatusCreated, w.Code)

	qty, ok := f.ledger.Quantity("Sugar")
	require.True(t, ok)
	assert.Equal(t, 7, qty)
}

func TestIngredientHandler_ListAndGet(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, alice, http.MethodGet, "/ingredients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]domain.Ingredient](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, domain.IngredientName("Coffee"), list[0].Name)
	assert.Equal(t, domain.IngredientName("Milk"), list[1].Name)

	w = f.do(t, alice, http.MethodGet, "/ingredients/Milk", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.IngredientName("Milk"), decode[domain.Ingredient](t, w).Name)

	w = f.do(t, alice, http.MethodGet, "/ingredients/Saffron", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgIngredientNotFound)

	w = f.do(t, anonymous, http.MethodGet, "/ingredients", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIngredientHandler_GetUnescapesName(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, barista, http.MethodPost, "/ingredients", CreateIngredientRequest{Name: "Oat Milk", InitialStock: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, alice, http.MethodGet, "/ingredients/Oat%20Milk", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestIngredientHandler_Rename(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, barista, http.MethodPut, "/ingredients/Milk", RenameIngredientRequest{Name: "Oat Milk"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	latte, err := f.book.FindByName("Latte")
	require.NoError(t, err)
	assert.Equal(t, domain.Requirements{"Coffee": 1, "Oat Milk": 1}, latte.Requirements)

	w = f.do(t, barista, http.MethodPut, "/ingredients/Milk", RenameIngredientRequest{Name: "Soy"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, barista, http.MethodPut, "/ingredients/Coffee", RenameIngredientRequest{Name: "Oat Milk"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIngredientHandler_Delete(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, alice, http.MethodDelete, "/ingredients/Milk", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, barista, http.MethodDelete, "/ingredients/Milk", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decode[catalog.DeleteReport](t, w)
	assert.Equal(t, []string{"Latte"}, report.RecipesUpdated)
	assert.True(t, report.HadStock)

	_, tracked := f.ledger.Quantity("Milk")
	assert.False(t, tracked)

	w = f.do(t, barista, http.MethodDelete, "/ingredients/Milk", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
