package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

func TestRecipeHandler_MenuTitleCasesNames(t *testing.T) {
	f := newFixture(t)
	_, err := f.book.Create(t.Context(), boss, domain.Recipe{
		Name:         "iced oat latte",
		Price:        60,
		Requirements: domain.Requirements{"Coffee": 1, "Milk": 20},
	})
	require.NoError(t, err)

	w := f.do(t, alice, http.MethodGet, "/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	menu := decode[MenuResponse](t, w)
	require.Len(t, menu.Items, 2)
	assert.Equal(t, "Latte", menu.Items[0].Name)
	assert.True(t, menu.Items[0].Available)
	assert.Equal(t, "iced oat latte", menu.Items[1].Name)
	assert.Equal(t, "Iced Oat Latte", menu.Items[1].DisplayName)
	assert.False(t, menu.Items[1].Available, "needs more milk than is stocked")
	assert.Equal(t, 60, menu.Items[1].Price)
}

func TestRecipeHandler_MenuRequiresAuthentication(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, anonymous, http.MethodGet, "/recipes", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecipeHandler_Get(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, barista, http.MethodGet, "/recipes/Latte", nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := decode[MenuItem](t, w)
	assert.Equal(t, domain.Requirements{"Coffee": 1, "Milk": 1}, item.Requirements)

	w = f.do(t, barista, http.MethodGet, "/recipes/Espresso", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgRecipeNotFound)
}

func TestRecipeHandler_Create(t *testing.T) {
	espresso := RecipeRequest{Name: "Espresso", Price: 30, Requirements: map[string]int{"Coffee": 2}}

	tests := []struct {
		name       string
		caller     domain.Caller
		body       any
		wantStatus int
	}{
		{"manager creates", boss, espresso, http.StatusCreated},
		{"staff forbidden", barista, espresso, http.StatusForbidden},
		{"anonymous unauthenticated", anonymous, espresso, http.StatusUnauthorized},
		{"duplicate name", boss, RecipeRequest{Name: "Latte", Price: 10, Requirements: map[string]int{"Coffee": 1}}, http.StatusConflict},
		{"unknown ingredient", boss, RecipeRequest{Name: "Chai", Price: 10, Requirements: map[string]int{"Tea": 1}}, http.StatusNotFound},
		{"zero price", boss, RecipeRequest{Name: "Free", Price: 0, Requirements: map[string]int{"Coffee": 1}}, http.StatusBadRequest},
		{"no requirements", boss, RecipeRequest{Name: "Air", Price: 10, Requirements: map[string]int{}}, http.StatusBadRequest},
		{"zero quantity", boss, RecipeRequest{Name: "Weak", Price: 10, Requirements: map[string]int{"Coffee": 0}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w := f.do(t, tt.caller, http.MethodPost, "/recipes", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestRecipeHandler_CreateBeyondCapacity(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Espresso", "Cortado"} {
		w := f.do(t, boss, http.MethodPost, "/recipes", RecipeRequest{Name: name, Price: 30, Requirements: map[string]int{"Coffee": 1}})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := f.do(t, boss, http.MethodPost, "/recipes", RecipeRequest{Name: "Mocha", Price: 30, Requirements: map[string]int{"Coffee": 1}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgMenuFull)
	assert.Len(t, f.book.ListAll(), domain.DefaultMaxRecipes)
}

func TestRecipeHandler_Update(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, boss, http.MethodPut, "/recipes/Latte", RecipeRequest{
		Name:         "Flat White",
		Price:        55,
		Requirements: map[string]int{"Coffee": 2, "Milk": 1},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	_, err := f.book.FindByName("Latte")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	fw, err := f.book.FindByName("Flat White")
	require.NoError(t, err)
	assert.Equal(t, 55, fw.Price)

	w = f.do(t, boss, http.MethodPut, "/recipes/Latte", RecipeRequest{Name: "Latte", Price: 1, Requirements: map[string]int{"Coffee": 1}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeHandler_Delete(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, barista, http.MethodDelete, "/recipes/Latte", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, boss, http.MethodDelete, "/recipes/Latte", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MsgRecipeDeleted)

	w = f.do(t, boss, http.MethodDelete, "/recipes/Latte", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
