package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

func TestOrderHandler_List(t *testing.T) {
	f := newFixture(t)
	f.purchase(t, alice)
	f.purchase(t, bob)
	f.purchase(t, alice)

	w := f.do(t, alice, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	own := decode[OrderListResponse](t, w)
	assert.Len(t, own.Orders, 2)
	for _, o := range own.Orders {
		assert.Equal(t, alice.UserID, o.CustomerID)
	}

	w = f.do(t, barista, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[OrderListResponse](t, w).Orders, 3)

	w = f.do(t, anonymous, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandler_ListEmptyIsArray(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, alice, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"orders":[]}`, w.Body.String())
}

func TestOrderHandler_Get(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t, alice)

	w := f.do(t, alice, http.MethodGet, "/orders/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode[domain.Order](t, w).ID)

	w = f.do(t, bob, http.MethodGet, "/orders/"+id, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, barista, http.MethodGet, "/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgOrderNotFound)
}

func TestOrderHandler_CompleteThenPickUp(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t, alice)

	w := f.do(t, alice, http.MethodPost, "/orders/"+id+"/pickup", nil)
	assert.Equal(t, http.StatusConflict, w.Code, "not complete yet")

	w = f.do(t, alice, http.MethodPost, "/orders/"+id+"/complete", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, barista, http.MethodPost, "/orders/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[domain.Order](t, w).Complete)

	w = f.do(t, boss, http.MethodPost, "/orders/"+id+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, bob, http.MethodPost, "/orders/"+id+"/pickup", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, alice, http.MethodPost, "/orders/"+id+"/pickup", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	o := decode[domain.Order](t, w)
	assert.True(t, o.Complete)
	assert.True(t, o.PickedUp)

	w = f.do(t, barista, http.MethodPost, "/orders/"+id+"/pickup", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderHandler_OrderOutlivesRecipe(t *testing.T) {
	f := newFixture(t)
	id := f.purchase(t, alice)
	require.NoError(t, f.book.Delete(t.Context(), boss, "Latte"))

	w := f.do(t, alice, http.MethodGet, "/orders/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	o := decode[domain.Order](t, w)
	assert.Equal(t, "Latte", o.RecipeName)
	assert.Equal(t, 50, o.Price)
}
