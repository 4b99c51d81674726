package handler

import (
	"net/http"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

// StockReader is the read side of the inventory ledger
type StockReader interface {
	Snapshot() []domain.StockEntry
	Render() string
}

// InventoryHandler handles stock endpoints. Writes go through the catalog so
// unknown ingredients are rejected before the ledger is touched.
type InventoryHandler struct {
	stock       StockReader
	ingredients IngredientService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(stock StockReader, ingredients IngredientService) *InventoryHandler {
	return &InventoryHandler{stock: stock, ingredients: ingredients}
}

// RestockRequest adds each quantity to the named ingredient's stock
type RestockRequest struct {
	Deltas map[string]int `json:"deltas" validate:"required,min=1,dive,keys,notblank,endkeys,min=0"`
}

// SetStockRequest overwrites one ingredient's stock
type SetStockRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// InventoryResponse lists stock sorted by ingredient name
type InventoryResponse struct {
	Entries []domain.StockEntry `json:"entries"`
}

// HandleList returns the ledger sorted by ingredient name
// @Summary List stock
// @Tags inventory
// @Produce json
// @Security BasicAuth
// @Success 200 {object} InventoryResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/inventory [get]
func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccess(w, r, access.OpRead, ActionRead); !ok {
		return
	}
	respondJSON(w, r, http.StatusOK, InventoryResponse{Entries: h.stock.Snapshot()})
}

// HandleText returns the plain-text ledger rendering
// @Summary Stock as text
// @Description Returns one "name: quantity" line per ingredient
// @Tags inventory
// @Produce plain
// @Security BasicAuth
// @Success 200 {string} string
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/inventory/text [get]
func (h *InventoryHandler) HandleText(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccess(w, r, access.OpRead, ActionRead); !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.stock.Render()))
}

// HandleRestock applies a bulk increment, all or nothing
// @Summary Restock ingredients
// @Description Adds each quantity to stock. Either every delta applies or none does.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body RestockRequest true "Quantities to add"
// @Success 200 {object} InventoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/inventory/restock [post]
func (h *InventoryHandler) HandleRestock(w http.ResponseWriter, r *http.Request) {
	var req RestockRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionRestock); err != nil {
		return
	}

	deltas := make(map[domain.IngredientName]int, len(req.Deltas))
	for name, qty := range req.Deltas {
		deltas[domain.IngredientName(name)] = qty
	}

	caller := access.CallerFromContext(r.Context())
	if err := h.ingredients.Restock(r.Context(), caller, deltas); err != nil {
		respondServiceError(w, r, ActionRestock, err)
		return
	}
	respondJSON(w, r, http.StatusOK, InventoryResponse{Entries: h.stock.Snapshot()})
}

// HandleSet overwrites the stock of a single ingredient
// @Summary Set stock
// @Tags inventory
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param name path string true "Ingredient name"
// @Param request body SetStockRequest true "New quantity"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/inventory/{name} [put]
func (h *InventoryHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	name, ok := GetPathParam(r, w, ParamName)
	if !ok {
		return
	}
	var req SetStockRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionSetStock); err != nil {
		return
	}

	caller := access.CallerFromContext(r.Context())
	if err := h.ingredients.SetStock(r.Context(), caller, domain.IngredientName(name), req.Quantity); err != nil {
		respondServiceError(w, r, ActionSetStock, err)
		return
	}
	respondJSON(w, r, http.StatusOK, SuccessResponse{Message: MsgStockUpdated})
}
