package handler

import (
	"net/http"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/fulfillment"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

// PurchaseHandler handles the purchase endpoint
type PurchaseHandler struct {
	engine fulfillment.Service
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(engine fulfillment.Service) *PurchaseHandler {
	return &PurchaseHandler{engine: engine}
}

// PurchaseRequest buys one unit of a recipe. The amount is not range checked
// here so that the engine can reject it and report the change.
type PurchaseRequest struct {
	Recipe     string `json:"recipe" validate:"required,notblank,max=100"`
	AmountPaid int    `json:"amount_paid"`
}

// PurchaseResponse carries the receipt; Error is set when the purchase was
// rejected, in which case Change is the refund.
type PurchaseResponse struct {
	fulfillment.Receipt
	Error string `json:"error,omitempty"`
}

// HandlePurchase runs a purchase and always reports the change owed
// @Summary Buy a drink
// @Description Pays for one recipe. The change owed is reported even when the purchase fails.
// @Tags purchases
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body PurchaseRequest true "Recipe and amount paid"
// @Success 201 {object} PurchaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} PurchaseResponse
// @Failure 422 {object} PurchaseResponse
// @Failure 500 {object} PurchaseResponse
// @Router /api/v1/purchases [post]
func (h *PurchaseHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionPurchase); err != nil {
		return
	}

	caller := access.CallerFromContext(r.Context())
	receipt, err := h.engine.Purchase(r.Context(), caller, req.Recipe, req.AmountPaid)
	if err != nil {
		status, msg := mapServiceErrorToUserMessage(caller, err)
		logger.FromContext(r.Context()).Warn("Purchase rejected",
			"recipe", req.Recipe,
			"stage", receipt.RejectedAt,
			"change", receipt.Change,
			"status", status)
		respondJSON(w, r, status, PurchaseResponse{Receipt: receipt, Error: msg})
		return
	}

	respondJSON(w, r, http.StatusCreated, PurchaseResponse{Receipt: receipt})
}
