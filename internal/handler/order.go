package handler

import (
	"context"
	"net/http"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/order"
)

// OrderHandler handles order history and hand-over endpoints
type OrderHandler struct {
	service order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// OrderListResponse wraps a list of orders
type OrderListResponse struct {
	Orders []domain.Order `json:"orders"`
}

// HandleList returns the caller's own orders, or every order for employees
// @Summary List orders
// @Description Customers see their own orders, employees see every order
// @Tags orders
// @Produce json
// @Security BasicAuth
// @Success 200 {object} OrderListResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/orders [get]
func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller := access.CallerFromContext(r.Context())
	orders, err := h.service.List(r.Context(), caller)
	if err != nil {
		respondServiceError(w, r, ActionListOrders, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, r, http.StatusOK, OrderListResponse{Orders: orders})
}

type orderAction func(ctx context.Context, caller domain.Caller, id string) (*domain.Order, error)

func (h *OrderHandler) handleOne(action orderAction, actionName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetPathParam(r, w, ParamID)
		if !ok {
			return
		}
		caller := access.CallerFromContext(r.Context())
		o, err := action(r.Context(), caller, id)
		if err != nil {
			respondServiceError(w, r, actionName, err)
			return
		}
		respondJSON(w, r, http.StatusOK, o)
	}
}

// HandleGet returns one order
// @Summary Get order
// @Tags orders
// @Produce json
// @Security BasicAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.handleOne(h.service.Get, ActionGetOrder)(w, r)
}

// HandleComplete marks an order as made
// @Summary Complete order
// @Tags orders
// @Produce json
// @Security BasicAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/orders/{id}/complete [post]
func (h *OrderHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handleOne(h.service.Complete, ActionCompleteOrder)(w, r)
}

// HandlePickUp marks a completed order as handed over
// @Summary Pick up order
// @Tags orders
// @Produce json
// @Security BasicAuth
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/orders/{id}/pickup [post]
func (h *OrderHandler) HandlePickUp(w http.ResponseWriter, r *http.Request) {
	h.handleOne(h.service.PickUp, ActionPickUpOrder)(w, r)
}

// HandleStream guards the live order feed; only employees may watch it
// @Summary Live order feed
// @Description Server-sent events for order placement and hand-over
// @Tags orders
// @Produce text/event-stream
// @Security BasicAuth
// @Param types query string false "Comma separated event types"
// @Success 200 {string} string
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/orders/stream [get]
func HandleStream(stream http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAccess(w, r, access.OpListAllOrders, ActionStreamOrders); !ok {
			return
		}
		stream.ServeHTTP(w, r)
	}
}
