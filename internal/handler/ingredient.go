package handler

import (
	"context"
	"net/http"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/catalog"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

// IngredientService is the catalog surface the ingredient and inventory
// handlers need. *catalog.Catalog implements it.
type IngredientService interface {
	List() []domain.Ingredient
	Find(name domain.IngredientName) (domain.Ingredient, error)
	Create(ctx context.Context, caller domain.Caller, name domain.IngredientName, initialStock int) (domain.Ingredient, error)
	Rename(ctx context.Context, caller domain.Caller, existing, newName domain.IngredientName) (domain.Ingredient, error)
	Delete(ctx context.Context, caller domain.Caller, name domain.IngredientName) (catalog.DeleteReport, error)
	Restock(ctx context.Context, caller domain.Caller, deltas map[domain.IngredientName]int) error
	SetStock(ctx context.Context, caller domain.Caller, name domain.IngredientName, quantity int) error
}

// IngredientHandler handles ingredient HTTP endpoints
type IngredientHandler struct {
	service IngredientService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(service IngredientService) *IngredientHandler {
	return &IngredientHandler{service: service}
}

// CreateIngredientRequest is the request body for adding an ingredient
type CreateIngredientRequest struct {
	Name         string `json:"name" validate:"required,notblank,max=100"`
	InitialStock int    `json:"initial_stock" validate:"min=0"`
}

// RenameIngredientRequest is the request body for renaming an ingredient
type RenameIngredientRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// HandleList returns every ingredient sorted by name
// @Summary List ingredients
// @Tags ingredients
// @Produce json
// @Security BasicAuth
// @Success 200 {array} domain.Ingredient
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/ingredients [get]
func (h *IngredientHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccess(w, r, access.OpRead, ActionRead); !ok {
		return
	}
	respondJSON(w, r, http.StatusOK, h.service.List())
}

// HandleGet returns a single ingredient
// @Summary Get ingredient
// @Tags ingredients
// @Produce json
// @Security BasicAuth
// @Param name path string true "Ingredient name"
// @Success 200 {object} domain.Ingredient
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/ingredients/{name} [get]
func (h *IngredientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccess(w, r, access.OpRead, ActionRead); !ok {
		return
	}
	name, ok := GetPathParam(r, w, ParamName)
	if !ok {
		return
	}

	ing, err := h.service.Find(domain.IngredientName(name))
	if err != nil {
		respondServiceError(w, r, ActionRead, err)
		return
	}
	respondJSON(w, r, http.StatusOK, ing)
}

// HandleCreate adds an ingredient together with its initial stock
// @Summary Add ingredient
// @Description Adds an ingredient to the catalog with its initial stock
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body CreateIngredientRequest true "Ingredient details"
// @Success 201 {object} domain.Ingredient
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/ingredients [post]
func (h *IngredientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateIngredientRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionCreateIngredient); err != nil {
		return
	}

	caller := access.CallerFromContext(r.Context())
	ing, err := h.service.Create(r.Context(), caller, domain.IngredientName(req.Name), req.InitialStock)
	if err != nil {
		respondServiceError(w, r, ActionCreateIngredient, err)
		return
	}

	logger.FromContext(r.Context()).Info("Ingredient created", "ingredient", ing.Name, "by", caller.Name)
	respondJSON(w, r, http.StatusCreated, ing)
}

// HandleRename renames an ingredient in the catalog, every recipe and the ledger
// @Summary Rename ingredient
// @Description Renames an ingredient in the catalog, every recipe and the ledger
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param name path string true "Current ingredient name"
// @Param request body RenameIngredientRequest true "New name"
// @Success 200 {object} domain.Ingredient
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/ingredients/{name} [put]
func (h *IngredientHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	name, ok := GetPathParam(r, w, ParamName)
	if !ok {
		return
	}
	var req RenameIngredientRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionRenameIngredient); err != nil {
		return
	}

	caller := access.CallerFromContext(r.Context())
	ing, err := h.service.Rename(r.Context(), caller, domain.IngredientName(name), domain.IngredientName(req.Name))
	if err != nil {
		respondServiceError(w, r, ActionRenameIngredient, err)
		return
	}
	respondJSON(w, r, http.StatusOK, ing)
}

// HandleDelete removes an ingredient and reports which recipes lost it
// @Summary Delete ingredient
// @Description Removes an ingredient and reports the recipes that lost it
// @Tags ingredients
// @Produce json
// @Security BasicAuth
// @Param name path string true "Ingredient name"
// @Success 200 {object} catalog.DeleteReport
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/ingredients/{name} [delete]
func (h *IngredientHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name, ok := GetPathParam(r, w, ParamName)
	if !ok {
		return
	}

	caller := access.CallerFromContext(r.Context())
	report, err := h.service.Delete(r.Context(), caller, domain.IngredientName(name))
	if err != nil {
		respondServiceError(w, r, ActionDeleteIngredient, err)
		return
	}
	respondJSON(w, r, http.StatusOK, report)
}
