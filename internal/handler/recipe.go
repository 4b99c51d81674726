package handler

import (
	"context"
	"net/http"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

// RecipeService is the recipe book surface the handler needs
type RecipeService interface {
	ListAll() []domain.Recipe
	FindByName(name string) (domain.Recipe, error)
	Create(ctx context.Context, caller domain.Caller, r domain.Recipe) (domain.Recipe, error)
	Update(ctx context.Context, caller domain.Caller, name string, def domain.Recipe) (domain.Recipe, error)
	Delete(ctx context.Context, caller domain.Caller, name string) error
}

// AvailabilityChecker tells whether a recipe could be made right now
type AvailabilityChecker interface {
	HasSufficientStock(recipe domain.Recipe) bool
}

// RecipeHandler handles menu and recipe endpoints
type RecipeHandler struct {
	service RecipeService
	stock   AvailabilityChecker
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(service RecipeService, stock AvailabilityChecker) *RecipeHandler {
	return &RecipeHandler{service: service, stock: stock}
}

// RecipeRequest defines or redefines a recipe
type RecipeRequest struct {
	Name         string         `json:"name" validate:"required,notblank,max=100"`
	Price        int            `json:"price" validate:"gt=0"`
	Requirements map[string]int `json:"requirements" validate:"required,min=1,dive,keys,notblank,endkeys,gt=0"`
}

func (req RecipeRequest) toDomain() domain.Recipe {
	reqs := make(domain.Requirements, len(req.Requirements))
	for name, qty := range req.Requirements {
		reqs[domain.IngredientName(name)] = qty
	}
	return domain.Recipe{Name: req.Name, Price: req.Price, Requirements: reqs}
}

// MenuItem is a recipe as shown to callers
type MenuItem struct {
	domain.Recipe
	DisplayName string `json:"display_name"`
	Available   bool   `json:"available"`
}

// MenuResponse lists every recipe sorted by name
type MenuResponse struct {
	Items []MenuItem `json:"items"`
}

func (h *RecipeHandler) menuItem(caser cases.Caser, r domain.Recipe) MenuItem {
	return MenuItem{
		Recipe:      r,
		DisplayName: caser.String(r.Name),
		Available:   h.stock.HasSufficientStock(r),
	}
}

// HandleMenu returns the menu with title-cased display names
// @Summary Menu
// @Description Lists every recipe with its price and current availability
// @Tags recipes
// @Produce json
// @Security BasicAuth
// @Success 200 {object} MenuResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/recipes [get]
func (h *RecipeHandler) HandleMenu(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccess(w, r, access.OpRead, ActionRead); !ok {
		return
	}

	// Casers are stateful, one per request
	caser := cases.Title(language.English)
	recipes := h.service.ListAll()
	items := make([]MenuItem, 0, len(recipes))
	for _, rec := range recipes {
		items = append(items, h.menuItem(caser, rec))
	}
	respondJSON(w, r, http.StatusOK, MenuResponse{Items: items})
}

// HandleGet returns a single recipe
// @Summary Get recipe
// @Tags recipes
// @Produce json
// @Security BasicAuth
// @Param name path string true "Recipe name"
// @Success 200 {object} MenuItem
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/recipes/{name} [get]
func (h *RecipeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccess(w, r, access.OpRead, ActionRead); !ok {
		return
	}
	name, ok := GetPathParam(r, w, ParamName)
	if !ok {
		return
	}

	rec, err := h.service.FindByName(name)
	if err != nil {
		respondServiceError(w, r, ActionRead, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.menuItem(cases.Title(language.English), rec))
}

// HandleCreate adds a recipe to the menu
// @Summary Add recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body RecipeRequest true "Recipe definition"
// @Success 201 {object} domain.Recipe
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/recipes [post]
func (h *RecipeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req RecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionCreateRecipe); err != nil {
		return
	}

	caller := access.CallerFromContext(r.Context())
	rec, err := h.service.Create(r.Context(), caller, req.toDomain())
	if err != nil {
		respondServiceError(w, r, ActionCreateRecipe, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, rec)
}

// HandleUpdate replaces a recipe's definition, possibly renaming it
// @Summary Update recipe
// @Description Replaces a recipe definition. A new name renames the recipe.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param name path string true "Recipe name"
// @Param request body RecipeRequest true "Recipe definition"
// @Success 200 {object} domain.Recipe
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/recipes/{name} [put]
func (h *RecipeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	name, ok := GetPathParam(r, w, ParamName)
	if !ok {
		return
	}
	var req RecipeRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionUpdateRecipe); err != nil {
		return
	}

	caller := access.CallerFromContext(r.Context())
	rec, err := h.service.Update(r.Context(), caller, name, req.toDomain())
	if err != nil {
		respondServiceError(w, r, ActionUpdateRecipe, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rec)
}

// HandleDelete removes a recipe. Past orders keep their snapshot.
// @Summary Delete recipe
// @Tags recipes
// @Produce json
// @Security BasicAuth
// @Param name path string true "Recipe name"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/recipes/{name} [delete]
func (h *RecipeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	name, ok := GetPathParam(r, w, ParamName)
	if !ok {
		return
	}

	caller := access.CallerFromContext(r.Context())
	if err := h.service.Delete(r.Context(), caller, name); err != nil {
		respondServiceError(w, r, ActionDeleteRecipe, err)
		return
	}
	respondJSON(w, r, http.StatusOK, SuccessResponse{Message: MsgRecipeDeleted})
}
