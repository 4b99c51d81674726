package handler

import (
	"net/http"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/user"
)

// UserHandler handles account endpoints
type UserHandler struct {
	service user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterUserRequest creates an account. Role defaults to customer.
type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=64,excludes=:"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// HandleRegister registers a customer, or any role when a manager asks
// @Summary Register account
// @Description Anyone may register a customer. Other roles need a manager.
// @Tags users
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body RegisterUserRequest true "Account details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := DecodeAndValidateRequest(r, w, &req, ActionRegisterUser); err != nil {
		return
	}

	role := domain.RoleCustomer
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			respondServiceError(w, r, ActionRegisterUser, err)
			return
		}
		role = parsed
	}

	caller := access.CallerFromContext(r.Context())
	u, err := h.service.Register(r.Context(), caller, req.Name, req.Password, role)
	if err != nil {
		respondServiceError(w, r, ActionRegisterUser, err)
		return
	}

	logger.FromContext(r.Context()).Info("User registered", "user", u.Name, "role", u.Role.String())
	respondJSON(w, r, http.StatusCreated, UserResponse{ID: u.ID, Name: u.Name, Role: u.Role.String()})
}

// HandleMe returns the authenticated caller
// @Summary Current caller
// @Tags users
// @Produce json
// @Security BasicAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/users/me [get]
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireAccess(w, r, access.OpRead, ActionRead)
	if !ok {
		return
	}
	respondJSON(w, r, http.StatusOK, UserResponse{ID: caller.UserID, Name: caller.Name, Role: caller.Role.String()})
}
