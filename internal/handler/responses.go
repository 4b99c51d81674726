package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON encodes payload into a pooled buffer and writes it with status
func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	log := logger.FromContext(r.Context())

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		log.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error("Failed to write response buffer", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped status
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	log := logger.FromContext(r.Context())
	caller := access.CallerFromContext(r.Context())
	status, msg := mapServiceErrorToUserMessage(caller, err)
	if status >= http.StatusInternalServerError {
		log.Error(action+" failed", "error", err)
	} else {
		log.Warn(action+" rejected", "error", err, "status", status)
	}
	respondError(w, r, status, msg)
}

// mapServiceErrorToUserMessage maps domain error kinds to HTTP statuses.
// Validation details come from the domain and are safe to show; storage
// failures are opaque. An unauthorized error is 401 for an anonymous caller
// and 403 for an authenticated one with the wrong role.
func mapServiceErrorToUserMessage(caller domain.Caller, err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, ErrMsgStorageUnavailable
	case errors.Is(err, domain.ErrUnauthorized):
		if !caller.Authenticated {
			return http.StatusUnauthorized, ErrMsgAuthRequired
		}
		return http.StatusForbidden, ErrMsgForbidden
	case errors.Is(err, domain.ErrOverflow):
		return http.StatusBadRequest, ErrMsgQuantityOverflow
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, ErrMsgRecipeNotFound
	case errors.Is(err, domain.ErrIngredientNotFound):
		return http.StatusNotFound, ErrMsgIngredientNotFound
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, ErrMsgOrderNotFound
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrCapacity):
		return http.StatusUnprocessableEntity, ErrMsgMenuFull
	case errors.Is(err, domain.ErrInsufficientPayment):
		return http.StatusUnprocessableEntity, ErrMsgInsufficientPayment
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusUnprocessableEntity, ErrMsgInsufficientStock
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
