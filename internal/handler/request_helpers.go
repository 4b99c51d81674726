package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

const maxRequestBodyBytes = 1 << 20

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body into req and validates
// it. If an error is returned the response has already been written and the
// handler should return.
//
// Example usage:
//
//	var req CreateRecipeRequest
//	if err := DecodeAndValidateRequest(r, w, &req, ActionCreateRecipe); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, r, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetPathParam returns the unescaped chi URL parameter. If it is missing the
// response has already been written and ok is false.
func GetPathParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	value, err := url.PathUnescape(raw)
	if err != nil || value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s path parameter", name))
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, name))
		return "", false
	}
	return value, true
}

// requireAccess authorizes the request's caller for op. If it returns false
// the response has already been written.
func requireAccess(w http.ResponseWriter, r *http.Request, op access.Operation, actionName string) (domain.Caller, bool) {
	caller := access.CallerFromContext(r.Context())
	if err := access.Authorize(caller, op); err != nil {
		respondServiceError(w, r, actionName, err)
		return caller, false
	}
	return caller, true
}
