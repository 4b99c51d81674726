package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgValidation          = "validation failed"
	ErrMsgNotFound            = "not found"
	ErrMsgConflict            = "already exists"
	ErrMsgCapacity            = "capacity reached"
	ErrMsgUnauthorized        = "not authorized"
	ErrMsgInsufficientPayment = "insufficient payment"
	ErrMsgInsufficientStock   = "insufficient stock"
	ErrMsgOverflow            = "quantity overflow"
	ErrMsgStorage             = "storage failure"

	// Detail messages (used for partial matches)
	ErrMsgEmptyName            = "name must not be empty"
	ErrMsgNonPositivePrice     = "price must be positive"
	ErrMsgEmptyRequirements    = "recipe must require at least one ingredient"
	ErrMsgNonPositiveQuantity  = "required quantity must be positive"
	ErrMsgNegativeAmount       = "amount must not be negative"
	ErrMsgUnknownIngredient    = "unknown ingredient"
	ErrMsgDuplicateIngredient  = "ingredient listed twice"
	ErrMsgRecipeNotFound       = "recipe not found"
	ErrMsgIngredientNotFound   = "ingredient not found"
	ErrMsgUserNotFound         = "user not found"
	ErrMsgOrderNotFound        = "order not found"
	ErrMsgOrderNotComplete     = "order is not complete yet"
	ErrMsgOrderAlreadyComplete = "order already completed"
	ErrMsgOrderAlreadyPickedUp = "order already picked up"
	ErrMsgInvalidRole          = "invalid role"
	ErrMsgInvalidCredentials   = "invalid credentials"
	ErrMsgTxClosed             = "tx is closed"
)

// Error kinds. Every error returned by the core wraps exactly one of these
// (ErrOverflow additionally wraps ErrValidation). Wrap them with
// fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrValidation          = errors.New(ErrMsgValidation)
	ErrNotFound            = errors.New(ErrMsgNotFound)
	ErrConflict            = errors.New(ErrMsgConflict)
	ErrCapacity            = errors.New(ErrMsgCapacity)
	ErrUnauthorized        = errors.New(ErrMsgUnauthorized)
	ErrInsufficientPayment = errors.New(ErrMsgInsufficientPayment)
	ErrInsufficientStock   = errors.New(ErrMsgInsufficientStock)
	ErrOverflow            = fmt.Errorf("%w: %s", ErrValidation, ErrMsgOverflow)
	ErrStorage             = errors.New(ErrMsgStorage)
)

// Convenience not-found errors
var (
	ErrRecipeNotFound     = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgRecipeNotFound)
	ErrIngredientNotFound = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgIngredientNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgUserNotFound)
	ErrOrderNotFound      = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgOrderNotFound)
)

// StorageError wraps a persistence collaborator failure. A nil err yields nil.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// IsRecoverable reports whether err is one of the typed, caller-facing kinds.
// Storage failures are fatal and opaque.
func IsRecoverable(err error) bool {
	return err != nil && !errors.Is(err, ErrStorage)
}
