package domain

import (
	"fmt"
	"strings"
)

// IngredientName is the identity of an ingredient. Recipes and the inventory
// ledger key their maps by it; two ingredients are the same iff their names are.
type IngredientName string

// NormalizeName trims surrounding whitespace. Catalog and recipe book apply it
// to every name they receive, so "Milk " and "Milk" are one key.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}

// Normalize returns the name as it is keyed
func (n IngredientName) Normalize() IngredientName {
	return IngredientName(NormalizeName(string(n)))
}

// Validate checks the name is non-empty
func (n IngredientName) Validate() error {
	if n.Normalize() == "" {
		return fmt.Errorf("%w: ingredient %s", ErrValidation, ErrMsgEmptyName)
	}
	return nil
}

func (n IngredientName) String() string {
	return string(n)
}

// Ingredient is a catalog entry. ID is an opaque persistence handle and plays
// no part in equality.
type Ingredient struct {
	ID   int            `json:"id"`
	Name IngredientName `json:"name"`
}

// Equal compares by name only
func (i Ingredient) Equal(other Ingredient) bool {
	return i.Name == other.Name
}
