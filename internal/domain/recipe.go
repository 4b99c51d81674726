package domain

import (
	"fmt"
	"sort"
)

// Requirements maps each ingredient to the quantity a single recipe consumes
type Requirements map[IngredientName]int

// Clone returns a deep copy
func (r Requirements) Clone() Requirements {
	out := make(Requirements, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Names returns the required ingredient names in ascending order
func (r Requirements) Names() []IngredientName {
	names := make([]IngredientName, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Recipe is a purchasable menu item. Identity is the name.
type Recipe struct {
	Name         string       `json:"name"`
	Price        int          `json:"price"`
	Requirements Requirements `json:"requirements"`
}

// Clone returns a deep copy so callers never share the requirement map
func (r Recipe) Clone() Recipe {
	r.Requirements = r.Requirements.Clone()
	return r
}

// Normalized returns a copy with the name and every requirement key trimmed.
// Two keys that trim to the same name are rejected.
func (r Recipe) Normalized() (Recipe, error) {
	out := r
	out.Name = NormalizeName(r.Name)
	out.Requirements = make(Requirements, len(r.Requirements))
	for name, qty := range r.Requirements {
		key := name.Normalize()
		if _, dup := out.Requirements[key]; dup {
			return Recipe{}, fmt.Errorf("%w: %s (%s)", ErrValidation, ErrMsgDuplicateIngredient, key)
		}
		out.Requirements[key] = qty
	}
	return out, nil
}

// Validate enforces the definition invariants: non-empty name, positive price,
// at least one requirement and every required quantity positive.
func (r Recipe) Validate() error {
	if NormalizeName(r.Name) == "" {
		return fmt.Errorf("%w: recipe %s", ErrValidation, ErrMsgEmptyName)
	}
	if r.Price <= 0 {
		return fmt.Errorf("%w: %s (got %d)", ErrValidation, ErrMsgNonPositivePrice, r.Price)
	}
	if len(r.Requirements) == 0 {
		return fmt.Errorf("%w: %s", ErrValidation, ErrMsgEmptyRequirements)
	}
	for name, qty := range r.Requirements {
		if err := name.Validate(); err != nil {
			return err
		}
		if qty <= 0 {
			return fmt.Errorf("%w: %s (%s: %d)", ErrValidation, ErrMsgNonPositiveQuantity, name, qty)
		}
	}
	return nil
}

// Without returns a copy of the recipe with the ingredient removed from its
// requirements and whether anything was removed.
func (r Recipe) Without(name IngredientName) (Recipe, bool) {
	if _, ok := r.Requirements[name]; !ok {
		return r, false
	}
	out := r.Clone()
	delete(out.Requirements, name)
	return out, true
}

// Renamed returns a copy with the ingredient key renamed and whether it changed
func (r Recipe) Renamed(from, to IngredientName) (Recipe, bool) {
	qty, ok := r.Requirements[from]
	if !ok {
		return r, false
	}
	out := r.Clone()
	delete(out.Requirements, from)
	out.Requirements[to] = qty
	return out, true
}
