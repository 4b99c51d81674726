package recipe

import (
	"context"
	"sort"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// Batch stages recipe changes while the book's write lock is held. It mirrors
// inventory.Batch: persist through a Tx, applied only on success.
type Batch struct {
	recipes map[string]domain.Recipe
	staged  map[string]*domain.Recipe // nil stages a deletion
	order   []string
}

func newBatch(recipes map[string]domain.Recipe) *Batch {
	return &Batch{recipes: recipes, staged: make(map[string]*domain.Recipe)}
}

// Get reads through staged changes
func (b *Batch) Get(name string) (domain.Recipe, bool) {
	if r, ok := b.staged[name]; ok {
		if r == nil {
			return domain.Recipe{}, false
		}
		return r.Clone(), true
	}
	r, ok := b.recipes[name]
	if !ok {
		return domain.Recipe{}, false
	}
	return r.Clone(), true
}

// Names lists every recipe name visible through the batch, sorted
func (b *Batch) Names() []string {
	seen := make(map[string]bool, len(b.recipes)+len(b.staged))
	var names []string
	for name := range b.recipes {
		seen[name] = true
	}
	for name := range b.staged {
		seen[name] = true
	}
	for name := range seen {
		if _, ok := b.Get(name); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Count is the number of recipes visible through the batch
func (b *Batch) Count() int {
	return len(b.Names())
}

func (b *Batch) stage(name string, r *domain.Recipe) {
	if _, seen := b.staged[name]; !seen {
		b.order = append(b.order, name)
	}
	b.staged[name] = r
}

// Put stages a create or replace
func (b *Batch) Put(r domain.Recipe) {
	c := r.Clone()
	b.stage(r.Name, &c)
}

// Remove stages a deletion
func (b *Batch) Remove(name string) {
	b.stage(name, nil)
}

// StripIngredient removes an ingredient from every requirement map and
// returns the names of the recipes it touched. Recipes are kept even when
// their requirements become empty.
func (b *Batch) StripIngredient(ingredient domain.IngredientName) []string {
	var touched []string
	for _, name := range b.Names() {
		r, _ := b.Get(name)
		if stripped, changed := r.Without(ingredient); changed {
			b.Put(stripped)
			touched = append(touched, name)
		}
	}
	return touched
}

// RenameIngredient re-keys an ingredient in every requirement map
func (b *Batch) RenameIngredient(from, to domain.IngredientName) []string {
	var touched []string
	for _, name := range b.Names() {
		r, _ := b.Get(name)
		if renamed, changed := r.Renamed(from, to); changed {
			b.Put(renamed)
			touched = append(touched, name)
		}
	}
	return touched
}

// Empty reports whether nothing is staged
func (b *Batch) Empty() bool {
	return len(b.staged) == 0
}

// Persist writes every staged change to tx in staging order
func (b *Batch) Persist(ctx context.Context, tx repository.Tx) error {
	for _, name := range b.order {
		r := b.staged[name]
		if r == nil {
			if err := tx.DeleteRecipe(ctx, name); err != nil {
				return err
			}
			continue
		}
		if err := tx.SaveRecipe(ctx, *r); err != nil {
			return err
		}
	}
	return nil
}

func (b *Batch) apply() {
	for _, name := range b.order {
		r := b.staged[name]
		if r == nil {
			delete(b.recipes, name)
			continue
		}
		b.recipes[name] = *r
	}
}
