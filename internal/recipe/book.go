package recipe

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// Store is the persistence the book needs
type Store interface {
	repository.Recipe
	repository.TxBeginner
}

// IngredientIndex answers whether ingredients exist. View holds the index
// stable for the duration of fn.
type IngredientIndex interface {
	View(fn func(has func(domain.IngredientName) bool) error) error
}

// Book holds the recipes and enforces their definition invariants and the
// capacity ceiling. Lock order with the other components is
// catalog, then book, then ledger.
type Book struct {
	mu         sync.RWMutex
	recipes    map[string]domain.Recipe
	maxRecipes int
	store      Store
	index      IngredientIndex
}

// NewBook creates an empty book. A nil index skips ingredient existence checks.
func NewBook(store Store, index IngredientIndex, maxRecipes int) *Book {
	if maxRecipes < 1 {
		maxRecipes = domain.DefaultMaxRecipes
	}
	return &Book{
		recipes:    make(map[string]domain.Recipe),
		maxRecipes: maxRecipes,
		store:      store,
		index:      index,
	}
}

// SetIndex wires the ingredient index after construction
func (b *Book) SetIndex(index IngredientIndex) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.index = index
}

// MaxRecipes returns the configured capacity
func (b *Book) MaxRecipes() int {
	return b.maxRecipes
}

// Load replaces the in-memory state with the persisted one
func (b *Book) Load(ctx context.Context) error {
	loaded, err := b.store.LoadRecipes(ctx)
	if err != nil {
		return domain.StorageError("load recipes", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.recipes = make(map[string]domain.Recipe, len(loaded))
	for _, r := range loaded {
		b.recipes[r.Name] = r.Clone()
	}
	logger.FromContext(ctx).Info(LogMsgBookLoaded, "recipes", len(b.recipes))
	return nil
}

// Locked runs fn with the write lock held and applies the staged batch if fn
// returns nil.
func (b *Book) Locked(fn func(batch *Batch) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	batch := newBatch(b.recipes)
	if err := fn(batch); err != nil {
		return err
	}
	batch.apply()
	return nil
}

func (b *Book) withIngredients(fn func(has func(domain.IngredientName) bool) error) error {
	b.mu.RLock()
	index := b.index
	b.mu.RUnlock()

	if index == nil {
		return fn(func(domain.IngredientName) bool { return true })
	}
	return index.View(fn)
}

func (b *Book) persist(ctx context.Context, batch *Batch) error {
	return repository.WithTx(ctx, b.store, func(tx repository.Tx) error {
		return batch.Persist(ctx, tx)
	})
}

func checkIngredients(r domain.Recipe, has func(domain.IngredientName) bool) error {
	for _, name := range r.Requirements.Names() {
		if !has(name) {
			return fmt.Errorf(ErrFmtUnknownIngr, domain.ErrIngredientNotFound, domain.ErrMsgUnknownIngredient, name)
		}
	}
	return nil
}

// Create adds a recipe. Checks run in order: role, definition, duplicate
// name, capacity, then ingredient existence.
func (b *Book) Create(ctx context.Context, caller domain.Caller, r domain.Recipe) (domain.Recipe, error) {
	if err := access.Authorize(caller, access.OpManageRecipes); err != nil {
		return domain.Recipe{}, err
	}
	r, err := r.Normalized()
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := r.Validate(); err != nil {
		return domain.Recipe{}, err
	}

	err = b.withIngredients(func(has func(domain.IngredientName) bool) error {
		return b.Locked(func(batch *Batch) error {
			if _, exists := batch.Get(r.Name); exists {
				return fmt.Errorf(ErrFmtRecipeExists, domain.ErrConflict, r.Name)
			}
			if batch.Count() >= b.maxRecipes {
				logger.FromContext(ctx).Warn(LogMsgCapacityReject, "max", b.maxRecipes)
				return fmt.Errorf(ErrFmtCapacity, domain.ErrCapacity, b.maxRecipes)
			}
			if err := checkIngredients(r, has); err != nil {
				return err
			}
			batch.Put(r)
			return b.persist(ctx, batch)
		})
	})
	if err != nil {
		return domain.Recipe{}, err
	}

	logger.FromContext(ctx).Info(LogMsgRecipeCreated, "recipe", r.Name, "price", r.Price)
	return r.Clone(), nil
}

// Update replaces name, price and requirements of an existing recipe
// together. Renaming onto another existing recipe is a conflict.
func (b *Book) Update(ctx context.Context, caller domain.Caller, name string, def domain.Recipe) (domain.Recipe, error) {
	if err := access.Authorize(caller, access.OpManageRecipes); err != nil {
		return domain.Recipe{}, err
	}
	name = domain.NormalizeName(name)
	def, err := def.Normalized()
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := def.Validate(); err != nil {
		return domain.Recipe{}, err
	}

	err = b.withIngredients(func(has func(domain.IngredientName) bool) error {
		return b.Locked(func(batch *Batch) error {
			if _, exists := batch.Get(name); !exists {
				return fmt.Errorf(ErrFmtRecipeNotFound, domain.ErrRecipeNotFound, name)
			}
			if def.Name != name {
				if _, taken := batch.Get(def.Name); taken {
					return fmt.Errorf(ErrFmtRecipeExists, domain.ErrConflict, def.Name)
				}
			}
			if err := checkIngredients(def, has); err != nil {
				return err
			}
			if def.Name != name {
				batch.Remove(name)
			}
			batch.Put(def)
			return b.persist(ctx, batch)
		})
	})
	if err != nil {
		return domain.Recipe{}, err
	}

	logger.FromContext(ctx).Info(LogMsgRecipeUpdated, "recipe", name, "new_name", def.Name, "price", def.Price)
	return def.Clone(), nil
}

// Delete removes a recipe. Orders keep their own snapshot so nothing cascades.
func (b *Book) Delete(ctx context.Context, caller domain.Caller, name string) error {
	if err := access.Authorize(caller, access.OpManageRecipes); err != nil {
		return err
	}
	name = domain.NormalizeName(name)

	err := b.Locked(func(batch *Batch) error {
		if _, exists := batch.Get(name); !exists {
			return fmt.Errorf(ErrFmtRecipeNotFound, domain.ErrRecipeNotFound, name)
		}
		batch.Remove(name)
		return b.persist(ctx, batch)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgRecipeDeleted, "recipe", name)
	return nil
}

// FindByName returns a copy of the named recipe
func (b *Book) FindByName(name string) (domain.Recipe, error) {
	name = domain.NormalizeName(name)
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.recipes[name]
	if !ok {
		return domain.Recipe{}, fmt.Errorf(ErrFmtRecipeNotFound, domain.ErrRecipeNotFound, name)
	}
	return r.Clone(), nil
}

// ListAll returns copies of every recipe sorted by name
func (b *Book) ListAll() []domain.Recipe {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Recipe, 0, len(b.recipes))
	for _, r := range b.recipes {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
