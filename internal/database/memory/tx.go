package memory

import (
	"context"
	"sync"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// tx records operations and replays them against a copy of the store state on
// Commit. Ingredient IDs are assigned at Commit time.
type tx struct {
	store  *Store
	mu     sync.Mutex
	ops    []func(*state) error
	closed bool
}

func (t *tx) stage(op func(*state) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return repository.ErrTxClosed
	}
	t.ops = append(t.ops, op)
	return nil
}

func (t *tx) SaveIngredient(_ context.Context, ingredient *domain.Ingredient) error {
	return t.stage(func(st *state) error { return saveIngredient(st, ingredient) })
}

func (t *tx) DeleteIngredient(_ context.Context, id int) error {
	return t.stage(func(st *state) error {
		delete(st.ingredients, id)
		return nil
	})
}

func (t *tx) SaveRecipe(_ context.Context, recipe domain.Recipe) error {
	recipe = recipe.Clone()
	return t.stage(func(st *state) error {
		st.recipes[recipe.Name] = recipe
		return nil
	})
}

func (t *tx) DeleteRecipe(_ context.Context, name string) error {
	return t.stage(func(st *state) error {
		delete(st.recipes, name)
		return nil
	})
}

func (t *tx) SaveStock(_ context.Context, ingredient domain.IngredientName, quantity int) error {
	return t.stage(func(st *state) error {
		st.inventory[ingredient] = quantity
		return nil
	})
}

func (t *tx) DeleteStock(_ context.Context, ingredient domain.IngredientName) error {
	return t.stage(func(st *state) error {
		delete(st.inventory, ingredient)
		return nil
	})
}

func (t *tx) SaveOrder(_ context.Context, order domain.Order) error {
	return t.stage(func(st *state) error {
		saveOrder(st, order)
		return nil
	})
}

func (t *tx) Commit(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	staged := t.store.state.clone()
	for _, op := range t.ops {
		if err := op(&staged); err != nil {
			return err
		}
	}
	t.store.state = staged
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	t.ops = nil
	return nil
}
