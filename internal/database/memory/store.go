// Package memory provides an in-memory implementation of the persistence
// store used for tests and ephemeral deployments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type state struct {
	nextIngredientID int
	ingredients      map[int]domain.Ingredient
	recipes          map[string]domain.Recipe
	inventory        map[domain.IngredientName]int
	users            map[string]domain.User
	orders           map[string]domain.Order
	orderSeq         []string
}

func newState() state {
	return state{
		nextIngredientID: 1,
		ingredients:      make(map[int]domain.Ingredient),
		recipes:          make(map[string]domain.Recipe),
		inventory:        make(map[domain.IngredientName]int),
		users:            make(map[string]domain.User),
		orders:           make(map[string]domain.Order),
	}
}

func (s state) clone() state {
	out := newState()
	out.nextIngredientID = s.nextIngredientID
	for k, v := range s.ingredients {
		out.ingredients[k] = v
	}
	for k, v := range s.recipes {
		out.recipes[k] = v.Clone()
	}
	for k, v := range s.inventory {
		out.inventory[k] = v
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.orders {
		out.orders[k] = v
	}
	out.orderSeq = append([]string(nil), s.orderSeq...)
	return out
}

// Store keeps every entity kind in process memory
type Store struct {
	mu    sync.RWMutex
	state state
}

// New returns an empty store
func New() *Store {
	return &Store{state: newState()}
}

// Ping always succeeds
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op
func (s *Store) Close() error { return nil }

// BeginTx starts a copy-on-write transaction. Commit swaps the staged copy in,
// so concurrent transactions follow last-writer-wins; callers serialize the
// entities they touch.
func (s *Store) BeginTx(_ context.Context) (repository.Tx, error) {
	return &tx{store: s, ops: nil}, nil
}

// LoadIngredients returns the catalog ordered by ID
func (s *Store) LoadIngredients(_ context.Context) ([]domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Ingredient, 0, len(s.state.ingredients))
	for _, ing := range s.state.ingredients {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) SaveIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	return s.apply(ctx, func(st *state) error { return saveIngredient(st, ingredient) })
}

func (s *Store) DeleteIngredient(ctx context.Context, id int) error {
	return s.apply(ctx, func(st *state) error {
		delete(st.ingredients, id)
		return nil
	})
}

func (s *Store) DeleteAllIngredients(ctx context.Context) error {
	return s.apply(ctx, func(st *state) error {
		st.ingredients = make(map[int]domain.Ingredient)
		return nil
	})
}

// LoadRecipes returns the recipes ordered by name
func (s *Store) LoadRecipes(_ context.Context) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recipe, 0, len(s.state.recipes))
	for _, r := range s.state.recipes {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveRecipe(ctx context.Context, recipe domain.Recipe) error {
	return s.apply(ctx, func(st *state) error {
		st.recipes[recipe.Name] = recipe.Clone()
		return nil
	})
}

func (s *Store) DeleteRecipe(ctx context.Context, name string) error {
	return s.apply(ctx, func(st *state) error {
		delete(st.recipes, name)
		return nil
	})
}

func (s *Store) DeleteAllRecipes(ctx context.Context) error {
	return s.apply(ctx, func(st *state) error {
		st.recipes = make(map[string]domain.Recipe)
		return nil
	})
}

func (s *Store) LoadInventory(_ context.Context) (map[domain.IngredientName]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.IngredientName]int, len(s.state.inventory))
	for k, v := range s.state.inventory {
		out[k] = v
	}
	return out, nil
}

func (s *Store) SaveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error {
	return s.apply(ctx, func(st *state) error {
		st.inventory[ingredient] = quantity
		return nil
	})
}

func (s *Store) DeleteStock(ctx context.Context, ingredient domain.IngredientName) error {
	return s.apply(ctx, func(st *state) error {
		delete(st.inventory, ingredient)
		return nil
	})
}

func (s *Store) DeleteAllInventory(ctx context.Context) error {
	return s.apply(ctx, func(st *state) error {
		st.inventory = make(map[domain.IngredientName]int)
		return nil
	})
}

func (s *Store) GetUserByName(_ context.Context, name string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.state.users[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, name)
	}
	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	return s.apply(ctx, func(st *state) error {
		if _, exists := st.users[user.Name]; exists {
			return fmt.Errorf("%w: user %s", domain.ErrConflict, user.Name)
		}
		st.users[user.Name] = *user
		return nil
	})
}

func (s *Store) DeleteAllUsers(ctx context.Context) error {
	return s.apply(ctx, func(st *state) error {
		st.users = make(map[string]domain.User)
		return nil
	})
}

func (s *Store) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.state.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return &o, nil
}

func (s *Store) ListOrders(_ context.Context, customerID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0)
	for _, id := range s.state.orderSeq {
		o := s.state.orders[id]
		if customerID == "" || o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) SaveOrder(ctx context.Context, order domain.Order) error {
	return s.apply(ctx, func(st *state) error {
		saveOrder(st, order)
		return nil
	})
}

func (s *Store) DeleteAllOrders(ctx context.Context) error {
	return s.apply(ctx, func(st *state) error {
		st.orders = make(map[string]domain.Order)
		st.orderSeq = nil
		return nil
	})
}

// apply runs a single write atomically against the live state
func (s *Store) apply(_ context.Context, op func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := op(&staged); err != nil {
		return err
	}
	s.state = staged
	return nil
}

func saveIngredient(st *state, ingredient *domain.Ingredient) error {
	for id, existing := range st.ingredients {
		if existing.Name == ingredient.Name && id != ingredient.ID {
			return fmt.Errorf("%w: ingredient %s", domain.ErrConflict, ingredient.Name)
		}
	}
	if ingredient.ID == 0 {
		ingredient.ID = st.nextIngredientID
		st.nextIngredientID++
	}
	st.ingredients[ingredient.ID] = *ingredient
	return nil
}

func saveOrder(st *state, order domain.Order) {
	if _, exists := st.orders[order.ID]; !exists {
		st.orderSeq = append(st.orderSeq, order.ID)
	}
	st.orders[order.ID] = order
}
