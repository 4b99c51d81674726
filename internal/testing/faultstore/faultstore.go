// Package faultstore wraps a repository.Store and fails chosen operations on
// demand, for exercising rollback paths.
package faultstore

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// Operation names accepted by FailOn
const (
	OpBeginTx          = "BeginTx"
	OpCommit           = "Commit"
	OpSaveIngredient   = "SaveIngredient"
	OpDeleteIngredient = "DeleteIngredient"
	OpSaveRecipe       = "SaveRecipe"
	OpDeleteRecipe     = "DeleteRecipe"
	OpSaveStock        = "SaveStock"
	OpDeleteStock      = "DeleteStock"
	OpSaveOrder        = "SaveOrder"
	OpSaveUser         = "SaveUser"
)

// ErrInjected is the default injected failure
var ErrInjected = errors.New("injected storage failure")

// Store fails the configured operations and delegates everything else
type Store struct {
	repository.Store

	mu       sync.Mutex
	failures map[string]error
}

// Wrap decorates inner
func Wrap(inner repository.Store) *Store {
	return &Store{Store: inner, failures: make(map[string]error)}
}

// FailOn makes every subsequent call of op fail with err (ErrInjected if nil)
func (s *Store) FailOn(op string, err error) {
	if err == nil {
		err = ErrInjected
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Heal removes all injected failures
func (s *Store) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

func (s *Store) check(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[op]
}

func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	if err := s.check(OpBeginTx); err != nil {
		return nil, err
	}
	inner, err := s.Store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &tx{Tx: inner, store: s}, nil
}

func (s *Store) SaveIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	if err := s.check(OpSaveIngredient); err != nil {
		return err
	}
	return s.Store.SaveIngredient(ctx, ingredient)
}

func (s *Store) SaveRecipe(ctx context.Context, recipe domain.Recipe) error {
	if err := s.check(OpSaveRecipe); err != nil {
		return err
	}
	return s.Store.SaveRecipe(ctx, recipe)
}

func (s *Store) SaveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error {
	if err := s.check(OpSaveStock); err != nil {
		return err
	}
	return s.Store.SaveStock(ctx, ingredient, quantity)
}

func (s *Store) SaveOrder(ctx context.Context, order domain.Order) error {
	if err := s.check(OpSaveOrder); err != nil {
		return err
	}
	return s.Store.SaveOrder(ctx, order)
}

func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	if err := s.check(OpSaveUser); err != nil {
		return err
	}
	return s.Store.SaveUser(ctx, user)
}

type tx struct {
	repository.Tx
	store *Store
}

func (t *tx) SaveIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	if err := t.store.check(OpSaveIngredient); err != nil {
		return err
	}
	return t.Tx.SaveIngredient(ctx, ingredient)
}

func (t *tx) DeleteIngredient(ctx context.Context, id int) error {
	if err := t.store.check(OpDeleteIngredient); err != nil {
		return err
	}
	return t.Tx.DeleteIngredient(ctx, id)
}

func (t *tx) SaveRecipe(ctx context.Context, recipe domain.Recipe) error {
	if err := t.store.check(OpSaveRecipe); err != nil {
		return err
	}
	return t.Tx.SaveRecipe(ctx, recipe)
}

func (t *tx) DeleteRecipe(ctx context.Context, name string) error {
	if err := t.store.check(OpDeleteRecipe); err != nil {
		return err
	}
	return t.Tx.DeleteRecipe(ctx, name)
}

func (t *tx) SaveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error {
	if err := t.store.check(OpSaveStock); err != nil {
		return err
	}
	return t.Tx.SaveStock(ctx, ingredient, quantity)
}

func (t *tx) DeleteStock(ctx context.Context, ingredient domain.IngredientName) error {
	if err := t.store.check(OpDeleteStock); err != nil {
		return err
	}
	return t.Tx.DeleteStock(ctx, ingredient)
}

func (t *tx) SaveOrder(ctx context.Context, order domain.Order) error {
	if err := t.store.check(OpSaveOrder); err != nil {
		return err
	}
	return t.Tx.SaveOrder(ctx, order)
}

func (t *tx) Commit(ctx context.Context) error {
	if err := t.store.check(OpCommit); err != nil {
		_ = t.Tx.Rollback(ctx)
		return err
	}
	return t.Tx.Commit(ctx)
}
