package repository

import (
	"context"
	"errors"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

// ErrTxClosed is returned by Commit or Rollback on a finished transaction
var ErrTxClosed = errors.New(domain.ErrMsgTxClosed)

// Ingredient persists the ingredient catalog
type Ingredient interface {
	LoadIngredients(ctx context.Context) ([]domain.Ingredient, error)
	// SaveIngredient inserts when ID is zero (assigning the ID) and updates otherwise
	SaveIngredient(ctx context.Context, ingredient *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, id int) error
	DeleteAllIngredients(ctx context.Context) error
}

// Recipe persists the recipe book
type Recipe interface {
	LoadRecipes(ctx context.Context) ([]domain.Recipe, error)
	SaveRecipe(ctx context.Context, recipe domain.Recipe) error
	DeleteRecipe(ctx context.Context, name string) error
	DeleteAllRecipes(ctx context.Context) error
}

// Inventory persists the stock ledger
type Inventory interface {
	LoadInventory(ctx context.Context) (map[domain.IngredientName]int, error)
	SaveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error
	DeleteStock(ctx context.Context, ingredient domain.IngredientName) error
	DeleteAllInventory(ctx context.Context) error
}

// User persists accounts
type User interface {
	// GetUserByName returns domain.ErrUserNotFound when no such user exists
	GetUserByName(ctx context.Context, name string) (*domain.User, error)
	// SaveUser inserts a new account and returns domain.ErrConflict on a duplicate name
	SaveUser(ctx context.Context, user *domain.User) error
	DeleteAllUsers(ctx context.Context) error
}

// Order persists purchase records
type Order interface {
	// GetOrder returns domain.ErrOrderNotFound when no such order exists
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	// ListOrders returns orders oldest first; an empty customerID lists all
	ListOrders(ctx context.Context, customerID string) ([]domain.Order, error)
	SaveOrder(ctx context.Context, order domain.Order) error
	DeleteAllOrders(ctx context.Context) error
}

// TxBeginner opens transactions
type TxBeginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// Store is the full persistence collaborator implemented by every driver
type Store interface {
	Ingredient
	Recipe
	Inventory
	User
	Order
	TxBeginner
	Ping(ctx context.Context) error
	Close() error
}

// DeleteAll clears every entity kind, orders and users first
func DeleteAll(ctx context.Context, s Store) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"orders", s.DeleteAllOrders},
		{"users", s.DeleteAllUsers},
		{"recipes", s.DeleteAllRecipes},
		{"inventory", s.DeleteAllInventory},
		{"ingredients", s.DeleteAllIngredients},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return domain.StorageError("delete all "+step.name, err)
		}
	}
	return nil
}
