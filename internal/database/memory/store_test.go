package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

func TestStore_IngredientIDsAndConflicts(t *testing.T) {
	ctx := context.Background()
	s := New()

	milk := &domain.Ingredient{Name: "Milk"}
	require.NoError(t, s.SaveIngredient(ctx, milk))
	assert.Equal(t, 1, milk.ID)

	coffee := &domain.Ingredient{Name: "Coffee"}
	require.NoError(t, s.SaveIngredient(ctx, coffee))
	assert.Equal(t, 2, coffee.ID)

	err := s.SaveIngredient(ctx, &domain.Ingredient{Name: "Milk"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	all, err := s.LoadIngredients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Ingredient{*milk, *coffee}, all)
}

func TestStore_RecipesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := New()

	r := domain.Recipe{Name: "Latte", Price: 50, Requirements: domain.Requirements{"Milk": 1}}
	require.NoError(t, s.SaveRecipe(ctx, r))
	r.Requirements["Milk"] = 99

	loaded, err := s.LoadRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 1, loaded[0].Requirements["Milk"])
}

func TestStore_OrdersKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SaveOrder(ctx, domain.Order{ID: "b", CustomerID: "u1"}))
	require.NoError(t, s.SaveOrder(ctx, domain.Order{ID: "a", CustomerID: "u2"}))
	require.NoError(t, s.SaveOrder(ctx, domain.Order{ID: "b", CustomerID: "u1", Complete: true}))

	all, err := s.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.True(t, all[0].Complete)

	mine, err := s.ListOrders(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a", mine[0].ID)

	_, err = s.GetOrder(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_UsersRejectDuplicates(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.SaveUser(ctx, &domain.User{ID: "1", Name: "alice"}))
	assert.ErrorIs(t, s.SaveUser(ctx, &domain.User{ID: "2", Name: "alice"}), domain.ErrConflict)

	u, err := s.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	_, err = s.GetUserByName(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTx_CommitAppliesAllWrites(t *testing.T) {
	ctx := context.Background()
	s := New()

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)

	ing := &domain.Ingredient{Name: "Milk"}
	require.NoError(t, tx.SaveIngredient(ctx, ing))
	require.NoError(t, tx.SaveStock(ctx, "Milk", 10))

	inv, _ := s.LoadInventory(ctx)
	assert.Empty(t, inv, "writes are invisible before commit")

	require.NoError(t, tx.Commit(ctx))
	assert.NotZero(t, ing.ID)

	inv, _ = s.LoadInventory(ctx)
	assert.Equal(t, map[domain.IngredientName]int{"Milk": 10}, inv)

	assert.ErrorIs(t, tx.Commit(ctx), repository.ErrTxClosed)
	assert.ErrorIs(t, tx.Rollback(ctx), repository.ErrTxClosed)
}

func TestTx_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveStock(ctx, "Milk", 5))

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteStock(ctx, "Milk"))
	require.NoError(t, tx.Rollback(ctx))

	inv, _ := s.LoadInventory(ctx)
	assert.Equal(t, 5, inv["Milk"])
	assert.ErrorIs(t, tx.SaveStock(ctx, "Milk", 1), repository.ErrTxClosed)
}

func TestTx_FailedCommitLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveIngredient(ctx, &domain.Ingredient{Name: "Milk"}))

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveStock(ctx, "Sugar", 3))
	require.NoError(t, tx.SaveIngredient(ctx, &domain.Ingredient{Name: "Milk"}))

	assert.ErrorIs(t, tx.Commit(ctx), domain.ErrConflict)

	inv, _ := s.LoadInventory(ctx)
	assert.Empty(t, inv)
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.SaveIngredient(ctx, &domain.Ingredient{Name: "Milk"}))
	require.NoError(t, s.SaveStock(ctx, "Milk", 5))
	require.NoError(t, s.SaveRecipe(ctx, domain.Recipe{Name: "Latte", Price: 1, Requirements: domain.Requirements{"Milk": 1}}))
	require.NoError(t, s.SaveUser(ctx, &domain.User{ID: "1", Name: "alice"}))
	require.NoError(t, s.SaveOrder(ctx, domain.Order{ID: "o1"}))

	require.NoError(t, repository.DeleteAll(ctx, s))

	ings, _ := s.LoadIngredients(ctx)
	recipes, _ := s.LoadRecipes(ctx)
	inv, _ := s.LoadInventory(ctx)
	orders, _ := s.ListOrders(ctx, "")
	assert.Empty(t, ings)
	assert.Empty(t, recipes)
	assert.Empty(t, inv)
	assert.Empty(t, orders)
	_, err := s.GetUserByName(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
