package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pos.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestIngredients(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	milk := &domain.Ingredient{Name: "Milk"}
	require.NoError(t, s.SaveIngredient(ctx, milk))
	assert.NotZero(t, milk.ID)
	assert.ErrorIs(t, s.SaveIngredient(ctx, &domain.Ingredient{Name: "Milk"}), domain.ErrConflict)

	coffee := &domain.Ingredient{Name: "Coffee"}
	require.NoError(t, s.SaveIngredient(ctx, coffee))

	all, err := s.LoadIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.IngredientName("Coffee"), all[0].Name)

	require.NoError(t, s.DeleteIngredient(ctx, coffee.ID))
	all, err = s.LoadIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRecipes(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecipe(ctx, domain.Recipe{Name: "Latte", Price: 50, Requirements: domain.Requirements{"Coffee": 1, "Milk": 2}}))
	require.NoError(t, s.SaveRecipe(ctx, domain.Recipe{Name: "Hot Water", Price: 1, Requirements: domain.Requirements{}}))

	recipes, err := s.LoadRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Hot Water", recipes[0].Name)
	assert.Empty(t, recipes[0].Requirements)
	assert.Equal(t, domain.Requirements{"Coffee": 1, "Milk": 2}, recipes[1].Requirements)

	require.NoError(t, s.DeleteRecipe(ctx, "Latte"))
	var orphans int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipe_requirements`).Scan(&orphans))
	assert.Zero(t, orphans, "requirements cascade with their recipe")
}

func TestTx_CommitAndRollback(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	err := repository.WithTx(ctx, s, func(tx repository.Tx) error {
		if err := tx.SaveStock(ctx, "Milk", 10); err != nil {
			return err
		}
		return tx.SaveRecipe(ctx, domain.Recipe{Name: "Latte", Price: 50, Requirements: domain.Requirements{"Milk": 1}})
	})
	require.NoError(t, err)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveStock(ctx, "Milk", 1))
	require.NoError(t, tx.DeleteRecipe(ctx, "Latte"))
	require.NoError(t, tx.Rollback(ctx))
	assert.ErrorIs(t, tx.Commit(ctx), repository.ErrTxClosed)

	inv, err := s.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.IngredientName]int{"Milk": 10}, inv)
	recipes, err := s.LoadRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestUsersAndOrders(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	u := &domain.User{ID: "u1", Name: "alice", PasswordHash: []byte{1, 2, 3}, Role: domain.RoleManager, CreatedAt: created}
	require.NoError(t, s.SaveUser(ctx, u))
	assert.ErrorIs(t, s.SaveUser(ctx, &domain.User{ID: "u2", Name: "alice", PasswordHash: []byte{1}, CreatedAt: created}), domain.ErrConflict)

	got, err := s.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, got.Role)
	assert.Equal(t, []byte{1, 2, 3}, got.PasswordHash)
	assert.True(t, created.Equal(got.CreatedAt))

	_, err = s.GetUserByName(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	for _, o := range []domain.Order{
		{ID: "o1", CustomerID: "u1"},
		{ID: "o2", CustomerID: "u9"},
		{ID: "o3", CustomerID: "u1"},
	} {
		o.RecipeName, o.Price, o.AmountPaid, o.CreatedAt = "Latte", 50, 60, created
		require.NoError(t, s.SaveOrder(ctx, o))
	}

	all, err := s.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := s.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "o1", own[0].ID)
	assert.Equal(t, "o3", own[1].ID)

	o, err := s.GetOrder(ctx, "o2")
	require.NoError(t, err)
	o.Complete = true
	require.NoError(t, s.SaveOrder(ctx, *o))

	o, err = s.GetOrder(ctx, "o2")
	require.NoError(t, err)
	assert.True(t, o.Complete)
	assert.False(t, o.PickedUp)

	_, err = s.GetOrder(ctx, "o404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReopenKeepsState(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveStock(ctx, "Coffee", 7))
	require.NoError(t, s.Close())

	again, err := Open(ctx, path)
	require.NoError(t, err)
	defer again.Close()

	inv, err := again.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, inv["Coffee"])
}

func TestDeleteAll(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveStock(ctx, "Coffee", 7))
	require.NoError(t, s.SaveIngredient(ctx, &domain.Ingredient{Name: "Coffee"}))

	require.NoError(t, repository.DeleteAll(ctx, s))

	inv, err := s.LoadInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, inv)
	ings, err := s.LoadIngredients(ctx)
	require.NoError(t, err)
	assert.Empty(t, ings)
}
