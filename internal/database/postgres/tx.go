package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// tx adapts a pgx.Tx to repository.Tx
type tx struct {
	tx pgx.Tx
	queries
}

func (t *tx) SaveIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	return t.saveIngredient(ctx, ingredient)
}

func (t *tx) DeleteIngredient(ctx context.Context, id int) error {
	return t.deleteIngredient(ctx, id)
}

func (t *tx) SaveRecipe(ctx context.Context, recipe domain.Recipe) error {
	return t.saveRecipe(ctx, recipe)
}

func (t *tx) DeleteRecipe(ctx context.Context, name string) error {
	return t.deleteRecipe(ctx, name)
}

func (t *tx) SaveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error {
	return t.saveStock(ctx, ingredient, quantity)
}

func (t *tx) DeleteStock(ctx context.Context, ingredient domain.IngredientName) error {
	return t.deleteStock(ctx, ingredient)
}

func (t *tx) SaveOrder(ctx context.Context, order domain.Order) error {
	return t.saveOrder(ctx, order)
}

func (t *tx) Commit(ctx context.Context) error {
	return closedErr(t.tx.Commit(ctx))
}

func (t *tx) Rollback(ctx context.Context) error {
	return closedErr(t.tx.Rollback(ctx))
}

func closedErr(err error) error {
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}
