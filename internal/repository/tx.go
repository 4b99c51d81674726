package repository

import (
	"context"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

// Tx is a unit of work spanning several entity kinds. Writes staged on a Tx
// become visible only after Commit; Rollback discards them.
type Tx interface {
	SaveIngredient(ctx context.Context, ingredient *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, id int) error
	SaveRecipe(ctx context.Context, recipe domain.Recipe) error
	DeleteRecipe(ctx context.Context, name string) error
	SaveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error
	DeleteStock(ctx context.Context, ingredient domain.IngredientName) error
	SaveOrder(ctx context.Context, order domain.Order) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
