package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type queries struct {
	db querier
}

func (q queries) saveIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	if ingredient.ID == 0 {
		err := q.db.QueryRow(ctx,
			`INSERT INTO ingredients (name) VALUES ($1) RETURNING ingredient_id`,
			string(ingredient.Name),
		).Scan(&ingredient.ID)
		return conflictOr(err, ErrMsgDuplicateIngredient, string(ingredient.Name))
	}
	_, err := q.db.Exec(ctx,
		`UPDATE ingredients SET name = $1 WHERE ingredient_id = $2`,
		string(ingredient.Name), ingredient.ID,
	)
	return conflictOr(err, ErrMsgDuplicateIngredient, string(ingredient.Name))
}

func (q queries) deleteIngredient(ctx context.Context, id int) error {
	_, err := q.db.Exec(ctx, `DELETE FROM ingredients WHERE ingredient_id = $1`, id)
	return err
}

// saveRecipe replaces the recipe row and its requirement rows; callers
// provide the transaction
func (q queries) saveRecipe(ctx context.Context, recipe domain.Recipe) error {
	if _, err := q.db.Exec(ctx,
		`INSERT INTO recipes (name, price) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price`,
		recipe.Name, recipe.Price,
	); err != nil {
		return fmt.Errorf("failed to upsert recipe: %w", err)
	}
	if _, err := q.db.Exec(ctx, `DELETE FROM recipe_requirements WHERE recipe_name = $1`, recipe.Name); err != nil {
		return fmt.Errorf("failed to clear requirements: %w", err)
	}
	for _, name := range recipe.Requirements.Names() {
		if _, err := q.db.Exec(ctx,
			`INSERT INTO recipe_requirements (recipe_name, ingredient, quantity) VALUES ($1, $2, $3)`,
			recipe.Name, string(name), recipe.Requirements[name],
		); err != nil {
			return fmt.Errorf("failed to insert requirement: %w", err)
		}
	}
	return nil
}

func (q queries) deleteRecipe(ctx context.Context, name string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM recipes WHERE name = $1`, name)
	return err
}

func (q queries) saveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO inventory (ingredient, quantity) VALUES ($1, $2)
		 ON CONFLICT (ingredient) DO UPDATE SET quantity = EXCLUDED.quantity`,
		string(ingredient), quantity,
	)
	return err
}

func (q queries) deleteStock(ctx context.Context, ingredient domain.IngredientName) error {
	_, err := q.db.Exec(ctx, `DELETE FROM inventory WHERE ingredient = $1`, string(ingredient))
	return err
}

func (q queries) saveOrder(ctx context.Context, o domain.Order) error {
	_, err := q.db.Exec(ctx,
		`INSERT INTO orders (order_id, customer_id, customer_name, recipe_name, price, amount_paid, change, complete, picked_up, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (order_id) DO UPDATE SET complete = EXCLUDED.complete, picked_up = EXCLUDED.picked_up`,
		o.ID, o.CustomerID, o.CustomerName, o.RecipeName, o.Price, o.AmountPaid, o.Change, o.Complete, o.PickedUp, o.CreatedAt,
	)
	return err
}

// conflictOr maps a unique violation to domain.ErrConflict
func conflictOr(err error, kind, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s %s", domain.ErrConflict, kind, name)
	}
	return err
}
