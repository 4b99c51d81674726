package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db execer
}

func (q queries) saveIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	if ingredient.ID == 0 {
		res, err := q.db.ExecContext(ctx, `INSERT INTO ingredients (name) VALUES (?)`, string(ingredient.Name))
		if err != nil {
			return conflictOr(err, ErrMsgDuplicateIngredient, string(ingredient.Name))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		ingredient.ID = int(id)
		return nil
	}
	_, err := q.db.ExecContext(ctx, `UPDATE ingredients SET name = ? WHERE ingredient_id = ?`, string(ingredient.Name), ingredient.ID)
	return conflictOr(err, ErrMsgDuplicateIngredient, string(ingredient.Name))
}

func (q queries) deleteIngredient(ctx context.Context, id int) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM ingredients WHERE ingredient_id = ?`, id)
	return err
}

func (q queries) saveRecipe(ctx context.Context, recipe domain.Recipe) error {
	if _, err := q.db.ExecContext(ctx,
		`INSERT INTO recipes (name, price) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET price = excluded.price`,
		recipe.Name, recipe.Price,
	); err != nil {
		return fmt.Errorf("upsert recipe: %w", err)
	}
	if _, err := q.db.ExecContext(ctx, `DELETE FROM recipe_requirements WHERE recipe_name = ?`, recipe.Name); err != nil {
		return fmt.Errorf("clear requirements: %w", err)
	}
	for _, name := range recipe.Requirements.Names() {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO recipe_requirements (recipe_name, ingredient, quantity) VALUES (?, ?, ?)`,
			recipe.Name, string(name), recipe.Requirements[name],
		); err != nil {
			return fmt.Errorf("insert requirement: %w", err)
		}
	}
	return nil
}

func (q queries) deleteRecipe(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM recipes WHERE name = ?`, name)
	return err
}

func (q queries) saveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO inventory (ingredient, quantity) VALUES (?, ?)
		 ON CONFLICT (ingredient) DO UPDATE SET quantity = excluded.quantity`,
		string(ingredient), quantity,
	)
	return err
}

func (q queries) deleteStock(ctx context.Context, ingredient domain.IngredientName) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM inventory WHERE ingredient = ?`, string(ingredient))
	return err
}

func (q queries) saveOrder(ctx context.Context, o domain.Order) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO orders (order_id, customer_id, customer_name, recipe_name, price, amount_paid, change, complete, picked_up, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (order_id) DO UPDATE SET complete = excluded.complete, picked_up = excluded.picked_up`,
		o.ID, o.CustomerID, o.CustomerName, o.RecipeName, o.Price, o.AmountPaid, o.Change, o.Complete, o.PickedUp, o.CreatedAt,
	)
	return err
}

// conflictOr maps a unique constraint failure to domain.ErrConflict
func conflictOr(err error, kind, name string) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s %s", domain.ErrConflict, kind, name)
		}
	}
	return err
}
