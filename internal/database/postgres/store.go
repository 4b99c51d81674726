// Package postgres implements repository.Store on PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// Store is the postgres persistence collaborator
type Store struct {
	pool *pgxpool.Pool
	queries
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps a migrated pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, queries: queries{db: pool}}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	t, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &tx{tx: t, queries: queries{db: t}}, nil
}

// inTx runs fn against a fresh transaction for the multi-statement writes
func (s *Store) inTx(ctx context.Context, fn func(q queries) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(t pgx.Tx) error {
		return fn(queries{db: t})
	})
}

// ---- Ingredients ----

func (s *Store) LoadIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := s.pool.Query(ctx, `SELECT ingredient_id, name FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Ingredient, error) {
		var ing domain.Ingredient
		var name string
		err := row.Scan(&ing.ID, &name)
		ing.Name = domain.IngredientName(name)
		return ing, err
	})
}

func (s *Store) SaveIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	return s.saveIngredient(ctx, ingredient)
}

func (s *Store) DeleteIngredient(ctx context.Context, id int) error {
	return s.deleteIngredient(ctx, id)
}

func (s *Store) DeleteAllIngredients(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM ingredients`)
	return err
}

// ---- Recipes ----

func (s *Store) LoadRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.name, r.price, rr.ingredient, rr.quantity
		FROM recipes r
		LEFT JOIN recipe_requirements rr ON rr.recipe_name = r.name
		ORDER BY r.name, rr.ingredient`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var out []domain.Recipe
	for rows.Next() {
		var (
			name       string
			price      int
			ingredient *string
			quantity   *int
		)
		if err := rows.Scan(&name, &price, &ingredient, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, domain.Recipe{Name: name, Price: price, Requirements: domain.Requirements{}})
		}
		if ingredient != nil && quantity != nil {
			out[len(out)-1].Requirements[domain.IngredientName(*ingredient)] = *quantity
		}
	}
	return out, rows.Err()
}

func (s *Store) SaveRecipe(ctx context.Context, recipe domain.Recipe) error {
	return s.inTx(ctx, func(q queries) error { return q.saveRecipe(ctx, recipe) })
}

func (s *Store) DeleteRecipe(ctx context.Context, name string) error {
	return s.deleteRecipe(ctx, name)
}

func (s *Store) DeleteAllRecipes(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM recipes`)
	return err
}

// ---- Inventory ----

func (s *Store) LoadInventory(ctx context.Context) (map[domain.IngredientName]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT ingredient, quantity FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.IngredientName]int)
	for rows.Next() {
		var name string
		var qty int
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		out[domain.IngredientName(name)] = qty
	}
	return out, rows.Err()
}

func (s *Store) SaveStock(ctx context.Context, ingredient domain.IngredientName, quantity int) error {
	return s.saveStock(ctx, ingredient, quantity)
}

func (s *Store) DeleteStock(ctx context.Context, ingredient domain.IngredientName) error {
	return s.deleteStock(ctx, ingredient)
}

func (s *Store) DeleteAllInventory(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM inventory`)
	return err
}

// ---- Users ----

func (s *Store) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	var role int
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, name, password_hash, role, created_at FROM users WHERE name = $1`, name,
	).Scan(&u.ID, &u.Name, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (user_id, name, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.PasswordHash, int(user.Role), user.CreatedAt,
	)
	return conflictOr(err, ErrMsgDuplicateUser, user.Name)
}

func (s *Store) DeleteAllUsers(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users`)
	return err
}

// ---- Orders ----

const orderColumns = `order_id, customer_id, customer_name, recipe_name, price, amount_paid, change, complete, picked_up, created_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.RecipeName, &o.Price,
		&o.AmountPaid, &o.Change, &o.Complete, &o.PickedUp, &o.CreatedAt)
	return o, err
}

func (s *Store) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE $1 = '' OR customer_id = $1 ORDER BY seq`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		return scanOrder(row)
	})
}

func (s *Store) SaveOrder(ctx context.Context, order domain.Order) error {
	return s.saveOrder(ctx, order)
}

func (s *Store) DeleteAllOrders(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM orders`)
	return err
}
