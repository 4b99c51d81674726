// Package sqlite implements repository.Store on a single SQLite file using
// the pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/osse101/CoffeePOS_Go/internal/database"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// Store is the sqlite persistence collaborator
type Store struct {
	db *sql.DB
	queries
}

var _ repository.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates it
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", "file:"+path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpen, err)
	}
	// one writer at a time; transactions hold the only connection
	db.SetMaxOpenConns(1)

	if err := database.MigrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, queries: queries{db: db}}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	t, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return &tx{tx: t, queries: queries{db: t}}, nil
}

func (s *Store) inTx(ctx context.Context, fn func(q queries) error) error {
	t, err := s.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, t)
	if err := fn(t.(*tx).queries); err != nil {
		return err
	}
	return t.Commit(ctx)
}

// ---- Ingredients ----

func (s *Store) LoadIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ingredient_id, name FROM ingredients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Ingredient
	for rows.Next() {
		var ing domain.Ingredient
		var name string
		if err := rows.Scan(&ing.ID, &name); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ing.Name = domain.IngredientName(name)
		out = append(out, ing)
	}
	return out, rows.Err()
}

func (s *Store) SaveIngredient(ctx context.Context, ingredient *domain.Ingredient) error {
	return s.saveIngredient(ctx, ingredient)
}

func (s *Store) DeleteIngredient(ctx context.Context, id int) error {
	return s.deleteIngredient(ctx, id)
}

func (s *Store) DeleteAllIngredients(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM ingredients`)
	return err
}

// ---- Recipes ----

func (s *Store) LoadRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.name, r.price, rr.ingredient, rr.quantity
		FROM recipes r
		LEFT JOIN recipe_requirements rr ON rr.recipe_name = r.name
		ORDER BY r.name, rr.ingredient`)
	if err != nil {
		return nil, fmt.Errorf("select recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Recipe
	for rows.Next() {
		var (
			name       string
			price      int
			ingredient sql.NullString
			quantity   sql.NullInt64
		)
		if err := rows.Scan(&name, &price, &ingredient, &quantity); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, domain.Recipe{Name: name, Price: price, Requirements: domain.Requirements{}})
		}
		if ingredient.Valid && quantity.Valid {
			out[len(out)-1].Requirements[domain.IngredientName(ingredient.String)] = int(quantity.Int64)
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
	_, err := s.db.ExecContext(ctx, `DELETE FROM recipes`)
	return err
}

// ---- Inventory ----

func (s *Store) LoadInventory(ctx context.Context) (map[domain.IngredientName]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ingredient, quantity FROM inventory`)
	if err != nil {
		return nil, fmt.Errorf("select inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[domain.IngredientName]int)
	for rows.Next() {
		var name string
		var qty int
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
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
	_, err := s.db.ExecContext(ctx, `DELETE FROM inventory`)
	return err
}

// ---- Users ----

func (s *Store) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	var role int
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, password_hash, role, created_at FROM users WHERE name = ?`, name,
	).Scan(&u.ID, &u.Name, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, name, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.PasswordHash, int(user.Role), user.CreatedAt,
	)
	return conflictOr(err, ErrMsgDuplicateUser, user.Name)
}

func (s *Store) DeleteAllUsers(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users`)
	return err
}

// ---- Orders ----

const orderColumns = `order_id, customer_id, customer_name, recipe_name, price, amount_paid, change, complete, picked_up, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.RecipeName, &o.Price,
		&o.AmountPaid, &o.Change, &o.Complete, &o.PickedUp, &o.CreatedAt)
	return o, err
}

func (s *Store) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE ? = '' OR customer_id = ? ORDER BY seq`, customerID, customerID)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) SaveOrder(ctx context.Context, order domain.Order) error {
	return s.saveOrder(ctx, order)
}

func (s *Store) DeleteAllOrders(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM orders`)
	return err
}
