package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/inventory"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/recipe"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// Store is the persistence the catalog needs
type Store interface {
	repository.Ingredient
	repository.TxBeginner
}

// DeleteReport describes what a cascading delete touched
type DeleteReport struct {
	Ingredient     domain.Ingredient `json:"ingredient"`
	RecipesUpdated []string          `json:"recipes_updated"`
	HadStock       bool              `json:"had_stock"`
}

// Catalog owns the set of known ingredients and orchestrates the operations
// that span recipes and stock. Locks are taken catalog, then book, then
// ledger, and every multi-component change is committed in one transaction
// before any in-memory state moves.
type Catalog struct {
	mu     sync.RWMutex
	byName map[domain.IngredientName]domain.Ingredient
	store  Store
	book   *recipe.Book
	ledger *inventory.Ledger
}

// New creates an empty catalog and registers it as the book's ingredient index
func New(store Store, book *recipe.Book, ledger *inventory.Ledger) *Catalog {
	c := &Catalog{
		byName: make(map[domain.IngredientName]domain.Ingredient),
		store:  store,
		book:   book,
		ledger: ledger,
	}
	book.SetIndex(c)
	return c
}

// Load replaces the in-memory state with the persisted one
func (c *Catalog) Load(ctx context.Context) error {
	loaded, err := c.store.LoadIngredients(ctx)
	if err != nil {
		return domain.StorageError("load ingredients", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.byName = make(map[domain.IngredientName]domain.Ingredient, len(loaded))
	for _, ing := range loaded {
		c.byName[ing.Name] = ing
	}
	logger.FromContext(ctx).Info(LogMsgCatalogLoaded, "ingredients", len(c.byName))
	return nil
}

// View runs fn with the catalog read-locked
func (c *Catalog) View(fn func(has func(domain.IngredientName) bool) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(func(name domain.IngredientName) bool {
		_, ok := c.byName[name]
		return ok
	})
}

// Find returns the named ingredient
func (c *Catalog) Find(name domain.IngredientName) (domain.Ingredient, error) {
	name = name.Normalize()
	c.mu.RLock()
	defer c.mu.RUnlock()

	ing, ok := c.byName[name]
	if !ok {
		return domain.Ingredient{}, fmt.Errorf(ErrFmtIngredientNotFound, domain.ErrIngredientNotFound, name)
	}
	return ing, nil
}

// List returns every ingredient sorted by name
func (c *Catalog) List() []domain.Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Ingredient, 0, len(c.byName))
	for _, ing := range c.byName {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Create adds an ingredient and sets its stock in one transaction
func (c *Catalog) Create(ctx context.Context, caller domain.Caller, name domain.IngredientName, initialStock int) (domain.Ingredient, error) {
	if err := access.Authorize(caller, access.OpManageIngredients); err != nil {
		return domain.Ingredient{}, err
	}
	name = name.Normalize()
	if err := name.Validate(); err != nil {
		return domain.Ingredient{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[name]; exists {
		return domain.Ingredient{}, fmt.Errorf(ErrFmtIngredientExists, domain.ErrConflict, name)
	}

	ing := &domain.Ingredient{Name: name}
	err := c.ledger.Locked(func(lb *inventory.Batch) error {
		if err := lb.Set(name, initialStock); err != nil {
			return err
		}
		return repository.WithTx(ctx, c.store, func(tx repository.Tx) error {
			if err := tx.SaveIngredient(ctx, ing); err != nil {
				return err
			}
			return lb.Persist(ctx, tx)
		})
	})
	if err != nil {
		return domain.Ingredient{}, err
	}

	c.byName[name] = *ing
	logger.FromContext(ctx).Info(LogMsgIngredientCreated, "ingredient", name, "id", ing.ID, "stock", initialStock)
	return *ing, nil
}

// Rename changes an ingredient's name everywhere it is referenced
func (c *Catalog) Rename(ctx context.Context, caller domain.Caller, existing, newName domain.IngredientName) (domain.Ingredient, error) {
	if err := access.Authorize(caller, access.OpManageIngredients); err != nil {
		return domain.Ingredient{}, err
	}
	existing, newName = existing.Normalize(), newName.Normalize()
	if err := newName.Validate(); err != nil {
		return domain.Ingredient{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ing, ok := c.byName[existing]
	if !ok {
		return domain.Ingredient{}, fmt.Errorf(ErrFmtIngredientNotFound, domain.ErrIngredientNotFound, existing)
	}
	if existing == newName {
		return ing, nil
	}
	if _, taken := c.byName[newName]; taken {
		return domain.Ingredient{}, fmt.Errorf(ErrFmtIngredientExists, domain.ErrConflict, newName)
	}

	renamed := ing
	renamed.Name = newName

	err := c.book.Locked(func(rb *recipe.Batch) error {
		rb.RenameIngredient(existing, newName)
		return c.ledger.Locked(func(lb *inventory.Batch) error {
			lb.Rename(existing, newName)
			return repository.WithTx(ctx, c.store, func(tx repository.Tx) error {
				if err := rb.Persist(ctx, tx); err != nil {
					return err
				}
				if err := lb.Persist(ctx, tx); err != nil {
					return err
				}
				return tx.SaveIngredient(ctx, &renamed)
			})
		})
	})
	if err != nil {
		return domain.Ingredient{}, err
	}

	delete(c.byName, existing)
	c.byName[newName] = renamed
	logger.FromContext(ctx).Info(LogMsgIngredientRenamed, "from", existing, "to", newName)
	return renamed, nil
}

// Delete removes an ingredient after stripping it from every recipe and
// from the ledger. The three removals commit together or not at all;
// recipes are kept even when left without requirements.
func (c *Catalog) Delete(ctx context.Context, caller domain.Caller, name domain.IngredientName) (DeleteReport, error) {
	if err := access.Authorize(caller, access.OpManageIngredients); err != nil {
		return DeleteReport{}, err
	}
	name = name.Normalize()

	c.mu.Lock()
	defer c.mu.Unlock()

	ing, ok := c.byName[name]
	if !ok {
		return DeleteReport{}, fmt.Errorf(ErrFmtIngredientNotFound, domain.ErrIngredientNotFound, name)
	}

	report := DeleteReport{Ingredient: ing}
	err := c.book.Locked(func(rb *recipe.Batch) error {
		report.RecipesUpdated = rb.StripIngredient(name)
		return c.ledger.Locked(func(lb *inventory.Batch) error {
			if _, tracked := lb.Quantity(name); tracked {
				report.HadStock = true
				lb.Remove(name)
			}
			return repository.WithTx(ctx, c.store, func(tx repository.Tx) error {
				if err := rb.Persist(ctx, tx); err != nil {
					return err
				}
				if err := lb.Persist(ctx, tx); err != nil {
					return err
				}
				return tx.DeleteIngredient(ctx, ing.ID)
			})
		})
	})
	if err != nil {
		return DeleteReport{}, err
	}

	delete(c.byName, name)
	log := logger.FromContext(ctx)
	if len(report.RecipesUpdated) > 0 {
		log.Info(LogMsgRecipesStripped, "ingredient", name, "recipes", report.RecipesUpdated)
	}
	log.Info(LogMsgIngredientDeleted, "ingredient", name)
	return report, nil
}

// Restock adds stock for known ingredients, all or nothing
func (c *Catalog) Restock(ctx context.Context, caller domain.Caller, deltas map[domain.IngredientName]int) error {
	if err := access.Authorize(caller, access.OpRestock); err != nil {
		return err
	}
	deltas, err := normalizeDeltas(deltas)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for name := range deltas {
		if _, ok := c.byName[name]; !ok {
			return fmt.Errorf(ErrFmtIngredientNotFound, domain.ErrIngredientNotFound, name)
		}
	}
	if err := c.ledger.BulkIncrement(ctx, deltas); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgInventoryRestocked, "ingredients", len(deltas))
	return nil
}

// SetStock overwrites the quantity of a known ingredient
func (c *Catalog) SetStock(ctx context.Context, caller domain.Caller, name domain.IngredientName, quantity int) error {
	if err := access.Authorize(caller, access.OpRestock); err != nil {
		return err
	}
	name = name.Normalize()

	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.byName[name]; !ok {
		return fmt.Errorf(ErrFmtIngredientNotFound, domain.ErrIngredientNotFound, name)
	}
	return c.ledger.AddNewIngredient(ctx, name, quantity)
}

func normalizeDeltas(deltas map[domain.IngredientName]int) (map[domain.IngredientName]int, error) {
	out := make(map[domain.IngredientName]int, len(deltas))
	for name, qty := range deltas {
		key := name.Normalize()
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrValidation, domain.ErrMsgDuplicateIngredient, key)
		}
		out[key] = qty
	}
	return out, nil
}
