package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/metrics"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
	"github.com/osse101/CoffeePOS_Go/internal/utils"
)

// Store is the persistence the ledger needs
type Store interface {
	repository.Inventory
	repository.TxBeginner
}

// Ledger is the single authoritative ingredient to quantity mapping. Every
// quantity stays within [0, domain.MaxStockQuantity]. All mutations hold the
// write lock for their whole check, persist and apply sequence, so concurrent
// consumers never both see stock that only one of them can take.
type Ledger struct {
	mu    sync.RWMutex
	stock map[domain.IngredientName]int
	store Store
}

// NewLedger creates an empty ledger backed by store
func NewLedger(store Store) *Ledger {
	return &Ledger{
		stock: make(map[domain.IngredientName]int),
		store: store,
	}
}

// Load replaces the in-memory state with the persisted one
func (l *Ledger) Load(ctx context.Context) error {
	loaded, err := l.store.LoadInventory(ctx)
	if err != nil {
		return domain.StorageError("load inventory", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stock = make(map[domain.IngredientName]int, len(loaded))
	for name, q := range loaded {
		l.stock[name] = q
		metrics.SetStock(string(name), q)
	}
	logger.FromContext(ctx).Info(LogMsgLedgerLoaded, "entries", len(l.stock))
	return nil
}

// Locked runs fn with the write lock held. Changes staged on the batch are
// applied only if fn returns nil; fn is responsible for persisting them.
func (l *Ledger) Locked(fn func(b *Batch) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := newBatch(l.stock)
	if err := fn(b); err != nil {
		return err
	}
	b.apply()
	return nil
}

// commit persists a batch in its own transaction
func (l *Ledger) commit(ctx context.Context, b *Batch, extra func(tx repository.Tx) error) error {
	return repository.WithTx(ctx, l.store, func(tx repository.Tx) error {
		if err := b.Persist(ctx, tx); err != nil {
			return err
		}
		if extra != nil {
			return extra(tx)
		}
		return nil
	})
}

// AddNewIngredient sets the quantity of an ingredient, overwriting any
// existing amount.
func (l *Ledger) AddNewIngredient(ctx context.Context, name domain.IngredientName, initialAmount int) error {
	return l.Locked(func(b *Batch) error {
		if err := b.Set(name, initialAmount); err != nil {
			return err
		}
		if err := l.commit(ctx, b, nil); err != nil {
			return err
		}
		logger.FromContext(ctx).Info(LogMsgStockSet, "ingredient", name, "quantity", initialAmount)
		return nil
	})
}

// BulkIncrement adds every delta or none. All deltas are checked for sign
// before any sum is computed, then every sum is checked for overflow before
// anything is persisted.
func (l *Ledger) BulkIncrement(ctx context.Context, deltas map[domain.IngredientName]int) error {
	names := sortedNames(deltas)
	for _, name := range names {
		if err := name.Validate(); err != nil {
			return err
		}
		if d := deltas[name]; d < 0 {
			return fmt.Errorf(ErrFmtNegativeAmount, domain.ErrValidation, domain.ErrMsgNegativeAmount, name, d)
		}
	}
	if len(names) == 0 {
		return nil
	}

	return l.Locked(func(b *Batch) error {
		for _, name := range names {
			if err := b.Add(name, deltas[name]); err != nil {
				return err
			}
		}
		if err := l.commit(ctx, b, nil); err != nil {
			return err
		}
		logger.FromContext(ctx).Info(LogMsgBulkIncrement, "ingredients", len(names))
		return nil
	})
}

// HasSufficientStock reports whether every requirement is covered. Untracked
// ingredients count as zero.
func (l *Ledger) HasSufficientStock(recipe domain.Recipe) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sufficient(l.stock, recipe.Requirements)
}

func sufficient(stock map[domain.IngredientName]int, req domain.Requirements) bool {
	for name, need := range req {
		if _, ok := utils.CheckedSub(stock[name], need); !ok {
			return false
		}
	}
	return true
}

// Consume atomically checks and decrements stock for one unit of recipe.
// It returns false without mutating anything when stock is insufficient.
func (l *Ledger) Consume(ctx context.Context, recipe domain.Recipe) (bool, error) {
	return l.ConsumeWith(ctx, recipe, nil)
}

// ConsumeWith is Consume with extra writes joined to the same transaction,
// so that a purchase and its order record are persisted together. If hook
// fails the stock is left untouched.
func (l *Ledger) ConsumeWith(ctx context.Context, recipe domain.Recipe, hook func(tx repository.Tx) error) (bool, error) {
	consumed := false
	err := l.Locked(func(b *Batch) error {
		if !sufficient(l.stock, recipe.Requirements) {
			logger.FromContext(ctx).Info(LogMsgConsumeRejected, "recipe", recipe.Name)
			return nil
		}
		for _, name := range recipe.Requirements.Names() {
			if err := b.Set(name, l.stock[name]-recipe.Requirements[name]); err != nil {
				return err
			}
		}
		if err := l.commit(ctx, b, hook); err != nil {
			return err
		}
		consumed = true
		logger.FromContext(ctx).Debug(LogMsgConsumed, "recipe", recipe.Name)
		return nil
	})
	if err != nil {
		return false, err
	}
	return consumed, nil
}

// RemoveIngredient deletes the ledger entry entirely
func (l *Ledger) RemoveIngredient(ctx context.Context, name domain.IngredientName) error {
	return l.Locked(func(b *Batch) error {
		if _, ok := b.Quantity(name); !ok {
			return nil
		}
		b.Remove(name)
		if err := l.commit(ctx, b, nil); err != nil {
			return err
		}
		logger.FromContext(ctx).Info(LogMsgIngredientRemoved, "ingredient", name)
		return nil
	})
}

// Quantity returns the tracked quantity of an ingredient
func (l *Ledger) Quantity(name domain.IngredientName) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	q, ok := l.stock[name]
	return q, ok
}

// Snapshot returns every entry sorted by ingredient name
func (l *Ledger) Snapshot() []domain.StockEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.StockEntry, 0, len(l.stock))
	for _, name := range sortedNames(l.stock) {
		out = append(out, domain.StockEntry{Ingredient: name, Quantity: l.stock[name]})
	}
	return out
}

// Render is the deterministic diagnostic form: one "name: quantity" line per
// entry in ascending name order.
func (l *Ledger) Render() string {
	var sb strings.Builder
	for _, e := range l.Snapshot() {
		fmt.Fprintf(&sb, "%s: %d\n", e.Ingredient, e.Quantity)
	}
	return sb.String()
}

func sortedNames[V any](m map[domain.IngredientName]V) []domain.IngredientName {
	names := make([]domain.IngredientName, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
