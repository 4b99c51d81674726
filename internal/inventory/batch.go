package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/metrics"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
	"github.com/osse101/CoffeePOS_Go/internal/utils"
)

// Batch stages ledger changes while the ledger's write lock is held. Staged
// changes are persisted through a repository.Tx and applied to memory only
// when the enclosing Ledger.Locked call returns nil.
type Batch struct {
	stock  map[domain.IngredientName]int
	staged map[domain.IngredientName]*int // nil value stages a removal
	order  []domain.IngredientName
}

func newBatch(stock map[domain.IngredientName]int) *Batch {
	return &Batch{stock: stock, staged: make(map[domain.IngredientName]*int)}
}

// Quantity reads through staged changes
func (b *Batch) Quantity(name domain.IngredientName) (int, bool) {
	if q, ok := b.staged[name]; ok {
		if q == nil {
			return 0, false
		}
		return *q, true
	}
	q, ok := b.stock[name]
	return q, ok
}

func (b *Batch) put(name domain.IngredientName, q *int) {
	if _, seen := b.staged[name]; !seen {
		b.order = append(b.order, name)
	}
	b.staged[name] = q
}

// Set stages an absolute quantity
func (b *Batch) Set(name domain.IngredientName, quantity int) error {
	if err := name.Validate(); err != nil {
		return err
	}
	if quantity < 0 {
		return fmt.Errorf(ErrFmtNegativeAmount, domain.ErrValidation, domain.ErrMsgNegativeAmount, name, quantity)
	}
	if quantity > domain.MaxStockQuantity {
		return fmt.Errorf(ErrFmtOverflow, domain.ErrOverflow, name, domain.MaxStockQuantity)
	}
	b.put(name, &quantity)
	return nil
}

// Add stages an increment, treating an untracked ingredient as zero
func (b *Batch) Add(name domain.IngredientName, delta int) error {
	if err := name.Validate(); err != nil {
		return err
	}
	if delta < 0 {
		return fmt.Errorf(ErrFmtNegativeAmount, domain.ErrValidation, domain.ErrMsgNegativeAmount, name, delta)
	}
	current, _ := b.Quantity(name)
	sum, ok := utils.CheckedAdd(current, delta, domain.MaxStockQuantity)
	if !ok {
		return fmt.Errorf(ErrFmtOverflow, domain.ErrOverflow, name, domain.MaxStockQuantity)
	}
	b.put(name, &sum)
	return nil
}

// Remove stages deletion of the ledger entry
func (b *Batch) Remove(name domain.IngredientName) {
	b.put(name, nil)
}

// Rename moves an entry to a new key, keeping its quantity
func (b *Batch) Rename(from, to domain.IngredientName) {
	q, ok := b.Quantity(from)
	if !ok {
		return
	}
	b.Remove(from)
	b.put(to, &q)
}

// Empty reports whether nothing is staged
func (b *Batch) Empty() bool {
	return len(b.staged) == 0
}

// Persist writes every staged change to tx
func (b *Batch) Persist(ctx context.Context, tx repository.Tx) error {
	for _, name := range b.order {
		q := b.staged[name]
		if q == nil {
			if err := tx.DeleteStock(ctx, name); err != nil {
				return err
			}
			continue
		}
		if err := tx.SaveStock(ctx, name, *q); err != nil {
			return err
		}
	}
	return nil
}

func (b *Batch) apply() {
	for _, name := range b.order {
		q := b.staged[name]
		if q == nil {
			delete(b.stock, name)
			metrics.ForgetStock(string(name))
			continue
		}
		b.stock[name] = *q
		metrics.SetStock(string(name), *q)
	}
}
