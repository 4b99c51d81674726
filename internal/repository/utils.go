package repository

import (
	"context"
	"errors"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rolling back a committed tx is the normal deferred path
		if err.Error() != domain.ErrMsgTxClosed && !errors.Is(err, ErrTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}

// WithTx runs fn inside a transaction on store and commits when fn succeeds.
// Any failure, including the commit itself, is reported as a storage error
// unless fn returned a typed domain error.
func WithTx(ctx context.Context, store TxBeginner, fn func(tx Tx) error) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return domain.StorageError("begin tx", err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		if isDomainKind(err) {
			return err
		}
		return domain.StorageError("tx", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.StorageError("commit", err)
	}
	return nil
}

func isDomainKind(err error) bool {
	for _, kind := range []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrConflict,
		domain.ErrCapacity,
		domain.ErrUnauthorized,
		domain.ErrInsufficientPayment,
		domain.ErrInsufficientStock,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
