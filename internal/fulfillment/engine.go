package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/event"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/metrics"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// RecipeFinder resolves a purchasable recipe by name
type RecipeFinder interface {
	FindByName(name string) (domain.Recipe, error)
}

// StockConsumer atomically checks and consumes stock for a recipe, running
// hook inside the same transaction
type StockConsumer interface {
	ConsumeWith(ctx context.Context, recipe domain.Recipe, hook func(tx repository.Tx) error) (bool, error)
}

// Receipt is the outcome of a purchase. On rejection Change equals the amount
// paid and RejectedAt names the last stage the request reached.
type Receipt struct {
	Stage      Stage         `json:"stage"`
	RejectedAt Stage         `json:"rejected_at,omitempty"`
	Change     int           `json:"change"`
	Order      *domain.Order `json:"order,omitempty"`
}

// Service defines the purchase operation
type Service interface {
	Purchase(ctx context.Context, caller domain.Caller, recipeName string, amountPaid int) (Receipt, error)
}

// Engine runs purchases against the shared recipe book and ledger
type Engine struct {
	recipes   RecipeFinder
	stock     StockConsumer
	publisher event.Publisher
	now       func() time.Time
}

// NewEngine creates the fulfillment engine. publisher may be nil.
func NewEngine(recipes RecipeFinder, stock StockConsumer, publisher event.Publisher) *Engine {
	return &Engine{
		recipes:   recipes,
		stock:     stock,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Purchase walks Requested → Authorized → Priced → Settled. Any failed gate
// rejects the request, returns the whole payment as change and leaves the
// ledger untouched.
func (e *Engine) Purchase(ctx context.Context, caller domain.Caller, recipeName string, amountPaid int) (Receipt, error) {
	log := logger.FromContext(ctx)
	stage := StageRequested

	reject := func(err error, result string) (Receipt, error) {
		metrics.PurchasesTotal.WithLabelValues(result).Inc()
		log.Info(LogMsgPurchaseRejected, "recipe", recipeName, "stage", stage, "error", err)
		change := amountPaid
		if change < 0 {
			change = 0
		}
		return Receipt{Stage: StageRejected, RejectedAt: stage, Change: change}, err
	}

	if amountPaid < 0 {
		return reject(fmt.Errorf(ErrFmtNegativeAmount, domain.ErrValidation, domain.ErrMsgNegativeAmount, amountPaid), metrics.ResultInvalid)
	}

	if err := access.Authorize(caller, access.OpPurchase); err != nil {
		return reject(err, metrics.ResultUnauthorized)
	}
	stage = StageAuthorized

	recipe, err := e.recipes.FindByName(recipeName)
	if err != nil {
		return reject(err, resultFor(err))
	}
	if amountPaid < recipe.Price {
		return reject(fmt.Errorf(ErrFmtInsufficientPay, domain.ErrInsufficientPayment, recipe.Name, recipe.Price, amountPaid), metrics.ResultInsufficientPayment)
	}
	stage = StagePriced

	order := domain.Order{
		ID:           uuid.New().String(),
		CustomerID:   caller.UserID,
		CustomerName: caller.Name,
		RecipeName:   recipe.Name,
		Price:        recipe.Price,
		AmountPaid:   amountPaid,
		Change:       amountPaid - recipe.Price,
		CreatedAt:    e.now(),
	}

	consumed, err := e.stock.ConsumeWith(ctx, recipe, func(tx repository.Tx) error {
		return tx.SaveOrder(ctx, order)
	})
	if err != nil {
		return reject(err, metrics.ResultError)
	}
	if !consumed {
		return reject(fmt.Errorf(ErrFmtInsufficientStock, domain.ErrInsufficientStock, recipe.Name), metrics.ResultInsufficientStock)
	}

	metrics.PurchasesTotal.WithLabelValues(metrics.ResultSettled).Inc()
	log.Info(LogMsgPurchaseSettled, "order_id", order.ID, "recipe", recipe.Name, "change", order.Change)
	e.publish(ctx, event.NewOrderEvent(domain.EventTypeOrderPlaced, order))

	return Receipt{Stage: StageSettled, Change: order.Change, Order: &order}, nil
}

func (e *Engine) publish(ctx context.Context, evt event.Event) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrValidation):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
