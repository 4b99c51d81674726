package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/concurrency"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/event"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// Service defines order queries and the two one-way transitions
type Service interface {
	List(ctx context.Context, caller domain.Caller) ([]domain.Order, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Order, error)
	Complete(ctx context.Context, caller domain.Caller, id string) (*domain.Order, error)
	PickUp(ctx context.Context, caller domain.Caller, id string) (*domain.Order, error)
}

type service struct {
	repo        repository.Order
	lockManager *concurrency.LockManager
	publisher   event.Publisher
}

// NewService creates a new order service. publisher may be nil.
func NewService(repo repository.Order, lockManager *concurrency.LockManager, publisher event.Publisher) Service {
	return &service{
		repo:        repo,
		lockManager: lockManager,
		publisher:   publisher,
	}
}

// List returns the caller's own orders for customers and every order for
// staff and managers
func (s *service) List(ctx context.Context, caller domain.Caller) ([]domain.Order, error) {
	customerID := ""
	if caller.Role == domain.RoleCustomer {
		if err := access.Authorize(caller, access.OpListOwnOrders); err != nil {
			return nil, err
		}
		customerID = caller.UserID
	} else if err := access.Authorize(caller, access.OpListAllOrders); err != nil {
		return nil, err
	}

	orders, err := s.repo.ListOrders(ctx, customerID)
	if err != nil {
		return nil, domain.StorageError(opListOrders, err)
	}
	return orders, nil
}

// Get returns a single order; customers only see their own
func (s *service) Get(ctx context.Context, caller domain.Caller, id string) (*domain.Order, error) {
	if err := access.Authorize(caller, access.OpRead); err != nil {
		return nil, err
	}
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role == domain.RoleCustomer && o.CustomerID != caller.UserID {
		return nil, fmt.Errorf(ErrFmtNotOwner, domain.ErrUnauthorized, id)
	}
	return o, nil
}

// Complete marks an order as made. A second call fails with ErrConflict.
func (s *service) Complete(ctx context.Context, caller domain.Caller, id string) (*domain.Order, error) {
	if err := access.Authorize(caller, access.OpCompleteOrder); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	defer s.lockManager.Lock(id)()

	// Reload under the lock; another call may have moved the order on.
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Complete {
		return nil, fmt.Errorf(ErrFmtOrderState, domain.ErrConflict, domain.ErrMsgOrderAlreadyComplete, id)
	}

	o.Complete = true
	if err := s.repo.SaveOrder(ctx, *o); err != nil {
		return nil, domain.StorageError(opSaveOrder, err)
	}

	logger.FromContext(ctx).Info(LogMsgOrderCompleted, "order_id", id, "recipe", o.RecipeName)
	s.publish(ctx, event.NewOrderEvent(domain.EventTypeOrderCompleted, *o))
	return o, nil
}

// PickUp hands a completed order over. Customers may only pick up their own.
func (s *service) PickUp(ctx context.Context, caller domain.Caller, id string) (*domain.Order, error) {
	if err := access.Authorize(caller, access.OpPickUpOrder); err != nil {
		return nil, err
	}

	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	defer s.lockManager.Lock(id)()

	// Reload under the lock; another call may have moved the order on.
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.AuthorizePickup(caller, *o); err != nil {
		return nil, err
	}
	switch {
	case o.PickedUp:
		return nil, fmt.Errorf(ErrFmtOrderState, domain.ErrConflict, domain.ErrMsgOrderAlreadyPickedUp, id)
	case !o.Complete:
		return nil, fmt.Errorf(ErrFmtOrderState, domain.ErrConflict, domain.ErrMsgOrderNotComplete, id)
	}

	o.PickedUp = true
	if err := s.repo.SaveOrder(ctx, *o); err != nil {
		return nil, domain.StorageError(opSaveOrder, err)
	}

	logger.FromContext(ctx).Info(LogMsgOrderPickedUp, "order_id", id, "customer", o.CustomerName)
	s.publish(ctx, event.NewOrderEvent(domain.EventTypeOrderPickedUp, *o))
	return o, nil
}

func (s *service) load(ctx context.Context, id string) (*domain.Order, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.StorageError(opGetOrder, err)
	}
	return o, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
