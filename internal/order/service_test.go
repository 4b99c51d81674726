package order

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoffeePOS_Go/internal/concurrency"
	"github.com/osse101/CoffeePOS_Go/internal/database/memory"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/event"
)

var (
	alice   = domain.Caller{UserID: "u-alice", Name: "alice", Role: domain.RoleCustomer, Authenticated: true}
	bob     = domain.Caller{UserID: "u-bob", Name: "bob", Role: domain.RoleCustomer, Authenticated: true}
	barista = domain.Caller{UserID: "u-staff", Name: "barista", Role: domain.RoleStaff, Authenticated: true}
)

// MockRepository is a mock implementation of repository.Order
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockRepository) ListOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockRepository) SaveOrder(ctx context.Context, o domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockRepository) DeleteAllOrders(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func seed(t *testing.T, store *memory.Store, orders ...domain.Order) {
	t.Helper()
	for _, o := range orders {
		require.NoError(t, store.SaveOrder(context.Background(), o))
	}
}

func newOrder(id string, owner domain.Caller) domain.Order {
	return domain.Order{
		ID:           id,
		CustomerID:   owner.UserID,
		CustomerName: owner.Name,
		RecipeName:   "Latte",
		Price:        50,
		AmountPaid:   60,
		Change:       10,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestList(t *testing.T) {
	store := memory.New()
	seed(t, store, newOrder("o1", alice), newOrder("o2", bob), newOrder("o3", alice))
	svc := NewService(store, concurrency.NewLockManager(), nil)

	own, err := svc.List(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "o1", own[0].ID)
	assert.Equal(t, "o3", own[1].ID)

	all, err := svc.List(context.Background(), barista)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.List(context.Background(), domain.Anonymous())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestList_StorageFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListOrders", mock.Anything, "").Return(nil, assert.AnError)
	svc := NewService(repo, concurrency.NewLockManager(), nil)

	_, err := svc.List(context.Background(), barista)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGet(t *testing.T) {
	store := memory.New()
	seed(t, store, newOrder("o1", alice))
	svc := NewService(store, concurrency.NewLockManager(), nil)

	o, err := svc.Get(context.Background(), alice, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Latte", o.RecipeName)

	_, err = svc.Get(context.Background(), bob, "o1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Get(context.Background(), barista, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplete(t *testing.T) {
	store := memory.New()
	seed(t, store, newOrder("o1", alice))

	bus := event.NewMemoryBus()
	var seen []event.Type
	bus.Subscribe(domain.EventTypeOrderCompleted, func(_ context.Context, e event.Event) error {
		seen = append(seen, e.Type)
		return nil
	})
	svc := NewService(store, concurrency.NewLockManager(), bus)

	_, err := svc.Complete(context.Background(), alice, "o1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	o, err := svc.Complete(context.Background(), barista, "o1")
	require.NoError(t, err)
	assert.True(t, o.Complete)
	assert.False(t, o.PickedUp)

	_, err = svc.Complete(context.Background(), barista, "o1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Complete(context.Background(), barista, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []event.Type{domain.EventTypeOrderCompleted}, seen)
}

func TestPickUp(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, newOrder("o1", alice), newOrder("o2", alice))
	svc := NewService(store, concurrency.NewLockManager(), nil)

	_, err := svc.PickUp(ctx, alice, "o1")
	assert.ErrorIs(t, err, domain.ErrConflict, "not complete yet")

	_, err = svc.Complete(ctx, barista, "o1")
	require.NoError(t, err)

	_, err = svc.PickUp(ctx, bob, "o1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	o, err := svc.PickUp(ctx, alice, "o1")
	require.NoError(t, err)
	assert.True(t, o.PickedUp)

	_, err = svc.PickUp(ctx, alice, "o1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Complete(ctx, barista, "o2")
	require.NoError(t, err)
	o, err = svc.PickUp(ctx, barista, "o2")
	require.NoError(t, err)
	assert.True(t, o.PickedUp)

	persisted, err := store.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, persisted.Complete)
	assert.True(t, persisted.PickedUp)
}

func TestUnknownOrderTakesNoLock(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seed(t, store, newOrder("o1", alice))
	locks := concurrency.NewLockManager()
	svc := NewService(store, locks, nil)

	for i := range 20 {
		id := fmt.Sprintf("made-up-%d", i)
		_, err := svc.Complete(ctx, barista, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = svc.PickUp(ctx, barista, id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.Zero(t, locks.Len())

	_, err := svc.Complete(ctx, barista, "o1")
	require.NoError(t, err)
	assert.Equal(t, 1, locks.Len())
}

func TestComplete_SaveFailure(t *testing.T) {
	o := newOrder("o1", alice)
	repo := new(MockRepository)
	repo.On("GetOrder", mock.Anything, "o1").Return(&o, nil)
	repo.On("SaveOrder", mock.Anything, mock.Anything).Return(assert.AnError)
	svc := NewService(repo, concurrency.NewLockManager(), nil)

	_, err := svc.Complete(context.Background(), barista, "o1")
	assert.ErrorIs(t, err, domain.ErrStorage)
	repo.AssertExpectations(t)
}

func TestComplete_ConcurrentCallsTransitionOnce(t *testing.T) {
	store := memory.New()
	seed(t, store, newOrder("o1", alice))
	svc := NewService(store, concurrency.NewLockManager(), nil)

	var ok, conflict atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Complete(context.Background(), barista, "o1"); err == nil {
				ok.Add(1)
			} else if assert.ErrorIs(t, err, domain.ErrConflict) {
				conflict.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(9), conflict.Load())
}
