package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/CoffeePOS_Go/internal/database/memory"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

var manager = domain.Caller{UserID: "m", Name: "boss", Role: domain.RoleManager, Authenticated: true}

// MockRepository is a mock implementation of repository.User
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) SaveUser(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepository) DeleteAllUsers(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewService(store, CacheConfig{Size: 16}, bcrypt.MinCost), store
}

func TestRegister_Customer(t *testing.T) {
	svc, store := newTestService(t)

	u, err := svc.Register(context.Background(), domain.Anonymous(), "  alice ", "correct-horse", domain.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, []byte("correct-horse"), u.PasswordHash)

	persisted, err := store.GetUserByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(persisted.PasswordHash, []byte("correct-horse")))
}

func TestRegister_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	customer := domain.Caller{UserID: "c", Role: domain.RoleCustomer, Authenticated: true}

	tests := []struct {
		name     string
		caller   domain.Caller
		userName string
		password string
		role     domain.Role
		wantErr  error
	}{
		{"anonymous cannot create staff", domain.Anonymous(), "bob", "password1", domain.RoleStaff, domain.ErrUnauthorized},
		{"customer cannot create manager", customer, "bob", "password1", domain.RoleManager, domain.ErrUnauthorized},
		{"empty name", domain.Anonymous(), "   ", "password1", domain.RoleCustomer, domain.ErrValidation},
		{"short password", domain.Anonymous(), "bob", "short", domain.RoleCustomer, domain.ErrValidation},
		{"long password", domain.Anonymous(), "bob", strings.Repeat("x", MaxPasswordLength+1), domain.RoleCustomer, domain.ErrValidation},
		{"unknown role", manager, "bob", "password1", domain.Role(7), domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.caller, tt.userName, tt.password, tt.role)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := svc.Register(ctx, manager, "carol", "password1", domain.RoleStaff)
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.Anonymous(), "carol", "password2", domain.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_StorageFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SaveUser", mock.Anything, mock.Anything).Return(assert.AnError)
	svc := NewService(repo, CacheConfig{}, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), domain.Anonymous(), "alice", "password1", domain.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u, err := svc.Register(ctx, manager, "barista", "espresso!", domain.RoleStaff)
	require.NoError(t, err)

	caller, err := svc.Authenticate(ctx, "barista", "espresso!")
	require.NoError(t, err)
	assert.True(t, caller.Authenticated)
	assert.Equal(t, domain.RoleStaff, caller.Role)
	assert.Equal(t, u.ID, caller.UserID)

	caller, err = svc.Authenticate(ctx, "barista", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, caller.Authenticated)

	_, err = svc.Authenticate(ctx, "ghost", "whatever1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthenticate_UnknownUserDoesBcryptWork(t *testing.T) {
	svc, _ := newTestService(t)
	impl := svc.(*service)
	var compared [][]byte
	impl.compare = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	_, err := svc.Authenticate(context.Background(), "ghost", "whatever1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.Len(t, compared, 1, "an unknown name must still pay for one comparison")
	assert.Equal(t, impl.absentUserHash(), compared[0])
	cost, err := bcrypt.Cost(compared[0])
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost, "the stand-in hash uses the service's cost")
}

func TestAuthenticate_UsesCache(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("GetUserByName", mock.Anything, "alice").
		Return(&domain.User{ID: "u1", Name: "alice", PasswordHash: hash}, nil).Once()
	svc := NewService(repo, CacheConfig{Size: 4}, bcrypt.MinCost)

	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate(context.Background(), "alice", "password1")
		require.NoError(t, err)
	}
	repo.AssertNumberOfCalls(t, "GetUserByName", 1)
	assert.Equal(t, int64(2), svc.CacheStats().Hits)
}

func TestAuthenticate_StorageFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByName", mock.Anything, "alice").Return(nil, assert.AnError)
	svc := NewService(repo, CacheConfig{}, bcrypt.MinCost)

	_, err := svc.Authenticate(context.Background(), "alice", "password1")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestEnsureManager(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureManager(ctx, "owner", "password1"))
	require.NoError(t, svc.EnsureManager(ctx, "owner", "another-password"))

	caller, err := svc.Authenticate(ctx, "owner", "password1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, caller.Role)
}
