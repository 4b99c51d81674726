package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// Service manages accounts and resolves credentials to callers
type Service interface {
	Register(ctx context.Context, caller domain.Caller, name, password string, role domain.Role) (*domain.User, error)
	Authenticate(ctx context.Context, name, password string) (domain.Caller, error)
	EnsureManager(ctx context.Context, name, password string) error
	CacheStats() CacheStats
}

type service struct {
	repo      repository.User
	userCache *userCache
	hashCost  int
	compare   func(hash, password []byte) error

	absentOnce sync.Once
	absentHash []byte
}

// NewService creates the user service. A hashCost of 0 uses DefaultHashCost.
func NewService(repo repository.User, cacheConfig CacheConfig, hashCost int) Service {
	if hashCost == 0 {
		hashCost = DefaultHashCost
	}
	return &service{
		repo:      repo,
		userCache: newUserCache(cacheConfig),
		hashCost:  hashCost,
		compare:   bcrypt.CompareHashAndPassword,
	}
}

// Register creates an account. Anyone may register a customer; staff and
// manager accounts need a manager.
func (s *service) Register(ctx context.Context, caller domain.Caller, name, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %s %d", domain.ErrValidation, domain.ErrMsgInvalidRole, int(role))
	}
	if err := access.AuthorizeRegistration(caller, role); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateCredentials(name, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	u := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.SaveUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, domain.StorageError(opSaveUser, err)
	}

	s.userCache.Invalidate(name)
	logger.FromContext(ctx).Info(LogMsgUserRegistered, "user", name, "role", role.String())
	return u, nil
}

// Authenticate resolves credentials to a caller. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *service) Authenticate(ctx context.Context, name, password string) (domain.Caller, error) {
	u, err := s.lookup(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same bcrypt work as a wrong password, so a miss cannot be timed.
			_ = s.compare(s.absentUserHash(), []byte(password))
			logger.FromContext(ctx).Debug(LogMsgAuthFailed, "user", name)
			return domain.Anonymous(), fmt.Errorf("%w: %s", domain.ErrUnauthorized, domain.ErrMsgInvalidCredentials)
		}
		return domain.Anonymous(), err
	}

	if err := s.compare(u.PasswordHash, []byte(password)); err != nil {
		logger.FromContext(ctx).Debug(LogMsgAuthFailed, "user", name)
		return domain.Anonymous(), fmt.Errorf("%w: %s", domain.ErrUnauthorized, domain.ErrMsgInvalidCredentials)
	}
	return domain.CallerFor(u), nil
}

// absentUserHash is compared against when the name is unknown
func (s *service) absentUserHash() []byte {
	s.absentOnce.Do(func() {
		s.absentHash, _ = bcrypt.GenerateFromPassword([]byte(absentUserPassword), s.hashCost)
	})
	return s.absentHash
}

// EnsureManager creates a manager account unless one with that name exists
func (s *service) EnsureManager(ctx context.Context, name, password string) error {
	_, err := s.lookup(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	system := domain.Caller{Name: "bootstrap", Role: domain.RoleManager, Authenticated: true}
	if _, err := s.Register(ctx, system, name, password, domain.RoleManager); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgManagerBootstrapped, "user", name)
	return nil
}

func (s *service) CacheStats() CacheStats {
	return s.userCache.GetStats()
}

func (s *service) lookup(ctx context.Context, name string) (*domain.User, error) {
	if u, ok := s.userCache.Get(name); ok {
		return u, nil
	}
	u, err := s.repo.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.StorageError(opGetUser, err)
	}
	s.userCache.Set(u)
	return u, nil
}

func validateCredentials(name, password string) error {
	if name == "" {
		return fmt.Errorf("%w: user %s", domain.ErrValidation, domain.ErrMsgEmptyName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: user name longer than %d", domain.ErrValidation, MaxNameLength)
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be %d to %d bytes", domain.ErrValidation, MinPasswordLength, MaxPasswordLength)
	}
	return nil
}
