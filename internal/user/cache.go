package user

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// CacheConfig sizes the user lookup cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache sizing
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedUserEntry wraps a user with version metadata for cache invalidation
type cachedUserEntry struct {
	Version  string
	User     domain.User
	CachedAt time.Time
}

// userCache is an in-memory LRU of accounts keyed by name, with time-based
// expiration and version-based invalidation.
type userCache struct {
	lru    *expirable.LRU[string, *cachedUserEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newUserCache(config CacheConfig) *userCache {
	if config.Size <= 0 {
		config.Size = DefaultCacheSize
	}
	if config.TTL <= 0 {
		config.TTL = DefaultCacheTTL
	}
	return &userCache{
		lru: expirable.NewLRU[string, *cachedUserEntry](config.Size, nil, config.TTL),
	}
}

// Get returns a copy of the cached user. Entries with a stale schema
// version are dropped.
func (c *userCache) Get(name string) (*domain.User, bool) {
	entry, found := c.lru.Get(name)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(name)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	u := entry.User
	return &u, true
}

func (c *userCache) Set(user *domain.User) {
	c.lru.Add(user.Name, &cachedUserEntry{
		Version:  CacheSchemaVersion,
		User:     *user,
		CachedAt: time.Now(),
	})
}

func (c *userCache) Invalidate(name string) {
	c.lru.Remove(name)
}

func (c *userCache) Clear() {
	c.lru.Purge()
}

func (c *userCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
