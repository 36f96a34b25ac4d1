package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"jobfair/internal/model"
)

// IdentityCache maps a login identifier to a previously resolved user.
// Implementations must be safe for concurrent use and must never return an
// entry after its TTL has elapsed.
type IdentityCache interface {
	Get(key string) (*model.User, bool)
	Set(key string, user *model.User, ttl time.Duration)
	Delete(key string)
	Clear()
}

type identityEntry struct {
	user      model.User
	expiresAt time.Time
}

// MemoryIdentityCache is a bounded in-process IdentityCache. Capacity is
// enforced LRU-first; expiry is checked lazily on Get against the injected
// clock, so the entry TTL is exact even between sweeps.
type MemoryIdentityCache struct {
	entries *lru.LRU[string, identityEntry]
	now     func() time.Time
}

var _ IdentityCache = (*MemoryIdentityCache)(nil)

// NewMemoryIdentityCache creates a cache holding at most size entries.
// maxTTL bounds the background sweep of the underlying LRU.
func NewMemoryIdentityCache(size int, maxTTL time.Duration) *MemoryIdentityCache {
	return NewMemoryIdentityCacheWithClock(size, maxTTL, time.Now)
}

// NewMemoryIdentityCacheWithClock is NewMemoryIdentityCache with a custom clock.
func NewMemoryIdentityCacheWithClock(size int, maxTTL time.Duration, now func() time.Time) *MemoryIdentityCache {
	if size <= 0 {
		size = 1
	}
	return &MemoryIdentityCache{
		entries: lru.NewLRU[string, identityEntry](size, nil, maxTTL),
		now:     now,
	}
}

// Get returns a copy of the cached user.
func (c *MemoryIdentityCache) Get(key string) (*model.User, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.entries.Remove(key)
		return nil, false
	}
	user := entry.user
	return &user, true
}

// Set stores a copy of user for ttl. A non-positive ttl removes the key.
func (c *MemoryIdentityCache) Set(key string, user *model.User, ttl time.Duration) {
	if user == nil || ttl <= 0 {
		c.entries.Remove(key)
		return
	}
	c.entries.Add(key, identityEntry{user: *user, expiresAt: c.now().Add(ttl)})
}

func (c *MemoryIdentityCache) Delete(key string) {
	c.entries.Remove(key)
}

func (c *MemoryIdentityCache) Clear() {
	c.entries.Purge()
}

// Len returns the number of stored entries, expired ones not yet swept
// included.
func (c *MemoryIdentityCache) Len() int {
	return c.entries.Len()
}
