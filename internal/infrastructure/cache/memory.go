package cache

import (
	"context"
	"sync"
	"time"

	"github.com/larder/backend/internal/domain"
)

// cacheItem represents a single lookup result and the time it was written
type cacheItem struct {
	Value     domain.LookupResult
	WrittenAt time.Time
	TTL       time.Duration
}

// valid reports whether the item is still fresh at now
func (i cacheItem) valid(now time.Time) bool {
	return now.Sub(i.WrittenAt) < i.TTL
}

// MemoryCache is a thread-safe in-memory cache with lazy, read-time expiry.
// Expired entries are never returned, and stay in the map until the next Set
// for the same key overwrites them.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
	now   func() time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]cacheItem),
		now:  time.Now,
	}
}

// SetClock replaces the time source (used by tests to move time forward)
func (c *MemoryCache) SetClock(now func() time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = now
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (domain.LookupResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || !item.valid(c.now()) {
		return domain.LookupResult{}, domain.ErrCacheMiss
	}

	return item.Value, nil
}

// Set stores a value in the cache, always overwriting any previous entry
func (c *MemoryCache) Set(ctx context.Context, key string, value domain.LookupResult, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Value:     value,
		WrittenAt: c.now(),
		TTL:       ttl,
	}
	return nil
}

// Size returns the number of stored entries, including expired ones
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
	return nil
}
