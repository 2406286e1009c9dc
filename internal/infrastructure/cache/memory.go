package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/basketrack/backend/internal/domain"
)

// cacheItem is a single stored response with its expiration
type cacheItem struct {
	Data       []byte
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory match cache with TTL support.
// Entries are stored as JSON so Get hands every caller its own copy,
// the same behavior the Redis cache gives.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Cleanup goroutine removes expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached match response
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.RecipeMatchResponse, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	var resp domain.RecipeMatchResponse
	if err := json.Unmarshal(item.Data, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Set stores a match response with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value *domain.RecipeMatchResponse, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Data:       data,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a cached response
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.Expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
