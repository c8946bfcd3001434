package sizing

import (
	"context"
	"sync"
	"time"
)

// Cache keeps sizing results for a TTL so repeated requests for the same
// target do not query the cluster or Prometheus again
type Cache struct {
	data  map[string]*cacheEntry
	ttl   time.Duration
	mutex sync.RWMutex
	now   func() time.Time
}

type cacheEntry struct {
	result    *Result
	expiresAt time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (c *Cache) Get(key string) *Result {
	c.mutex.RLock()
	entry, exists := c.data[key]
	c.mutex.RUnlock()
	if !exists {
		return nil
	}

	if c.now().After(entry.expiresAt) {
		c.mutex.Lock()
		// re-check under the write lock; Set may have refreshed it
		if current, ok := c.data[key]; ok && current == entry {
			delete(c.data, key)
		}
		c.mutex.Unlock()
		return nil
	}

	return entry.result
}

func (c *Cache) Set(key string, result *Result) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &cacheEntry{
		result:    result,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*cacheEntry)
}

// CachedSource wraps a Source with a Cache. A zero TTL disables caching.
type CachedSource struct {
	source Source
	cache  *Cache
}

func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  NewCache(ttl),
	}
}

func (c *CachedSource) Name() string {
	return c.source.Name()
}

// Clear drops every cached result so the next request queries the source
func (c *CachedSource) Clear() {
	c.cache.Clear()
}

func (c *CachedSource) Specification(ctx context.Context, target string, mode Mode) (*Result, error) {
	if c.cache.ttl <= 0 {
		return c.source.Specification(ctx, target, mode)
	}

	key := c.source.Name() + "/" + string(mode) + "/" + target
	if cached := c.cache.Get(key); cached != nil {
		return cached, nil
	}

	result, err := c.source.Specification(ctx, target, mode)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, result)
	return result, nil
}
