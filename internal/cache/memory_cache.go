package cache

import (
	"context"
	"path"
	"sync"
	"sync/atomic"
	"time"
)

// cacheItem represents an item in the memory cache
type cacheItem struct {
	value      []byte
	expiration time.Time
}

// MemoryCache implements Cache using in-process storage. It is the default
// backend for single-instance deployments and for tests.
type MemoryCache struct {
	items         map[string]*cacheItem
	mutex         sync.RWMutex
	maxMemory     int64
	currentMemory int64
	hits          int64
	misses        int64
	evictions     int64
	cleanupTicker *time.Ticker
	cleanupDone   chan bool
	closed        bool
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(config *CacheConfig) *MemoryCache {
	if config == nil {
		config = DefaultCacheConfig()
	}

	cache := &MemoryCache{
		items:       make(map[string]*cacheItem),
		maxMemory:   config.MaxMemory,
		cleanupDone: make(chan bool),
	}

	interval := config.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	cache.cleanupTicker = time.NewTicker(interval)
	go cache.startCleanup()

	return cache
}

// Get retrieves a value from cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.RLock()
	if c.closed {
		c.mutex.RUnlock()
		return nil, ErrCacheDisabled
	}

	item, exists := c.items[key]
	if !exists {
		c.mutex.RUnlock()
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrKeyNotFound
	}

	if time.Now().After(item.expiration) {
		c.mutex.RUnlock()
		atomic.AddInt64(&c.misses, 1)
		c.mutex.Lock()
		if current, ok := c.items[key]; ok && current == item {
			delete(c.items, key)
			c.currentMemory -= itemMemory(key, item)
		}
		c.mutex.Unlock()
		return nil, ErrKeyNotFound
	}

	// Return a copy of the value
	result := make([]byte, len(item.value))
	copy(result, item.value)
	c.mutex.RUnlock()
	atomic.AddInt64(&c.hits, 1)
	return result, nil
}

// Set stores a value in cache with expiration
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheDisabled
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	newItem := &cacheItem{
		value:      valueCopy,
		expiration: time.Now().Add(ttl),
	}

	if oldItem, ok := c.items[key]; ok {
		c.currentMemory -= itemMemory(key, oldItem)
	}
	c.currentMemory += itemMemory(key, newItem)
	c.items[key] = newItem

	c.evictIfNeeded()
	return nil
}

// Delete removes a value from cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item, ok := c.items[key]; ok {
		delete(c.items, key)
		c.currentMemory -= itemMemory(key, item)
	}
	return nil
}

// DeletePattern removes all keys matching the given glob pattern
func (c *MemoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, item := range c.items {
		if matched, _ := path.Match(pattern, key); matched {
			delete(c.items, key)
			c.currentMemory -= itemMemory(key, item)
		}
	}
	return nil
}

// Close stops the cleanup goroutine and drops all items
func (c *MemoryCache) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.cleanupTicker.Stop()
	close(c.cleanupDone)
	c.items = make(map[string]*cacheItem)
	c.currentMemory = 0
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() CacheStats {
	c.mutex.RLock()
	keys := int64(len(c.items))
	c.mutex.RUnlock()

	return CacheStats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Keys:      keys,
	}
}

func (c *MemoryCache) startCleanup() {
	for {
		select {
		case <-c.cleanupTicker.C:
			c.removeExpired()
		case <-c.cleanupDone:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	now := time.Now()
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
			c.currentMemory -= itemMemory(key, item)
		}
	}
}

// evictIfNeeded drops the soonest-expiring items until memory fits the bound.
// Caller must hold the write lock.
func (c *MemoryCache) evictIfNeeded() {
	if c.maxMemory <= 0 {
		return
	}
	for c.currentMemory > c.maxMemory && len(c.items) > 0 {
		var victimKey string
		var victim *cacheItem
		for key, item := range c.items {
			if victim == nil || item.expiration.Before(victim.expiration) {
				victimKey = key
				victim = item
			}
		}
		delete(c.items, victimKey)
		c.currentMemory -= itemMemory(victimKey, victim)
		atomic.AddInt64(&c.evictions, 1)
	}
}

func itemMemory(key string, item *cacheItem) int64 {
	if item == nil {
		return int64(len(key))
	}
	return int64(len(key) + len(item.value))
}
