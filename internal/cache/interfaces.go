package cache

import (
	"context"
	"errors"
	"time"

	platformconfig "github.com/alumlink/alumlink-api/internal/platform/config"
)

// Cache defines the generic cache interface for all cache implementations
type Cache interface {
	// Get retrieves a value from cache by key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache by key
	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching the given glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Close closes the cache connection
	Close() error

	// Stats returns cache statistics
	Stats() CacheStats
}

// CacheType identifies a cache backend
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeRedis  CacheType = "redis"
)

// IsValid reports whether the cache type names a known backend
func (t CacheType) IsValid() bool {
	return t == CacheTypeMemory || t == CacheTypeRedis
}

// CacheConfig holds configuration for cache instances
type CacheConfig struct {
	Enabled         bool
	TTL             time.Duration
	Prefix          string
	Backend         CacheType
	MaxMemory       int64
	CleanupInterval time.Duration
	Redis           platformconfig.RedisConfig
}

// CacheStats holds counters exposed by cache backends
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Keys      int64 `json:"keys"`
}

// Cache errors
var (
	ErrKeyNotFound           = errors.New("cache: key not found")
	ErrCacheDisabled         = errors.New("cache: disabled")
	ErrCacheUnavailable      = errors.New("cache: backend unavailable")
	ErrInvalidCacheType      = errors.New("cache: invalid cache type")
	ErrSerializationFailed   = errors.New("cache: serialization failed")
	ErrDeserializationFailed = errors.New("cache: deserialization failed")
)

// DefaultCacheConfig returns a memory-backed config with sane defaults
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Enabled:         true,
		TTL:             time.Hour,
		Prefix:          "alumlink:",
		Backend:         CacheTypeMemory,
		MaxMemory:       100 * 1024 * 1024,
		CleanupInterval: 5 * time.Minute,
	}
}

// ConfigFromPlatform converts the platform cache section into a CacheConfig.
func ConfigFromPlatform(cfg platformconfig.CacheConfig) *CacheConfig {
	return &CacheConfig{
		Enabled:         cfg.Enabled,
		TTL:             cfg.TTL,
		Prefix:          cfg.Prefix,
		Backend:         CacheType(cfg.Backend),
		MaxMemory:       cfg.MaxMemory,
		CleanupInterval: cfg.CleanupInterval,
		Redis:           cfg.Redis,
	}
}
