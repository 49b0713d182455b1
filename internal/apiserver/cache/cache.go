package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ferrohub/ferrohub/internal/common/config"

	"go.uber.org/zap"
)

// Cache stores serialized values with a per-entry TTL. A miss is reported
// through the found flag, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	TypeMemory = "memory"
	TypeRedis  = "redis"

	// DefaultTTL applies when the configuration leaves the TTL unset.
	DefaultTTL = 5 * time.Minute
)

// NewCache creates a cache backend based on the configuration type.
func NewCache(cfg *config.CacheConfig, logger *zap.Logger) (Cache, error) {
	switch cfg.Type {
	case TypeRedis:
		return NewRedisCache(&cfg.Redis, logger)
	case TypeMemory, "":
		return NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}
