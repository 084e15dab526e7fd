package cache

import (
	"context"
	"fmt"
	"time"

	"folio/internal/log"
)

// BackendType names a cache implementation.
type BackendType string

const (
	LRUBackend   BackendType = "lru"
	RedisBackend BackendType = "redis"
)

// BackendTypes lists the supported backends.
func BackendTypes() []BackendType {
	return []BackendType{LRUBackend, RedisBackend}
}

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	switch bt {
	case LRUBackend, RedisBackend:
		return true
	default:
		return false
	}
}

// Config selects and sizes a cache.
type Config struct {
	Type BackendType
	TTL  time.Duration

	// LRU specific
	MaxEntries    int
	SweepInterval time.Duration

	// Redis specific
	RedisAddr string
	KeyPrefix string
}

// CleanupFunc releases what New started: the sweep goroutine or the Redis
// connection.
type CleanupFunc func()

// New builds the cache described by cfg.
func New[T any](ctx context.Context, cfg Config, logger *log.Logger) (Cache[T], CleanupFunc, error) {
	if !cfg.Type.IsValid() {
		return nil, nil, fmt.Errorf("invalid cache backend: %s", cfg.Type)
	}
	logger = logger.WithComponent(log.ComponentCache)

	switch cfg.Type {
	case RedisBackend:
		rdb, err := NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using Redis cache", "addr", cfg.RedisAddr, "prefix", cfg.KeyPrefix)
		return NewRedisCache[T](rdb, cfg.KeyPrefix, cfg.TTL), func() { _ = rdb.Close() }, nil
	default:
		maxEntries := cfg.MaxEntries
		if maxEntries <= 0 {
			maxEntries = 16
		}
		interval := cfg.SweepInterval
		if interval <= 0 {
			interval = time.Minute
		}
		lru := NewLRUCache[T](maxEntries, cfg.TTL)
		manager := NewManager(logger)
		manager.Register(lru)
		manager.StartCleanup(interval)
		logger.Info("Using in-process LRU cache", "max_entries", maxEntries)
		return lru, manager.Stop, nil
	}
}
