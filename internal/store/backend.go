package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/verte-zerg/neurotype/internal/model"
)

// Backend names accepted by OpenBackend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backend is a key-value store with a lifecycle.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// OpenBackend opens the backend selected by cfg.StoreBackend.
func OpenBackend(ctx context.Context, cfg model.Config) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StoreBackend)) {
	case "", BackendSQLite:
		if cfg.StorePath == "" {
			return nil, fmt.Errorf("sqlite store path is empty")
		}
		return Open(cfg.StorePath)
	case BackendRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (available: %s, %s, %s)", cfg.StoreBackend, BackendSQLite, BackendRedis, BackendMemory)
	}
}
