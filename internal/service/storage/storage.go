// Package storage holds the key-value blob stores the caught-set is
// persisted in. Every backend stores opaque bytes under a string key.
package storage

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/config"
)

// BlobStore is a minimal key-value store. Get reports found=false with a
// nil error when the key is absent.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New opens the backend selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (BlobStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Storage.File, logger)
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
