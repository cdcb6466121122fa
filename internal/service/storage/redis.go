package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/constants"
	apperrors "github.com/kapu/pokedex-go/pkg/errors"
)

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStore stores each key as a plain Redis string without TTL.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		MaxRetries:  3,
		DialTimeout: constants.StorageConfig.DialTimeout,
		PoolSize:    2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, constants.StorageConfig.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.NewStorageError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", addr),
		zap.Int("db", cfg.DB),
	)

	return NewRedisStoreFromClient(client, logger), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("Redis get failed", zap.String("key", key), zap.Error(err))
		return nil, false, apperrors.NewStorageError("get failed", "get", key, err)
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		r.logger.Error("Redis set failed", zap.String("key", key), zap.Error(err))
		return apperrors.NewStorageError("set failed", "set", key, err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	r.logger.Info("Redis disconnected")
	return nil
}
