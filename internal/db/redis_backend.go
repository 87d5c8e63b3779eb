package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 3 * time.Second

// RedisBackend keeps records as plain string values under a key prefix on a local Redis.
type RedisBackend struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

func OpenRedis(ctx context.Context, addr string, password string, database int, prefix string) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultRedisTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return NewRedisBackend(client, prefix), nil
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{
		client:  client,
		prefix:  normalizeRedisPrefix(prefix),
		timeout: defaultRedisTimeout,
	}
}

func (backend *RedisBackend) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), backend.timeout)
	defer cancel()

	raw, err := backend.client.Get(ctx, backend.recordKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (backend *RedisBackend) Put(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), backend.timeout)
	defer cancel()

	return backend.client.Set(ctx, backend.recordKey(key), value, 0).Err()
}

func (backend *RedisBackend) PutMany(values map[string][]byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), backend.timeout)
	defer cancel()

	_, err := backend.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, backend.recordKey(key), value, 0)
		}
		return nil
	})
	return err
}

func (backend *RedisBackend) Close() error {
	return backend.client.Close()
}

func (backend *RedisBackend) recordKey(key string) string {
	return backend.prefix + key
}

func normalizeRedisPrefix(prefix string) string {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return "lunara:"
	}
	if !strings.HasSuffix(trimmed, ":") {
		trimmed += ":"
	}
	return trimmed
}
