package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"shopswift/internal/logging"
)

// DefaultRedisNamespace prefixes every key written by the redis backend.
const DefaultRedisNamespace = "shopswift:"

type redisStore struct {
	client    *redis.Client
	namespace string
	logger    *zap.Logger
}

// NewRedis wraps an existing client. Keys are stored without expiry.
func NewRedis(client *redis.Client, namespace string, logger *zap.Logger) Store {
	return &redisStore{client: client, namespace: namespace, logger: logging.OrNop(logger).Named("kv.redis")}
}

// DialRedis parses url, connects, and verifies the connection with a ping.
func DialRedis(ctx context.Context, url string, logger *zap.Logger) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required: %w", ErrUnavailable)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis db %d: %w", opts.DB, err)
	}
	logging.OrNop(logger).Info("redis connected", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return client, nil
}

func (r *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.namespace+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		r.logger.Warn("get failed", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return v, true, nil
}

func (r *redisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.namespace+key, value, 0).Err(); err != nil {
		r.logger.Warn("set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.namespace+key).Err(); err != nil {
		r.logger.Warn("delete failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *redisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
