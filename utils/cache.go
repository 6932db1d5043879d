// File: utils/cache.go
package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtbook/config"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned by Store.Get when the key does not exist or has expired.
var ErrCacheMiss = errors.New("cache miss")

// Store is the key/value surface the web tier needs from redis.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// GetDel reads and removes key in one step; only one caller can win a key.
	GetDel(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
}

var (
	// CacheClient is the generic cache client (catalog snapshots, locks, confirmation tokens).
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for session records.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (db %d): %w", db, err)
	}
	return client, nil
}

// InitCache initializes both redis clients.
func InitCache() error {
	var err error
	if CacheClient, err = newRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return err
	}
	if AuthCacheClient, err = newRedisClient(config.AppConfig.RedisAuthDB); err != nil {
		return err
	}
	return nil
}

// RedisStore adapts a redis client to Store.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.prefix+key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisStore) GetDel(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.GetDel(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel %s: %w", key, err)
	}
	return data, nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	return s.client.Del(ctx, full...).Err()
}
