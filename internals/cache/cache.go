// Package cache is a small JSON cache in front of Redis. When REDIS_URL is
// empty the service runs with a no-op cache and every read is a miss.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"sei_backend/internals/configs"
)

var (
	ErrCacheMiss     = errors.New("cache: key not found")
	ErrCacheKeyEmpty = errors.New("cache: key cannot be empty")
)

// Key prefixes
const (
	PrefixStats = "stats:"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// New connects to REDIS_URL, or returns a no-op cache when it is unset or
// unreachable.
func New(ctx context.Context) Cache {
	raw := configs.GetEnv("REDIS_URL")
	if raw == "" {
		log.Println("[INFO] REDIS_URL not set, cache disabled")
		return Nop{}
	}
	opt, err := redis.ParseURL(raw)
	if err != nil {
		log.Printf("[WARN] invalid REDIS_URL (%v), cache disabled", err)
		return Nop{}
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[WARN] redis ping failed (%v), cache disabled", err)
		_ = client.Close()
		return Nop{}
	}
	log.Println("[INFO] redis cache connected")
	return NewRedis(client)
}

type Redis struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) GetJSON(ctx context.Context, key string, dst any) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := sonic.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("cache decode %s: %w", key, err)
	}
	return nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if key == "" {
		return ErrCacheKeyEmpty
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return r.client.Set(ctx, key, b, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// DeletePrefix walks the keyspace with SCAN; it never blocks Redis with KEYS.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return r.Delete(ctx, batch...)
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Nop never stores anything.
type Nop struct{}

func (Nop) GetJSON(context.Context, string, any) error { return ErrCacheMiss }
func (Nop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error { return nil }
func (Nop) DeletePrefix(context.Context, string) error { return nil }
func (Nop) Close() error { return nil }
