package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelguide/internal/adapters/observability"
	"travelguide/internal/domain"
)

const keyPrefix = "travelguide:"

// Cache stores JSON-encoded records under a shared key prefix.
type Cache struct {
	c      *redis.Client
	prefix string
}

var _ domain.Cache = (*Cache)(nil)

type Option func(*Cache)

// WithNamespace scopes every key under ns, so caches with different
// namespaces never see each other's entries on a shared Redis.
func WithNamespace(ns string) Option {
	return func(r *Cache) {
		if ns != "" {
			r.prefix = keyPrefix + ns + ":"
		}
	}
}

func New(addr, pass string, db int, opts ...Option) *Cache {
	r := &Cache{
		c:      redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		prefix: keyPrefix,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, r.prefix+key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, r.prefix+key).Err()
}
