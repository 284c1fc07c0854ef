// Package cache is a small redis-backed JSON cache for catalog read paths.
// A nil *Cache is valid and behaves as a permanent miss, so callers never
// branch on whether redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis and verifies the connection with a ping.
func New(addr, password string, db int, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// Get unmarshals the cached value for key into v and reports whether the key
// was present.
func (c *Cache) Get(ctx context.Context, key string, v interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("ERROR [cache] get %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("ERROR [cache] unmarshal %s: %v", key, err)
		return false
	}
	return true
}

// Set stores v as JSON under key with the cache TTL. Failures are logged and
// otherwise ignored; the cache is best effort.
func (c *Cache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERROR [cache] marshal %s: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("ERROR [cache] set %s: %v", key, err)
	}
}

// Delete removes specific keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("ERROR [cache] delete: %v", err)
	}
}

// DeletePrefix removes every key under a prefix, used to invalidate paged
// listings whose keys embed page parameters.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("ERROR [cache] delete %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("ERROR [cache] scan %s: %v", prefix, err)
	}
}
