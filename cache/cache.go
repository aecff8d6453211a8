// Package cache holds the Redis client and the menu listing cache. A nil
// client turns every cache call into a miss so the service runs without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-restaurant-pos/config"
	"go-restaurant-pos/metrics"

	"github.com/redis/go-redis/v9"
)

// Connect returns a client for REDIS_ADDR, or nil when it is not configured.
func Connect(ctx context.Context) (*redis.Client, error) {
	addr := config.RedisAddr()
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return rdb, nil
}

const menuPrefix = "menu:list:"

// Menu caches JSON encoded menu listings keyed by filter.
type Menu struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewMenu(rdb *redis.Client, ttl time.Duration) *Menu {
	return &Menu{rdb: rdb, ttl: ttl}
}

func MenuKey(category, mealTime string) string {
	return menuPrefix + category + "|" + mealTime
}

// Get decodes the entry at key into dest and reports a hit.
func (m *Menu) Get(ctx context.Context, key string, dest any) bool {
	if m == nil || m.rdb == nil {
		return false
	}
	data, err := m.rdb.Get(ctx, key).Bytes()
	if err != nil || json.Unmarshal(data, dest) != nil {
		metrics.CacheMisses.WithLabelValues("menu").Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues("menu").Inc()
	return true
}

func (m *Menu) Set(ctx context.Context, key string, value any) error {
	if m == nil || m.rdb == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return m.rdb.Set(ctx, key, data, m.ttl).Err()
}

// Flush drops every cached listing.
func (m *Menu) Flush(ctx context.Context) error {
	if m == nil || m.rdb == nil {
		return nil
	}
	iter := m.rdb.Scan(ctx, 0, menuPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return m.rdb.Del(ctx, keys...).Err()
}
