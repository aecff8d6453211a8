package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "cart:"
	maxTxAttempts = 5
)

// RedisStore keeps sessions as JSON under cart:<id> and renews the TTL on
// every write. Updates use WATCH so two writers never lose each other's lines.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

func (s *RedisStore) Create(ctx context.Context, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(c.SessionID), data, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Cart, error) {
	return decode(s.rdb.Get(ctx, key(id)))
}

func decode(cmd *redis.StringCmd) (*Cart, error) {
	data, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("cart: decode session: %w", err)
	}
	return &c, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, fn func(*Cart) error) (*Cart, error) {
	k := key(id)
	var saved *Cart
	txf := func(tx *redis.Tx) error {
		c, err := decode(tx.Get(ctx, k))
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		c.UpdatedAt = time.Now()
		data, err := json.Marshal(c)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, data, s.ttl)
			return nil
		})
		if err == nil {
			saved = c
		}
		return err
	}

	for i := 0; i < maxTxAttempts; i++ {
		err := s.rdb.Watch(ctx, txf, k)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return saved, nil
	}
	return nil, fmt.Errorf("cart: session %s is being updated concurrently", id)
}

// Take claims the session with GETDEL.
func (s *RedisStore) Take(ctx context.Context, id string) (*Cart, error) {
	return decode(s.rdb.GetDel(ctx, key(id)))
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, key(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
