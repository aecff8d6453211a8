package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Hour)

	c := New(5, time.Now())
	require.NoError(t, store.Create(ctx, c))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+c.SessionID))

	got, err := store.Get(ctx, c.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TableNo)
	assert.Empty(t, got.Lines)

	mr.FastForward(30 * time.Minute)
	updated, err := store.Update(ctx, c.SessionID, func(c *Cart) error {
		c.AddItem(paneer)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+c.SessionID), "writes renew the ttl")

	boom := errors.New("rejected")
	_, err = store.Update(ctx, c.SessionID, func(c *Cart) error {
		c.AddItem(lassi)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	got, err = store.Get(ctx, c.SessionID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1, "an aborted update saves nothing")

	require.NoError(t, store.Delete(ctx, c.SessionID))
	assert.False(t, mr.Exists(keyPrefix+c.SessionID))
	assert.ErrorIs(t, store.Delete(ctx, c.SessionID), ErrNotFound)
}

func TestRedisStoreMissingSession(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, time.Hour)

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Update(ctx, "nope", func(*Cart) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Take(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "nope"), ErrNotFound)
}

func TestRedisStoreTakeClaimsOnce(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Hour)
	c := New(2, time.Now())
	c.AddItem(lassi)
	require.NoError(t, store.Create(ctx, c))

	taken, err := store.Take(ctx, c.SessionID)
	require.NoError(t, err)
	require.Len(t, taken.Lines, 1)
	assert.Equal(t, lassi.ItemID, taken.Lines[0].ItemID)
	assert.False(t, mr.Exists(keyPrefix+c.SessionID))

	_, err = store.Take(ctx, c.SessionID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, time.Hour)
	c := New(1, time.Now())
	require.NoError(t, store.Create(ctx, c))

	const writers = 4
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = store.Update(ctx, c.SessionID, func(c *Cart) error {
				c.AddItem(paneer)
				return nil
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := store.Get(ctx, c.SessionID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, writers, got.Lines[0].Quantity)
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Minute)
	c := New(3, time.Now())
	require.NoError(t, store.Create(ctx, c))

	mr.FastForward(time.Minute + time.Second)
	_, err := store.Get(ctx, c.SessionID)
	assert.ErrorIs(t, err, ErrNotFound)
}
