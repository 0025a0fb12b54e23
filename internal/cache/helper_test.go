package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, New(rdb)
}

func TestAside_PopulatesAndServesFromCache(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()
	calls := 0
	fetch := func(dest *cachedUser) func() (bool, error) {
		return func() (bool, error) {
			calls++
			*dest = cachedUser{ID: "u1", Username: "alice"}
			return true, nil
		}
	}

	var first cachedUser
	found, err := c.Aside(ctx, UserKey("u1"), &first, UserTTL, fetch(&first))
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, mr.Exists("user:u1"))

	var second cachedUser
	found, err = c.Aside(ctx, UserKey("u1"), &second, UserTTL, fetch(&second))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", second.Username)
	assert.Equal(t, 1, calls)

	mr.FastForward(UserTTL + time.Second)
	assert.False(t, mr.Exists("user:u1"))
}

func TestAside_MissIsNotCached(t *testing.T) {
	mr, c := newTestCache(t)

	var dest cachedUser
	found, err := c.Aside(context.Background(), UserKey("ghost"), &dest, UserTTL, func() (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("user:ghost"))
}

func TestAside_FetchError(t *testing.T) {
	_, c := newTestCache(t)
	boom := errors.New("boom")

	var dest cachedUser
	_, err := c.Aside(context.Background(), UserKey("u1"), &dest, UserTTL, func() (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	found, err := c.GetJSON(ctx, "k", &cachedUser{})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.SetJSON(ctx, "k", cachedUser{}, time.Minute))

	found, err = New(nil).Aside(ctx, "k", &cachedUser{}, time.Minute, func() (bool, error) { return true, nil })
	assert.NoError(t, err)
	assert.True(t, found)
}

func TestNewClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	assert.Nil(t, NewClient(addr))
	assert.Nil(t, NewClient(""))
	assert.Nil(t, NewClient("redis://%%bad"))
}

func TestNewClient_Reachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewClient(mr.Addr())
	require.NotNil(t, client)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())
}
