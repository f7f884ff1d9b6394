package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Kinds(t *testing.T) {
	c, err := New(Config{Kind: "memory", DefaultTTL: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Kind())

	c, err = New(Config{Kind: "none"})
	require.NoError(t, err)
	assert.Equal(t, "none", c.Kind())

	_, err = New(Config{Kind: "memcached"})
	require.Error(t, err)
}

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("t", time.Minute)

	_, err := m.Get(ctx, "k")
	require.True(t, IsNotFound(err))

	buf := []byte("v1")
	require.NoError(t, m.Set(ctx, "k", buf, 0))
	buf[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Expires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory("", time.Minute)
	require.NoError(t, m.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoop_AlwaysMiss(t *testing.T) {
	ctx := context.Background()
	var c Client = Noop{}
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis_BreakerOpensOnUnreachableBackend(t *testing.T) {
	// puerto reservado sin listener: cada llamada falla rápido
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := newRedisClient(rdb, "t", time.Minute)
	defer c.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := c.Get(ctx, "k")
		require.Error(t, err)
		assert.False(t, IsNotFound(err))
	}
	assert.Equal(t, gobreaker.StateOpen, c.cb.State())

	_, err := c.Get(ctx, "k")
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "k", prefixed("", "k"))
	assert.Equal(t, "p:k", prefixed("p", "k"))
}
