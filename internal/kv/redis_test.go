package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	exerciseStore(t, NewRedis(client, DefaultRedisNamespace, nil))
}

func TestRedisStore_Namespace(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	s := NewRedis(client, "test:", nil)
	require.NoError(t, s.Set(context.Background(), "user", "v"))
	assert.True(t, mr.Exists("test:user"))
	got, err := mr.Get("test:user")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestRedisStore_ConnectionFailure(t *testing.T) {
	mr, client := setupTestRedis(t)
	s := NewRedis(client, DefaultRedisNamespace, nil)
	mr.Close()

	_, _, err := s.Get(context.Background(), "user")
	assert.Error(t, err)
	assert.Error(t, s.Set(context.Background(), "user", "v"))
	assert.Error(t, s.Ping(context.Background()))
}

func TestDialRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := DialRedis(context.Background(), "redis://"+mr.Addr()+"/0", nil)
	require.NoError(t, err)
	defer client.Close()

	_, err = DialRedis(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = DialRedis(context.Background(), "not a url", nil)
	assert.Error(t, err)
}
