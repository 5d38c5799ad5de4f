package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the shared contract against any backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "user", `{"id":"1"}`))
	v, found, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"id":"1"}`, v)

	require.NoError(t, s.Set(ctx, "user", `{"id":"2"}`))
	v, _, err = s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"2"}`, v)

	require.NoError(t, s.Delete(ctx, "user"))
	_, found, err = s.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Delete(ctx, "user"), "deleting an absent key is not an error")
	require.NoError(t, s.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestWithPrefix(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()
	a := WithPrefix(base, "session:a:")
	b := WithPrefix(base, "session:b:")

	exerciseStore(t, a)

	require.NoError(t, a.Set(ctx, "user", "alice"))
	_, found, err := b.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, found)

	v, found, err := base.Get(ctx, "session:a:user")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", v)

	assert.Same(t, base, WithPrefix(base, ""))
}
