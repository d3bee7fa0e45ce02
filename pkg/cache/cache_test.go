package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", []byte("decomposition"), 0))

	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("decomposition"), data)
}

func TestFileCache_Expiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(10 * time.Millisecond)

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit, "expired entry must miss")
}

func TestFileCache_Delete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.Delete(ctx, "k"), "double delete must not fail")

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestFileCache_Purge(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))

	removed, err := c.Purge()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, hit, _ := c.Get(ctx, "a")
	assert.False(t, hit)
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit, "null cache never stores")
}

func TestDecompositionKey(t *testing.T) {
	keyer := NewDefaultKeyer()

	base := DecompositionKeyOpts{Strategy: "min-fill", Iterations: 10, Compression: true}
	same := keyer.DecompositionKey("hash", base)
	assert.Equal(t, same, keyer.DecompositionKey("hash", base), "keys must be deterministic")

	other := base
	other.Iterations = 20
	assert.NotEqual(t, same, keyer.DecompositionKey("hash", other), "options must influence the key")
	assert.NotEqual(t, same, keyer.DecompositionKey("other", base), "graph hash must influence the key")
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:42:")

	opts := DecompositionKeyOpts{Strategy: "random", Seed: 7}
	assert.Equal(t, "user:42:"+inner.DecompositionKey("h", opts), scoped.DecompositionKey("h", opts))
}
