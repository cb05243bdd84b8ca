package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock for TTL tests.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(maxEntries int) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewMemoryCache(maxEntries, clock.Now), clock
}

func TestMemoryCache_GetSet(t *testing.T) {
	c, _ := newTestCache(100)
	ctx := context.Background()

	var missed string
	hit, err := c.Get(ctx, "missing", &missed)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "greeting", "zdravei", time.Minute))

	var got string
	hit, err = c.Get(ctx, "greeting", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "zdravei", got)
}

func TestMemoryCache_StructRoundTrip(t *testing.T) {
	c, _ := newTestCache(100)
	ctx := context.Background()

	type payload struct {
		Name string   `json:"name"`
		Tags []string `json:"tags"`
	}

	in := payload{Name: "Vasil Levski", Tags: []string{"Revolutionary", "Apostle"}}
	require.NoError(t, c.Set(ctx, "item", in, time.Minute))

	var out payload
	hit, err := c.Get(ctx, "item", &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, in, out)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c, clock := newTestCache(100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", 42, 10*time.Second))

	var v int
	hit, err := c.Get(ctx, "short", &v)
	require.NoError(t, err)
	assert.True(t, hit)

	clock.Advance(11 * time.Second)

	hit, err = c.Get(ctx, "short", &v)
	require.NoError(t, err)
	assert.False(t, hit, "expired entry must miss")
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on read")
}

func TestMemoryCache_EvictsOldestQuarterWhenFull(t *testing.T) {
	c, _ := newTestCache(8)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("key-%d", i), i, time.Minute))
	}
	require.Equal(t, 8, c.Len())

	// The 9th insert evicts 8/4 = 2 oldest entries.
	require.NoError(t, c.Set(ctx, "key-8", 8, time.Minute))
	assert.Equal(t, 7, c.Len())

	var v int
	hit, _ := c.Get(ctx, "key-0", &v)
	assert.False(t, hit, "oldest entry evicted")
	hit, _ = c.Get(ctx, "key-1", &v)
	assert.False(t, hit, "second oldest entry evicted")
	hit, _ = c.Get(ctx, "key-2", &v)
	assert.True(t, hit, "newer entries survive")
	hit, _ = c.Get(ctx, "key-8", &v)
	assert.True(t, hit)
}

func TestMemoryCache_Clear(t *testing.T) {
	c, _ := newTestCache(100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, 0, c.Len())

	var v int
	hit, _ := c.Get(ctx, "a", &v)
	assert.False(t, hit)
}

func TestMemoryCache_Prune(t *testing.T) {
	c, clock := newTestCache(100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stale-1", 1, 10*time.Second))
	require.NoError(t, c.Set(ctx, "stale-2", 2, 10*time.Second))
	require.NoError(t, c.Set(ctx, "fresh", 3, time.Hour))

	clock.Advance(time.Minute)

	pruned, err := c.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pruned)
	assert.Equal(t, 1, c.Len())

	var v int
	hit, _ := c.Get(ctx, "fresh", &v)
	assert.True(t, hit)
}

func TestMemoryCache_DeleteAndPing(t *testing.T) {
	c, _ := newTestCache(100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "never-existed"))

	var v int
	hit, _ := c.Get(ctx, "a", &v)
	assert.False(t, hit)

	assert.NoError(t, c.Ping(ctx))
}
