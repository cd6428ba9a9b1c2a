package cache

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		_, err := New[string, int](size)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	}
}

func TestSetGet(t *testing.T) {
	c, err := New[string, int](4)
	require.NoError(t, err)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	// Overwrite keeps a single entry.
	c.Set("a", 2)
	v, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestLRUEviction(t *testing.T) {
	c, err := New[string, int](2)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the least recently accessed entry.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok, "b should have been evicted")
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, c.Len())
}

func TestBoundedness(t *testing.T) {
	const max = 8
	c, err := New[int, int](max)
	require.NoError(t, err)

	for i := 0; i < max+1; i++ {
		c.Set(i, i)
	}
	stats := c.Stats()
	assert.Equal(t, max, stats.Size)
	assert.Equal(t, max, stats.MaxSize)

	// The first inserted key is the least recently accessed one.
	_, ok := c.Get(0)
	assert.False(t, ok)
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c, err := New[string, int](2)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	_, ok := c.Get("b")
	assert.True(t, ok)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestClearResetsCounters(t *testing.T) {
	c, err := New[string, int](2)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Get("a")
	c.Get("nope")

	c.Clear()
	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.EqualValues(t, 0, stats.Hits)
	assert.EqualValues(t, 0, stats.Misses)
	assert.Zero(t, stats.HitRate)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c, err := New[string, int](4)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.EqualValues(t, 2, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 1e-9)
}

func TestStatsDisabled(t *testing.T) {
	c, err := New[string, int](4, WithStats(false))
	require.NoError(t, err)

	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.EqualValues(t, 0, stats.Hits)
	assert.EqualValues(t, 0, stats.Misses)
}

func TestDelete(t *testing.T) {
	c, err := New[string, int](4)
	require.NoError(t, err)

	c.Set("a", 1)
	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestDeleteFunc(t *testing.T) {
	c, err := New[string, int](8)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	removed := c.DeleteFunc(func(_ string, v int) bool { return v%2 == 0 })
	assert.Equal(t, 3, removed)
	assert.Equal(t, 3, c.Len())

	_, ok := c.Get("k0")
	assert.False(t, ok)
	_, ok = c.Get("k1")
	assert.True(t, ok)
}

func TestGetAfterSetUntilEvicted(t *testing.T) {
	c, err := New[string, string](3)
	require.NoError(t, err)

	c.Set("k", "v")
	for i := 0; i < 10; i++ {
		v, ok := c.Get("k")
		require.True(t, ok)
		require.Equal(t, "v", v)
	}
}
