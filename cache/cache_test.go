package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	t.Parallel()

	c := New(10)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "content-a")
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "content-a", got)
	assert.Equal(t, 1, c.Len())
}

func TestCache_DefaultCapacity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCapacity, New(0).Capacity())
	assert.Equal(t, DefaultCapacity, New(-5).Capacity())
	assert.Equal(t, 3, New(3).Capacity())
}

func TestCache_EvictsOldestInsertion(t *testing.T) {
	t.Parallel()

	const n = 5
	c := New(n)

	for i := 0; i < n+1; i++ {
		c.Set(fmt.Sprintf("key-%d", i), fmt.Sprintf("value-%d", i))
	}

	// Exactly the first-inserted key is gone; the remaining n are retrievable.
	_, ok := c.Get("key-0")
	assert.False(t, ok)
	for i := 1; i <= n; i++ {
		got, ok := c.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok, "key-%d should still be cached", i)
		assert.Equal(t, fmt.Sprintf("value-%d", i), got)
	}
	assert.Equal(t, n, c.Len())
}

func TestCache_ReadDoesNotRefreshEvictionOrder(t *testing.T) {
	t.Parallel()

	c := New(2)
	c.Set("a", "1")
	c.Set("b", "2")

	// Reading "a" must not protect it: eviction is FIFO, not LRU.
	_, _ = c.Get("a")
	c.Set("c", "3")

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCache_OverwriteRefreshesEvictionOrder(t *testing.T) {
	t.Parallel()

	c := New(2)
	c.Set("a", "1")
	c.Set("b", "2")

	// Overwriting "a" removes and re-inserts it as newest, so "b" is now oldest.
	c.Set("a", "1-updated")
	c.Set("c", "3")

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1-updated", got)
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := New(50)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", i%60)
				c.Set(key, fmt.Sprintf("value-%d-%d", g, i))
				_, _ = c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), c.Capacity())
}
