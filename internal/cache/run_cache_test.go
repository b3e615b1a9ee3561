package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-catalog-ingest/internal/cache"
)

func TestRunCache(t *testing.T) {
	c := cache.NewRunCache()

	_, ok := c.Performer("三上悠亜")
	assert.False(t, ok)

	c.SetPerformer("三上悠亜", 7)
	id, ok := c.Performer("三上悠亜")
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)

	_, ok = c.Performer("三上 悠亜")
	assert.False(t, ok, "lookups are exact")

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)
	assert.Equal(t, 1, c.Len())
}

func TestRunCache_Independent(t *testing.T) {
	a := cache.NewRunCache()
	b := cache.NewRunCache()

	a.SetPerformer("name", 1)
	_, ok := b.Performer("name")
	assert.False(t, ok)
}

func TestRunCache_Nil(t *testing.T) {
	var c *cache.RunCache
	c.SetPerformer("name", 1)
	_, ok := c.Performer("name")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestRunCache_Concurrent(t *testing.T) {
	c := cache.NewRunCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("p-%d", i%5)
			c.SetPerformer(key, uint64(i%5))
			_, _ = c.Performer(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		id, ok := c.Performer(fmt.Sprintf("p-%d", i))
		assert.True(t, ok)
		assert.Equal(t, uint64(i), id)
	}
}
