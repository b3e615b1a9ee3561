// Package cache holds lookup state that lives for exactly one orchestrator run.
package cache

import (
	"sync"
)

// RunCache memoizes store lookups for the duration of one run.
// It is created by the orchestrator and passed explicitly to the components that need it,
// so independent pipelines never share state. Safe for concurrent use.
type RunCache struct {
	mu         sync.RWMutex
	performers map[string]uint64
	hits       uint64
	misses     uint64
}

// NewRunCache creates an empty run cache
func NewRunCache() *RunCache {
	return &RunCache{
		performers: make(map[string]uint64),
	}
}

// Performer returns the cached id for a performer name
func (c *RunCache) Performer(name string) (uint64, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.performers[name]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return id, ok
}

// SetPerformer caches the id for a performer name
func (c *RunCache) SetPerformer(name string, id uint64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.performers[name] = id
}

// Len returns the number of cached performers
func (c *RunCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.performers)
}

// Stats returns the hit and miss counts
func (c *RunCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
