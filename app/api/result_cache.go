package api

import (
	"sync"
	"time"

	"issuecomb/app/aggregator"
)

// ResultCache keeps recent aggregation results in memory so repeated
// requests for the same pool do not hammer the upstream platforms.
type ResultCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]resultCacheEntry
}

type resultCacheEntry struct {
	result    *aggregator.Result
	expiresAt time.Time
}

func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]resultCacheEntry),
	}
}

func (c *ResultCache) Get(key string) (*aggregator.Result, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.result, true
}

func (c *ResultCache) Set(key string, result *aggregator.Result) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[key] = resultCacheEntry{result: result, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
