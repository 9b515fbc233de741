package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryQueryCache keeps entries in a map and reaps expired ones lazily on
// read. It is the default backend when no Redis URL is configured.
type MemoryQueryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]*Entry
}

func NewMemoryQueryCache(ttl time.Duration) *MemoryQueryCache {
	return &MemoryQueryCache{
		ttl:     ttl,
		entries: make(map[string]*Entry),
	}
}

func (c *MemoryQueryCache) Get(_ context.Context, query string) (*Entry, bool, error) {
	fp := Fingerprint(query)

	c.mu.RLock()
	e, ok := c.entries[fp]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if time.Now().After(e.ExpiresAt) {
		c.mu.Lock()
		// re-check under the write lock before reaping
		if cur, ok := c.entries[fp]; ok && time.Now().After(cur.ExpiresAt) {
			delete(c.entries, fp)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	cp := *e
	return &cp, true, nil
}

func (c *MemoryQueryCache) Set(_ context.Context, query, reply, toolUsed string, data any) error {
	fp := Fingerprint(query)
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[fp]; ok {
		existing.Reply = reply
		existing.ToolUsed = toolUsed
		existing.Data = data
		existing.CreatedAt = now
		existing.ExpiresAt = now.Add(c.ttl)
		return nil
	}

	c.entries[fp] = &Entry{
		Fingerprint: fp,
		Query:       query,
		Reply:       reply,
		ToolUsed:    toolUsed,
		Data:        data,
		CreatedAt:   now,
		ExpiresAt:   now.Add(c.ttl),
	}
	return nil
}

func (c *MemoryQueryCache) InvalidateAll(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*Entry)
	return n, nil
}

var _ QueryCache = (*MemoryQueryCache)(nil)
