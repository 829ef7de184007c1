// Package cache keeps rendered video-list results for the HTTP server.
// Entries are keyed by catalog revision and query, expire after a TTL
// (patrickmn/go-cache), and are flushed when a newer revision is stored.
package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/signlib/pkg/query"
)

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Items    int    `json:"items"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Revision uint64 `json:"revision"`
}

// Cache holds query results for the most recent catalog revision.
type Cache struct {
	store *gocache.Cache

	mu       sync.Mutex
	revision uint64

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a cache whose entries live for ttl.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, cleanupInterval)}
}

func key(revision uint64, q query.Query) string {
	return fmt.Sprintf("videos:%d:%s:%s:%s", revision, q.Sort, q.Category, q.Search)
}

// Lookup returns the result stored for q at revision.
func (c *Cache) Lookup(revision uint64, q query.Query) (any, bool) {
	v, ok := c.store.Get(key(revision, q))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Store saves v for q at revision. Storing for a newer revision drops
// everything cached for older ones; storing for an older one is ignored.
func (c *Cache) Store(revision uint64, q query.Query, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case revision < c.revision:
		return
	case revision > c.revision:
		c.store.Flush()
		c.revision = revision
	}
	c.store.SetDefault(key(revision, q), v)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.store.Flush()
}

// Stats reports entry count and hit counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	rev := c.revision
	c.mu.Unlock()
	return Stats{
		Items:    c.store.ItemCount(),
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Revision: rev,
	}
}
