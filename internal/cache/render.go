// Package cache keeps rendered dashboard responses until the data behind a
// path changes.
package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/golang/groupcache/lru"
)

const DefaultSize = 256

// RenderCache stores response bodies keyed by path and query. Invalidating a
// path drops every query variant of it at once: entries are keyed by a
// per-path generation, and bumping it orphans the old keys until the LRU
// evicts them.
type RenderCache struct {
	mu          sync.Mutex
	entries     *lru.Cache
	generations map[string]uint64
	aliases     map[string][]string
}

func NewRenderCache(size int) *RenderCache {
	if size <= 0 {
		size = DefaultSize
	}
	c := &RenderCache{
		entries:     lru.New(size),
		generations: make(map[string]uint64),
		aliases:     make(map[string][]string),
	}
	c.entries.OnEvicted = func(key lru.Key, _ interface{}) {
		slog.Debug("render cache eviction", "key", key)
	}
	return c
}

// Fanout makes invalidating path also invalidate each of also.
func (c *RenderCache) Fanout(path string, also ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[path] = append(c.aliases[path], also...)
}

// Key names one render of path and query at the generation current when it
// was looked up.
type Key string

// Get returns the cached body for path and query. On a miss the returned Key
// is the one to Set the fresh render under: if path is invalidated while the
// render is being built, the body lands under the old generation and is
// never served.
func (c *RenderCache) Get(path, query string) ([]byte, Key, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := c.key(path, query)
	v, ok := c.entries.Get(k)
	if !ok {
		return nil, k, false
	}
	return v.([]byte), k, true
}

func (c *RenderCache) Set(k Key, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Add(k, body)
}

// Invalidate marks every cached render of path stale.
func (c *RenderCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[path]++
	for _, p := range c.aliases[path] {
		c.generations[p]++
	}
	slog.Debug("render cache invalidated", "path", path, "also", c.aliases[path])
}

func (c *RenderCache) key(path, query string) Key {
	return Key(fmt.Sprintf("%s#%d?%s", path, c.generations[path], query))
}
