package hdql

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/hyperdim/hdql/ast"
)

// parseCache is a simple bounded cache mapping query strings to their parsed
// trees. Repeated identical queries (common when callers re-run saved
// queries) skip tokenization and parsing entirely. Sharing parsed trees is
// safe because the AST is immutable by contract.
//
// Eviction strategy: when the cache reaches its capacity limit the entire
// map is replaced. This is simpler than a true LRU and sufficient for the
// target use-case (a small number of distinct query templates repeated many
// times).
//
// Thread safety: all methods are safe for concurrent use.
type parseCache struct {
	mu    sync.RWMutex
	items map[uint64]cacheEntry
	max   int
}

type cacheEntry struct {
	query string
	node  ast.Node
}

func newParseCache(max int) *parseCache {
	return &parseCache{
		items: make(map[uint64]cacheEntry, max),
		max:   max,
	}
}

func (c *parseCache) get(query string) (ast.Node, bool) {
	key := xxhash.Sum64String(query)
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	// The stored query is compared on hit so a hash collision can never
	// return the wrong tree.
	if !ok || entry.query != query {
		return nil, false
	}
	return entry.node, true
}

func (c *parseCache) put(query string, node ast.Node) {
	key := xxhash.Sum64String(query)
	c.mu.Lock()
	if len(c.items) >= c.max {
		// Evict everything and start fresh rather than tracking individual entry ages.
		c.items = make(map[uint64]cacheEntry, c.max)
	}
	c.items[key] = cacheEntry{query: query, node: node}
	c.mu.Unlock()
}
