// Package cache provides a thread-safe LRU cache for parsed syntax trees.
//
// Parsing is a pure function of the source text, so a tree can be reused
// whenever the same line is seen again. Trees with diagnostics are cached
// too; they are just as deterministic.
//
// # Example
//
//	c := cache.New(1024)
//	tree := c.GetOrParse("(1 + 2) * 3", func() *types.SyntaxTree {
//	    return parser.Parse("(1 + 2) * 3")
//	})
package cache

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/sandrolain/goarith/pkg/types"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// entry is a cache entry stored in the doubly-linked list.
type entry struct {
	hash   uint64
	source string
	tree   *types.SyntaxTree
}

// Cache is a thread-safe LRU (Least Recently Used) cache for syntax trees.
// Once the capacity is reached, the least recently accessed entry is evicted.
//
// Entries are indexed by the xxhash of their source; the full source is
// kept and compared on lookup, so a hash collision is a miss.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[uint64]*list.Element
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[uint64]*list.Element, capacity),
	}
}

// Get retrieves a tree from the cache.
// Returns (tree, true) if found and moves the entry to front (MRU).
// Returns (nil, false) if not present.
func (c *Cache) Get(source string) (*types.SyntaxTree, bool) {
	h := xxhash.Sum64String(source)

	c.mu.RLock()
	el, ok := c.lookupLocked(h, source)
	var tree *types.SyntaxTree
	if ok {
		tree = el.Value.(*entry).tree
	}
	// Skip the write lock entirely if the element is already at the front.
	alreadyFront := ok && c.ll.Front() == el
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !alreadyFront {
		// Promote to front under write lock; re-check in case of concurrent eviction.
		c.mu.Lock()
		el, ok = c.lookupLocked(h, source)
		if ok {
			c.ll.MoveToFront(el)
			tree = el.Value.(*entry).tree
		}
		c.mu.Unlock()

		if !ok {
			return nil, false
		}
	}
	return tree, true
}

// Set inserts or replaces a tree in the cache.
// If at capacity, the least recently used entry is evicted first.
func (c *Cache) Set(source string, tree *types.SyntaxTree) {
	h := xxhash.Sum64String(source)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[h]; ok {
		e := el.Value.(*entry)
		e.source = source
		e.tree = tree
		c.ll.MoveToFront(el)
		return
	}

	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}

	el := c.ll.PushFront(&entry{hash: h, source: source, tree: tree})
	c.items[h] = el
}

// GetOrParse retrieves the tree for source from cache, or calls parse()
// to create it, caches the result, and returns it.
func (c *Cache) GetOrParse(source string, parse func() *types.SyntaxTree) *types.SyntaxTree {
	if tree, ok := c.Get(source); ok {
		return tree
	}
	tree := parse()
	c.Set(source, tree)
	return tree
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate removes a single entry from the cache.
func (c *Cache) Invalidate(source string) {
	h := xxhash.Sum64String(source)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.lookupLocked(h, source); ok {
		c.ll.Remove(el)
		delete(c.items, h)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[uint64]*list.Element, c.capacity)
}

// lookupLocked returns the element for source if present.
// Must be called with c.mu held.
func (c *Cache) lookupLocked(h uint64, source string) (*list.Element, bool) {
	el, ok := c.items[h]
	if !ok || el.Value.(*entry).source != source {
		return nil, false
	}
	return el, true
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held for writing.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).hash)
}
