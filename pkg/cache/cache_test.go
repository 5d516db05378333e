package cache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sandrolain/goarith/pkg/cache"
	"github.com/sandrolain/goarith/pkg/parser"
	"github.com/sandrolain/goarith/pkg/types"
)

func TestCacheNew(t *testing.T) {
	c := cache.New(10)
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d", got)
	}
	if got := c.Capacity(); got != 10 {
		t.Fatalf("expected capacity 10, got %d", got)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := cache.New(0)
	if got := c.Capacity(); got != cache.DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", cache.DefaultCapacity, got)
	}
}

func TestCacheSetGet(t *testing.T) {
	c := cache.New(4)
	tree := parser.Parse("1 + 2")
	c.Set("1 + 2", tree)
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
	got, ok := c.Get("1 + 2")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != tree {
		t.Fatal("expected same tree pointer")
	}
}

func TestCacheMiss(t *testing.T) {
	c := cache.New(4)
	if _, ok := c.Get("1"); ok {
		t.Fatal("expected cache miss")
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := cache.New(3)
	for _, k := range []string{"1", "2", "3", "4"} {
		c.Set(k, parser.Parse(k))
	}
	if got := c.Len(); got != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", got)
	}
	if _, ok := c.Get("1"); ok {
		t.Fatal(`expected "1" to be evicted (LRU)`)
	}
	if _, ok := c.Get("4"); !ok {
		t.Fatal(`expected most-recently-inserted "4" to survive`)
	}
}

func TestCacheGetPromotes(t *testing.T) {
	c := cache.New(2)
	c.Set("1", parser.Parse("1"))
	c.Set("2", parser.Parse("2"))
	if _, ok := c.Get("1"); !ok {
		t.Fatal("expected hit")
	}
	c.Set("3", parser.Parse("3"))

	if _, ok := c.Get("2"); ok {
		t.Fatal(`expected "2" to be evicted after "1" was read`)
	}
	if _, ok := c.Get("1"); !ok {
		t.Fatal(`expected "1" to survive`)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := cache.New(4)
	c.Set("k", parser.Parse("1"))
	c.Invalidate("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after Invalidate")
	}
	c.Invalidate("never stored")
}

func TestCacheClear(t *testing.T) {
	c := cache.New(4)
	for _, k := range []string{"1", "2", "3"} {
		c.Set(k, parser.Parse(k))
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Fatalf("expected 0 after Clear, got %d", got)
	}
}

func TestCacheGetOrParse(t *testing.T) {
	c := cache.New(4)
	callCount := 0
	parseFn := func() *types.SyntaxTree {
		callCount++
		return parser.Parse("(1 + 2) * 3")
	}

	tree1 := c.GetOrParse("(1 + 2) * 3", parseFn)
	if tree1 == nil {
		t.Fatal("first GetOrParse returned nil")
	}
	if callCount != 1 {
		t.Fatalf("expected 1 parse call, got %d", callCount)
	}

	tree2 := c.GetOrParse("(1 + 2) * 3", parseFn)
	if callCount != 1 {
		t.Fatalf("expected still 1 call (cached), got %d", callCount)
	}
	if tree1 != tree2 {
		t.Fatal("expected same pointer from cache")
	}
}

func TestCacheKeepsTreesWithDiagnostics(t *testing.T) {
	c := cache.New(4)
	tree := c.GetOrParse("1 +", func() *types.SyntaxTree { return parser.Parse("1 +") })
	if !tree.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	if _, ok := c.Get("1 +"); !ok {
		t.Fatal("expected tree with diagnostics to be cached")
	}
}

func TestCacheSetUpdate(t *testing.T) {
	c := cache.New(4)
	tree1 := parser.Parse("1")
	tree2 := parser.Parse("2")
	c.Set("k", tree1)
	c.Set("k", tree2) // overwrite
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit after overwrite")
	}
	if got != tree2 {
		t.Fatal("expected updated tree pointer")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", c.Len())
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := cache.New(16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				src := fmt.Sprintf("%d + %d", g, i%32)
				tree := c.GetOrParse(src, func() *types.SyntaxTree { return parser.Parse(src) })
				if tree.Source() != src {
					t.Errorf("got tree for %q, want %q", tree.Source(), src)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := c.Len(); got > c.Capacity() {
		t.Fatalf("cache grew to %d entries, capacity %d", got, c.Capacity())
	}
}
