package perft

import (
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache stores subtree node counts by position hash and remaining depth.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(hash uint64, depth int) (uint64, bool)
	Put(hash uint64, depth int, nodes uint64)
}

// cacheKey mixes the depth into the hash so the same position at different
// depths gets separate entries.
func cacheKey(hash uint64, depth int) uint64 {
	return hash ^ uint64(depth)*0x9E3779B97F4A7C15
}

// MemoryCache is a bounded in-memory Cache.
type MemoryCache struct {
	cache *ristretto.Cache[uint64, uint64]
}

// NewMemoryCache creates a cache holding roughly maxEntries counts.
func NewMemoryCache(maxEntries int64) (*MemoryCache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("perft: cache size must be positive, got %d", maxEntries)
	}
	c, err := ristretto.NewCache(&ristretto.Config[uint64, uint64]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true, // every entry costs exactly 1
	})
	if err != nil {
		return nil, fmt.Errorf("perft: create cache: %w", err)
	}
	return &MemoryCache{cache: c}, nil
}

func (m *MemoryCache) Get(hash uint64, depth int) (uint64, bool) {
	return m.cache.Get(cacheKey(hash, depth))
}

func (m *MemoryCache) Put(hash uint64, depth int, nodes uint64) {
	m.cache.Set(cacheKey(hash, depth), nodes, 1)
}

// Wait blocks until buffered writes are visible to Get.
func (m *MemoryCache) Wait() {
	m.cache.Wait()
}

// Close releases the cache's background goroutines.
func (m *MemoryCache) Close() {
	m.cache.Close()
}

// Tiered puts a fast cache in front of a slower one, typically a
// MemoryCache in front of an on-disk store. Hits in the slow tier are
// copied into the fast one.
type Tiered struct {
	Fast, Slow Cache

	hits   atomic.Uint64
	misses atomic.Uint64
}

func (t *Tiered) Get(hash uint64, depth int) (uint64, bool) {
	if n, ok := t.Fast.Get(hash, depth); ok {
		t.hits.Add(1)
		return n, true
	}
	if n, ok := t.Slow.Get(hash, depth); ok {
		t.hits.Add(1)
		t.Fast.Put(hash, depth, n)
		return n, true
	}
	t.misses.Add(1)
	return 0, false
}

func (t *Tiered) Put(hash uint64, depth int, nodes uint64) {
	t.Fast.Put(hash, depth, nodes)
	t.Slow.Put(hash, depth, nodes)
}

// Stats returns the number of hits and misses so far.
func (t *Tiered) Stats() (hits, misses uint64) {
	return t.hits.Load(), t.misses.Load()
}
