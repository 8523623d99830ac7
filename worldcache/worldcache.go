// Package worldcache holds the renderer's shared, bounded collection of
// decoded chunks, fed lazily from a ChunkSource collaborator (region-file
// I/O lives outside the core; see §1 "out of scope").
package worldcache

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oriumgames/isotile/chunk"
	"github.com/oriumgames/isotile/pos"
)

// ChunkSource is the external collaborator the cache pulls from on a
// miss: typically a region-file reader plus the chunk decoder. A source
// that has no chunk at pos returns (nil, nil), not an error — a missing
// chunk is normal at world edges.
type ChunkSource interface {
	Chunk(p pos.ChunkPos) (*chunk.Chunk, error)
}

// entry is one cached chunk plus its position in the eviction list.
type entry struct {
	chunk *chunk.Chunk
	elem  *listNode
}

// WorldCache is an LRU-bounded cache of decoded chunks, safe for
// concurrent use by multiple tile-renderer workers (§5: "a single cache
// behind a mutex ... is acceptable because the renderer never retains
// chunk pointers across tiles").
type WorldCache struct {
	mu     sync.Mutex
	source ChunkSource
	log    *logrus.Entry

	capacity int
	entries  map[pos.ChunkPos]*entry
	lru      *lruList

	compactCh chan struct{}
	stopCh    chan struct{}
}

// New creates a cache of the given capacity (in chunks) pulling misses
// from source. capacity <= 0 means unbounded.
func New(source ChunkSource, capacity int, log *logrus.Entry) *WorldCache {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &WorldCache{
		source:   source,
		log:      log,
		capacity: capacity,
		entries:  make(map[pos.ChunkPos]*entry),
		lru:      newLRUList(),
	}
}

// Chunk returns the decoded chunk at p, fetching and caching it on a
// miss. A nil, nil result means the source has no chunk there (e.g.
// outside the generated world).
func (c *WorldCache) Chunk(p pos.ChunkPos) (*chunk.Chunk, error) {
	c.mu.Lock()
	if e, ok := c.entries[p]; ok {
		c.lru.touch(e.elem)
		ch := e.chunk
		c.mu.Unlock()
		return ch, nil
	}
	c.mu.Unlock()

	ch, err := c.source.Chunk(p)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[p]; ok {
		c.lru.touch(e.elem)
		return e.chunk, nil
	}
	elem := c.lru.pushFront(p)
	c.entries[p] = &entry{chunk: ch, elem: elem}
	c.evictLocked()
	return ch, nil
}

// Len returns the number of chunks currently cached.
func (c *WorldCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Evict drops p from the cache if present, without touching the
// source. Used by callers that know a chunk was invalidated on disk.
func (c *WorldCache) Evict(p pos.ChunkPos) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[p]; ok {
		c.lru.remove(e.elem)
		delete(c.entries, p)
	}
}

// evictLocked drops least-recently-used entries until the cache is back
// within capacity. Caller must hold c.mu.
func (c *WorldCache) evictLocked() {
	if c.capacity <= 0 {
		return
	}
	for len(c.entries) > c.capacity {
		p, ok := c.lru.popBack()
		if !ok {
			return
		}
		delete(c.entries, p)
	}
}

// EnableBackgroundCompaction starts a goroutine that coalesces
// compaction requests (triggered by RequestCompaction) and trims the
// cache to capacity asynchronously, mirroring the save-coalescing
// pattern used elsewhere in this codebase for write-behind persistence.
func (c *WorldCache) EnableBackgroundCompaction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.compactCh != nil && c.stopCh != nil {
		return
	}
	c.compactCh = make(chan struct{}, 1)
	c.stopCh = make(chan struct{})
	go c.runCompactor()
}

// DisableBackgroundCompaction stops the background compaction goroutine.
func (c *WorldCache) DisableBackgroundCompaction() {
	c.mu.Lock()
	stop := c.stopCh
	c.stopCh = nil
	c.compactCh = nil
	c.mu.Unlock()

	if stop != nil {
		close(stop)
	}
}

// RequestCompaction schedules an asynchronous eviction pass. A no-op if
// background compaction is not enabled.
func (c *WorldCache) RequestCompaction() {
	c.mu.Lock()
	ch := c.compactCh
	c.mu.Unlock()

	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (c *WorldCache) runCompactor() {
	for {
		select {
		case _, ok := <-c.compactCh:
			if !ok {
				return
			}
		coalesce:
			for {
				select {
				case <-c.compactCh:
					continue
				default:
					break coalesce
				}
			}
			c.mu.Lock()
			c.evictLocked()
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}
