package pace

import (
	"sync"

	"github.com/claude/paceplan/internal/models"
)

type cacheOp uint8

const (
	opZonePace cacheOp = iota
	opGoalPace
)

type cacheKey struct {
	op       cacheOp
	distance float64
	unit     models.DistanceUnit
	score    float64
	zone     Zone
}

// Cache memoizes pace inversions, keyed by exact argument tuples. It is
// bounded: once full, the oldest entry is evicted first. Safe for
// concurrent use. All methods tolerate a nil receiver, so an uncached
// Calculator needs no branching at call sites.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]string
	order    []cacheKey
}

// NewCache returns a cache holding at most capacity entries. Capacity must
// be positive.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[cacheKey]string, capacity),
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) get(k cacheKey) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[k]
	return v, ok
}

func (c *Cache) put(k cacheKey, v string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; ok {
		return
	}
	if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[k] = v
	c.order = append(c.order, k)
}
