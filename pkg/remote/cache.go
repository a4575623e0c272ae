package remote

import "sync"

// glyphCache is a capacity-bounded cache keyed by composite glyph id.
// Eviction is FIFO by insertion order: reads do not refresh recency, and
// re-inserting an existing key overwrites the value without reordering.
// Boundedness is the only correctness requirement here.
type glyphCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]Glyph
	order    []string
}

func newGlyphCache(capacity int) *glyphCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &glyphCache{
		capacity: capacity,
		entries:  make(map[string]Glyph),
	}
}

func (c *glyphCache) get(id string) (Glyph, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.entries[id]
	return g, ok
}

func (c *glyphCache) put(g Glyph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[g.ID]; exists {
		c.entries[g.ID] = g
		return
	}
	if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[g.ID] = g
	c.order = append(c.order, g.ID)
}

func (c *glyphCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *glyphCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Glyph)
	c.order = nil
}
