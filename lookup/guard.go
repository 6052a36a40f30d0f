package lookup

import (
	"sync"
	"sync/atomic"

	"github.com/homeshelf/homeshelf/model"
)

// Guard issues generation tokens tied to the currently displayed book.
// Entering a detail view takes the next generation; a lookup result carrying
// any older generation is discarded, which guards against out-of-order
// resolution when the user switches detail targets quickly.
type Guard struct {
	current atomic.Uint64
}

func (g *Guard) Next() uint64 {
	return g.current.Add(1)
}

func (g *Guard) Current() uint64 {
	return g.current.Load()
}

func (g *Guard) IsCurrent(generation uint64) bool {
	return g.current.Load() == generation
}

// Result is one completed lookup: either a filtered candidate list or the
// error the user should see.
type Result struct {
	Generation uint64
	BookID     string
	Books      []model.SimilarBook
	Err        error
}

// Cache holds the latest published lookup result.
type Cache struct {
	mu     sync.RWMutex
	latest *Result
}

func NewCache() *Cache {
	return &Cache{}
}

// Publish stores the result unless its generation is stale. It reports
// whether the result was kept.
func (c *Cache) Publish(g *Guard, res Result) bool {
	if !g.IsCurrent(res.Generation) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest != nil && c.latest.Generation > res.Generation {
		return false
	}
	c.latest = &res
	return true
}

// Latest returns the cached result for the given book, if any.
func (c *Cache) Latest(bookID string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil || c.latest.BookID != bookID {
		return Result{}, false
	}
	return *c.latest, true
}
