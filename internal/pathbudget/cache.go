package pathbudget

import (
	"container/list"
	"fmt"

	"github.com/l1jgo/townsim/internal/worldmap"
)

const cacheCapacity = 200

type cacheEntry struct {
	key  string
	path []worldmap.Point
}

// Cache is the process-lived, endpoint-keyed LRU path cache: a
// move-to-front doubly-linked list for recency order plus a map for O(1)
// lookup.
type Cache struct {
	cap   int
	ll    *list.List
	index map[string]*list.Element
}

func NewCache() *Cache {
	return &Cache{
		cap:   cacheCapacity,
		ll:    list.New(),
		index: make(map[string]*list.Element),
	}
}

func EndpointKey(sx, sy, tx, ty int) string {
	return fmt.Sprintf("%d,%d->%d,%d", sx, sy, tx, ty)
}

// Get returns a defensive copy of the cached path for key, touching LRU
// order on hit.
func (c *Cache) Get(key string) ([]worldmap.Point, bool) {
	el, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	entry := el.Value.(*cacheEntry)
	out := make([]worldmap.Point, len(entry.path))
	copy(out, entry.path)
	return out, true
}

// Put inserts or updates a cached path, evicting the least-recently-used
// entry if capacity is exceeded.
func (c *Cache) Put(key string, path []worldmap.Point) {
	stored := make([]worldmap.Point, len(path))
	copy(stored, path)

	if el, ok := c.index[key]; ok {
		el.Value.(*cacheEntry).path = stored
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&cacheEntry{key: key, path: stored})
	c.index[key] = el
	for c.ll.Len() > c.cap {
		back := c.ll.Back()
		if back == nil {
			break
		}
		c.ll.Remove(back)
		delete(c.index, back.Value.(*cacheEntry).key)
	}
}

// Invalidate evicts key unconditionally — used when a cached path fails a
// validity check against the current map state.
func (c *Cache) Invalidate(key string) {
	if el, ok := c.index[key]; ok {
		c.ll.Remove(el)
		delete(c.index, key)
	}
}

// Len reports the current cache size; it never exceeds cacheCapacity.
func (c *Cache) Len() int { return c.ll.Len() }

// ValidatePath checks whether a cached path is still good before it is
// returned: at least 2 nodes, endpoints match the request, and every node
// is currently walkable in town.
func ValidatePath(t *worldmap.Town, path []worldmap.Point, sx, sy, tx, ty int) bool {
	if len(path) < 2 {
		return false
	}
	if path[0].X != sx || path[0].Y != sy {
		return false
	}
	last := path[len(path)-1]
	if last.X != tx || last.Y != ty {
		return false
	}
	for _, p := range path {
		if !t.Map.IsWalkTown(p.X, p.Y) {
			return false
		}
	}
	return true
}
