package memory

import "sync"

type record interface{ RecordID() int64 }

// collection is an insertion-ordered slice of records guarded by one lock.
// Records are updated in place; deletes shift later records down.
type collection[T record] struct {
	mu    sync.RWMutex
	items []T
}

func (c *collection[T]) list(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if keep == nil || keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// indexOf returns the position of the first record with id, or -1.
// Caller holds the lock.
func (c *collection[T]) indexOf(id int64) int {
	for i := range c.items {
		if c.items[i].RecordID() == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// create appends build(len+1). The id is not checked for uniqueness.
func (c *collection[T]) create(build func(id int64) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := build(int64(len(c.items)) + 1)
	c.items = append(c.items, v)
	return v
}

func (c *collection[T]) update(id int64, apply func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	apply(&c.items[i])
	return c.items[i], true
}

func (c *collection[T]) remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

// load appends records verbatim, keeping their ids.
func (c *collection[T]) load(vs []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, vs...)
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
