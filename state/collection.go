package state

// Keyed is implemented by every entity mirrored into state; Key is its server id.
type Keyed interface {
	Key() int64
}

// Collection is an id-keyed set of entities that also remembers insertion order.
// It is copy-on-write: every mutating method returns a new Collection and never
// touches the receiver, so snapshots handed to subscribers stay stable.
// A duplicate id can never appear; writing an existing id substitutes in place.
type Collection[T Keyed] struct {
	order []int64
	items map[int64]T
}

// NewCollection builds a collection from items in order. If the same id occurs twice
// the later entity wins and keeps the position of the first occurrence.
func NewCollection[T Keyed](items ...T) Collection[T] {
	c := Collection[T]{
		order: make([]int64, 0, len(items)),
		items: make(map[int64]T, len(items)),
	}
	for _, item := range items {
		id := item.Key()
		if _, seen := c.items[id]; !seen {
			c.order = append(c.order, id)
		}
		c.items[id] = item
	}
	return c
}

// Len returns the number of entities.
func (c Collection[T]) Len() int { return len(c.order) }

// Get looks an entity up by id.
func (c Collection[T]) Get(id int64) (T, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns the entities in insertion order. The slice is a fresh copy.
func (c Collection[T]) Items() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Append adds item at the end. An item whose id is already present is substituted
// at its current position instead.
func (c Collection[T]) Append(item T) Collection[T] {
	next := c.clone(1)
	id := item.Key()
	if _, ok := next.items[id]; !ok {
		next.order = append(next.order, id)
	}
	next.items[id] = item
	return next
}

// Replace substitutes the entity with item's id. When no such entity exists the
// collection is returned unchanged and ok is false; Replace never appends.
func (c Collection[T]) Replace(item T) (Collection[T], bool) {
	if _, ok := c.items[item.Key()]; !ok {
		return c, false
	}
	next := c.clone(0)
	next.items[item.Key()] = item
	return next, true
}

// Filter returns, in order, the entities for which keep returns true.
func (c Collection[T]) Filter(keep func(T) bool) []T {
	var out []T
	for _, id := range c.order {
		if item := c.items[id]; keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c Collection[T]) clone(extra int) Collection[T] {
	next := Collection[T]{
		order: make([]int64, len(c.order), len(c.order)+extra),
		items: make(map[int64]T, len(c.items)+extra),
	}
	copy(next.order, c.order)
	for id, item := range c.items {
		next.items[id] = item
	}
	return next
}
