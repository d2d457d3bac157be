package aggregate

// ordered is an id-keyed table that remembers first-insertion order.
type ordered[T any] struct {
	ids   []int64
	items map[int64]T
}

func newOrdered[T any](capacity int) *ordered[T] {
	return &ordered[T]{
		ids:   make([]int64, 0, capacity),
		items: make(map[int64]T, capacity),
	}
}

func (o *ordered[T]) get(id int64) (T, bool) {
	v, ok := o.items[id]
	return v, ok
}

// put stores v under id, keeping the original position of an existing id.
func (o *ordered[T]) put(id int64, v T) {
	if _, ok := o.items[id]; !ok {
		o.ids = append(o.ids, id)
	}
	o.items[id] = v
}

func (o *ordered[T]) len() int { return len(o.ids) }

func (o *ordered[T]) values() []T {
	out := make([]T, 0, len(o.ids))
	for _, id := range o.ids {
		out = append(out, o.items[id])
	}
	return out
}
