package aggregate

import "iter"

// Graph is the frozen result of an aggregation: root entities keyed by id,
// in order of first appearance. Entities are values; their child slices
// belong to the graph and must be treated as read-only.
type Graph[E any] struct {
	roots *ordered[E]
}

func newGraph[E any](capacity int) *Graph[E] {
	return &Graph[E]{roots: newOrdered[E](capacity)}
}

func (g *Graph[E]) put(id int64, e E) { g.roots.put(id, e) }

// Len is the number of distinct root ids.
func (g *Graph[E]) Len() int { return g.roots.len() }

// Get returns the entity with id.
func (g *Graph[E]) Get(id int64) (E, bool) { return g.roots.get(id) }

// IDs returns root ids in order of first appearance.
func (g *Graph[E]) IDs() []int64 {
	return append([]int64(nil), g.roots.ids...)
}

// Values returns the root entities; order carries no meaning.
func (g *Graph[E]) Values() []E { return g.roots.values() }

// All iterates over id/entity pairs.
func (g *Graph[E]) All() iter.Seq2[int64, E] {
	return func(yield func(int64, E) bool) {
		for _, id := range g.roots.ids {
			e, _ := g.roots.get(id)
			if !yield(id, e) {
				return
			}
		}
	}
}

// Merge combines g with a graph from another aggregation pass. Entities
// present in both are merged with Merge; neither input is modified.
func (g *Graph[E]) Merge(shape Shape[E], other *Graph[E]) (*Graph[E], error) {
	if other == nil {
		other = newGraph[E](0)
	}
	out := newGraph[E](g.Len() + other.Len())
	for _, src := range []*Graph[E]{g, other} {
		for id, e := range src.All() {
			if prev, ok := out.Get(id); ok {
				merged, err := Merge(shape, prev, e)
				if err != nil {
					return nil, err
				}
				e = merged
			}
			out.put(id, e)
		}
	}
	return out, nil
}
