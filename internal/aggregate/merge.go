package aggregate

// Merge combines two fragments of the same entity, e.g. from separate
// queries or pages. Scalars come from a; every HasMany slot becomes the
// id-deduplicated union of both sides, recursively; a HasOne slot keeps a's
// child when a has one. Merge(x, x) equals x.
//
// Fragments with different ids are a *MergeMismatchError.
func Merge[E any](shape Shape[E], a, b E) (E, error) {
	if left, right := shape.ID(a), shape.ID(b); left != right {
		var zero E
		return zero, &MergeMismatchError{Left: left, Right: right}
	}
	out := a
	for _, slot := range shape.Slots {
		if err := slot.merge(&out, a, b); err != nil {
			var zero E
			return zero, err
		}
	}
	return out, nil
}

// MergeAll folds fragments into one entity per id, in order of first appearance.
func MergeAll[E any](shape Shape[E], fragments ...E) ([]E, error) {
	acc := newOrdered[E](len(fragments))
	for _, f := range fragments {
		id := shape.ID(f)
		if prev, ok := acc.get(id); ok {
			merged, err := Merge(shape, prev, f)
			if err != nil {
				return nil, err
			}
			f = merged
		}
		acc.put(id, f)
	}
	return acc.values(), nil
}
