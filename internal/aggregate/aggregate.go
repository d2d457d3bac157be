package aggregate

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrMultipleRoots is returned by First when the rows carry more than one root id.
var ErrMultipleRoots = errors.New("aggregate: rows describe more than one root entity")

type options struct {
	policy NullPolicy
}

// Option tunes a single aggregation.
type Option func(*options)

// WithNullPolicy replaces DefaultNullPolicy for child id columns.
func WithNullPolicy(p NullPolicy) Option {
	return func(o *options) { o.policy = p }
}

// Aggregate scans src once and groups its rows by shape.IDField into one
// entity per distinct root id, filling every declared slot. The result
// depends only on the multiset of rows: grouping and deduplication key on
// ids alone, so join fan-out never duplicates children.
//
// Any decode error aborts the scan and no graph is returned.
func Aggregate[E any](src Source, shape Shape[E], opts ...Option) (*Graph[E], error) {
	if err := shape.validate(); err != nil {
		return nil, err
	}
	o := options{policy: DefaultNullPolicy}
	for _, opt := range opts {
		opt(&o)
	}

	roots := newOrdered[*builder[E]](16)
	var idType reflect.Type

	for src.Next() {
		r, err := src.Row()
		if err != nil {
			return nil, err
		}
		if err := shape.require(r); err != nil {
			return nil, err
		}

		raw, _ := r.Get(shape.IDField)
		if isNull(raw) {
			return nil, &DecodeError{Row: r.Index(), Field: shape.IDField, Reason: "NULL root identifier"}
		}
		if t := reflect.TypeOf(raw); idType == nil {
			idType = t
		} else if t != idType {
			return nil, &DecodeError{
				Row:    r.Index(),
				Field:  shape.IDField,
				Reason: fmt.Sprintf("root identifier changed from %s to %s", idType, t),
			}
		}
		id, err := r.Int64(shape.IDField)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, &DecodeError{Row: r.Index(), Field: shape.IDField, Reason: "zero root identifier", Err: ErrZeroID}
		}

		b, ok := roots.get(id)
		if !ok {
			if b, err = newBuilder(&shape, id, r); err != nil {
				return nil, err
			}
			roots.put(id, b)
		}
		if err := b.collect(r, o.policy); err != nil {
			return nil, err
		}
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("aggregate: row source: %w", err)
	}

	g := newGraph[E](roots.len())
	for _, id := range roots.ids {
		b, _ := roots.get(id)
		g.put(id, b.build())
	}
	return g, nil
}

// First aggregates src and returns its only root entity. ok is false when
// src is empty; more than one root id is ErrMultipleRoots.
func First[E any](src Source, shape Shape[E], opts ...Option) (entity E, ok bool, err error) {
	g, err := Aggregate(src, shape, opts...)
	if err != nil {
		return entity, false, err
	}
	switch g.Len() {
	case 0:
		return entity, false, nil
	case 1:
		entity, ok = g.Get(g.roots.ids[0])
		return entity, ok, nil
	}
	return entity, false, fmt.Errorf("%w: %d ids", ErrMultipleRoots, g.Len())
}
