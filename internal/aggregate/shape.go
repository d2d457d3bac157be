package aggregate

import (
	"errors"
	"fmt"
)

// Cardinality of a child slot.
type Cardinality int

const (
	One Cardinality = iota + 1
	Many
)

func (c Cardinality) String() string {
	switch c {
	case One:
		return "one"
	case Many:
		return "many"
	}
	return fmt.Sprintf("Cardinality(%d)", int(c))
}

// Shape describes how one entity type is laid out in a flat row: its id
// column, the scalar columns Decode reads, and any child slots joined into
// the same row. Shapes are fixed per query; child slots hold their own Shape,
// so nested joins are described by nesting shapes.
type Shape[E any] struct {
	// IDField is the column holding the entity id.
	IDField string
	// Fields are the scalar columns read by Decode. They must all be
	// present in every row; for a child they also take part in the
	// absence check.
	Fields []string
	// Decode builds the entity's scalar part. Child slots are filled in later.
	Decode func(id int64, r Row) (E, error)
	// ID returns an entity's id; Merge relies on it.
	ID func(E) int64
	// Slots are the associations populated from the same rows.
	Slots []Slot[E]
}

func (s *Shape[E]) validate() error {
	switch {
	case s.IDField == "":
		return errors.New("aggregate: shape without id field")
	case s.Decode == nil:
		return fmt.Errorf("aggregate: shape %q without Decode", s.IDField)
	case s.ID == nil:
		return fmt.Errorf("aggregate: shape %q without ID", s.IDField)
	}
	for _, slot := range s.Slots {
		if err := slot.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shape[E]) require(r Row) error {
	if err := r.Require(s.IDField); err != nil {
		return err
	}
	if err := r.Require(s.Fields...); err != nil {
		return err
	}
	for _, slot := range s.Slots {
		if err := slot.require(r); err != nil {
			return err
		}
	}
	return nil
}

// Slot is one named association of E, populated from columns of the rows
// that carry E. Build slots with HasMany and HasOne.
type Slot[E any] interface {
	Name() string
	Cardinality() Cardinality

	validate() error
	require(r Row) error
	collector() collector[E]
	merge(dst *E, a, b E) error
}

// collector accumulates one slot of one entity under construction.
type collector[E any] interface {
	collect(r Row, p NullPolicy) error
	finish(dst *E)
}

// HasMany declares a one-to-many (or many-to-many) slot. Children are
// deduplicated by id; the first row carrying an id decides its scalars.
func HasMany[E, C any](name string, child Shape[C], get func(E) []C, set func(*E, []C)) Slot[E] {
	return &manySlot[E, C]{name: name, child: child, get: get, set: set}
}

// HasOne declares a one-to-one slot. The first non-absent child wins and is
// never replaced, even when later fan-out rows repeat or contradict it.
func HasOne[E, C any](name string, child Shape[C], get func(E) (C, bool), set func(*E, C)) Slot[E] {
	return &oneSlot[E, C]{name: name, child: child, get: get, set: set}
}

type manySlot[E, C any] struct {
	name  string
	child Shape[C]
	get   func(E) []C
	set   func(*E, []C)
}

func (s *manySlot[E, C]) Name() string             { return s.name }
func (s *manySlot[E, C]) Cardinality() Cardinality { return Many }

func (s *manySlot[E, C]) validate() error {
	if s.get == nil || s.set == nil {
		return fmt.Errorf("aggregate: slot %q without accessors", s.name)
	}
	return s.child.validate()
}

func (s *manySlot[E, C]) require(r Row) error { return s.child.require(r) }

func (s *manySlot[E, C]) collector() collector[E] {
	return &manyCollector[E, C]{slot: s, children: newOrdered[*builder[C]](4)}
}

func (s *manySlot[E, C]) merge(dst *E, a, b E) error {
	left, right := s.get(a), s.get(b)
	union := newOrdered[C](len(left) + len(right))
	for _, part := range [][]C{left, right} {
		for _, c := range part {
			id := s.child.ID(c)
			if prev, ok := union.get(id); ok {
				merged, err := Merge(s.child, prev, c)
				if err != nil {
					return err
				}
				c = merged
			}
			union.put(id, c)
		}
	}
	s.set(dst, union.values())
	return nil
}

type manyCollector[E, C any] struct {
	slot     *manySlot[E, C]
	children *ordered[*builder[C]]
}

func (c *manyCollector[E, C]) collect(r Row, p NullPolicy) error {
	id, absent, err := p.Check(r, c.slot.child.IDField, c.slot.child.Fields)
	if err != nil || absent {
		return err
	}
	b, ok := c.children.get(id)
	if !ok {
		if b, err = newBuilder(&c.slot.child, id, r); err != nil {
			return err
		}
		c.children.put(id, b)
	}
	return b.collect(r, p)
}

func (c *manyCollector[E, C]) finish(dst *E) {
	out := make([]C, 0, c.children.len())
	for _, b := range c.children.values() {
		out = append(out, b.build())
	}
	c.slot.set(dst, out)
}

type oneSlot[E, C any] struct {
	name  string
	child Shape[C]
	get   func(E) (C, bool)
	set   func(*E, C)
}

func (s *oneSlot[E, C]) Name() string             { return s.name }
func (s *oneSlot[E, C]) Cardinality() Cardinality { return One }

func (s *oneSlot[E, C]) validate() error {
	if s.get == nil || s.set == nil {
		return fmt.Errorf("aggregate: slot %q without accessors", s.name)
	}
	return s.child.validate()
}

func (s *oneSlot[E, C]) require(r Row) error { return s.child.require(r) }

func (s *oneSlot[E, C]) collector() collector[E] {
	return &oneCollector[E, C]{slot: s}
}

func (s *oneSlot[E, C]) merge(dst *E, a, b E) error {
	left, okLeft := s.get(a)
	right, okRight := s.get(b)
	switch {
	case okLeft && okRight && s.child.ID(left) == s.child.ID(right):
		merged, err := Merge(s.child, left, right)
		if err != nil {
			return err
		}
		s.set(dst, merged)
	case okLeft:
		s.set(dst, left)
	case okRight:
		s.set(dst, right)
	}
	return nil
}

type oneCollector[E, C any] struct {
	slot *oneSlot[E, C]
	id   int64
	b    *builder[C]
}

func (c *oneCollector[E, C]) collect(r Row, p NullPolicy) error {
	id, absent, err := p.Check(r, c.slot.child.IDField, c.slot.child.Fields)
	if err != nil || absent {
		return err
	}
	if c.b == nil {
		if c.b, err = newBuilder(&c.slot.child, id, r); err != nil {
			return err
		}
		c.id = id
	}
	if id != c.id {
		// first observed wins
		return nil
	}
	return c.b.collect(r, p)
}

func (c *oneCollector[E, C]) finish(dst *E) {
	if c.b != nil {
		c.slot.set(dst, c.b.build())
	}
}

// builder is the scratch state for one entity while rows are scanned.
type builder[E any] struct {
	value      E
	collectors []collector[E]
}

func newBuilder[E any](shape *Shape[E], id int64, r Row) (*builder[E], error) {
	v, err := shape.Decode(id, r)
	if err != nil {
		return nil, err
	}
	b := &builder[E]{value: v, collectors: make([]collector[E], len(shape.Slots))}
	for i, slot := range shape.Slots {
		b.collectors[i] = slot.collector()
	}
	return b, nil
}

func (b *builder[E]) collect(r Row, p NullPolicy) error {
	for _, c := range b.collectors {
		if err := c.collect(r, p); err != nil {
			return err
		}
	}
	return nil
}

// build freezes the builder into a fresh value; children are new slices.
func (b *builder[E]) build() E {
	v := b.value
	for _, c := range b.collectors {
		c.finish(&v)
	}
	return v
}
