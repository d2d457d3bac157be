// Package aggregate rebuilds nested entity graphs from the flat rows of
// outer-join queries.
//
// A query shape is declared once per call site:
//
//	shape := aggregate.Shape[model.Author]{
//		IDField: "author_id",
//		Fields:  []string{"first_name", "last_name"},
//		Decode:  decodeAuthor,
//		ID:      func(a model.Author) int64 { return a.ID },
//		Slots: []aggregate.Slot[model.Author]{
//			aggregate.HasMany("books", bookShape, getBooks, setBooks),
//		},
//	}
//
// Aggregate groups rows by the root id, decodes each root once, and
// deduplicates children by their own ids, so N children joined against M
// one-to-one rows produce N children and one one-to-one value. A NULL (or,
// under DefaultNullPolicy, zero) child id marks the absent side of a LEFT
// JOIN and never yields a child.
//
// Merge and Graph.Merge union fragments of the same entities produced by
// independent passes.
package aggregate
