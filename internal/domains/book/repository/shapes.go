package repository

import (
	"library-backend/internal/aggregate"
	"library-backend/internal/domains/book/model"
)

// Columns names the projection aliases of a book block. An empty AuthorID
// means the query does not project the author column.
type Columns struct {
	ID          string
	AuthorID    string
	Title       string
	ReleaseDate string
}

var (
	// TableColumns are the plain column names of the book table.
	TableColumns = Columns{ID: "id", AuthorID: "author_id", Title: "title", ReleaseDate: "release_date"}
	// JoinedColumns are the aliases used when book is joined under another entity.
	JoinedColumns = Columns{ID: "book_id", AuthorID: "book_author_id", Title: "book_title", ReleaseDate: "book_release_date"}
)

func (c Columns) fields() []string {
	fields := []string{c.Title, c.ReleaseDate}
	if c.AuthorID != "" {
		fields = append(fields, c.AuthorID)
	}
	return fields
}

// Shape describes a book block laid out under cols.
func Shape(cols Columns, slots ...aggregate.Slot[model.Book]) aggregate.Shape[model.Book] {
	return aggregate.Shape[model.Book]{
		IDField: cols.ID,
		Fields:  cols.fields(),
		Decode: func(id int64, r aggregate.Row) (model.Book, error) {
			b := model.Book{ID: id}
			var err error
			if b.Title, err = r.String(cols.Title); err != nil {
				return b, err
			}
			if b.ReleaseDate, err = r.OptionalDate(cols.ReleaseDate); err != nil {
				return b, err
			}
			if cols.AuthorID != "" {
				if b.AuthorID, err = r.OptionalInt64(cols.AuthorID); err != nil {
					return b, err
				}
			}
			return b, nil
		},
		ID:    func(b model.Book) int64 { return b.ID },
		Slots: slots,
	}
}

// LibraryRefShape describes a library reference under idField and nameField.
func LibraryRefShape(idField, nameField string) aggregate.Shape[model.LibraryRef] {
	return aggregate.Shape[model.LibraryRef]{
		IDField: idField,
		Fields:  []string{nameField},
		Decode: func(id int64, r aggregate.Row) (model.LibraryRef, error) {
			name, err := r.String(nameField)
			return model.LibraryRef{ID: id, Name: name}, err
		},
		ID: func(l model.LibraryRef) int64 { return l.ID },
	}
}

// LibrariesSlot fills Book.Libraries from ref.
func LibrariesSlot(ref aggregate.Shape[model.LibraryRef]) aggregate.Slot[model.Book] {
	return aggregate.HasMany("libraries", ref,
		func(b model.Book) []model.LibraryRef { return b.Libraries },
		func(b *model.Book, l []model.LibraryRef) { b.Libraries = l },
	)
}
