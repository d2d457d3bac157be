package repository

import (
	"library-backend/internal/aggregate"
	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/library/model"
)

var infoShape = aggregate.Shape[model.LibraryInfo]{
	IDField: "library_info_id",
	Fields:  []string{"library_address", "library_phone"},
	Decode: func(id int64, r aggregate.Row) (model.LibraryInfo, error) {
		info := model.LibraryInfo{ID: id}
		var err error
		if info.Address, err = r.String("library_address"); err != nil {
			return info, err
		}
		info.Phone, err = r.String("library_phone")
		return info, err
	},
	ID: func(i model.LibraryInfo) int64 { return i.ID },
}

var infoSlot = aggregate.HasOne("info", infoShape,
	func(l model.Library) (model.LibraryInfo, bool) {
		if l.Info == nil {
			return model.LibraryInfo{}, false
		}
		return *l.Info, true
	},
	func(l *model.Library, info model.LibraryInfo) { l.Info = &info },
)

func booksSlot(book aggregate.Shape[bookmodel.Book]) aggregate.Slot[model.Library] {
	return aggregate.HasMany("books", book,
		func(l model.Library) []bookmodel.Book { return l.Books },
		func(l *model.Library, b []bookmodel.Book) { l.Books = b },
	)
}

func libraryShape(slots ...aggregate.Slot[model.Library]) aggregate.Shape[model.Library] {
	return aggregate.Shape[model.Library]{
		IDField: "library_id",
		Fields:  []string{"library_name"},
		Decode: func(id int64, r aggregate.Row) (model.Library, error) {
			name, err := r.String("library_name")
			return model.Library{ID: id, Name: name}, err
		},
		ID:    func(l model.Library) int64 { return l.ID },
		Slots: slots,
	}
}

var (
	// libraryWithBooks: library -> info, library -> books.
	libraryWithBooks = libraryShape(infoSlot, booksSlot(bookrepo.Shape(bookrepo.JoinedColumns)))

	// libraryWithHoldings: library -> books -> every library holding each book.
	libraryWithHoldings = libraryShape(infoSlot, booksSlot(
		bookrepo.Shape(bookrepo.JoinedColumns, bookrepo.LibrariesSlot(bookrepo.LibraryRefShape("holder_id", "holder_name"))),
	))
)

// countingSource counts the rows pulled through it.
type countingSource struct {
	aggregate.Source
	n int
}

func (s *countingSource) Next() bool {
	if !s.Source.Next() {
		return false
	}
	s.n++
	return true
}
