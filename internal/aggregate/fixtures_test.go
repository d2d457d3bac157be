package aggregate

import (
	"slices"
	"sort"
)

type tInfo struct {
	ID      int64
	Address string
	Phone   string
}

type tBook struct {
	ID        int64
	Title     string
	Libraries []tLibrary
}

type tLibrary struct {
	ID    int64
	Name  string
	Info  *tInfo
	Books []tBook
}

type tAuthor struct {
	ID        int64
	FirstName string
	LastName  string
	Books     []tBook
}

// row builds a Row from alternating name/value pairs.
func row(kv ...any) Row {
	fields := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i].(string)] = kv[i+1]
	}
	return NewRow(fields)
}

func bookShape(idField, titleField string, slots ...Slot[tBook]) Shape[tBook] {
	return Shape[tBook]{
		IDField: idField,
		Fields:  []string{titleField},
		Decode: func(id int64, r Row) (tBook, error) {
			title, err := r.String(titleField)
			return tBook{ID: id, Title: title}, err
		},
		ID:    func(b tBook) int64 { return b.ID },
		Slots: slots,
	}
}

func authorShape() Shape[tAuthor] {
	return Shape[tAuthor]{
		IDField: "author_id",
		Fields:  []string{"first_name", "last_name"},
		Decode: func(id int64, r Row) (tAuthor, error) {
			first, err := r.String("first_name")
			if err != nil {
				return tAuthor{}, err
			}
			last, err := r.String("last_name")
			return tAuthor{ID: id, FirstName: first, LastName: last}, err
		},
		ID: func(a tAuthor) int64 { return a.ID },
		Slots: []Slot[tAuthor]{
			HasMany("books", bookShape("book_id", "title"),
				func(a tAuthor) []tBook { return a.Books },
				func(a *tAuthor, b []tBook) { a.Books = b }),
		},
	}
}

func infoShape() Shape[tInfo] {
	return Shape[tInfo]{
		IDField: "library_info_id",
		Fields:  []string{"library_address", "library_phone"},
		Decode: func(id int64, r Row) (tInfo, error) {
			addr, err := r.String("library_address")
			if err != nil {
				return tInfo{}, err
			}
			phone, err := r.String("library_phone")
			return tInfo{ID: id, Address: addr, Phone: phone}, err
		},
		ID: func(i tInfo) int64 { return i.ID },
	}
}

func libraryShape(idField, nameField string, slots ...Slot[tLibrary]) Shape[tLibrary] {
	return Shape[tLibrary]{
		IDField: idField,
		Fields:  []string{nameField},
		Decode: func(id int64, r Row) (tLibrary, error) {
			name, err := r.String(nameField)
			return tLibrary{ID: id, Name: name}, err
		},
		ID:    func(l tLibrary) int64 { return l.ID },
		Slots: slots,
	}
}

func infoSlot() Slot[tLibrary] {
	return HasOne("info", infoShape(),
		func(l tLibrary) (tInfo, bool) {
			if l.Info == nil {
				return tInfo{}, false
			}
			return *l.Info, true
		},
		func(l *tLibrary, i tInfo) { l.Info = &i })
}

func libraryBooksSlot(book Shape[tBook]) Slot[tLibrary] {
	return HasMany("books", book,
		func(l tLibrary) []tBook { return l.Books },
		func(l *tLibrary, b []tBook) { l.Books = b })
}

// fullLibraryShape is library + one-to-one info + many books.
func fullLibraryShape() Shape[tLibrary] {
	return libraryShape("library_id", "library_name",
		infoSlot(),
		libraryBooksSlot(bookShape("book_id", "book_title")),
	)
}

// holdingsShape is library → books → libraries holding each book.
func holdingsShape() Shape[tLibrary] {
	holders := HasMany("libraries", libraryShape("holder_id", "holder_name"),
		func(b tBook) []tLibrary { return b.Libraries },
		func(b *tBook, l []tLibrary) { b.Libraries = l })
	return libraryShape("library_id", "library_name",
		libraryBooksSlot(bookShape("book_id", "book_title", holders)),
	)
}

func libraryRow(libID int64, name string, infoID any, addr, phone any, bookID any, title any) Row {
	return row(
		"library_id", libID,
		"library_name", name,
		"library_info_id", infoID,
		"library_address", addr,
		"library_phone", phone,
		"book_id", bookID,
		"book_title", title,
	)
}

func bookIDs(books []tBook) []int64 {
	ids := make([]int64, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	slices.Sort(ids)
	return ids
}

func libraryIDs(libs []tLibrary) []int64 {
	ids := make([]int64, 0, len(libs))
	for _, l := range libs {
		ids = append(ids, l.ID)
	}
	slices.Sort(ids)
	return ids
}

// canonical sorts every child collection by id so graphs built from
// different row orders compare equal.
func canonical(libs []tLibrary) []tLibrary {
	out := make([]tLibrary, len(libs))
	for i, l := range libs {
		c := l
		c.Books = canonicalBooks(l.Books)
		out[i] = c
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func canonicalBooks(books []tBook) []tBook {
	out := make([]tBook, len(books))
	for i, b := range books {
		c := b
		if b.Libraries != nil {
			c.Libraries = canonical(b.Libraries)
		}
		out[i] = c
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// permutations calls fn with every ordering of rows.
func permutations(rows []Row, fn func([]Row)) {
	var walk func(int)
	walk = func(k int) {
		if k == len(rows) {
			fn(slices.Clone(rows))
			return
		}
		for i := k; i < len(rows); i++ {
			rows[k], rows[i] = rows[i], rows[k]
			walk(k + 1)
			rows[k], rows[i] = rows[i], rows[k]
		}
	}
	walk(0)
}
