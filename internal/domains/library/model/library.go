package model

import (
	bookmodel "library-backend/internal/domains/book/model"
)

// Library holds books and may carry contact details.
type Library struct {
	ID   int64
	Name string

	// Info shares the library id. Nil when the library has no info row.
	Info *LibraryInfo

	// Books held by the library, deduplicated by id.
	Books []bookmodel.Book
}

type LibraryInfo struct {
	ID      int64
	Address string
	Phone   string
}

// HasBook reports whether the library holds the book with id.
func (l *Library) HasBook(id int64) bool {
	for _, b := range l.Books {
		if b.ID == id {
			return true
		}
	}
	return false
}
