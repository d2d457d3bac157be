package model

import "time"

// Book is a title written by at most one author and held by any number of libraries.
type Book struct {
	ID          int64
	AuthorID    *int64
	Title       string
	ReleaseDate *time.Time

	// Libraries holding the book, deduplicated by id. Only loaded by the
	// queries that join library_book.
	Libraries []LibraryRef
}

// LibraryRef is the part of a library a book query projects.
type LibraryRef struct {
	ID   int64
	Name string
}

// HasLibrary reports whether the library with id holds b.
func (b *Book) HasLibrary(id int64) bool {
	for _, l := range b.Libraries {
		if l.ID == id {
			return true
		}
	}
	return false
}
