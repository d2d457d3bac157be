package model

import (
	bookmodel "library-backend/internal/domains/book/model"
)

// Author writes any number of books.
type Author struct {
	ID        int64
	FirstName string
	LastName  string

	// Books written by the author, deduplicated by id.
	Books []bookmodel.Book
}

// FullName joins first and last name.
func (a *Author) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
