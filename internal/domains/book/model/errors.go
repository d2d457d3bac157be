package model

import (
	"errors"
	"net/http"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrInvalidBookID  = errors.New("book id must be a positive integer")
)

// ToErrorCode converts err to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrInvalidBookID):
		return "INVALID_ID"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts err to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthorNotFound), errors.Is(err, ErrInvalidBookID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
