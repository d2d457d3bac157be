package model

import (
	"errors"
	"net/http"
)

var (
	ErrLibraryNotFound  = errors.New("library not found")
	ErrBookNotFound     = errors.New("book not found")
	ErrHoldingNotFound  = errors.New("library does not hold this book")
	ErrInvalidLibraryID = errors.New("library id must be a positive integer")
	ErrInvalidBookID    = errors.New("book id must be a positive integer")
)

// ToErrorCode converts err to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrLibraryNotFound):
		return "LIBRARY_NOT_FOUND"
	case errors.Is(err, ErrBookNotFound):
		return "BOOK_NOT_FOUND"
	case errors.Is(err, ErrHoldingNotFound):
		return "HOLDING_NOT_FOUND"
	case errors.Is(err, ErrInvalidLibraryID), errors.Is(err, ErrInvalidBookID):
		return "INVALID_ID"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts err to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrLibraryNotFound),
		errors.Is(err, ErrBookNotFound),
		errors.Is(err, ErrHoldingNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidLibraryID), errors.Is(err, ErrInvalidBookID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
