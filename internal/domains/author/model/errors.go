package model

import (
	"errors"
	"net/http"
)

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrInvalidAuthorID = errors.New("author id must be a positive integer")
)

// ToErrorCode converts err to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	case errors.Is(err, ErrInvalidAuthorID):
		return "INVALID_ID"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts err to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidAuthorID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
