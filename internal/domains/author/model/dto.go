package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	bookmodel "library-backend/internal/domains/book/model"
)

const (
	MinNameLength = 1
	MaxNameLength = 100
)

// CreateAuthorRequest - POST /api/v1/authors
type CreateAuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r CreateAuthorRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(MinNameLength, MaxNameLength),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(MinNameLength, MaxNameLength),
		),
	)
}

func (r CreateAuthorRequest) ToAuthor() *Author {
	return &Author{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
	}
}

// UpdateAuthorRequest - PUT /api/v1/authors/:id
type UpdateAuthorRequest = CreateAuthorRequest

// AuthorResponse is the JSON form of an Author. Books is omitted when the
// associations were not loaded.
type AuthorResponse struct {
	ID        int64                    `json:"id"`
	FirstName string                   `json:"first_name"`
	LastName  string                   `json:"last_name"`
	Books     []bookmodel.BookResponse `json:"books,omitempty"`
}

func (a *Author) ToResponse() AuthorResponse {
	resp := AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
	if a.Books != nil {
		resp.Books = bookmodel.ToResponses(a.Books)
	}
	return resp
}

func ToResponses(authors []Author) []AuthorResponse {
	out := make([]AuthorResponse, len(authors))
	for i := range authors {
		out[i] = authors[i].ToResponse()
	}
	return out
}
