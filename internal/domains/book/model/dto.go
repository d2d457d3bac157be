package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength = 255
	DateLayout     = time.DateOnly
)

// CreateBookRequest - POST /api/v1/books
type CreateBookRequest struct {
	Title       string  `json:"title"`
	AuthorID    *int64  `json:"author_id,omitempty"`
	ReleaseDate *string `json:"release_date,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength),
		),
		validation.Field(&r.AuthorID, validation.NilOrNotEmpty.Error("author_id must be a positive id"), validation.Min(int64(1))),
		validation.Field(&r.ReleaseDate, validation.Date(DateLayout).Error("release_date must be YYYY-MM-DD")),
	)
}

// ToBook converts a validated request into an entity.
func (r CreateBookRequest) ToBook() *Book {
	return &Book{
		AuthorID:    r.AuthorID,
		Title:       r.Title,
		ReleaseDate: parseDate(r.ReleaseDate),
	}
}

// UpdateBookRequest - PUT /api/v1/books/:id
// The book is replaced as a whole, like the row it maps to.
type UpdateBookRequest = CreateBookRequest

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil
	}
	return &d
}

// BookResponse is the JSON form of a Book.
type BookResponse struct {
	ID          int64             `json:"id"`
	AuthorID    *int64            `json:"author_id"`
	Title       string            `json:"title"`
	ReleaseDate *string           `json:"release_date"`
	Libraries   []LibraryResponse `json:"libraries,omitempty"`
}

type LibraryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (b *Book) ToResponse() BookResponse {
	resp := BookResponse{
		ID:       b.ID,
		AuthorID: b.AuthorID,
		Title:    b.Title,
	}
	if b.ReleaseDate != nil {
		s := b.ReleaseDate.Format(DateLayout)
		resp.ReleaseDate = &s
	}
	if b.Libraries != nil {
		resp.Libraries = make([]LibraryResponse, len(b.Libraries))
		for i, l := range b.Libraries {
			resp.Libraries[i] = LibraryResponse{ID: l.ID, Name: l.Name}
		}
	}
	return resp
}

// ToResponses converts a slice of books.
func ToResponses(books []Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = books[i].ToResponse()
	}
	return out
}
