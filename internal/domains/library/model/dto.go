package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	bookmodel "library-backend/internal/domains/book/model"
)

const (
	MaxNameLength    = 255
	MaxAddressLength = 500
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{2,31}$`)

// CreateLibraryRequest - POST /api/v1/libraries
type CreateLibraryRequest struct {
	Name string              `json:"name"`
	Info *LibraryInfoRequest `json:"info,omitempty"`
}

type LibraryInfoRequest struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (r CreateLibraryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, MaxNameLength),
		),
		validation.Field(&r.Info),
	)
}

func (r LibraryInfoRequest) Validate() error {
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Address,
			validation.Required.Error("address is required"),
			validation.Length(1, MaxAddressLength),
		),
		validation.Field(&r.Phone,
			validation.Required.Error("phone is required"),
			validation.Match(phonePattern).Error("phone must contain digits, spaces, dashes or parentheses"),
		),
	)
}

// ToLibrary converts a validated request into an entity. Books is left nil.
func (r CreateLibraryRequest) ToLibrary() *Library {
	l := &Library{Name: strings.TrimSpace(r.Name)}
	if r.Info != nil {
		l.Info = &LibraryInfo{
			Address: strings.TrimSpace(r.Info.Address),
			Phone:   strings.TrimSpace(r.Info.Phone),
		}
	}
	return l
}

// UpdateLibraryRequest - PUT /api/v1/libraries/:id
// A missing info leaves the stored info untouched.
type UpdateLibraryRequest = CreateLibraryRequest

// LibraryResponse is the JSON form of a Library.
type LibraryResponse struct {
	ID    int64                    `json:"id"`
	Name  string                   `json:"name"`
	Info  *LibraryInfoResponse     `json:"info"`
	Books []bookmodel.BookResponse `json:"books,omitempty"`
}

type LibraryInfoResponse struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (l *Library) ToResponse() LibraryResponse {
	resp := LibraryResponse{ID: l.ID, Name: l.Name}
	if l.Info != nil {
		resp.Info = &LibraryInfoResponse{Address: l.Info.Address, Phone: l.Info.Phone}
	}
	if l.Books != nil {
		resp.Books = bookmodel.ToResponses(l.Books)
	}
	return resp
}

func ToResponses(libraries []Library) []LibraryResponse {
	out := make([]LibraryResponse, len(libraries))
	for i := range libraries {
		out[i] = libraries[i].ToResponse()
	}
	return out
}
