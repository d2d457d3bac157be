package aggregate

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// nullMarker is the type of Null.
type nullMarker struct{}

func (nullMarker) String() string { return "NULL" }

// Null is returned by Row.Get for a column that is present in the projection
// but holds SQL NULL.
var Null = nullMarker{}

// Row is a read-only view over one denormalized result row.
// Column names are the projection aliases (e.g. "author_id", "book_title").
type Row struct {
	index  int
	fields map[string]any
}

// NewRow copies fields into a Row. A nil value is stored as Null.
func NewRow(fields map[string]any) Row {
	r := Row{fields: make(map[string]any, len(fields))}
	for k, v := range fields {
		if v == nil {
			v = Null
		}
		r.fields[k] = v
	}
	return r
}

// Index is the zero-based position of the row in its source.
func (r Row) Index() int { return r.index }

// Has reports whether field is part of the projection.
func (r Row) Has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// Get returns the raw value of field, or Null.
func (r Row) Get(field string) (any, error) {
	v, ok := r.fields[field]
	if !ok {
		return nil, missingField(r.index, field)
	}
	return v, nil
}

// IsNull reports whether field holds SQL NULL.
func (r Row) IsNull(field string) (bool, error) {
	v, err := r.Get(field)
	if err != nil {
		return false, err
	}
	return isNull(v), nil
}

// Require checks that every field is part of the projection.
func (r Row) Require(fields ...string) error {
	for _, f := range fields {
		if !r.Has(f) {
			return missingField(r.index, f)
		}
	}
	return nil
}

// ID reads an integer identifier column.
func (r Row) ID(field string) (pgtype.Int8, error) {
	v, err := r.Get(field)
	if err != nil {
		return pgtype.Int8{}, err
	}
	id, ok := toInt8(v)
	if !ok {
		return pgtype.Int8{}, wrongType(r.index, field, "integer", v)
	}
	return id, nil
}

// Text reads a string column.
func (r Row) Text(field string) (pgtype.Text, error) {
	v, err := r.Get(field)
	if err != nil {
		return pgtype.Text{}, err
	}
	switch t := v.(type) {
	case nullMarker:
		return pgtype.Text{}, nil
	case string:
		return pgtype.Text{String: t, Valid: true}, nil
	case []byte:
		return pgtype.Text{String: string(t), Valid: true}, nil
	case pgtype.Text:
		return t, nil
	case *string:
		if t == nil {
			return pgtype.Text{}, nil
		}
		return pgtype.Text{String: *t, Valid: true}, nil
	}
	return pgtype.Text{}, wrongType(r.index, field, "text", v)
}

// Date reads a date column. Strings are accepted in ISO form (2006-01-02).
func (r Row) Date(field string) (pgtype.Date, error) {
	v, err := r.Get(field)
	if err != nil {
		return pgtype.Date{}, err
	}
	switch t := v.(type) {
	case nullMarker:
		return pgtype.Date{}, nil
	case time.Time:
		return pgtype.Date{Time: t, Valid: true}, nil
	case *time.Time:
		if t == nil {
			return pgtype.Date{}, nil
		}
		return pgtype.Date{Time: *t, Valid: true}, nil
	case pgtype.Date:
		return t, nil
	case string:
		d, perr := time.Parse(time.DateOnly, t)
		if perr != nil {
			return pgtype.Date{}, &DecodeError{Row: r.index, Field: field, Reason: "malformed date", Err: perr}
		}
		return pgtype.Date{Time: d, Valid: true}, nil
	}
	return pgtype.Date{}, wrongType(r.index, field, "date", v)
}

// Int64 reads a NOT NULL integer column.
func (r Row) Int64(field string) (int64, error) {
	v, err := r.ID(field)
	if err != nil {
		return 0, err
	}
	if !v.Valid {
		return 0, &DecodeError{Row: r.index, Field: field, Reason: "unexpected NULL"}
	}
	return v.Int64, nil
}

// String reads a text column; NULL becomes "".
func (r Row) String(field string) (string, error) {
	v, err := r.Text(field)
	if err != nil {
		return "", err
	}
	return v.String, nil
}

// OptionalInt64 reads a nullable integer column.
func (r Row) OptionalInt64(field string) (*int64, error) {
	v, err := r.ID(field)
	if err != nil || !v.Valid {
		return nil, err
	}
	return &v.Int64, nil
}

// OptionalDate reads a nullable date column.
func (r Row) OptionalDate(field string) (*time.Time, error) {
	v, err := r.Date(field)
	if err != nil || !v.Valid {
		return nil, err
	}
	return &v.Time, nil
}

// GoString renders the row for debugging.
func (r Row) GoString() string {
	return fmt.Sprintf("Row#%d%v", r.index, r.fields)
}

func isNull(v any) bool {
	switch t := v.(type) {
	case nil, nullMarker:
		return true
	case pgtype.Int8:
		return !t.Valid
	case pgtype.Int4:
		return !t.Valid
	case pgtype.Text:
		return !t.Valid
	case pgtype.Date:
		return !t.Valid
	}
	return false
}

func toInt8(v any) (pgtype.Int8, bool) {
	switch t := v.(type) {
	case nullMarker:
		return pgtype.Int8{}, true
	case int64:
		return pgtype.Int8{Int64: t, Valid: true}, true
	case int32:
		return pgtype.Int8{Int64: int64(t), Valid: true}, true
	case int16:
		return pgtype.Int8{Int64: int64(t), Valid: true}, true
	case int:
		return pgtype.Int8{Int64: int64(t), Valid: true}, true
	case pgtype.Int8:
		return t, true
	case pgtype.Int4:
		return pgtype.Int8{Int64: int64(t.Int32), Valid: t.Valid}, true
	case *int64:
		if t == nil {
			return pgtype.Int8{}, true
		}
		return pgtype.Int8{Int64: *t, Valid: true}, true
	}
	return pgtype.Int8{}, false
}
