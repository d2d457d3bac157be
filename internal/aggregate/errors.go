package aggregate

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("aggregate: decode error")

	// ErrZeroID is wrapped by a DecodeError when a child block carries data
	// under an identifier of zero.
	ErrZeroID = errors.New("aggregate: zero identifier with non-null data")

	// ErrMergeMismatch matches every *MergeMismatchError.
	ErrMergeMismatch = errors.New("aggregate: merge of entities with different ids")
)

// DecodeError reports a row that does not fit the declared projection:
// a missing field, a value of the wrong shape or an unexpected NULL.
type DecodeError struct {
	Row    int
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("aggregate: row %d: field %q: %s", e.Row, e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// MergeMismatchError is returned by Merge when the fragments do not share an id.
// It is a programming error on the caller's side.
type MergeMismatchError struct {
	Left, Right int64
}

func (e *MergeMismatchError) Error() string {
	return fmt.Sprintf("aggregate: cannot merge entity %d with entity %d", e.Left, e.Right)
}

func (e *MergeMismatchError) Is(target error) bool { return target == ErrMergeMismatch }

func missingField(row int, field string) error {
	return &DecodeError{Row: row, Field: field, Reason: "missing from projection"}
}

func wrongType(row int, field, want string, got any) error {
	return &DecodeError{Row: row, Field: field, Reason: fmt.Sprintf("want %s, got %T", want, got)}
}
