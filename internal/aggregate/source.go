package aggregate

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Source is a forward-only cursor over flat rows.
// Row is only valid after Next returned true; Err reports why iteration stopped.
type Source interface {
	Next() bool
	Row() (Row, error)
	Err() error
}

var errOutsideIteration = errors.New("aggregate: Row called outside iteration")

type sliceSource struct {
	rows []Row
	pos  int
}

// Rows returns a Source over already materialized rows.
func Rows(rows ...Row) Source {
	return &sliceSource{rows: rows, pos: -1}
}

func (s *sliceSource) Next() bool {
	if s.pos+1 >= len(s.rows) {
		s.pos = len(s.rows)
		return false
	}
	s.pos++
	return true
}

func (s *sliceSource) Row() (Row, error) {
	if s.pos < 0 || s.pos >= len(s.rows) {
		return Row{}, errOutsideIteration
	}
	r := s.rows[s.pos]
	r.index = s.pos
	return r, nil
}

func (s *sliceSource) Err() error { return nil }

type pgxSource struct {
	rows  pgx.Rows
	names []string
	n     int
}

// FromPgx adapts a pgx result cursor. Columns are keyed by their projection
// name, so every joined column must carry a unique alias. The caller keeps
// ownership of rows and must Close it.
func FromPgx(rows pgx.Rows) Source {
	return &pgxSource{rows: rows, n: -1}
}

func (s *pgxSource) Next() bool {
	if !s.rows.Next() {
		return false
	}
	s.n++
	return true
}

func (s *pgxSource) Row() (Row, error) {
	if s.names == nil {
		fds := s.rows.FieldDescriptions()
		s.names = make([]string, len(fds))
		seen := make(map[string]struct{}, len(fds))
		for i, fd := range fds {
			if _, dup := seen[fd.Name]; dup {
				return Row{}, &DecodeError{Row: s.n, Field: fd.Name, Reason: "duplicate column name"}
			}
			seen[fd.Name] = struct{}{}
			s.names[i] = fd.Name
		}
	}

	values, err := s.rows.Values()
	if err != nil {
		return Row{}, &DecodeError{Row: s.n, Reason: "read values", Err: err}
	}
	if len(values) != len(s.names) {
		return Row{}, &DecodeError{Row: s.n, Reason: fmt.Sprintf("got %d values for %d columns", len(values), len(s.names))}
	}

	fields := make(map[string]any, len(values))
	for i, v := range values {
		if v == nil {
			v = Null
		}
		fields[s.names[i]] = v
	}
	return Row{index: s.n, fields: fields}, nil
}

func (s *pgxSource) Err() error { return s.rows.Err() }
