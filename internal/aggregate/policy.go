package aggregate

// NullPolicy decides whether a child's identifier column holds a real
// association or the empty right side of an outer join.
type NullPolicy struct {
	// ZeroIsAbsent treats an id of 0 like NULL. Readers that decode NULL
	// numerics as zero rely on it; schemas must never hand out id 0.
	ZeroIsAbsent bool
}

var (
	// DefaultNullPolicy accepts both NULL and 0 as "no child".
	DefaultNullPolicy = NullPolicy{ZeroIsAbsent: true}

	// StrictNullPolicy accepts only NULL; a zero id is a decode error.
	StrictNullPolicy = NullPolicy{}
)

// IsAbsent reports whether raw marks a missing association.
func (p NullPolicy) IsAbsent(raw any) bool {
	if isNull(raw) {
		return true
	}
	id, ok := toInt8(raw)
	if !ok {
		return false
	}
	return p.ZeroIsAbsent && id.Int64 == 0
}

// Check reads the child id column of row and decides absence. A zero id is
// only taken as absent when every one of the child's value fields is NULL
// too; zero next to real data means the schema issued id 0, which is
// reported rather than silently dropped.
func (p NullPolicy) Check(row Row, idField string, fields []string) (id int64, absent bool, err error) {
	v, err := row.ID(idField)
	if err != nil {
		return 0, false, err
	}
	if !v.Valid {
		return 0, true, nil
	}
	if v.Int64 != 0 {
		return v.Int64, false, nil
	}
	if !p.ZeroIsAbsent {
		return 0, false, &DecodeError{Row: row.Index(), Field: idField, Reason: "zero identifier", Err: ErrZeroID}
	}
	for _, f := range fields {
		null, err := row.IsNull(f)
		if err != nil {
			return 0, false, err
		}
		if !null {
			return 0, false, &DecodeError{Row: row.Index(), Field: idField, Reason: "zero identifier", Err: ErrZeroID}
		}
	}
	return 0, true, nil
}
