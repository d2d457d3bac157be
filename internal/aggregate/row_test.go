package aggregate

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_Get(t *testing.T) {
	r := row("a", int64(1), "b", nil)

	v, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = r.Get("b")
	require.NoError(t, err)
	assert.Equal(t, Null, v)

	_, err = r.Get("c")
	assert.ErrorIs(t, err, ErrDecode)
	assert.False(t, r.Has("c"))
	assert.True(t, r.Has("b"))
}

func TestRow_ID(t *testing.T) {
	n := int64(9)
	var nilPtr *int64
	tests := []struct {
		name  string
		value any
		want  pgtype.Int8
	}{
		{"int64", int64(5), pgtype.Int8{Int64: 5, Valid: true}},
		{"int32", int32(5), pgtype.Int8{Int64: 5, Valid: true}},
		{"int", 5, pgtype.Int8{Int64: 5, Valid: true}},
		{"pgtype int4", pgtype.Int4{Int32: 3, Valid: true}, pgtype.Int8{Int64: 3, Valid: true}},
		{"pointer", &n, pgtype.Int8{Int64: 9, Valid: true}},
		{"nil pointer", nilPtr, pgtype.Int8{}},
		{"null", nil, pgtype.Int8{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := row("id", tt.value).ID("id")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := row("id", "7").ID("id")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRow_Text(t *testing.T) {
	s, err := row("t", "hello").String("t")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	s, err = row("t", []byte("bytes")).String("t")
	require.NoError(t, err)
	assert.Equal(t, "bytes", s)

	txt, err := row("t", nil).Text("t")
	require.NoError(t, err)
	assert.False(t, txt.Valid)

	_, err = row("t", 1.5).Text("t")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRow_Date(t *testing.T) {
	day := time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC)

	got, err := row("d", day).OptionalDate("d")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, day.Equal(*got))

	got, err = row("d", "1965-08-01").OptionalDate("d")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, day.Equal(*got))

	got, err = row("d", nil).OptionalDate("d")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = row("d", "01/08/1965").Date("d")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestRow_Int64(t *testing.T) {
	v, err := row("n", int32(4)).Int64("n")
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	_, err = row("n", nil).Int64("n")
	assert.ErrorIs(t, err, ErrDecode)

	p, err := row("n", nil).OptionalInt64("n")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = row("n", int64(3)).OptionalInt64("n")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(3), *p)
}

func TestRow_Require(t *testing.T) {
	r := row("a", 1, "b", 2)
	assert.NoError(t, r.Require("a", "b"))

	err := r.Require("a", "z")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "z", de.Field)
}

func TestRows_Source(t *testing.T) {
	src := Rows(row("a", 1), row("a", 2))

	_, err := src.Row()
	assert.Error(t, err)

	var idx []int
	for src.Next() {
		r, err := src.Row()
		require.NoError(t, err)
		idx = append(idx, r.Index())
	}
	assert.Equal(t, []int{0, 1}, idx)
	assert.NoError(t, src.Err())

	_, err = src.Row()
	assert.Error(t, err)
}
