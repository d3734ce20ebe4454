package rowcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTestLayout builds a simple layout used across tests.
func makeTestLayout() Layout {
	return Layout{
		Cols: []Column{
			{Name: "id", Nullable: false},
			{Name: "name", Nullable: false},
			{Name: "height", Nullable: false},
			{Name: "nick", Nullable: true},
			{Name: "cash", Nullable: true},
		},
	}
}

func s(v string) *string { return &v }

func TestEncodeDecode_RoundTrip(t *testing.T) {
	layout := makeTestLayout()

	values := []*string{s("42"), s("peter"), s("6.45"), s(""), s("100.25")}

	buf, err := Encode(layout, values)
	require.NoError(t, err)
	require.NotEmpty(t, buf)

	row, err := Decode(layout, buf)
	require.NoError(t, err)
	require.Equal(t, values, row)
}

func TestEncodeDecode_Nulls(t *testing.T) {
	layout := makeTestLayout()

	values := []*string{s("1"), s("NULL"), s("0.0"), nil, nil}
	buf, err := Encode(layout, values)
	require.NoError(t, err)

	// ncols header + one nullmap byte with bits 3 and 4 set
	require.Equal(t, byte(5), buf[0])
	require.Equal(t, byte(0b11000), buf[2])

	row, err := Decode(layout, buf)
	require.NoError(t, err)
	require.Nil(t, row[3])
	require.Nil(t, row[4])
	// the literal text "NULL" is a value, not an absent one
	require.Equal(t, "NULL", *row[1])
}

func TestEncode_Errors(t *testing.T) {
	layout := makeTestLayout()

	_, err := Encode(layout, []*string{s("1")})
	require.ErrorIs(t, err, ErrSchemaMismatch)

	_, err = Encode(layout, []*string{nil, s("a"), s("1.0"), nil, nil})
	require.ErrorIs(t, err, ErrNullValue)
}

func TestDecode_Errors(t *testing.T) {
	layout := makeTestLayout()
	buf, err := Encode(layout, []*string{s("1"), s(strings.Repeat("x", 300)), s("1.0"), nil, nil})
	require.NoError(t, err)

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, 1, 2, 5, len(buf) - 1} {
			_, err := Decode(layout, buf[:n])
			require.Error(t, err, n)
		}
		_, err := Decode(layout, buf[:len(buf)-1])
		require.ErrorIs(t, err, ErrBadBuffer)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := Decode(layout, append(append([]byte{}, buf...), 0))
		require.ErrorIs(t, err, ErrBadBuffer)
	})

	t.Run("null in required column", func(t *testing.T) {
		bad := append([]byte{}, buf...)
		bad[2] |= 1
		_, err := Decode(layout, bad)
		require.ErrorIs(t, err, ErrNullValue)
	})

	t.Run("column count", func(t *testing.T) {
		short := Layout{Cols: layout.Cols[:4]}
		_, err := Decode(short, buf)
		require.ErrorIs(t, err, ErrSchemaMismatch)
	})
}

func TestDecode_DoesNotAlias(t *testing.T) {
	layout := Layout{Cols: []Column{{Name: "a"}}}
	buf, err := Encode(layout, []*string{s("abc")})
	require.NoError(t, err)

	row, err := Decode(layout, buf)
	require.NoError(t, err)
	buf[len(buf)-1] = 'z'
	require.Equal(t, "abc", *row[0])
}
