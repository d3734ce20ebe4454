package codec

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/reflected/internal/fieldtype"
)

func TestText_Identity(t *testing.T) {
	c := Text()
	require.Equal(t, fieldtype.Text, c.Type())
	require.Equal(t, "string", c.TypeName())

	for _, s := range []string{"", "peter", "NULL", "with \"quotes\"\nand newline", "🔑 unicode"} {
		require.Equal(t, s, c.Encode(s))
		v, err := c.Decode(s)
		require.NoError(t, err)
		require.Equal(t, s, v)
	}
}

type nickname string

func TestTextOf_NamedType(t *testing.T) {
	c := TextOf[nickname]()
	require.Equal(t, "codec.nickname", c.TypeName())
	v, err := c.Decode("pete")
	require.NoError(t, err)
	require.Equal(t, nickname("pete"), v)
}

func TestInt_Encode(t *testing.T) {
	require.Equal(t, "0", Int[int]().Encode(0))
	require.Equal(t, "17", Int[int16]().Encode(17))
	require.Equal(t, "-128", Int[int8]().Encode(math.MinInt8))
	require.Equal(t, "18446744073709551615", Int[uint64]().Encode(math.MaxUint64))
	require.Equal(t, "uint", Int[uint]().TypeName())
	require.Equal(t, fieldtype.Integer, Int[uint32]().Type())
}

func TestInt_Decode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		c := Int[int64]()
		for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
			got, err := c.Decode(c.Encode(v))
			require.NoError(t, err)
			require.Equal(t, v, got)
		}
	})

	t.Run("leading zeros normalise", func(t *testing.T) {
		c := Int[int]()
		v, err := c.Decode("007")
		require.NoError(t, err)
		require.Equal(t, "7", c.Encode(v))
	})

	t.Run("out of range for bit size", func(t *testing.T) {
		_, err := Int[int8]().Decode("300")
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		require.Equal(t, "int8", de.Type)
		require.Equal(t, "300", de.Input)
		require.ErrorIs(t, err, strconv.ErrRange)
	})

	t.Run("negative unsigned", func(t *testing.T) {
		_, err := Int[uint]().Decode("-1")
		require.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Int[int32]().Decode("12a")
		require.ErrorIs(t, err, strconv.ErrSyntax)
		require.EqualError(t, err, `codec: cannot decode "12a" as int32: invalid syntax`)
	})
}

func TestFloat_CanonicalForm(t *testing.T) {
	f32 := Float[float32]()
	f64 := Float[float64]()

	require.Equal(t, "5.0", f32.Encode(5.0))
	require.Equal(t, "1.0", f64.Encode(1.0))
	require.Equal(t, "0.0", f64.Encode(0))
	require.Equal(t, "-3.0", f64.Encode(-3))
	require.Equal(t, "0.42332", f32.Encode(0.42332))
	require.Equal(t, "0.438297489", f64.Encode(0.438297489))
	require.Equal(t, "6.45", f64.Encode(6.45))
	require.Equal(t, "100000000000000000000.0", f64.Encode(1e20))
	require.Equal(t, "+Inf", f64.Encode(math.Inf(1)))
	require.Equal(t, "float32", f32.TypeName())
	require.Equal(t, fieldtype.Float, f32.Type())
}

func TestFloat_Decode(t *testing.T) {
	f64 := Float[float64]()
	for _, s := range []string{"5.467", "6.45", "1.0", "0.438297489", "-0.5"} {
		v, err := f64.Decode(s)
		require.NoError(t, err)
		require.Equal(t, s, f64.Encode(v))
	}

	// Integer-looking input is accepted and re-encoded as a float.
	v, err := f64.Decode("12")
	require.NoError(t, err)
	require.Equal(t, "12.0", f64.Encode(v))

	_, err = f64.Decode("six")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "float64", de.Type)

	_, err = Float[float32]().Decode("1e40")
	require.ErrorIs(t, err, strconv.ErrRange)

	for _, bad := range []string{"0x1p-2", "0X10", "1_000.5", "_1"} {
		_, err := f64.Decode(bad)
		require.ErrorIs(t, err, strconv.ErrSyntax, bad)
	}
	v, err = f64.Decode("1e3")
	require.NoError(t, err)
	require.Equal(t, "1000.0", f64.Encode(v))
}

func TestDecimal(t *testing.T) {
	c := Decimal()
	require.Equal(t, fieldtype.Decimal, c.Type())
	require.Equal(t, "decimal.Decimal", c.TypeName())

	for _, s := range []string{"100.25", "25.45", "0", "-3.14159", "12345678901234567890.123456789", "1.50", "100.250", "0.00", "-2.000"} {
		v, err := c.Decode(s)
		require.NoError(t, err)
		require.Equal(t, s, c.Encode(v))
	}

	d := decimal.New(12345, -2)
	got, err := c.Decode(c.Encode(d))
	require.NoError(t, err)
	require.True(t, d.Equal(got))

	// trailing zeros are part of the value's scale
	d = decimal.New(150, -2)
	require.Equal(t, "1.50", c.Encode(d))
	got, err = c.Decode(c.Encode(d))
	require.NoError(t, err)
	require.Equal(t, d.Exponent(), got.Exponent())
	require.Zero(t, d.Coefficient().Cmp(got.Coefficient()))

	require.Equal(t, "500", c.Encode(decimal.New(5, 2)))

	_, err = c.Decode("12,5")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "12,5", de.Input)
}

func TestBool(t *testing.T) {
	c := Bool()
	require.Equal(t, "1", c.Encode(true))
	require.Equal(t, "0", c.Encode(false))

	v, err := c.Decode("1")
	require.NoError(t, err)
	require.True(t, v)

	v, err = c.Decode("0")
	require.NoError(t, err)
	require.False(t, v)

	for _, bad := range []string{"true", "false", "t", "", "2", " 1"} {
		_, err := c.Decode(bad)
		require.ErrorIs(t, err, ErrInvalidBool, bad)
	}
}

func TestDate(t *testing.T) {
	c := Date()
	require.Equal(t, fieldtype.Date, c.Type())
	require.Equal(t, fieldtype.DateTime, DateTime().Type())
	require.Equal(t, "time.Time", c.TypeName())

	ts := time.Date(2024, 3, 9, 7, 5, 3, 42, time.UTC)
	require.Equal(t, "2024-03-09 07:05:03.000000042", c.Encode(ts))

	got, err := c.Decode("2024-03-09 07:05:03.000000042")
	require.NoError(t, err)
	require.True(t, ts.Equal(got))

	// Non-UTC values are written as their UTC instant.
	zone := time.FixedZone("X", 2*3600)
	require.Equal(t, "2024-03-09 05:05:03.000000000", c.Encode(time.Date(2024, 3, 9, 7, 5, 3, 0, zone)))

	now := time.Now()
	back, err := c.Decode(c.Encode(now))
	require.NoError(t, err)
	require.True(t, now.Equal(back))

	for _, bad := range []string{"2024-03-09", "2024-03-09 07:05:03", "2024-03-09T07:05:03.000000000", "2024-03-09 07:05:03.5"} {
		_, err := c.Decode(bad)
		var de *DecodeError
		require.ErrorAs(t, err, &de, bad)
	}
}

func TestDate_WideYears(t *testing.T) {
	c := Date()
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(12000, 1, 1, 0, 0, 0, 0, time.UTC), "12000-01-01 00:00:00.000000000"},
		{time.Date(-1, 6, 30, 12, 0, 1, 7, time.UTC), "-0001-06-30 12:00:01.000000007"},
		{time.Date(-12345, 2, 3, 4, 5, 6, 0, time.UTC), "-12345-02-03 04:05:06.000000000"},
		{time.Date(10400, 2, 29, 0, 0, 0, 0, time.UTC), "10400-02-29 00:00:00.000000000"},
		{time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC), "0000-01-01 00:00:00.000000000"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			require.Equal(t, tc.want, c.Encode(tc.in))
			got, err := c.Decode(tc.want)
			require.NoError(t, err)
			require.True(t, tc.in.Equal(got), got)
		})
	}

	for _, bad := range []string{
		"012000-01-01 00:00:00.000000000",
		"10001-02-29 00:00:00.000000000",
		"1x000-01-01 00:00:00.000000000",
		"-001-01-01 00:00:00.000000000",
		"12000-01-01",
	} {
		_, err := c.Decode(bad)
		var de *DecodeError
		require.ErrorAs(t, err, &de, bad)
	}
}

func TestDuration(t *testing.T) {
	c := Duration()
	require.Equal(t, "200", c.Encode(200*time.Second))
	require.Equal(t, "325", c.Encode(5*time.Minute+25*time.Second+999*time.Millisecond))
	require.Equal(t, "-2", c.Encode(-2500*time.Millisecond))

	v, err := c.Decode("555")
	require.NoError(t, err)
	require.Equal(t, 555*time.Second, v)
	require.Equal(t, "555", c.Encode(v))

	_, err = c.Decode("1.5")
	require.ErrorIs(t, err, strconv.ErrSyntax)

	_, err = c.Decode(strconv.FormatInt(maxDurationSeconds+1, 10))
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = c.Decode(strconv.FormatInt(minDurationSeconds-1, 10))
	require.ErrorIs(t, err, ErrOutOfRange)

	v, err = c.Decode(strconv.FormatInt(minDurationSeconds, 10))
	require.NoError(t, err)
	require.Less(t, v, time.Duration(0))
}

func TestOptional(t *testing.T) {
	c := Int[uint]()
	require.Equal(t, Null, EncodeOptional(c, nil))

	n := uint(222)
	require.Equal(t, "222", EncodeOptional(c, &n))

	got, err := DecodeOptional(c, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	s := "555"
	got, err = DecodeOptional(c, &s)
	require.NoError(t, err)
	require.Equal(t, uint(555), *got)

	bad := "x"
	got, err = DecodeOptional(c, &bad)
	require.Error(t, err)
	require.Nil(t, got)

	// "NULL" is only an output sentinel; a text field takes it literally.
	null := Null
	txt, err := DecodeOptional(Text(), &null)
	require.NoError(t, err)
	require.Equal(t, "NULL", *txt)
}
