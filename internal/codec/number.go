package codec

import (
	"math"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/tuannm99/reflected/internal/fieldtype"
)

// ---- Integer ----

type intCodec[V constraints.Integer] struct {
	name   string
	bits   int
	signed bool
}

// Int returns the codec for any Go integer type. Decoding honours the bit
// size and signedness of V, so Int[int8] rejects "300" and Int[uint] rejects "-1".
func Int[V constraints.Integer]() Codec[V] {
	var zero V
	return intCodec[V]{
		name:   typeNameOf[V](),
		bits:   int(unsafe.Sizeof(zero)) * 8,
		signed: ^zero < 0,
	}
}

func (c intCodec[V]) Type() fieldtype.Type { return fieldtype.Integer }
func (c intCodec[V]) TypeName() string     { return c.name }

func (c intCodec[V]) Encode(v V) string {
	if c.signed {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

func (c intCodec[V]) Decode(s string) (V, error) {
	if c.signed {
		n, err := strconv.ParseInt(s, 10, c.bits)
		if err != nil {
			return 0, decodeErr(c.name, s, err)
		}
		return V(n), nil
	}
	n, err := strconv.ParseUint(s, 10, c.bits)
	if err != nil {
		return 0, decodeErr(c.name, s, err)
	}
	return V(n), nil
}

// ---- Float ----

type floatCodec[V constraints.Float] struct {
	name string
	bits int
}

// Float returns the codec for float32/float64 (and named float types).
func Float[V constraints.Float]() Codec[V] {
	var zero V
	return floatCodec[V]{
		name: typeNameOf[V](),
		bits: int(unsafe.Sizeof(zero)) * 8,
	}
}

func (c floatCodec[V]) Type() fieldtype.Type { return fieldtype.Float }
func (c floatCodec[V]) TypeName() string     { return c.name }

// Encode uses the shortest representation that round-trips at the bit size
// of V, and appends ".0" to integral values so the string reads as a float.
func (c floatCodec[V]) Encode(v V) string {
	f := float64(v)
	s := strconv.FormatFloat(f, 'f', -1, c.bits)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if f == math.Trunc(f) {
		s += ".0"
	}
	return s
}

// Decode accepts decimal notation only; hex floats and digit separators,
// which strconv also parses, are rejected.
func (c floatCodec[V]) Decode(s string) (V, error) {
	if strings.ContainsAny(s, "xX_") {
		return 0, decodeErr(c.name, s, strconv.ErrSyntax)
	}
	f, err := strconv.ParseFloat(s, c.bits)
	if err != nil {
		return 0, decodeErr(c.name, s, err)
	}
	return V(f), nil
}
