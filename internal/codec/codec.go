// Package codec implements the canonical string form of every field type.
//
// Each codec is bidirectional: Decode(Encode(v)) yields v (floats within
// rounding) and Encode(Decode(s)) yields s for any canonical s. The formats
// are part of the wire contract and must not change:
//
//	Text       raw string, no escaping
//	Integer    base 10, no leading zeros
//	Float      shortest decimal; "5.0" when the fraction is zero
//	Decimal    exact fixed point, scale kept ("100.25", "1.50")
//	Date       "2006-01-02 15:04:05.000000000", UTC
//	Bool       "1" / "0"
//	Duration   whole seconds ("200")
//	Optional   the wrapped rule, or "NULL" when absent
//
// Enum values have no canonical form here; the record type converts them.
package codec

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tuannm99/reflected/internal/fieldtype"
)

// Null is the canonical form of an absent optional value.
const Null = "NULL"

var (
	ErrInvalidBool = errors.New("codec: bool must be \"0\" or \"1\"")
	ErrOutOfRange  = errors.New("codec: value out of range")
	ErrUnsupported = errors.New("codec: type has no canonical string form")
)

// Codec converts values of one Go type to and from their canonical string.
type Codec[V any] interface {
	// Type is the non-optional taxonomy tag served by this codec.
	Type() fieldtype.Type
	// TypeName is the declared Go type name, e.g. "int16" or "time.Time".
	TypeName() string
	Encode(v V) string
	Decode(s string) (V, error)
}

// DecodeError reports a string that cannot be parsed as the target type.
type DecodeError struct {
	Type  string
	Input string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("codec: cannot decode %q as %s: %v", e.Input, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErr(typeName, input string, err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		err = ne.Err
	}
	return &DecodeError{Type: typeName, Input: input, Err: err}
}

// EncodeOptional encodes *v, or Null when v is nil.
func EncodeOptional[V any](c Codec[V], v *V) string {
	if v == nil {
		return Null
	}
	return c.Encode(*v)
}

// DecodeOptional decodes a present string and wraps it; a nil input is an
// absent value. The literal "NULL" is not special here.
func DecodeOptional[V any](c Codec[V], s *string) (*V, error) {
	if s == nil {
		return nil, nil
	}
	v, err := c.Decode(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func typeNameOf[V any]() string {
	var zero V
	return fmt.Sprintf("%T", zero)
}
