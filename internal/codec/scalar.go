package codec

import (
	"github.com/shopspring/decimal"

	"github.com/tuannm99/reflected/internal/fieldtype"
)

// ---- Text ----

type textCodec[V ~string] struct{ name string }

// Text returns the codec for plain string fields.
func Text() Codec[string] { return TextOf[string]() }

// TextOf returns the Text codec for a named string type.
func TextOf[V ~string]() Codec[V] { return textCodec[V]{name: typeNameOf[V]()} }

func (c textCodec[V]) Type() fieldtype.Type { return fieldtype.Text }
func (c textCodec[V]) TypeName() string     { return c.name }
func (c textCodec[V]) Encode(v V) string    { return string(v) }

func (c textCodec[V]) Decode(s string) (V, error) { return V(s), nil }

// ---- Bool ----

type boolCodec[V ~bool] struct{ name string }

func Bool() Codec[bool] { return BoolOf[bool]() }

func BoolOf[V ~bool]() Codec[V] { return boolCodec[V]{name: typeNameOf[V]()} }

func (c boolCodec[V]) Type() fieldtype.Type { return fieldtype.Bool }
func (c boolCodec[V]) TypeName() string     { return c.name }

func (c boolCodec[V]) Encode(v V) string {
	if bool(v) {
		return "1"
	}
	return "0"
}

// Decode accepts only "0" and "1"; "true", "t", "yes" are errors.
func (c boolCodec[V]) Decode(s string) (V, error) {
	switch s {
	case "0":
		return V(false), nil
	case "1":
		return V(true), nil
	}
	return V(false), decodeErr(c.name, s, ErrInvalidBool)
}

// ---- Decimal ----

type decimalCodec struct{}

func Decimal() Codec[decimal.Decimal] { return decimalCodec{} }

func (decimalCodec) Type() fieldtype.Type { return fieldtype.Decimal }
func (decimalCodec) TypeName() string     { return "decimal.Decimal" }

// Encode keeps the scale of v: "1.50" stays "1.50".
func (decimalCodec) Encode(v decimal.Decimal) string {
	if exp := v.Exponent(); exp < 0 {
		return v.StringFixed(-exp)
	}
	return v.String()
}

func (decimalCodec) Decode(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, decodeErr("decimal.Decimal", s, err)
	}
	return d, nil
}
