// Package reflected is the top-level facade: field descriptors, record
// schemas built from typed bindings, canonical string codecs and random
// record generation.
package reflected

import (
	"sync"

	"github.com/tuannm99/reflected/internal/codec"
	"github.com/tuannm99/reflected/internal/fieldtype"
	"github.com/tuannm99/reflected/internal/random"
	"github.com/tuannm99/reflected/internal/record"
)

type (
	Type            = fieldtype.Type
	Codec[V any]    = codec.Codec[V]
	DecodeError     = codec.DecodeError
	Field[R any]    = record.Field[R]
	Binding[R any]  = record.Binding[R]
	Schema[R any]   = record.Schema[R]
	Instance[R any] = record.Instance[R]
	Mismatch        = record.Mismatch
	MismatchError   = record.MismatchError
	Generator       = random.Generator
	GeneratorConfig = random.Config
	GeneratorOption = random.Option
)

// Null is the canonical string of an absent optional value.
const Null = codec.Null

var (
	Float    = fieldtype.Float
	Integer  = fieldtype.Integer
	Text     = fieldtype.Text
	Date     = fieldtype.Date
	DateTime = fieldtype.DateTime
	Decimal  = fieldtype.Decimal
	Bool     = fieldtype.Bool
	Duration = fieldtype.Duration
	Enum     = fieldtype.Enum
)

var (
	ErrUnknownField     = record.ErrUnknownField
	ErrForeignField     = record.ErrForeignField
	ErrUnsupportedField = record.ErrUnsupportedField
	ErrNullValue        = record.ErrNullValue
)

func Optional(t Type) Type { return fieldtype.Optional(t) }

func Bind[R, V any](name string, c Codec[V], slot func(*R) *V) Binding[R] {
	return record.Bind(name, c, slot)
}

func BindOptional[R, V any](name string, c Codec[V], slot func(*R) **V) Binding[R] {
	return record.BindOptional(name, c, slot)
}

func BindEnum[R any, V comparable](name, typeName string, slot func(*R) *V) Binding[R] {
	return record.BindEnum(name, typeName, slot)
}

func NewSchema[R any](typeName string, bindings ...Binding[R]) (*Schema[R], error) {
	return record.NewSchema(typeName, bindings...)
}

func MustSchema[R any](typeName string, bindings ...Binding[R]) *Schema[R] {
	return record.MustSchema(typeName, bindings...)
}

func NewGenerator(opts ...GeneratorOption) *Generator { return random.New(opts...) }

func WithGeneratorConfig(c GeneratorConfig) GeneratorOption { return random.WithConfig(c) }

// ---- Default generator ----

var (
	genMu sync.Mutex
	gen   = random.New()
)

// SetRandomGenerator replaces the generator used by Random.
func SetRandomGenerator(g *Generator) {
	genMu.Lock()
	defer genMu.Unlock()
	gen = g
}

// Random returns a new record of s with every codec field filled with a
// random valid value. It is safe for concurrent use.
func Random[R any](s *Schema[R]) (*R, error) {
	genMu.Lock()
	defer genMu.Unlock()
	return random.Make(gen, s)
}

// RandomValue returns a random canonical string for f, nil for an absent
// optional.
func RandomValue[R any](f Field[R]) *string {
	genMu.Lock()
	defer genMu.Unlock()
	return random.Value(gen, f)
}
