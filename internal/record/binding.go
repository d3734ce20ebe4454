package record

import (
	"fmt"

	"github.com/tuannm99/reflected/internal/codec"
	"github.com/tuannm99/reflected/internal/fieldtype"
)

// Binding ties one field name to a codec and to the storage slot on R that
// holds the value. NewSchema turns a list of bindings into the dispatch table.
type Binding[R any] struct {
	name     string
	tp       fieldtype.Type
	typeName string

	// nil for enum fields
	get func(*R) string
	set func(*R, *string) error

	raw func(*R) any

	// enum fields only
	same func(a, b *R) bool
	show func(*R) string
}

// Bind binds a required field stored at *slot(r).
func Bind[R, V any](name string, c codec.Codec[V], slot func(*R) *V) Binding[R] {
	return Binding[R]{
		name:     name,
		tp:       c.Type(),
		typeName: c.TypeName(),
		get:      func(r *R) string { return c.Encode(*slot(r)) },
		set: func(r *R, s *string) error {
			// decode first: a failed decode leaves the record untouched
			v, err := c.Decode(*s)
			if err != nil {
				return err
			}
			*slot(r) = v
			return nil
		},
		raw: func(r *R) any { return *slot(r) },
	}
}

// BindOptional binds an optional field stored as a pointer; nil is absent.
func BindOptional[R, V any](name string, c codec.Codec[V], slot func(*R) **V) Binding[R] {
	return Binding[R]{
		name:     name,
		tp:       fieldtype.Optional(c.Type()),
		typeName: c.TypeName(),
		get:      func(r *R) string { return codec.EncodeOptional(c, *slot(r)) },
		set: func(r *R, s *string) error {
			v, err := codec.DecodeOptional(c, s)
			if err != nil {
				return err
			}
			*slot(r) = v
			return nil
		},
		raw: func(r *R) any {
			if p := *slot(r); p != nil {
				return *p
			}
			return nil
		},
	}
}

// BindEnum binds a field whose string conversion belongs to the record type.
// It takes part in equality and database binding but not in GetValue/SetValue.
func BindEnum[R any, V comparable](name, typeName string, slot func(*R) *V) Binding[R] {
	return Binding[R]{
		name:     name,
		tp:       fieldtype.Enum,
		typeName: typeName,
		raw:      func(r *R) any { return *slot(r) },
		same:     func(a, b *R) bool { return *slot(a) == *slot(b) },
		show:     func(r *R) string { return fmt.Sprint(*slot(r)) },
	}
}
