package record

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultFloatTolerance is the absolute difference under which two float
// fields compare equal.
const DefaultFloatTolerance = 0.001

var (
	ErrUnknownField     = errors.New("record: unknown field")
	ErrForeignField     = errors.New("record: field does not belong to schema")
	ErrUnsupportedField = errors.New("record: field has no canonical string form")
	ErrNullValue        = errors.New("record: null value for non-optional field")
	ErrDuplicateField   = errors.New("record: duplicate field")
	ErrEmptyName        = errors.New("record: empty name")
)

type column[R any] struct {
	field Field[R]
	b     Binding[R]
}

// Schema is the static field table of record type R: descriptors in
// declaration order plus the dispatch closures behind GetValue/SetValue.
// A Schema is immutable once built; With* methods return modified copies.
type Schema[R any] struct {
	typeName string
	fields   []Field[R]
	cols     []column[R]
	byName   map[string]int
	id       int // index of the "id" field, -1 if none

	factory   func() *R
	tolerance float64
}

// NewSchema builds the table for typeName from bindings, keeping their order.
func NewSchema[R any](typeName string, bindings ...Binding[R]) (*Schema[R], error) {
	if typeName == "" {
		return nil, fmt.Errorf("%w: type name", ErrEmptyName)
	}

	s := &Schema[R]{
		typeName:  typeName,
		fields:    make([]Field[R], 0, len(bindings)),
		cols:      make([]column[R], 0, len(bindings)),
		byName:    make(map[string]int, len(bindings)),
		id:        -1,
		tolerance: DefaultFloatTolerance,
	}

	for _, b := range bindings {
		if b.name == "" {
			return nil, fmt.Errorf("%w: field #%d of %s", ErrEmptyName, len(s.fields), typeName)
		}
		if _, dup := s.byName[b.name]; dup {
			return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateField, typeName, b.name)
		}

		f := Field[R]{
			Name:       b.name,
			Type:       b.tp,
			TypeName:   b.typeName,
			ParentName: typeName,
			Optional:   b.tp.IsOptional(),
		}
		idx := len(s.fields)
		s.byName[b.name] = idx
		s.fields = append(s.fields, f)
		s.cols = append(s.cols, column[R]{field: f, b: b})
		if f.IsID() {
			s.id = idx
		}
	}
	return s, nil
}

// MustSchema is NewSchema for package-level schema variables.
func MustSchema[R any](typeName string, bindings ...Binding[R]) *Schema[R] {
	s, err := NewSchema(typeName, bindings...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithFactory returns a copy of s whose New uses fn. Dynamic records that need
// per-instance setup (see schemadef) install one.
func (s *Schema[R]) WithFactory(fn func() *R) *Schema[R] {
	cp := *s
	cp.factory = fn
	return &cp
}

// WithFloatTolerance returns a copy of s comparing floats within tol.
func (s *Schema[R]) WithFloatTolerance(tol float64) *Schema[R] {
	cp := *s
	cp.tolerance = tol
	return &cp
}

func (s *Schema[R]) TypeName() string        { return s.typeName }
func (s *Schema[R]) FloatTolerance() float64 { return s.tolerance }
func (s *Schema[R]) Len() int                { return len(s.fields) }
func (s *Schema[R]) Field(i int) Field[R]    { return s.fields[i] }

// Fields returns the descriptors in declaration order. The slice is a copy.
func (s *Schema[R]) Fields() []Field[R] { return slices.Clone(s.fields) }

// New returns a zero record.
func (s *Schema[R]) New() *R {
	if s.factory != nil {
		return s.factory()
	}
	return new(R)
}

// IDField returns the primary key descriptor, if the type has one.
func (s *Schema[R]) IDField() (Field[R], bool) {
	if s.id < 0 {
		return Field[R]{}, false
	}
	return s.fields[s.id], true
}

func (s *Schema[R]) LookupField(name string) (Field[R], bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field[R]{}, false
	}
	return s.fields[i], true
}

// FieldByName panics with ErrUnknownField when name is not declared.
func (s *Schema[R]) FieldByName(name string) Field[R] {
	f, ok := s.LookupField(name)
	if !ok {
		panic(fmt.Errorf("%w: %s.%s", ErrUnknownField, s.typeName, name))
	}
	return f
}

// ---- Dispatch ----

func (s *Schema[R]) column(f Field[R]) *column[R] {
	i, ok := s.byName[f.Name]
	if !ok || s.cols[i].field != f {
		panic(fmt.Errorf("%w: %s is not a field of %s", ErrForeignField, f, s.typeName))
	}
	return &s.cols[i]
}

func (s *Schema[R]) codecColumn(f Field[R]) *column[R] {
	c := s.column(f)
	if c.b.get == nil {
		panic(fmt.Errorf("%w: %s", ErrUnsupportedField, f))
	}
	return c
}

// GetValue returns the canonical string of field f on rec. Absent optional
// values read as "NULL".
func (s *Schema[R]) GetValue(rec *R, f Field[R]) string {
	return s.codecColumn(f).b.get(rec)
}

// SetValue decodes v into field f of rec. A nil v clears an optional field.
// On a decode error rec is left unchanged.
func (s *Schema[R]) SetValue(rec *R, f Field[R], v *string) error {
	c := s.codecColumn(f)
	if v == nil && !f.Optional {
		panic(fmt.Errorf("%w: %s", ErrNullValue, f))
	}
	if err := c.b.set(rec, v); err != nil {
		return fmt.Errorf("record: set %s: %w", f, err)
	}
	return nil
}

func (s *Schema[R]) SetString(rec *R, f Field[R], v string) error {
	return s.SetValue(rec, f, &v)
}

func (s *Schema[R]) SetNull(rec *R, f Field[R]) error {
	return s.SetValue(rec, f, nil)
}

func (s *Schema[R]) ValueByName(rec *R, name string) string {
	return s.GetValue(rec, s.FieldByName(name))
}

func (s *Schema[R]) SetValueByName(rec *R, name string, v *string) error {
	return s.SetValue(rec, s.FieldByName(name), v)
}

// Format renders any field for display: the canonical string for codec
// fields, fmt.Sprint of the value for enum fields.
func (s *Schema[R]) Format(rec *R, f Field[R]) string {
	c := s.column(f)
	if c.b.get == nil {
		return c.b.show(rec)
	}
	return c.b.get(rec)
}

// Raw returns the Go value stored in field f; nil for an absent optional.
func (s *Schema[R]) Raw(rec *R, f Field[R]) any {
	return s.column(f).b.raw(rec)
}
