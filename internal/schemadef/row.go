package schemadef

import (
	"fmt"
	"slices"

	"github.com/tuannm99/reflected/internal/codec"
	"github.com/tuannm99/reflected/internal/record"
)

// Row is a record whose layout comes from a Description. Each cell holds a
// typed pointer allocated by the schema factory, so a Row must be created
// with Schema.New (or Model.New), never as a zero value.
type Row struct {
	cells []any
}

func (r *Row) Len() int { return len(r.cells) }

func slot[V any](i int) func(*Row) *V {
	return func(r *Row) *V { return r.cells[i].(*V) }
}

// Model is a built description: the schema plus the enum rules the schema
// cannot express.
type Model struct {
	Desc   *Description
	Schema *record.Schema[Row]
}

// Build validates d and compiles it into a schema over Row. Codec-backed
// fields get the same typed bindings as hand-written schemas; enum fields
// are stored as strings.
func Build(d *Description) (*Model, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	bindings := make([]record.Binding[Row], len(d.Fields))
	allocs := make([]func() any, len(d.Fields))
	for i, f := range d.Fields {
		bindings[i], allocs[i] = bind(i, f)
	}

	s, err := record.NewSchema(d.TypeName(), bindings...)
	if err != nil {
		return nil, fmt.Errorf("schemadef: build %s: %w", d.Name, err)
	}
	s = s.WithFactory(func() *Row {
		r := &Row{cells: make([]any, len(allocs))}
		for i, alloc := range allocs {
			r.cells[i] = alloc()
		}
		return r
	})
	return &Model{Desc: d, Schema: s}, nil
}

func bind(i int, f FieldDesc) (record.Binding[Row], func() any) {
	switch f.Type {
	case "string":
		return cell(i, f, codec.Text())
	case "bool":
		return cell(i, f, codec.Bool())
	case "int":
		return cell(i, f, codec.Int[int]())
	case "int8":
		return cell(i, f, codec.Int[int8]())
	case "int16":
		return cell(i, f, codec.Int[int16]())
	case "int32", "rune":
		return cell(i, f, codec.Int[int32]())
	case "int64":
		return cell(i, f, codec.Int[int64]())
	case "uint":
		return cell(i, f, codec.Int[uint]())
	case "uint8", "byte":
		return cell(i, f, codec.Int[uint8]())
	case "uint16":
		return cell(i, f, codec.Int[uint16]())
	case "uint32":
		return cell(i, f, codec.Int[uint32]())
	case "uint64":
		return cell(i, f, codec.Int[uint64]())
	case "uintptr":
		return cell(i, f, codec.Int[uintptr]())
	case "float32":
		return cell(i, f, codec.Float[float32]())
	case "float64":
		return cell(i, f, codec.Float[float64]())
	case "time.Time", "Time", "DateTime", "NaiveDateTime":
		return cell(i, f, codec.Date())
	case "time.Duration", "Duration":
		return cell(i, f, codec.Duration())
	case "decimal.Decimal", "Decimal":
		return cell(i, f, codec.Decimal())
	}

	def := ""
	if len(f.Values) > 0 {
		def = f.Values[0]
	}
	return record.BindEnum(f.Name, f.Type, slot[string](i)), func() any {
		v := def
		return &v
	}
}

func cell[V any](i int, f FieldDesc, c codec.Codec[V]) (record.Binding[Row], func() any) {
	if f.Optional {
		return record.BindOptional(f.Name, c, slot[*V](i)), func() any { return new(*V) }
	}
	return record.Bind(f.Name, c, slot[V](i)), func() any { return new(V) }
}

func (m *Model) New() *Row { return m.Schema.New() }

// Enum returns the value of enum field name.
func (m *Model) Enum(r *Row, name string) (string, error) {
	i, err := m.enumIndex(name)
	if err != nil {
		return "", err
	}
	return *r.cells[i].(*string), nil
}

// SetEnum assigns an enum field, checking v against the declared values
// when there are any.
func (m *Model) SetEnum(r *Row, name, v string) error {
	i, err := m.enumIndex(name)
	if err != nil {
		return err
	}
	if vals := m.Desc.Fields[i].Values; len(vals) > 0 && !slices.Contains(vals, v) {
		return fmt.Errorf("%w: %s.%s = %q", ErrUnknownValue, m.Desc.Name, name, v)
	}
	*r.cells[i].(*string) = v
	return nil
}

// Set assigns any field from its string form: enums through SetEnum, the
// rest through the schema codec. A nil v clears an optional field.
func (m *Model) Set(r *Row, name string, v *string) error {
	f, ok := m.Schema.LookupField(name)
	if !ok {
		return fmt.Errorf("%w: %s.%s", record.ErrUnknownField, m.Schema.TypeName(), name)
	}
	if f.IsEnum() {
		if v == nil {
			return fmt.Errorf("%w: %s", record.ErrNullValue, f)
		}
		return m.SetEnum(r, name, *v)
	}
	if v == nil && !f.Optional {
		return fmt.Errorf("%w: %s", record.ErrNullValue, f)
	}
	return m.Schema.SetValue(r, f, v)
}

func (m *Model) enumIndex(name string) (int, error) {
	i := m.Desc.Index(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %s.%s", record.ErrUnknownField, m.Schema.TypeName(), name)
	}
	if !m.Desc.Fields[i].Kind().IsEnum() {
		return 0, fmt.Errorf("%w: %s.%s is not an enum", record.ErrUnsupportedField, m.Schema.TypeName(), name)
	}
	return i, nil
}
