package record

// Instance binds a schema to one record so callers can read and write fields
// by descriptor or by name without repeating both.
type Instance[R any] struct {
	schema *Schema[R]
	rec    *R
}

// Of wraps rec. The instance does not copy rec; writes go through to it.
func (s *Schema[R]) Of(rec *R) Instance[R] {
	return Instance[R]{schema: s, rec: rec}
}

func (i Instance[R]) Schema() *Schema[R] { return i.schema }
func (i Instance[R]) Record() *R         { return i.rec }
func (i Instance[R]) TypeName() string   { return i.schema.typeName }
func (i Instance[R]) Fields() []Field[R] { return i.schema.Fields() }

func (i Instance[R]) GetValue(f Field[R]) string { return i.schema.GetValue(i.rec, f) }

func (i Instance[R]) SetValue(f Field[R], v *string) error {
	return i.schema.SetValue(i.rec, f, v)
}

func (i Instance[R]) SetString(f Field[R], v string) error {
	return i.schema.SetString(i.rec, f, v)
}

func (i Instance[R]) SetNull(f Field[R]) error { return i.schema.SetNull(i.rec, f) }

func (i Instance[R]) ValueByName(name string) string {
	return i.schema.ValueByName(i.rec, name)
}

func (i Instance[R]) SetValueByName(name string, v *string) error {
	return i.schema.SetValueByName(i.rec, name, v)
}

func (i Instance[R]) Format(f Field[R]) string { return i.schema.Format(i.rec, f) }

// Values returns the canonical string of every codec field in declaration
// order, keyed by field name. Enum fields are skipped.
func (i Instance[R]) Values() map[string]string {
	out := make(map[string]string, len(i.schema.fields))
	for _, c := range i.schema.cols {
		if c.b.get == nil {
			continue
		}
		out[c.field.Name] = c.b.get(i.rec)
	}
	return out
}

func (i Instance[R]) Equal(other *R) bool { return i.schema.Equal(i.rec, other) }
