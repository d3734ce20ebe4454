package record

// BindArgs returns the raw values of rec in declaration order, ready for
// database/sql Exec(query, args...). The id column, enum fields and fields
// declared as uint or uintptr are left out; absent optionals yield nil.
func (s *Schema[R]) BindArgs(rec *R) []any {
	args := make([]any, 0, len(s.cols))
	for _, c := range s.cols {
		if !bindable(c.field) {
			continue
		}
		args = append(args, c.b.raw(rec))
	}
	return args
}

// BindFields lists the descriptors BindArgs emits, in the same order.
func (s *Schema[R]) BindFields() []Field[R] {
	out := make([]Field[R], 0, len(s.fields))
	for _, f := range s.fields {
		if bindable(f) {
			out = append(out, f)
		}
	}
	return out
}

func bindable[R any](f Field[R]) bool {
	if f.IsID() || f.IsCustom() {
		return false
	}
	switch f.TypeName {
	case "uint", "uintptr":
		return false
	}
	return true
}
