package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tuannm99/reflected/internal/codec"
)

// Mismatch is one differing field, both sides in canonical (or display) form.
type Mismatch struct {
	Field string
	Left  string
	Right string
}

// MismatchError lists every field on which two records differ.
type MismatchError struct {
	Type       string
	Mismatches []Mismatch
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "record: %s values differ:", e.Type)
	for i, m := range e.Mismatches {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, " %s: %q != %q", m.Field, m.Left, m.Right)
	}
	return sb.String()
}

// Fields returns the names of the differing fields.
func (e *MismatchError) Fields() []string {
	out := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		out[i] = m.Field
	}
	return out
}

// Compare checks a and b field by field. Float fields are equal within the
// schema's tolerance; other codec fields must have identical canonical
// strings; enum fields use ==. It returns nil or a *MismatchError.
func (s *Schema[R]) Compare(a, b *R) error {
	var diffs []Mismatch
	for _, c := range s.cols {
		if c.b.get == nil {
			if !c.b.same(a, b) {
				diffs = append(diffs, Mismatch{Field: c.field.Name, Left: c.b.show(a), Right: c.b.show(b)})
			}
			continue
		}

		l, r := c.b.get(a), c.b.get(b)
		if c.field.IsFloat() {
			if !floatsClose(l, r, s.tolerance) {
				diffs = append(diffs, Mismatch{Field: c.field.Name, Left: l, Right: r})
			}
			continue
		}
		if l != r {
			diffs = append(diffs, Mismatch{Field: c.field.Name, Left: l, Right: r})
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return &MismatchError{Type: s.typeName, Mismatches: diffs}
}

func (s *Schema[R]) Equal(a, b *R) bool { return s.Compare(a, b) == nil }

func floatsClose(l, r string, tol float64) bool {
	if l == r {
		return true
	}
	if l == codec.Null || r == codec.Null {
		return false
	}
	x, errX := strconv.ParseFloat(l, 64)
	y, errY := strconv.ParseFloat(r, 64)
	if errX != nil || errY != nil {
		return false
	}
	return math.Abs(x-y) <= tol
}
