package record

import (
	"strings"

	"github.com/tuannm99/reflected/internal/fieldtype"
)

// IDName is the reserved primary key field name.
const IDName = "id"

// foreignKeyMarker is a naming convention, not a type rule: any field whose
// name contains it is treated as a reference to another record.
const foreignKeyMarker = "_id"

// Field describes one field of record type R. Fields are value objects: two
// descriptors are equal iff every member is equal, so they work as map keys.
// The type parameter keeps a Field[User] from being passed to a Schema[Dog].
type Field[R any] struct {
	Name       string
	Type       fieldtype.Type
	TypeName   string // declared Go type, e.g. "int16"
	ParentName string // owning record type name
	Optional   bool
}

func (f Field[R]) IsID() bool { return f.Name == IDName }

func (f Field[R]) IsForeignKey() bool { return strings.Contains(f.Name, foreignKeyMarker) }

// IsCustom reports whether the field has no canonical codec (enums and other
// record-owned types).
func (f Field[R]) IsCustom() bool { return f.Type.IsEnum() }

func (f Field[R]) IsEnum() bool { return f.Type.IsEnum() }

// IsSimple reports plain data fields: not the id, not a foreign key, not custom.
func (f Field[R]) IsSimple() bool { return !f.IsID() && !f.IsCustom() && !f.IsForeignKey() }

func (f Field[R]) IsOptional() bool { return f.Type.IsOptional() }
func (f Field[R]) IsText() bool     { return f.Type.IsText() }
func (f Field[R]) IsNumber() bool   { return f.Type.IsNumber() }
func (f Field[R]) IsInteger() bool  { return f.Type.IsInteger() }
func (f Field[R]) IsFloat() bool    { return f.Type.IsFloat() }
func (f Field[R]) IsDate() bool     { return f.Type.IsDate() }
func (f Field[R]) IsDateTime() bool { return f.Type.IsDateTime() }
func (f Field[R]) IsDecimal() bool  { return f.Type.IsDecimal() }
func (f Field[R]) IsBool() bool     { return f.Type.IsBool() }
func (f Field[R]) IsDuration() bool { return f.Type.IsDuration() }

// NonOptional returns a copy of f with the Optional wrapper removed.
func (f Field[R]) NonOptional() Field[R] {
	f.Type = f.Type.Base()
	f.Optional = false
	return f
}

func (f Field[R]) String() string { return f.ParentName + "." + f.Name }
