// Package schemadef reads record descriptions from YAML and builds
// record schemas for rows whose fields are only known at run time.
package schemadef

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/tuannm99/reflected/internal/fieldtype"
	"github.com/tuannm99/reflected/internal/record"
)

var (
	ErrNoName         = errors.New("schemadef: missing name")
	ErrNoFields       = errors.New("schemadef: no fields")
	ErrDuplicateField = errors.New("schemadef: duplicate field")
	ErrNoType         = errors.New("schemadef: missing field type")
	ErrOptionalEnum   = errors.New("schemadef: enum field cannot be optional")
	ErrValuesOnScalar = errors.New("schemadef: values given for non-enum field")
	ErrUnknownValue   = errors.New("schemadef: value not in enum")
)

// FieldDesc declares one field: its name, declared Go type name and whether
// it may be absent. Type names outside the closed taxonomy are enums; Values
// optionally restricts what such a field accepts.
type FieldDesc struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Optional bool     `yaml:"optional,omitempty"`
	Values   []string `yaml:"values,omitempty"`
}

func (f FieldDesc) Kind() fieldtype.Type { return fieldtype.Classify(f.Type) }

// Description is the YAML form of a record type.
//
//	name: User
//	rename: users          # optional; the schema type name
//	fields:
//	  - {name: id, type: int64}
//	  - {name: nick, type: string, optional: true}
//	  - {name: role, type: Role, values: [admin, member]}
type Description struct {
	Name   string      `yaml:"name"`
	Rename string      `yaml:"rename,omitempty"`
	Fields []FieldDesc `yaml:"fields"`
}

// TypeName is the name records are reported and stored under.
func (d *Description) TypeName() string {
	if d.Rename != "" {
		return d.Rename
	}
	return d.Name
}

func (d *Description) Validate() error {
	if d.Name == "" {
		return ErrNoName
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFields, d.Name)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field #%d of %s", ErrNoName, i, d.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, d.Name, f.Name)
		}
		seen[f.Name] = struct{}{}

		if f.Type == "" {
			return fmt.Errorf("%w: %s.%s", ErrNoType, d.Name, f.Name)
		}
		enum := f.Kind().IsEnum()
		if enum && f.Optional {
			return fmt.Errorf("%w: %s.%s", ErrOptionalEnum, d.Name, f.Name)
		}
		if !enum && len(f.Values) > 0 {
			return fmt.Errorf("%w: %s.%s", ErrValuesOnScalar, d.Name, f.Name)
		}
	}
	return nil
}

// Index returns the position of field name, or -1.
func (d *Description) Index(name string) int {
	return slices.IndexFunc(d.Fields, func(f FieldDesc) bool { return f.Name == name })
}

func Parse(data []byte) (*Description, error) {
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("schemadef: parse: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemadef: read %s: %w", path, err)
	}
	return Parse(data)
}

func (d *Description) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// FromSchema describes an existing schema. Enum values are not known to a
// schema and are left empty.
func FromSchema[R any](s *record.Schema[R]) *Description {
	d := &Description{Name: s.TypeName()}
	for _, f := range s.Fields() {
		d.Fields = append(d.Fields, FieldDesc{Name: f.Name, Type: f.TypeName, Optional: f.Optional})
	}
	return d
}
