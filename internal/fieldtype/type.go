package fieldtype

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the base tag of a field type.
type Kind uint8

const (
	KindFloat Kind = iota + 1
	KindInteger
	KindText
	KindDate
	KindDecimal
	KindBool
	KindEnum
	KindDuration
	KindDateTime
)

var kindNames = [...]string{
	KindFloat:    "Float",
	KindInteger:  "Integer",
	KindText:     "Text",
	KindDate:     "Date",
	KindDecimal:  "Decimal",
	KindBool:     "Bool",
	KindEnum:     "Enum",
	KindDuration: "Duration",
	KindDateTime: "DateTime",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

func (k Kind) valid() bool { return k >= KindFloat && k <= KindDateTime }

var (
	ErrDoubleOptional = errors.New("fieldtype: type is already optional")
	ErrOptionalEnum   = errors.New("fieldtype: enum type cannot be optional")
	ErrUnknownType    = errors.New("fieldtype: unknown type")
)

// Type is a base Kind, possibly wrapped once in Optional.
// The zero Type is invalid.
type Type struct {
	kind     Kind
	optional bool
}

var (
	Float    = Type{kind: KindFloat}
	Integer  = Type{kind: KindInteger}
	Text     = Type{kind: KindText}
	Date     = Type{kind: KindDate}
	Decimal  = Type{kind: KindDecimal}
	Bool     = Type{kind: KindBool}
	Enum     = Type{kind: KindEnum}
	Duration = Type{kind: KindDuration}
	DateTime = Type{kind: KindDateTime}
)

// Optional wraps a non-optional, non-enum type. Anything else is a programmer
// error and panics.
func Optional(t Type) Type {
	if t.optional {
		panic(fmt.Errorf("%w: %s", ErrDoubleOptional, t))
	}
	if !t.kind.valid() {
		panic(fmt.Errorf("%w: %s", ErrUnknownType, t))
	}
	if t.kind == KindEnum {
		panic(ErrOptionalEnum)
	}
	return Type{kind: t.kind, optional: true}
}

func (t Type) ToOptional() Type { return Optional(t) }

func (t Type) Kind() Kind { return t.kind }

func (t Type) Valid() bool { return t.kind.valid() }

func (t Type) IsOptional() bool { return t.optional }

// Base returns t without the Optional wrapper.
func (t Type) Base() Type { return Type{kind: t.kind} }

// Is reports whether t is target, or Optional(target).
func (t Type) Is(target Type) bool {
	if t == target {
		return true
	}
	return t.optional && !target.optional && t.kind == target.kind
}

func (t Type) IsFloat() bool    { return t.Is(Float) }
func (t Type) IsInteger() bool  { return t.Is(Integer) }
func (t Type) IsText() bool     { return t.Is(Text) }
func (t Type) IsDate() bool     { return t.Is(Date) }
func (t Type) IsDateTime() bool { return t.Is(DateTime) }
func (t Type) IsDecimal() bool  { return t.Is(Decimal) }
func (t Type) IsBool() bool     { return t.Is(Bool) }
func (t Type) IsEnum() bool     { return t.Is(Enum) }
func (t Type) IsDuration() bool { return t.Is(Duration) }
func (t Type) IsNumber() bool   { return t.IsInteger() || t.IsFloat() }

func (t Type) String() string {
	if t.optional {
		return "Optional(" + t.kind.String() + ")"
	}
	return t.kind.String()
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if inner, ok := strings.CutPrefix(s, "Optional("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		base, err := ParseType(inner)
		if err != nil {
			return Type{}, err
		}
		if base.optional {
			return Type{}, fmt.Errorf("%w: %q", ErrDoubleOptional, s)
		}
		if base.kind == KindEnum {
			return Type{}, fmt.Errorf("%w: %q", ErrOptionalEnum, s)
		}
		return Type{kind: base.kind, optional: true}, nil
	}
	for k := KindFloat; k <= KindDateTime; k++ {
		if kindNames[k] == s {
			return Type{kind: k}, nil
		}
	}
	return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
