package fieldtype

// Classify maps a declared Go type name to its base Type. Names that are not
// part of the closed taxonomy are treated as Enum: the record type owns their
// string conversion.
func Classify(typeName string) Type {
	switch typeName {
	case "float32", "float64":
		return Float
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "byte", "rune":
		return Integer
	case "string":
		return Text
	case "time.Time", "Time", "DateTime", "NaiveDateTime":
		return Date
	case "decimal.Decimal", "Decimal":
		return Decimal
	case "bool":
		return Bool
	case "time.Duration", "Duration":
		return Duration
	default:
		return Enum
	}
}
