package match

import (
	"fmt"
	"strings"

	"workflow-mapper/internal/extract"
)

// TypeCompatibility represents how well a sampled JSON value fits a schema
// field type.
type TypeCompatibility int

const (
	// TypeIncompatible means the value cannot populate the field.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means a custom transformation would be required.
	TypeNeedsTransform
	// TypeConvertible means a lossless textual conversion exists.
	TypeConvertible
	// TypeIdentical means the value already has the field's type.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string
	SourceType    string
	TargetType    string
}

// CanonicalFieldType folds the many spellings schema providers use for
// field_type into the JSON type vocabulary, plus "date".
func CanonicalFieldType(fieldType string) string {
	switch strings.ToLower(strings.TrimSpace(fieldType)) {
	case "string", "text", "varchar", "char", "enum", "uuid", "email":
		return string(extract.TypeString)
	case "number", "integer", "int", "float", "decimal", "double", "numeric":
		return string(extract.TypeNumber)
	case "boolean", "bool":
		return string(extract.TypeBoolean)
	case "date", "datetime", "timestamp", "time":
		return "date"
	case "array", "list":
		return string(extract.TypeArray)
	case "object", "json", "map":
		return string(extract.TypeObject)
	default:
		return ""
	}
}

// ScoreTypeCompatibility compares a sampled JSON type with a schema field type.
// Unknown field types and null samples are treated as convertible: there is not
// enough information to rule the pairing out.
func ScoreTypeCompatibility(source extract.Type, fieldType string) TypeCompatibilityResult {
	target := CanonicalFieldType(fieldType)
	result := TypeCompatibilityResult{SourceType: string(source), TargetType: fieldType}

	switch {
	case target == string(source):
		result.Compatibility = TypeIdentical
		result.Reason = "types are identical"
	case target == "" || source == extract.TypeNull:
		result.Compatibility = TypeConvertible
		result.Reason = "type information unavailable"
	case source == extract.TypeString && target == "date":
		result.Compatibility = TypeConvertible
		result.Reason = "string is parsed as a date"
	case target == string(extract.TypeString) && source != extract.TypeArray:
		result.Compatibility = TypeConvertible
		result.Reason = fmt.Sprintf("%s is rendered as string", source)
	case source == extract.TypeString && (target == string(extract.TypeNumber) || target == string(extract.TypeBoolean)):
		result.Compatibility = TypeNeedsTransform
		result.Reason = fmt.Sprintf("string must be parsed as %s", target)
	case source == extract.TypeNumber && target == "date":
		result.Compatibility = TypeNeedsTransform
		result.Reason = "number must be interpreted as a timestamp"
	default:
		result.Compatibility = TypeIncompatible
		result.Reason = "types are not compatible"
	}

	return result
}
