package mapping

import (
	"slices"

	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/schema"
)

// Direction tells whether external data flows into the internal schema
// (inbound, e.g. data-mapping nodes) or out of it (outbound, export nodes).
// Both produce the same row shape.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// IsValid returns true if the direction is a recognized value. Empty means inbound.
func (d Direction) IsValid() bool {
	return d == "" || d == DirectionInbound || d == DirectionOutbound
}

// Transformation describes the intended handling of a row; it is never executed here.
type Transformation string

const (
	TransformDirect Transformation = "direct"
	TransformCustom Transformation = "custom"
)

// FieldMapping is one row of a mapping configuration.
type FieldMapping struct {
	// SourceField is a descriptor path, or empty while unset.
	SourceField string `json:"source_field" yaml:"source_field"`
	// TargetField is a schema field name or schema.CustomFields.
	TargetField string `json:"target_field" yaml:"target_field"`
	// SchemaType is set when more than one schema participates.
	SchemaType string `json:"schema_type,omitempty" yaml:"schema_type,omitempty"`

	// Denormalized from the target schema field; refreshed whenever the target changes.
	DataType   string `json:"data_type,omitempty" yaml:"data_type,omitempty"`
	IsRequired bool   `json:"is_required" yaml:"is_required,omitempty"`
	IsArray    bool   `json:"is_array" yaml:"is_array,omitempty"`

	IsCustom       bool           `json:"is_custom" yaml:"is_custom,omitempty"`
	CustomFieldKey string         `json:"custom_field_key,omitempty" yaml:"custom_field_key,omitempty"`
	Transformation Transformation `json:"transformation,omitempty" yaml:"transformation,omitempty"`
}

// Configuration is the aggregate edited by a mapping session.
type Configuration struct {
	Mappings   []FieldMapping `json:"mappings" yaml:"mappings"`
	SampleJSON string         `json:"sample_json" yaml:"sample_json,omitempty"`
	Direction  Direction      `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Clone returns a copy that shares no row storage with c.
func (c Configuration) Clone() Configuration {
	c.Mappings = slices.Clone(c.Mappings)
	if c.Mappings == nil {
		c.Mappings = []FieldMapping{}
	}

	return c
}

// Empty reports whether the configuration has no rows.
func (c Configuration) Empty() bool {
	return len(c.Mappings) == 0
}

// DirectRow builds a direct row for source mapped onto field.
func DirectRow(source string, field schema.Field, schemaType string) FieldMapping {
	return FieldMapping{
		SourceField:    source,
		TargetField:    field.Name,
		SchemaType:     schemaType,
		DataType:       field.Type,
		IsRequired:     field.Required,
		IsArray:        field.IsArray,
		Transformation: TransformDirect,
	}
}

// CustomRow builds a custom-field row keyed by the last segment of source.
func CustomRow(d extract.Descriptor, schemaType string) FieldMapping {
	return FieldMapping{
		SourceField:    d.Path,
		TargetField:    schema.CustomFields,
		SchemaType:     schemaType,
		DataType:       string(d.Type),
		IsArray:        d.IsArray,
		IsCustom:       true,
		CustomFieldKey: d.Name(),
		Transformation: TransformCustom,
	}
}

// Retarget points m at a new target and refreshes every field derived from it.
// fields is the schema the target belongs to; a target missing from it keeps
// only its name.
func Retarget(m FieldMapping, target string, fields schema.Fields) FieldMapping {
	m.TargetField = target

	if target == schema.CustomFields {
		m.IsCustom = true
		m.IsRequired = false
		m.Transformation = TransformCustom

		if m.CustomFieldKey == "" {
			m.CustomFieldKey = extract.LastSegment(m.SourceField)
		}

		return m
	}

	m.IsCustom = false
	m.CustomFieldKey = ""
	m.Transformation = TransformDirect

	if f, ok := fields.Find(target); ok {
		m.DataType = f.Type
		m.IsRequired = f.Required
		m.IsArray = f.IsArray
	} else {
		m.DataType = ""
		m.IsRequired = false
		m.IsArray = false
	}

	return m
}
