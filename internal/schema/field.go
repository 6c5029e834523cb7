package schema

import (
	"fmt"
	"strings"
)

// CustomFields is the target sentinel for source fields without a schema field.
const CustomFields = "custom_fields"

// Field is a named, typed field definition belonging to a target schema.
type Field struct {
	Name        string   `yaml:"field_name" json:"field_name"`
	Type        string   `yaml:"field_type" json:"field_type"`
	Required    bool     `yaml:"is_required,omitempty" json:"is_required"`
	IsArray     bool     `yaml:"is_array,omitempty" json:"is_array"`
	IsNested    bool     `yaml:"is_nested,omitempty" json:"is_nested"`
	ParentField string   `yaml:"parent_field,omitempty" json:"parent_field,omitempty"`
	EnumValues  []string `yaml:"enum_values,omitempty" json:"enum_values"`
}

// Summary names a schema available for a workflow type.
type Summary struct {
	SchemaType  string `yaml:"schema_type" json:"schema_type"`
	DisplayName string `yaml:"display_name" json:"display_name"`
}

// IsCustom returns true for the custom-fields sentinel.
func (f Field) IsCustom() bool {
	return f.Name == CustomFields
}

// Fields is an ordered list of schema fields.
type Fields []Field

// Find returns the field with the given name (case-sensitive), if any.
func (fs Fields) Find(name string) (Field, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Has returns true if a field with the given name exists.
func (fs Fields) Has(name string) bool {
	_, ok := fs.Find(name)
	return ok
}

// Children returns the nested fields whose parent is the given field.
func (fs Fields) Children(parent string) Fields {
	var out Fields

	for _, f := range fs {
		if f.IsNested && f.ParentField == parent {
			out = append(out, f)
		}
	}

	return out
}

// HasChildren returns true if any nested field references parent.
func (fs Fields) HasChildren(parent string) bool {
	for _, f := range fs {
		if f.IsNested && f.ParentField == parent {
			return true
		}
	}

	return false
}

// Required returns the required, non-custom fields in schema order.
func (fs Fields) Required() Fields {
	var out Fields

	for _, f := range fs {
		if f.Required && !f.IsCustom() {
			out = append(out, f)
		}
	}

	return out
}

// Names returns the field names in schema order.
func (fs Fields) Names() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}

	return out
}

// Validate checks the schema invariants: non-empty unique names, and nested
// fields referencing an existing array field of the same schema.
func (fs Fields) Validate() error {
	seen := make(map[string]struct{}, len(fs))

	for _, f := range fs {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("schema field with empty name")
		}

		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate schema field %q", name)
		}

		seen[name] = struct{}{}
	}

	for _, f := range fs {
		if !f.IsNested {
			if f.ParentField != "" {
				return fmt.Errorf("field %q has parent_field but is not nested", f.Name)
			}

			continue
		}

		parent, ok := fs.Find(f.ParentField)
		if !ok {
			return fmt.Errorf("nested field %q references unknown parent %q", f.Name, f.ParentField)
		}

		if !parent.IsArray {
			return fmt.Errorf("nested field %q references non-array parent %q", f.Name, f.ParentField)
		}
	}

	return nil
}
