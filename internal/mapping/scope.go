package mapping

import "workflow-mapper/internal/schema"

// SchemaScope is one target schema participating in a mapping.
type SchemaScope struct {
	SchemaType string
	Fields     schema.Fields
}

// Scope lists the schemas a configuration maps into. A single-schema scope
// ignores schema_type on rows.
type Scope []SchemaScope

// SingleScope wraps one field list.
func SingleScope(fields schema.Fields) Scope {
	return Scope{{Fields: fields}}
}

// Multi reports whether rows must be grouped by schema_type.
func (s Scope) Multi() bool {
	return len(s) > 1
}

// SchemaTypes returns the schema types in scope order.
func (s Scope) SchemaTypes() []string {
	out := make([]string, len(s))
	for i, sc := range s {
		out[i] = sc.SchemaType
	}

	return out
}

// FieldsFor returns the fields a row targets: the row's schema when scoped,
// otherwise the only schema.
func (s Scope) FieldsFor(m FieldMapping) (schema.Fields, bool) {
	sc, ok := s.Claim(m)

	return sc.Fields, ok
}

// Claim returns the schema a row belongs to. A row without a schema_type in a
// multi-schema scope was recorded while a single schema was selected; it
// belongs to the first schema declaring its target.
func (s Scope) Claim(m FieldMapping) (SchemaScope, bool) {
	if len(s) == 0 {
		return SchemaScope{}, false
	}

	if !s.Multi() {
		return s[0], true
	}

	for _, sc := range s {
		if m.SchemaType == "" && sc.Fields.Has(m.TargetField) {
			return sc, true
		}

		if m.SchemaType != "" && sc.SchemaType == m.SchemaType {
			return sc, true
		}
	}

	return SchemaScope{}, false
}

// rows returns the rows belonging to sc.
func (s Scope) rows(sc SchemaScope, mappings []FieldMapping) []FieldMapping {
	if !s.Multi() {
		return mappings
	}

	var out []FieldMapping

	for _, m := range mappings {
		if m.SchemaType == sc.SchemaType {
			out = append(out, m)
		}
	}

	return out
}

// normalized guarantees at least one (possibly empty) scope so that duplicate
// checks still run when no schema is available.
func (s Scope) normalized() Scope {
	if len(s) == 0 {
		return Scope{{}}
	}

	return s
}
