package schema

import "context"

// Provider supplies schema metadata to the mapping editor.
type Provider interface {
	// Fields returns the field list of a schema type.
	Fields(ctx context.Context, schemaType string) (Fields, error)
	// Available returns the schemas a workflow type may target.
	Available(ctx context.Context, workflowType string) ([]Summary, error)
	// CommonFields returns fields shared by all the given schema types.
	CommonFields(ctx context.Context, schemaTypes []string) (Fields, error)
}

// Common computes the fields present (by name) in every schema, in the order
// of the first schema. Fewer than two schemas yield no common fields.
func Common(schemas ...Fields) Fields {
	if len(schemas) < 2 {
		return Fields{}
	}

	out := Fields{}

	for _, f := range schemas[0] {
		if f.IsNested {
			continue
		}

		shared := true

		for _, other := range schemas[1:] {
			if !other.Has(f.Name) {
				shared = false
				break
			}
		}

		if shared {
			out = append(out, f)
		}
	}

	return out
}
