// Package mapping holds the field-mapping configuration edited in a workflow
// node, the synthesizer that proposes it from a sample document, and the
// validator that gates saving it.
//
// # Configuration shape
//
// The host persists a configuration as opaque JSON:
//
//	{
//	  "mappings": [
//	    {
//	      "source_field": "vehicle.license_plate",
//	      "target_field": "plate_no",
//	      "data_type": "string",
//	      "is_required": true,
//	      "is_array": false,
//	      "is_custom": false,
//	      "transformation": "direct"
//	    },
//	    {
//	      "source_field": "specs.color",
//	      "target_field": "custom_fields",
//	      "is_custom": true,
//	      "custom_field_key": "color",
//	      "transformation": "custom"
//	    }
//	  ],
//	  "sample_json": "{...}"
//	}
//
// The CLI reads and writes the same structure as YAML.
//
// # Synthesis
//
// Every non-structural descriptor of the sample becomes one row. A descriptor
// whose last path segment matches a schema field becomes a direct row carrying
// the field's data type, requiredness and array-ness; any other descriptor
// becomes a custom row stored under custom_fields with its last segment as
// key. Synthesis only runs on an empty configuration or on an explicit remap,
// so it never overwrites manual edits.
//
// # Validation
//
// Validation is a pure read. With more than one schema in scope, rows and
// required fields are grouped by schema_type. Required-field coverage
// violations are reported before duplicate-target violations; an empty
// error list means the configuration may be saved.
package mapping
