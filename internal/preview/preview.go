// Package preview shows the record a mapping configuration describes for its
// sample: each source value is copied to its target field, and custom rows
// land under custom_fields. Transformations are not executed.
package preview

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/mapping"
	"workflow-mapper/internal/schema"
)

// Result is a previewed record.
type Result struct {
	// Record is the JSON object the mappings produce.
	Record []byte
	// Missing lists source paths not present in the sample, in row order.
	Missing []string
}

// Apply previews cfg against its own sample.
func Apply(cfg mapping.Configuration) (Result, error) {
	return ApplyTo([]byte(cfg.SampleJSON), cfg.Mappings)
}

// ApplyTo previews rows against sample. Rows scoped to a schema are written
// under that schema's key so several schemas do not collide.
func ApplyTo(sample []byte, rows []mapping.FieldMapping) (Result, error) {
	descs, err := extract.FromJSON(sample)
	if err != nil {
		return Result{}, err
	}

	byPath := make(map[string]extract.Descriptor, len(descs))
	for _, d := range descs {
		byPath[d.Path] = d
	}

	arrays := extract.ArrayPaths(descs)
	out := "{}"
	res := Result{}

	for _, m := range rows {
		if m.SourceField == "" || m.TargetField == "" {
			continue
		}

		d, ok := byPath[m.SourceField]
		if !ok {
			res.Missing = append(res.Missing, m.SourceField)
			continue
		}

		value := gjson.GetBytes(sample, SourcePath(d.Segments, arrays))
		if !value.Exists() {
			res.Missing = append(res.Missing, m.SourceField)
			continue
		}

		target := TargetPath(m)
		if target == "" {
			continue
		}

		out, err = sjson.SetRaw(out, target, value.Raw)
		if err != nil {
			return Result{}, fmt.Errorf("failed to set %s: %w", target, err)
		}
	}

	res.Record = []byte(out)

	return res, nil
}

// SourcePath converts descriptor segments into a gjson path. Segments below
// an array are read from every element.
func SourcePath(segments []string, arrays map[string]bool) string {
	parts := make([]string, 0, len(segments)*2)

	for i, seg := range segments {
		parts = append(parts, escape(seg))

		if i < len(segments)-1 && arrays[extract.JoinPath(segments[:i+1])] {
			parts = append(parts, "#")
		}
	}

	return strings.Join(parts, ".")
}

// TargetPath returns the sjson path a row writes to, or "" for a custom row
// without a key.
func TargetPath(m mapping.FieldMapping) string {
	var parts []string

	if m.SchemaType != "" {
		parts = append(parts, objectKey(m.SchemaType))
	}

	if m.IsCustom || m.TargetField == schema.CustomFields {
		if m.CustomFieldKey == "" {
			return ""
		}

		parts = append(parts, schema.CustomFields, objectKey(m.CustomFieldKey))
	} else {
		parts = append(parts, objectKey(m.TargetField))
	}

	return strings.Join(parts, ".")
}

// escape protects path syntax characters inside a single key.
func escape(key string) string {
	var b strings.Builder

	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\':
			b.WriteByte('\\')
		}

		b.WriteRune(r)
	}

	return b.String()
}

// objectKey escapes a key written by sjson. A numeric key gets the ':' prefix
// so it names an object member rather than an array index.
func objectKey(key string) string {
	if key != "" && strings.Trim(key, "0123456789") == "" {
		return ":" + key
	}

	return escape(key)
}
