package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"workflow-mapper/internal/diagnostic"
	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/schema"
)

// LoadFile loads a configuration from path. .yaml and .yml files are parsed
// as YAML; anything else as JSON, including legacy saved state.
func LoadFile(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	if isYAML(path) {
		return ParseYAML(data)
	}

	return Migrate(data)
}

// WriteFile writes a configuration to path in the format implied by its extension.
func WriteFile(c Configuration, path string) error {
	var (
		data []byte
		err  error
	)

	if isYAML(path) {
		data, err = yaml.Marshal(c.Clone())
	} else {
		data, err = json.MarshalIndent(c.Clone(), "", "  ")
	}

	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// ParseYAML parses a YAML configuration.
func ParseYAML(data []byte) (Configuration, error) {
	var c Configuration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Configuration{}, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&c)

	return c, nil
}

// Migrate decodes saved state. It accepts the current shape
// ({"mappings": [...], "sample_json": "..."}) and the older flat shape
// ({"field_mappings": {"source": "target"}, "sample_json": "..."}), whose
// key order is preserved. Empty input yields an empty configuration.
func Migrate(data []byte) (Configuration, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Configuration{Mappings: []FieldMapping{}}, nil
	}

	if !gjson.ValidBytes(data) {
		var probe any
		return Configuration{}, diagnostic.InvalidJSON(json.Unmarshal(data, &probe))
	}

	root := gjson.ParseBytes(data)

	var c Configuration

	switch {
	case root.Get("mappings").Exists():
		if err := json.Unmarshal(data, &c); err != nil {
			return Configuration{}, fmt.Errorf("failed to decode mapping configuration: %w", err)
		}
	case root.Get("field_mappings").IsObject():
		c.SampleJSON = root.Get("sample_json").String()
		c.Direction = Direction(root.Get("direction").String())

		root.Get("field_mappings").ForEach(func(k, v gjson.Result) bool {
			c.Mappings = append(c.Mappings, legacyRow(k.String(), v.String()))
			return true
		})
	default:
		c.SampleJSON = root.Get("sample_json").String()
	}

	applyDefaults(&c)

	return c, nil
}

func legacyRow(source, target string) FieldMapping {
	m := FieldMapping{SourceField: source, TargetField: target, Transformation: TransformDirect}
	if target == schema.CustomFields {
		m = Retarget(m, target, nil)
	}

	return m
}

// applyDefaults fills in values older saved state may lack.
func applyDefaults(c *Configuration) {
	if c.Mappings == nil {
		c.Mappings = []FieldMapping{}
	}

	for i := range c.Mappings {
		m := &c.Mappings[i]
		if m.TargetField == schema.CustomFields {
			m.IsCustom = true
		}

		if m.IsCustom && m.CustomFieldKey == "" && m.SourceField != "" {
			m.CustomFieldKey = extract.LastSegment(m.SourceField)
		}

		if m.Transformation == "" {
			if m.IsCustom {
				m.Transformation = TransformCustom
			} else {
				m.Transformation = TransformDirect
			}
		}
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
