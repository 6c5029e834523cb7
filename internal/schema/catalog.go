package schema

import (
	"context"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the root of a YAML schema catalog.
//
//	schemas:
//	  - schema_type: vehicle
//	    display_name: Vehicle
//	    workflows: [import, export]
//	    fields:
//	      - field_name: vin
//	        field_type: string
//	        is_required: true
type CatalogFile struct {
	Schemas []CatalogSchema `yaml:"schemas"`
}

// CatalogSchema is one schema entry of a catalog file.
type CatalogSchema struct {
	SchemaType  string   `yaml:"schema_type"`
	DisplayName string   `yaml:"display_name,omitempty"`
	Workflows   []string `yaml:"workflows,omitempty"`
	Fields      Fields   `yaml:"fields"`
}

// Catalog is an in-memory Provider built from a catalog file.
type Catalog struct {
	schemas []CatalogSchema
	index   map[string]int
}

// LoadCatalog reads and parses a YAML schema catalog from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema catalog %s: %w", path, err)
	}

	return ParseCatalog(data)
}

// ParseCatalog parses YAML catalog data and validates every schema.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse schema catalog YAML: %w", err)
	}

	return NewCatalog(cf.Schemas...)
}

// NewCatalog builds a catalog from schema entries.
func NewCatalog(schemas ...CatalogSchema) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(schemas))}

	for _, s := range schemas {
		if s.SchemaType == "" {
			return nil, fmt.Errorf("schema without schema_type")
		}

		if _, dup := c.index[s.SchemaType]; dup {
			return nil, fmt.Errorf("duplicate schema %q", s.SchemaType)
		}

		if err := s.Fields.Validate(); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.SchemaType, err)
		}

		if s.DisplayName == "" {
			s.DisplayName = s.SchemaType
		}

		c.index[s.SchemaType] = len(c.schemas)
		c.schemas = append(c.schemas, s)
	}

	return c, nil
}

// Fields implements Provider.
func (c *Catalog) Fields(_ context.Context, schemaType string) (Fields, error) {
	i, ok := c.index[schemaType]
	if !ok {
		return nil, fmt.Errorf("schema %q not found", schemaType)
	}

	return slices.Clone(c.schemas[i].Fields), nil
}

// Available implements Provider. Schemas without a workflow list are
// available to every workflow type.
func (c *Catalog) Available(_ context.Context, workflowType string) ([]Summary, error) {
	out := []Summary{}

	for _, s := range c.schemas {
		if len(s.Workflows) > 0 && workflowType != "" && !slices.Contains(s.Workflows, workflowType) {
			continue
		}

		out = append(out, Summary{SchemaType: s.SchemaType, DisplayName: s.DisplayName})
	}

	return out, nil
}

// CommonFields implements Provider.
func (c *Catalog) CommonFields(ctx context.Context, schemaTypes []string) (Fields, error) {
	all := make([]Fields, 0, len(schemaTypes))

	for _, st := range schemaTypes {
		fs, err := c.Fields(ctx, st)
		if err != nil {
			return nil, err
		}

		all = append(all, fs)
	}

	return Common(all...), nil
}
