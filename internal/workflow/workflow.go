package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"workflow-mapper/internal/diagnostic"
	"workflow-mapper/internal/mapping"
	"workflow-mapper/internal/schema"
)

// Edge connects two nodes; data flows From → To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Workflow is a directed graph of nodes.
type Workflow struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges,omitempty"`
}

// Parse decodes and checks a workflow document.
func Parse(data []byte) (*Workflow, error) {
	var w Workflow
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse workflow: %w", err)
	}

	if err := w.Check(); err != nil {
		return nil, err
	}

	return &w, nil
}

// LoadFile reads and parses a workflow document.
func LoadFile(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow %s: %w", path, err)
	}

	return Parse(data)
}

// Check verifies node ids are unique, every node config is valid, and the
// edges form an acyclic graph over known nodes.
func (w *Workflow) Check() error {
	seen := make(map[string]bool, len(w.Nodes))

	for _, n := range w.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node of kind %q has no id", n.Kind)
		}

		if seen[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}

		seen[n.ID] = true

		if n.Config == nil {
			return fmt.Errorf("node %q has no config", n.ID)
		}

		if err := n.Config.Validate(); err != nil {
			return fmt.Errorf("node %q: %w", n.ID, err)
		}
	}

	_, err := w.Order()

	return err
}

// Node returns the node with the given id.
func (w *Workflow) Node(id string) (Node, bool) {
	for _, n := range w.Nodes {
		if n.ID == id {
			return n, true
		}
	}

	return Node{}, false
}

// Upstream returns the nearest destination_schema node reachable by walking
// edges backwards from nodeID, breadth first.
func (w *Workflow) Upstream(nodeID string) (Node, bool) {
	visited := map[string]bool{nodeID: true}
	queue := []string{nodeID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range w.Edges {
			if e.To != current || visited[e.From] {
				continue
			}

			visited[e.From] = true

			if n, ok := w.Node(e.From); ok && n.Kind == KindDestinationSchema {
				return n, true
			}

			queue = append(queue, e.From)
		}
	}

	return Node{}, false
}

// SchemaTypes returns the schemas a mapping node maps into: its own selection
// or, for a data-mapping node without one, the nearest upstream destination.
func (w *Workflow) SchemaTypes(nodeID string) ([]string, error) {
	n, ok := w.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("unknown node %q", nodeID)
	}

	switch cfg := n.Config.(type) {
	case *DataMappingConfig:
		if cfg.SchemaType != "" {
			return []string{cfg.SchemaType}, nil
		}

		up, ok := w.Upstream(nodeID)
		if !ok {
			return nil, nil
		}

		return up.Config.(*DestinationSchemaConfig).SchemaTypes, nil
	case *ExportFieldsConfig:
		return cfg.SchemaTypes, nil
	default:
		return nil, fmt.Errorf("node %q of kind %q has no mapping", nodeID, n.Kind)
	}
}

// Scope loads the fields of the schemas a mapping node maps into. Schemas
// that cannot be loaded contribute no fields; the first error is returned
// along with the scope.
func (w *Workflow) Scope(ctx context.Context, provider schema.Provider, nodeID string) (mapping.Scope, error) {
	types, err := w.SchemaTypes(nodeID)
	if err != nil {
		return nil, err
	}

	scope := make(mapping.Scope, 0, len(types))

	var firstErr error

	for _, t := range types {
		fields, err := provider.Fields(ctx, t)
		if err != nil && firstErr == nil {
			firstErr = err
		}

		scope = append(scope, mapping.SchemaScope{SchemaType: t, Fields: fields})
	}

	return scope, firstErr
}

// Configuration returns the mapping configuration of a mapping node.
func (n Node) Configuration() (mapping.Configuration, bool) {
	switch cfg := n.Config.(type) {
	case *DataMappingConfig:
		c := cfg.Mapping.Clone()
		if c.Direction == "" {
			c.Direction = cfg.Direction
		}

		return c, true
	case *ExportFieldsConfig:
		c := cfg.Mapping.Clone()
		c.Direction = mapping.DirectionOutbound

		return c, true
	default:
		return mapping.Configuration{}, false
	}
}

// ValidateMappings validates every mapping node against its schemas. Export
// nodes over several schemas also need their reference field to be common
// to all of them.
func (w *Workflow) ValidateMappings(ctx context.Context, provider schema.Provider) (map[string]*diagnostic.Diagnostics, error) {
	out := map[string]*diagnostic.Diagnostics{}

	for _, n := range w.Nodes {
		cfg, ok := n.Configuration()
		if !ok {
			continue
		}

		scope, err := w.Scope(ctx, provider, n.ID)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}

		res := mapping.Validate(cfg.Mappings, scope)

		if export, ok := n.Config.(*ExportFieldsConfig); ok && len(export.SchemaTypes) > 1 {
			common, err := provider.CommonFields(ctx, export.SchemaTypes)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", n.ID, err)
			}

			if !common.Has(export.ReferenceField) {
				res.AddError(
					diagnostic.CodeReferenceField,
					fmt.Sprintf("Reference field %q is not shared by all selected schemas", export.ReferenceField),
					"",
					export.ReferenceField,
				)
			}
		}

		out[n.ID] = res
	}

	return out, nil
}
