package workflow

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a node type.
type Kind string

const (
	KindAuthentication    Kind = "authentication"
	KindDataMapping       Kind = "data_mapping"
	KindDestinationSchema Kind = "destination_schema"
	KindEmail             Kind = "email"
	KindExportFields      Kind = "export_fields"
)

// Kinds lists every supported node kind.
func Kinds() []Kind {
	return []Kind{KindAuthentication, KindDataMapping, KindDestinationSchema, KindEmail, KindExportFields}
}

// Config is the kind-specific configuration of a node.
type Config interface {
	Kind() Kind
	Validate() error
}

func newEmptyConfig(kind Kind) (Config, error) {
	switch kind {
	case KindAuthentication:
		return &AuthenticationConfig{}, nil
	case KindDataMapping:
		return &DataMappingConfig{}, nil
	case KindDestinationSchema:
		return &DestinationSchemaConfig{}, nil
	case KindEmail:
		return &EmailConfig{}, nil
	case KindExportFields:
		return &ExportFieldsConfig{}, nil
	default:
		return nil, fmt.Errorf(`unknown node kind "%s"`, kind)
	}
}

// Node is one step of a workflow.
type Node struct {
	ID     string
	Kind   Kind
	Config Config
}

// NewNode builds a node whose kind follows its configuration.
func NewNode(id string, cfg Config) Node {
	return Node{ID: id, Kind: cfg.Kind(), Config: cfg}
}

type nodeJSON struct {
	ID     string          `json:"id"`
	Kind   Kind            `json:"kind"`
	Config json.RawMessage `json:"config,omitempty"`
}

// MarshalJSON encodes the node as {"id", "kind", "config"}.
func (n Node) MarshalJSON() ([]byte, error) {
	raw := nodeJSON{ID: n.ID, Kind: n.Kind}

	if n.Config != nil {
		if n.Kind != "" && n.Config.Kind() != n.Kind {
			return nil, fmt.Errorf(`node "%s": config of kind "%s" does not match node kind "%s"`, n.ID, n.Config.Kind(), n.Kind)
		}

		raw.Kind = n.Config.Kind()

		data, err := json.Marshal(n.Config)
		if err != nil {
			return nil, err
		}

		raw.Config = data
	}

	return json.Marshal(raw)
}

// UnmarshalJSON decodes the configuration into the type selected by "kind"
// and validates it. Unknown kinds are rejected.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw.Kind == "" {
		return fmt.Errorf(`node "%s": missing "kind" field`, raw.ID)
	}

	cfg, err := newEmptyConfig(raw.Kind)
	if err != nil {
		return fmt.Errorf(`node "%s": %w`, raw.ID, err)
	}

	if len(raw.Config) > 0 && string(raw.Config) != "null" {
		if err := json.Unmarshal(raw.Config, cfg); err != nil {
			return fmt.Errorf(`node "%s": invalid %s config: %w`, raw.ID, raw.Kind, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf(`node "%s": %w`, raw.ID, err)
	}

	*n = Node{ID: raw.ID, Kind: raw.Kind, Config: cfg}

	return nil
}
