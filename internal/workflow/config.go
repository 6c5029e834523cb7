package workflow

import (
	"strings"

	"workflow-mapper/internal/diagnostic"
	"workflow-mapper/internal/mapping"
)

// AuthMethod is the credential scheme of an authentication node.
type AuthMethod string

const (
	AuthNone   AuthMethod = "none"
	AuthAPIKey AuthMethod = "api_key"
	AuthBasic  AuthMethod = "basic"
	AuthOAuth2 AuthMethod = "oauth2"
)

// AuthenticationConfig names the credentials a workflow uses against an
// external system. Secrets are referenced, never stored.
type AuthenticationConfig struct {
	Method    AuthMethod `json:"method" validate:"required,oneof=none api_key basic oauth2"`
	Username  string     `json:"username,omitempty" validate:"required_if=Method basic"`
	SecretRef string     `json:"secret_ref,omitempty" validate:"required_unless=Method none"`
	TokenURL  string     `json:"token_url,omitempty" validate:"required_if=Method oauth2"`
	Scopes    []string   `json:"scopes,omitempty"`
}

func (*AuthenticationConfig) Kind() Kind { return KindAuthentication }

func (c *AuthenticationConfig) Validate() error {
	return validateStruct(KindAuthentication, c)
}

// DataMappingConfig maps external records into one internal schema. When
// SchemaType is empty the schema comes from the nearest upstream
// destination_schema node.
type DataMappingConfig struct {
	Direction  mapping.Direction     `json:"direction,omitempty" validate:"omitempty,oneof=inbound outbound"`
	SchemaType string                `json:"schema_type,omitempty"`
	Mapping    mapping.Configuration `json:"mapping"`
}

func (*DataMappingConfig) Kind() Kind { return KindDataMapping }

func (c *DataMappingConfig) Validate() error {
	if err := validateStruct(KindDataMapping, c); err != nil {
		return err
	}

	return validateRows(KindDataMapping, c.Mapping)
}

// DestinationSchemaConfig selects the schemas downstream nodes map into.
type DestinationSchemaConfig struct {
	SchemaTypes []string `json:"schema_types" validate:"required,min=1,unique,dive,required"`
}

func (*DestinationSchemaConfig) Kind() Kind { return KindDestinationSchema }

func (c *DestinationSchemaConfig) Validate() error {
	return validateStruct(KindDestinationSchema, c)
}

// EmailConfig sends a notification when the workflow runs.
type EmailConfig struct {
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
	Subject    string   `json:"subject" validate:"required"`
	Body       string   `json:"body,omitempty"`
	// AttachExport attaches the output of an upstream export node.
	AttachExport bool `json:"attach_export,omitempty"`
}

func (*EmailConfig) Kind() Kind { return KindEmail }

func (c *EmailConfig) Validate() error {
	if err := validateStruct(KindEmail, c); err != nil {
		return err
	}

	if strings.TrimSpace(c.Subject) == "" {
		return diagnostic.InvalidConfig(string(KindEmail), "subject", "value is required")
	}

	return nil
}

// ExportFieldsConfig exports records of one or more schemas. With several
// schemas, ReferenceField joins them and must be a field they all share;
// that is checked against the schema provider by Workflow.ValidateMappings.
type ExportFieldsConfig struct {
	SchemaTypes    []string              `json:"schema_types" validate:"required,min=1,unique,dive,required"`
	ReferenceField string                `json:"reference_field,omitempty"`
	Mapping        mapping.Configuration `json:"mapping"`
}

func (*ExportFieldsConfig) Kind() Kind { return KindExportFields }

func (c *ExportFieldsConfig) Validate() error {
	kind := string(KindExportFields)

	if err := validateStruct(KindExportFields, c); err != nil {
		return err
	}

	if len(c.SchemaTypes) > 1 && c.ReferenceField == "" {
		return diagnostic.InvalidConfig(kind, "reference_field", "a reference field is required when exporting several schemas")
	}

	if c.Mapping.Direction != "" && c.Mapping.Direction != mapping.DirectionOutbound {
		return diagnostic.InvalidConfig(kind, "mapping.direction", "export mappings are outbound")
	}

	return validateRows(KindExportFields, c.Mapping)
}

// validateRows checks row shape only; coverage needs the schema and is left
// to the mapping validator.
func validateRows(kind Kind, c mapping.Configuration) error {
	for _, m := range c.Mappings {
		if m.Transformation != "" && m.Transformation != mapping.TransformDirect && m.Transformation != mapping.TransformCustom {
			return diagnostic.InvalidConfig(string(kind), "mapping.transformation", "unsupported transformation "+string(m.Transformation))
		}
	}

	return nil
}
