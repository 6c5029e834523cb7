package diagnostic

import (
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by engine errors.
const (
	TextCodeInvalidJSON       = "INVALID_JSON"
	TextCodeSchemaUnavailable = "SCHEMA_UNAVAILABLE"
	TextCodeInvalidConfig     = "INVALID_NODE_CONFIG"
	TextCodeSaveBlocked       = "SAVE_BLOCKED"
)

// InvalidJSON reports sample text that failed to parse. It is shown inline
// next to the sample editor and never clears previously extracted fields.
func InvalidJSON(source error) error {
	message := "Invalid JSON format"
	if source == nil {
		return goerrors.New(message, goerrors.CategoryBadInput).
			WithCode(http.StatusBadRequest).
			WithTextCode(TextCodeInvalidJSON)
	}

	return goerrors.Wrap(source, goerrors.CategoryBadInput, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidJSON)
}

// SchemaUnavailable reports a failed schema-field lookup.
func SchemaUnavailable(schemaType string, source error) error {
	message := fmt.Sprintf("schema %q is unavailable", schemaType)

	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryExternal)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryExternal, message)
	}

	return err.
		WithCode(http.StatusBadGateway).
		WithTextCode(TextCodeSchemaUnavailable).
		WithMetadata(map[string]any{"schema_type": schemaType})
}

// InvalidConfig reports a node configuration that fails boundary validation.
func InvalidConfig(kind, field, message string) error {
	return goerrors.NewValidation(fmt.Sprintf("%s: invalid configuration", kind), goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeInvalidConfig).
		WithSeverity(goerrors.SeverityError)
}

// SaveBlocked reports a save attempted while validation violations exist.
func SaveBlocked(violations []string) error {
	return goerrors.New("mapping configuration has validation errors", goerrors.CategoryValidation).
		WithCode(http.StatusUnprocessableEntity).
		WithTextCode(TextCodeSaveBlocked).
		WithMetadata(map[string]any{"violations": violations})
}

// IsInvalidJSON reports whether err was produced by InvalidJSON.
func IsInvalidJSON(err error) bool {
	return hasTextCode(err, TextCodeInvalidJSON)
}

// IsSchemaUnavailable reports whether err was produced by SchemaUnavailable.
func IsSchemaUnavailable(err error) bool {
	return hasTextCode(err, TextCodeSchemaUnavailable)
}

// IsInvalidConfig reports whether err was produced by InvalidConfig.
func IsInvalidConfig(err error) bool {
	return hasTextCode(err, TextCodeInvalidConfig)
}

// IsSaveBlocked reports whether err was produced by SaveBlocked.
func IsSaveBlocked(err error) bool {
	return hasTextCode(err, TextCodeSaveBlocked)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}

	return richErr.TextCode == code
}

// UserMessage returns the message of an engine error without its wrapped
// cause, suitable for inline display. Other errors return their full text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}

	return err.Error()
}

// ConfigField returns the field named by an InvalidConfig error, or "".
func ConfigField(err error) string {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return ""
	}

	if fields := richErr.AllValidationErrors(); len(fields) > 0 {
		return fields[0].Field
	}

	return ""
}
