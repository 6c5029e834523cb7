package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Violation codes.
const (
	CodeRequiredUnmapped = "required_field_unmapped"
	CodeDuplicateTarget  = "duplicate_target"
	CodeUnknownTarget    = "unknown_target"
	CodeEmptyCustomKey   = "empty_custom_key"
	CodeReferenceField   = "reference_field_not_common"
)

// Diagnostics holds the outcome of validating a mapping configuration.
// Errors block saving; warnings are informational.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single violation.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description shown to the user.
	Message string
	// SchemaType identifies the schema scope this relates to (if any).
	SchemaType string
	// Field identifies the schema field or source path this relates to (if any).
	Field string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, schemaType, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:   SeverityError,
		Code:       code,
		Message:    message,
		SchemaType: schemaType,
		Field:      field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, schemaType, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:   SeverityWarning,
		Code:       code,
		Message:    message,
		SchemaType: schemaType,
		Field:      field,
	})
}

// Merge appends another Diagnostics instance to this one, preserving order.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// IsValid returns true if there are no errors. Warnings never block.
func (d *Diagnostics) IsValid() bool {
	return d == nil || len(d.Errors) == 0
}

// Messages returns the messages of all errors in the order they were added.
// An empty result means the configuration can be saved.
func (d *Diagnostics) Messages() []string {
	if d == nil {
		return []string{}
	}

	out := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		out = append(out, e.Message)
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	return errors.New(strings.Join(d.Messages(), "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.SchemaType != "" {
		return "[" + d.SchemaType + "] " + msg
	}

	return msg
}
