package mapping

import (
	"fmt"
	"strings"

	"workflow-mapper/internal/diagnostic"
)

// Validate checks mappings against the required fields of every schema in
// scope and for duplicate targets. It never mutates mappings.
//
// Errors are ordered: all required-coverage violations (scope order, then
// schema field order) before all duplicate-target violations. Warnings flag
// rows whose target is not part of their schema and custom rows without a key.
func Validate(mappings []FieldMapping, scope Scope) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	scope = scope.normalized()
	multi := scope.Multi()

	for _, sc := range scope {
		validateCoverage(res, sc, scope.rows(sc, mappings), multi)
	}

	for _, sc := range scope {
		validateDuplicates(res, sc, scope.rows(sc, mappings))
	}

	for _, sc := range scope {
		validateTargets(res, sc, scope.rows(sc, mappings))
	}

	if multi {
		validateOrphans(res, scope, mappings)
	}

	return res
}

// Messages validates and returns only the blocking messages.
func Messages(mappings []FieldMapping, scope Scope) []string {
	return Validate(mappings, scope).Messages()
}

// validateCoverage requires every required field to have a row with a source.
// A required array field whose children are declared in the schema is exempt:
// the children carry the requirement.
func validateCoverage(res *diagnostic.Diagnostics, sc SchemaScope, rows []FieldMapping, multi bool) {
	covered := coveredTargets(rows)

	for _, f := range sc.Fields.Required() {
		if f.IsArray && sc.Fields.HasChildren(f.Name) {
			continue
		}

		if covered[f.Name] {
			continue
		}

		msg := fmt.Sprintf("Required field %q is not mapped", f.Name)
		if multi {
			msg += fmt.Sprintf(" in schema %q", sc.SchemaType)
		}

		res.AddError(diagnostic.CodeRequiredUnmapped, msg, sc.SchemaType, f.Name)
	}
}

// validateDuplicates rejects two direct rows sharing a target. The message is
// the same in every scope; the diagnostic records the schema type.
func validateDuplicates(res *diagnostic.Diagnostics, sc SchemaScope, rows []FieldMapping) {
	dups := duplicateTargets(rows)
	if len(dups) == 0 {
		return
	}

	res.AddError(
		diagnostic.CodeDuplicateTarget,
		"Duplicate mappings found: "+strings.Join(dups, ", "),
		sc.SchemaType,
		strings.Join(dups, ","),
	)
}

// validateTargets warns about stale references and unnamed custom rows.
func validateTargets(res *diagnostic.Diagnostics, sc SchemaScope, rows []FieldMapping) {
	for _, m := range rows {
		if isCustom(m) {
			if strings.TrimSpace(m.CustomFieldKey) == "" && m.SourceField != "" {
				res.AddWarning(
					diagnostic.CodeEmptyCustomKey,
					fmt.Sprintf("Custom field for %q has no key", m.SourceField),
					sc.SchemaType,
					m.SourceField,
				)
			}

			continue
		}

		if m.TargetField == "" || len(sc.Fields) == 0 || sc.Fields.Has(m.TargetField) {
			continue
		}

		res.AddWarning(
			diagnostic.CodeUnknownTarget,
			fmt.Sprintf("Target field %q is not part of the schema", m.TargetField),
			sc.SchemaType,
			m.TargetField,
		)
	}
}

// validateOrphans warns about scoped rows whose schema_type is not in scope.
func validateOrphans(res *diagnostic.Diagnostics, scope Scope, mappings []FieldMapping) {
	known := make(map[string]bool, len(scope))
	for _, sc := range scope {
		known[sc.SchemaType] = true
	}

	for _, m := range mappings {
		if known[m.SchemaType] || isCustom(m) {
			continue
		}

		res.AddWarning(
			diagnostic.CodeUnknownTarget,
			fmt.Sprintf("Mapping for %q targets schema %q which is not selected", m.TargetField, m.SchemaType),
			m.SchemaType,
			m.TargetField,
		)
	}
}
