package mapping

import "workflow-mapper/internal/schema"

// isCustom treats both the flag and the sentinel target as custom, so rows
// edited by hand without the flag are still excluded from schema checks.
func isCustom(m FieldMapping) bool {
	return m.IsCustom || m.TargetField == schema.CustomFields
}

// coveredTargets returns the targets that have at least one row with a source.
func coveredTargets(rows []FieldMapping) map[string]bool {
	out := map[string]bool{}

	for _, m := range rows {
		if isCustom(m) || m.SourceField == "" || m.TargetField == "" {
			continue
		}

		out[m.TargetField] = true
	}

	return out
}

// duplicateTargets returns targets used by more than one direct row, in order
// of first occurrence.
func duplicateTargets(rows []FieldMapping) []string {
	counts := map[string]int{}

	var order []string

	for _, m := range rows {
		if isCustom(m) || m.TargetField == "" {
			continue
		}

		if counts[m.TargetField] == 0 {
			order = append(order, m.TargetField)
		}

		counts[m.TargetField]++
	}

	var dups []string

	for _, name := range order {
		if counts[name] > 1 {
			dups = append(dups, name)
		}
	}

	return dups
}
