package mapping

import (
	"fmt"
	"slices"
)

// Add appends a row.
func (c Configuration) Add(m FieldMapping) Configuration {
	c = c.Clone()
	c.Mappings = append(c.Mappings, m)

	return c
}

// Update replaces the row at index, leaving every other row untouched.
func (c Configuration) Update(index int, m FieldMapping) (Configuration, error) {
	if index < 0 || index >= len(c.Mappings) {
		return c, fmt.Errorf("mapping index %d out of range [0,%d)", index, len(c.Mappings))
	}

	c = c.Clone()
	c.Mappings[index] = m

	return c, nil
}

// Remove deletes the row at index.
func (c Configuration) Remove(index int) (Configuration, error) {
	if index < 0 || index >= len(c.Mappings) {
		return c, fmt.Errorf("mapping index %d out of range [0,%d)", index, len(c.Mappings))
	}

	c = c.Clone()
	c.Mappings = slices.Delete(c.Mappings, index, index+1)

	return c, nil
}

// Reconcile drops rows whose target no longer exists after the schemas in
// scope changed, and refreshes the denormalized data of the rows that remain.
// Custom rows survive; in a multi-schema scope they move to the first schema
// when their own schema left the scope. Rows without a schema_type join the
// first schema declaring their target. The dropped rows are returned.
func (c Configuration) Reconcile(scope Scope) (Configuration, []FieldMapping) {
	c = c.Clone()

	var (
		kept    = make([]FieldMapping, 0, len(c.Mappings))
		dropped []FieldMapping
	)

	for _, m := range c.Mappings {
		if isCustom(m) {
			if scope.Multi() {
				if _, ok := scope.FieldsFor(m); !ok {
					m.SchemaType = scope[0].SchemaType
				}
			} else {
				m.SchemaType = ""
			}

			kept = append(kept, m)

			continue
		}

		if m.TargetField == "" {
			kept = append(kept, m)
			continue
		}

		sc, ok := scope.Claim(m)
		if !ok || !sc.Fields.Has(m.TargetField) {
			dropped = append(dropped, m)
			continue
		}

		m.SchemaType = ""
		if scope.Multi() {
			m.SchemaType = sc.SchemaType
		}

		kept = append(kept, Retarget(m, m.TargetField, sc.Fields))
	}

	c.Mappings = kept

	return c, dropped
}
