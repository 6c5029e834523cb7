package mapping

import (
	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/match"
	"workflow-mapper/internal/schema"
)

// Synthesizer turns extracted descriptors into a full mapping set.
type Synthesizer struct {
	Matcher *match.Matcher
}

// NewSynthesizer returns a synthesizer using m, or the default matcher if m is nil.
func NewSynthesizer(m *match.Matcher) *Synthesizer {
	if m == nil {
		m = match.NewMatcher(nil)
	}

	return &Synthesizer{Matcher: m}
}

// Synthesize maps every non-structural descriptor against fields. Matched
// descriptors become direct rows, the rest custom rows; output follows
// descriptor order. Direction does not change the row shape.
func (s *Synthesizer) Synthesize(descs []extract.Descriptor, fields schema.Fields, _ Direction) []FieldMapping {
	out := make([]FieldMapping, 0, len(descs))

	for _, d := range descs {
		if d.Structural() {
			continue
		}

		if f, ok := s.Matcher.Match(d.Name(), fields); ok {
			out = append(out, DirectRow(d.Path, f, ""))
			continue
		}

		out = append(out, CustomRow(d, ""))
	}

	return out
}

// SynthesizeScoped maps descriptors across several schemas. Each descriptor is
// tried against the scopes in order and the first match stamps its
// schema_type; custom rows belong to the first scope. A single-schema scope
// behaves exactly like Synthesize.
func (s *Synthesizer) SynthesizeScoped(descs []extract.Descriptor, scope Scope, direction Direction) []FieldMapping {
	if !scope.Multi() {
		var fields schema.Fields
		if len(scope) == 1 {
			fields = scope[0].Fields
		}

		return s.Synthesize(descs, fields, direction)
	}

	out := make([]FieldMapping, 0, len(descs))

	for _, d := range descs {
		if d.Structural() {
			continue
		}

		row, matched := FieldMapping{}, false

		for _, sc := range scope {
			if f, ok := s.Matcher.Match(d.Name(), sc.Fields); ok {
				row, matched = DirectRow(d.Path, f, sc.SchemaType), true
				break
			}
		}

		if !matched {
			row = CustomRow(d, scope[0].SchemaType)
		}

		out = append(out, row)
	}

	return out
}

// Synthesize runs the default synthesizer.
func Synthesize(descs []extract.Descriptor, fields schema.Fields, direction Direction) []FieldMapping {
	return NewSynthesizer(nil).Synthesize(descs, fields, direction)
}
