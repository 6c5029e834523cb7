package session

import (
	"fmt"
	"strings"

	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/mapping"
)

// Reducer folds events into states.
type Reducer struct {
	Synthesizer *mapping.Synthesizer
}

// NewReducer returns a reducer synthesizing with s, or the default synthesizer if s is nil.
func NewReducer(s *mapping.Synthesizer) *Reducer {
	if s == nil {
		s = mapping.NewSynthesizer(nil)
	}

	return &Reducer{Synthesizer: s}
}

// Reduce applies e to s and returns the new, validated state. An edit that
// cannot apply (an index out of range) returns s unchanged with an error.
// A sample that does not parse is not an error: it is reported on the state
// while the previous fields and rows are kept.
func (r *Reducer) Reduce(s State, e Event) (State, error) {
	next := s.clone()

	switch e := e.(type) {
	case SampleEdited:
		r.applySample(&next, e.Text)
	case MappingAdded:
		next.Config = next.Config.Add(refresh(next.Scope, e.Mapping, mapping.FieldMapping{}, false))
	case MappingUpdated:
		if e.Index < 0 || e.Index >= len(next.Config.Mappings) {
			return s, fmt.Errorf("mapping index %d out of range [0,%d)", e.Index, len(next.Config.Mappings))
		}

		row := refresh(next.Scope, e.Mapping, next.Config.Mappings[e.Index], true)

		cfg, err := next.Config.Update(e.Index, row)
		if err != nil {
			return s, err
		}

		next.Config = cfg
	case MappingRemoved:
		cfg, err := next.Config.Remove(e.Index)
		if err != nil {
			return s, err
		}

		next.Config = cfg
	case RemapAll:
		next.Config.Mappings = r.synthesize(next)
	case SchemasChanged:
		next.Scope = e.Scope
		next.Config, next.Dropped = next.Config.Reconcile(e.Scope)

		if next.Config.Empty() {
			next.Config.Mappings = r.synthesize(next)
		}
	case DirectionChanged:
		if !e.Direction.IsValid() {
			return s, fmt.Errorf("invalid direction %q", e.Direction)
		}

		next.Config.Direction = e.Direction
	case Migrated:
		next.Config = e.Config.Clone()
		next.Fields = nil
		r.applySample(&next, e.Config.SampleJSON)
	case nil:
		return s, fmt.Errorf("nil event")
	default:
		return s, fmt.Errorf("unsupported event %T", e)
	}

	validate(&next)

	return next, nil
}

// applySample parses text and regenerates rows when there are none.
func (r *Reducer) applySample(s *State, text string) {
	s.SampleText = text

	descs, err := extract.FromJSON([]byte(text))
	if err != nil {
		s.ParseError = err
		return
	}

	s.ParseError = nil
	s.Fields = descs
	s.Config.SampleJSON = text

	if s.Config.Empty() {
		s.Config.Mappings = r.synthesize(*s)
	}
}

func (r *Reducer) synthesize(s State) []mapping.FieldMapping {
	rows := r.Synthesizer.SynthesizeScoped(s.Fields, s.Scope, s.Config.Direction)
	if rows == nil {
		rows = []mapping.FieldMapping{}
	}

	return rows
}

// refresh re-copies schema data onto row when its target is new or changed.
func refresh(scope mapping.Scope, row, prev mapping.FieldMapping, update bool) mapping.FieldMapping {
	if update && row.TargetField == prev.TargetField && row.SchemaType == prev.SchemaType {
		return row
	}

	if row.TargetField == "" {
		row.IsCustom = false
		row.CustomFieldKey = ""
		row.Transformation = mapping.TransformDirect

		return row
	}

	sc, ok := scope.Claim(row)
	if ok && scope.Multi() && row.SchemaType == "" {
		row.SchemaType = sc.SchemaType
	}

	return mapping.Retarget(row, row.TargetField, sc.Fields)
}

// validate re-runs validation and settles the phase.
func validate(s *State) {
	s.Diagnostics = mapping.Validate(s.Config.Mappings, s.Scope)

	switch {
	case strings.TrimSpace(s.SampleText) == "" && s.Config.Empty():
		s.Phase = PhaseEmpty
	case s.ParseError == nil && s.Diagnostics.IsValid():
		s.Phase = PhaseValid
	default:
		s.Phase = PhaseInvalid
	}
}

// Reduce applies e with the default reducer.
func Reduce(s State, e Event) (State, error) {
	return NewReducer(nil).Reduce(s, e)
}
