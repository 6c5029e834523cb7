package session

import (
	"workflow-mapper/internal/diagnostic"
	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/mapping"
)

// Phase of a mapping session.
type Phase int

const (
	// PhaseEmpty means no sample and no rows yet.
	PhaseEmpty Phase = iota
	// PhaseParsing means a sample edit is waiting to be parsed.
	PhaseParsing
	PhaseValid
	PhaseInvalid
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseParsing:
		return "parsing"
	case PhaseValid:
		return "valid"
	case PhaseInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// State is a snapshot of a session. Reduce never modifies the state it is given.
type State struct {
	Phase Phase

	// Config is the configuration reported to the host.
	Config mapping.Configuration
	// SampleText is the raw editor text; Config.SampleJSON only follows it
	// while it parses.
	SampleText string
	// Fields are the descriptors of the last sample that parsed.
	Fields []extract.Descriptor
	// Scope is the set of target schemas currently selected.
	Scope mapping.Scope

	// ParseError is the inline error for a sample that does not parse.
	ParseError error
	// Diagnostics of the last validation run.
	Diagnostics *diagnostic.Diagnostics
	// Dropped holds rows removed by the last schema change.
	Dropped []mapping.FieldMapping
}

// Violations returns the blocking validation messages, in order.
func (s State) Violations() []string {
	return s.Diagnostics.Messages()
}

// CanSave reports whether the session may be saved.
func (s State) CanSave() bool {
	return s.Phase == PhaseValid
}

// ParseMessage returns the inline parse error text, or "".
func (s State) ParseMessage() string {
	return diagnostic.UserMessage(s.ParseError)
}

func (s State) clone() State {
	s.Config = s.Config.Clone()
	s.Dropped = nil

	return s
}
