package session

import "workflow-mapper/internal/mapping"

// Event is an edit applied to a session state.
type Event interface {
	event()
}

// SampleEdited replaces the sample JSON text.
type SampleEdited struct {
	Text string
}

// MappingAdded appends a row.
type MappingAdded struct {
	Mapping mapping.FieldMapping
}

// MappingUpdated replaces the row at Index. A changed target refreshes the
// data copied from the schema.
type MappingUpdated struct {
	Index   int
	Mapping mapping.FieldMapping
}

// MappingRemoved deletes the row at Index.
type MappingRemoved struct {
	Index int
}

// RemapAll discards every row and synthesizes again from the current sample.
type RemapAll struct{}

// SchemasChanged replaces the target schemas, e.g. after an upstream node changed.
type SchemasChanged struct {
	Scope mapping.Scope
}

// DirectionChanged switches between inbound and outbound mapping.
type DirectionChanged struct {
	Direction mapping.Direction
}

// Migrated loads previously saved state.
type Migrated struct {
	Config mapping.Configuration
}

func (SampleEdited) event()     {}
func (MappingAdded) event()     {}
func (MappingUpdated) event()   {}
func (MappingRemoved) event()   {}
func (RemapAll) event()         {}
func (SchemasChanged) event()   {}
func (DirectionChanged) event() {}
func (Migrated) event()         {}
